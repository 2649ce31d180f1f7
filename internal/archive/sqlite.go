package archive

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const createRunsTable = `
	CREATE TABLE IF NOT EXISTS runs (
		id          TEXT PRIMARY KEY,
		created_at  TIMESTAMP NOT NULL,
		outcome     TEXT NOT NULL,
		inputs      TEXT NOT NULL,
		points      INTEGER NOT NULL,
		modulus     REAL,
		uncertainty REAL,
		relative    REAL
	)
`

// SQLiteStore writes runs into a SQLite file
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	logger *zap.SugaredLogger
}

// NewSQLiteStore opens (creating if needed) the database at dbPath
func NewSQLiteStore(dbPath string, logger *zap.SugaredLogger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	if _, err := db.Exec(createRunsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create runs table: %w", err)
	}

	logger.Infof("archiving runs to SQLite database %s", dbPath)
	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
		logger: logger,
	}, nil
}

// Save inserts rec
func (s *SQLiteStore) Save(ctx context.Context, rec Record) error {
	query := `
		INSERT INTO runs (id, created_at, outcome, inputs, points, modulus, uncertainty, relative)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		rec.ID.String(), rec.CreatedAt, rec.Outcome, rec.Inputs, rec.Points,
		rec.Modulus, rec.Uncertainty, rec.Relative,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", rec.ID, err)
	}
	return nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
