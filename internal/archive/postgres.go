package archive

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chrissnell/youngslab/internal/log"
)

// RunModel is the gorm mapping of the runs table
type RunModel struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	CreatedAt   time.Time `gorm:"not null;index"`
	Outcome     string    `gorm:"not null;index"`
	Inputs      string    `gorm:"type:jsonb;not null"`
	Points      int       `gorm:"not null"`
	Modulus     *float64
	Uncertainty *float64
	Relative    *float64
}

// TableName implements gorm's Tabler
func (RunModel) TableName() string {
	return "runs"
}

func toModel(rec Record) RunModel {
	return RunModel{
		ID:          rec.ID.String(),
		CreatedAt:   rec.CreatedAt,
		Outcome:     rec.Outcome,
		Inputs:      rec.Inputs,
		Points:      rec.Points,
		Modulus:     rec.Modulus,
		Uncertainty: rec.Uncertainty,
		Relative:    rec.Relative,
	}
}

// PostgresStore writes runs into PostgreSQL through gorm
type PostgresStore struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewPostgresStore connects and migrates the runs table
func NewPostgresStore(connectionString string, l *zap.SugaredLogger) (*PostgresStore, error) {
	// Create a logger for gorm
	dbLogger := logger.New(
		zap.NewStdLog(log.GetZapLogger()),
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  logger.Warn, // Log level
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	l.Info("connecting to PostgreSQL run archive...")
	db, err := gorm.Open(postgres.Open(connectionString), &gorm.Config{Logger: dbLogger})
	if err != nil {
		l.Warn("warning: unable to create a PostgreSQL connection:", err)
		return nil, err
	}

	if err := db.AutoMigrate(&RunModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate runs table: %w", err)
	}
	l.Info("PostgreSQL run archive ready")

	return &PostgresStore{db: db, logger: l}, nil
}

// Save inserts rec
func (p *PostgresStore) Save(ctx context.Context, rec Record) error {
	m := toModel(rec)
	if err := p.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("failed to insert run %s: %w", rec.ID, err)
	}
	return nil
}

// Close closes the underlying connection pool
func (p *PostgresStore) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
