package archive

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chrissnell/youngslab/pkg/config"
	"github.com/chrissnell/youngslab/pkg/elasticity"
)

func TestNewRecord(t *testing.T) {
	raw := elasticity.DefaultDataset()
	res, err := elasticity.Compute(raw)
	if err != nil {
		t.Fatal(err)
	}

	id := uuid.New()
	rec, err := NewRecord(id, raw.Fields(), res, nil)
	if err != nil {
		t.Fatal(err)
	}
	if rec.ID != id || rec.Outcome != OutcomeOK || rec.Points != 7 {
		t.Errorf("record = %+v", rec)
	}
	if rec.Modulus == nil || *rec.Modulus != res.Fit.Slope {
		t.Errorf("modulus = %v", rec.Modulus)
	}

	failed, err := NewRecord(id, elasticity.MapSource{}, nil, elasticity.ErrMissingReading)
	if err != nil {
		t.Fatal(err)
	}
	if failed.Outcome != "missing_reading" || failed.Modulus != nil {
		t.Errorf("failed record = %+v", failed)
	}
}

func TestNewSelectsBackend(t *testing.T) {
	logger := zap.NewNop().Sugar()

	s, err := New(config.ArchiveData{Backend: config.ArchiveNone}, logger)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(Nop); !ok {
		t.Errorf("none backend gave %T", s)
	}

	if _, err := New(config.ArchiveData{Backend: "mongo"}, logger); err == nil {
		t.Error("unknown backend accepted")
	}
}

func TestSQLiteStoreSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	store, err := New(config.ArchiveData{Backend: config.ArchiveSQLite, SQLitePath: path}, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	raw := elasticity.DefaultDataset()
	res, err := elasticity.Compute(raw)
	if err != nil {
		t.Fatal(err)
	}
	ok, _ := NewRecord(uuid.New(), raw.Fields(), res, nil)
	bad, _ := NewRecord(uuid.New(), elasticity.MapSource{}, nil, elasticity.ErrInsufficientGeometry)

	ctx := context.Background()
	for _, rec := range []Record{ok, bad} {
		if err := store.Save(ctx, rec); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	if err := store.Save(ctx, ok); err == nil {
		t.Error("duplicate run id accepted")
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("archived %d runs, want 2", count)
	}

	var modulus sql.NullFloat64
	if err := db.QueryRow("SELECT modulus FROM runs WHERE id = ?", bad.ID.String()).Scan(&modulus); err != nil {
		t.Fatal(err)
	}
	if modulus.Valid {
		t.Errorf("failed run stored modulus %v", modulus.Float64)
	}
	if err := db.QueryRow("SELECT modulus FROM runs WHERE id = ?", ok.ID.String()).Scan(&modulus); err != nil {
		t.Fatal(err)
	}
	if !modulus.Valid || modulus.Float64 != res.Fit.Slope {
		t.Errorf("modulus = %+v", modulus)
	}
}
