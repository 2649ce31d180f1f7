// Package archive records completed runs. It is write-only: nothing in the
// calculation path ever reads a run back.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chrissnell/youngslab/pkg/config"
	"github.com/chrissnell/youngslab/pkg/elasticity"
)

// Outcome of a successful run
const OutcomeOK = "ok"

// Record is one archived run
type Record struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	Outcome     string
	Inputs      string
	Points      int
	Modulus     *float64
	Uncertainty *float64
	Relative    *float64
}

// Store persists run records
type Store interface {
	Save(ctx context.Context, rec Record) error
	Close() error
}

// NewRecord builds the record of a run from its inputs and either its result or its error
func NewRecord(id uuid.UUID, fields elasticity.MapSource, res *elasticity.Result, runErr error) (Record, error) {
	inputs, err := json.Marshal(fields)
	if err != nil {
		return Record{}, fmt.Errorf("error encoding run inputs: %w", err)
	}

	rec := Record{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		Outcome:   OutcomeOK,
		Inputs:    string(inputs),
	}
	if runErr != nil {
		rec.Outcome = elasticity.Kind(runErr)
		return rec, nil
	}

	rec.Points = len(res.Points)
	rec.Modulus = finite(res.Fit.Slope)
	rec.Uncertainty = finite(res.Uncertainty.Modulus)
	rec.Relative = finite(res.Uncertainty.Relative)
	return rec, nil
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// New opens the store selected by cfg.Backend
func New(cfg config.ArchiveData, logger *zap.SugaredLogger) (Store, error) {
	switch cfg.Backend {
	case "", config.ArchiveNone:
		return Nop{}, nil
	case config.ArchiveSQLite:
		return NewSQLiteStore(cfg.SQLitePath, logger)
	case config.ArchivePostgres:
		return NewPostgresStore(cfg.ConnectionString, logger)
	default:
		return nil, fmt.Errorf("unknown archive backend %q", cfg.Backend)
	}
}

// Nop discards every record
type Nop struct{}

// Save implements Store
func (Nop) Save(context.Context, Record) error { return nil }

// Close implements Store
func (Nop) Close() error { return nil }
