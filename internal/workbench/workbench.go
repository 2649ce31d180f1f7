// Package workbench owns the state of one interactive session: the bundle of the latest
// successful run and the chart drawn from it. A run replaces both together; a failed run
// clears both, so readers never see a chart from one run next to numbers from another.
package workbench

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chrissnell/youngslab/internal/archive"
	"github.com/chrissnell/youngslab/internal/chart"
	"github.com/chrissnell/youngslab/internal/export"
	"github.com/chrissnell/youngslab/internal/metrics"
	"github.com/chrissnell/youngslab/internal/report"
	"github.com/chrissnell/youngslab/internal/script"
	"github.com/chrissnell/youngslab/pkg/elasticity"
)

// ErrNoResult is returned by every accessor until a run has succeeded
var ErrNoResult = errors.New("no result: run a calculation first")

// Settings are the report options of the session
type Settings struct {
	Title    string
	Filename string
}

// Run is the outcome of one successful calculation
type Run struct {
	ID       uuid.UUID
	Result   *elasticity.Result
	Finished time.Time
	Took     time.Duration
}

// Workbench serializes calculation runs and serves artifacts of the latest one.
// runMu is held for a whole Compute so a later run always supersedes an earlier one;
// mu guards the installed run and chart.
type Workbench struct {
	runMu    sync.Mutex
	mu       sync.RWMutex
	latest   *Run
	canvas   chart.Canvas
	renderer chart.Renderer
	archive  archive.Store
	settings Settings
	logger   *zap.SugaredLogger
}

// New creates a workbench. A nil store disables archiving.
func New(renderer chart.Renderer, store archive.Store, settings Settings, logger *zap.SugaredLogger) *Workbench {
	if store == nil {
		store = archive.Nop{}
	}
	return &Workbench{
		renderer: renderer,
		archive:  store,
		settings: settings,
		logger:   logger,
	}
}

// Settings returns the report options
func (wb *Workbench) Settings() Settings {
	return wb.settings
}

// Compute runs the whole pipeline on src and installs the result. On error the previous
// result and chart are discarded and the error is returned unchanged. Calls run one at
// a time in the order they acquire the workbench.
func (wb *Workbench) Compute(ctx context.Context, src elasticity.FieldSource) (*Run, error) {
	wb.runMu.Lock()
	defer wb.runMu.Unlock()

	id := uuid.New()
	start := time.Now()
	inputs := elasticity.Collect(src)

	res, err := elasticity.Run(inputs)
	if err != nil {
		wb.mu.Lock()
		wb.latest = nil
		wb.canvas.Clear()
		wb.mu.Unlock()

		metrics.RecordRun(elasticity.Kind(err), time.Since(start))
		wb.logger.Warnw("calculation rejected", "run", id, "kind", elasticity.Kind(err), "error", err)
		wb.record(ctx, id, inputs, nil, err)
		return nil, err
	}

	c, cerr := wb.renderer.Render(res)
	if cerr != nil {
		wb.logger.Errorw("chart rendering failed", "run", id, "error", cerr)
	}

	run := &Run{ID: id, Result: res, Finished: time.Now(), Took: time.Since(start)}

	wb.mu.Lock()
	wb.latest = run
	if cerr != nil {
		wb.canvas.Clear()
	} else {
		wb.canvas.Replace(c)
	}
	wb.mu.Unlock()

	metrics.RecordRun(archive.OutcomeOK, run.Took)
	metrics.RecordModulus(res.Fit.Slope)
	if !res.Uncertainty.Finite() {
		wb.logger.Warnw("uncertainty is not finite", "run", id,
			"relative", res.Uncertainty.Relative, "sample_delta", res.Representative().ReadingDelta)
	}
	wb.logger.Infow("calculation complete", "run", id,
		"modulus", res.Fit.Slope, "uncertainty", res.Uncertainty.Modulus, "points", len(res.Points))

	wb.record(ctx, id, inputs, res, nil)
	return run, nil
}

func (wb *Workbench) record(ctx context.Context, id uuid.UUID, inputs elasticity.MapSource, res *elasticity.Result, runErr error) {
	rec, err := archive.NewRecord(id, inputs, res, runErr)
	if err == nil {
		err = wb.archive.Save(ctx, rec)
	}
	if err != nil {
		wb.logger.Errorw("unable to archive run", "run", id, "error", err)
	}
}

// Latest returns the current run
func (wb *Workbench) Latest() (*Run, error) {
	wb.mu.RLock()
	defer wb.mu.RUnlock()

	if wb.latest == nil {
		return nil, ErrNoResult
	}
	return wb.latest, nil
}

// ChartPNG returns the snapshot of the live chart
func (wb *Workbench) ChartPNG() ([]byte, error) {
	wb.mu.RLock()
	defer wb.mu.RUnlock()

	if wb.latest == nil {
		return nil, ErrNoResult
	}
	return wb.canvas.Snapshot()
}

// current returns the run and its chart snapshot as one consistent pair.
// png is nil when the chart could not be captured.
func (wb *Workbench) current() (*Run, []byte, error) {
	wb.mu.RLock()
	defer wb.mu.RUnlock()

	if wb.latest == nil {
		return nil, nil, ErrNoResult
	}
	png, err := wb.canvas.Snapshot()
	if err != nil {
		wb.logger.Warnw("chart snapshot unavailable", "run", wb.latest.ID, "error", err)
		png = nil
	}
	return wb.latest, png, nil
}

// Script returns the MATLAB plotting script of the current run
func (wb *Workbench) Script() (string, error) {
	run, err := wb.Latest()
	if err != nil {
		return "", err
	}
	return script.MATLAB(run.Result)
}

// Document lays out the report of the current run, chart and script included
func (wb *Workbench) Document() (*report.Document, error) {
	run, png, err := wb.current()
	if err != nil {
		return nil, err
	}
	return wb.document(run, png)
}

func (wb *Workbench) document(run *Run, png []byte) (*report.Document, error) {
	src, err := script.MATLAB(run.Result)
	if err != nil {
		return nil, err
	}
	return report.Build(run.Result, report.Options{
		Title:    wb.settings.Title,
		ChartPNG: png,
		Script:   src,
	}), nil
}

// WriteDoc writes the Word-compatible report of the current run
func (wb *Workbench) WriteDoc(w io.Writer) error {
	doc, err := wb.Document()
	if err != nil {
		return err
	}
	return export.WriteDoc(w, doc)
}

// WriteWorkbook writes the spreadsheet export of the current run
func (wb *Workbench) WriteWorkbook(w io.Writer) error {
	run, png, err := wb.current()
	if err != nil {
		return err
	}
	return export.WriteWorkbook(w, run.Result, png)
}

// Filename returns the download name for an artifact with extension ext
func (wb *Workbench) Filename(ext string) string {
	return export.Filename(wb.settings.Filename, ext)
}
