package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/chrissnell/youngslab/internal/archive"
	"github.com/chrissnell/youngslab/internal/chart"
	"github.com/chrissnell/youngslab/internal/controllers/restserver"
	"github.com/chrissnell/youngslab/internal/log"
	"github.com/chrissnell/youngslab/internal/workbench"
	"github.com/chrissnell/youngslab/pkg/config"
)

// App represents the main application
type App struct {
	configProvider config.ConfigProvider
	logger         *zap.SugaredLogger
}

// New creates a new application instance
func New(configProvider config.ConfigProvider, logger *zap.SugaredLogger) *App {
	return &App{
		configProvider: configProvider,
		logger:         logger,
	}
}

// Build wires the workbench and its run archive from cfg. The caller closes the store.
func Build(cfg *config.ConfigData, logger *zap.SugaredLogger) (*workbench.Workbench, archive.Store, error) {
	store, err := archive.New(cfg.Archive, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening run archive: %w", err)
	}

	bench := workbench.New(
		chart.NewRenderer(cfg.Chart.WidthPx, cfg.Chart.HeightPx),
		store,
		workbench.Settings{Title: cfg.Report.Title, Filename: cfg.Report.Filename},
		logger,
	)
	return bench, store, nil
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := a.configProvider.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	bench, store, err := Build(cfg, a.logger)
	if err != nil {
		return err
	}
	defer store.Close()

	ctrl := restserver.NewController(ctx, &wg, cfg, bench, a.logger)
	if err := ctrl.StartController(); err != nil {
		return err
	}

	log.Info("Application started successfully")

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	// Wait for shutdown signal
	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	// Cancel context to signal all goroutines to stop
	cancel()

	// Wait for all workers to terminate
	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
