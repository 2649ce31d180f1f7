package restserver

import (
	"context"
	"io/fs"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/chrissnell/youngslab/internal/log"
	"github.com/chrissnell/youngslab/internal/metrics"
	"github.com/chrissnell/youngslab/internal/workbench"
	"github.com/chrissnell/youngslab/pkg/config"
)

// Controller represents the REST server controller
type Controller struct {
	ctx           context.Context
	wg            *sync.WaitGroup
	serverConfig  config.ServerData
	metricsConfig config.MetricsData
	Server        http.Server
	FS            fs.FS
	bench         *workbench.Workbench
	logger        *zap.SugaredLogger
	handlers      *Handlers
}

// NewController creates a new REST server controller serving bench
func NewController(ctx context.Context, wg *sync.WaitGroup, cfg *config.ConfigData, bench *workbench.Workbench, logger *zap.SugaredLogger) *Controller {
	ctrl := &Controller{
		ctx:           ctx,
		wg:            wg,
		serverConfig:  cfg.Server,
		metricsConfig: cfg.Metrics,
		FS:            GetAssets(),
		bench:         bench,
		logger:        logger,
	}

	ctrl.handlers = NewHandlers(ctrl)

	ctrl.Server.Addr = cfg.Server.Addr()
	ctrl.Server.Handler = ctrl.Router()
	ctrl.Server.ReadTimeout = cfg.Server.ReadTimeout()
	ctrl.Server.WriteTimeout = cfg.Server.WriteTimeout()

	return ctrl
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	log.Infof("Starting REST server on %s...", c.Server.Addr)
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if c.serverConfig.Cert != "" && c.serverConfig.Key != "" {
			if err := c.Server.ListenAndServeTLS(c.serverConfig.Cert, c.serverConfig.Key); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		} else {
			if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// Router configures the HTTP router with all endpoints
func (c *Controller) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(log.HTTPMiddleware)

	if c.metricsConfig.Enabled {
		router.Use(metrics.Middleware)
		router.Handle(c.metricsConfig.Path, metrics.Handler()).Methods(http.MethodGet)
	}

	// API endpoints
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/compute", c.handlers.Compute).Methods(http.MethodPost)
	api.HandleFunc("/result", c.handlers.GetResult).Methods(http.MethodGet)
	api.HandleFunc("/defaults", c.handlers.GetDefaults).Methods(http.MethodGet)

	// Artifacts of the latest run
	router.HandleFunc("/chart.png", c.handlers.GetChart).Methods(http.MethodGet)
	router.HandleFunc("/report.html", c.handlers.GetReportFragment).Methods(http.MethodGet)
	router.HandleFunc("/report.doc", c.handlers.GetReportDoc).Methods(http.MethodGet)
	router.HandleFunc("/report.xlsx", c.handlers.GetReportWorkbook).Methods(http.MethodGet)
	router.HandleFunc("/script.m", c.handlers.GetScript).Methods(http.MethodGet)

	// Template endpoints
	router.HandleFunc("/", c.handlers.ServeIndexTemplate).Methods(http.MethodGet)

	// Static file serving
	router.PathPrefix("/").Handler(http.FileServer(http.FS(c.FS)))

	return router
}
