// Package metrics exposes Prometheus counters and histograms for calculation runs,
// exports and the HTTP surface.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Run metrics
	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "youngslab_runs_total",
			Help: "Calculation runs by outcome",
		},
		[]string{"outcome"},
	)

	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "youngslab_run_duration_seconds",
			Help:    "Time spent on one calculation run, chart included",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	lastModulus = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "youngslab_last_modulus_pascals",
			Help: "Young's modulus of the latest successful run",
		},
	)

	exportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "youngslab_exports_total",
			Help: "Artifacts served, by kind",
		},
		[]string{"kind"},
	)

	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "youngslab_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "youngslab_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "path"},
	)
)

// RecordRun counts a run under outcome ("ok" or an error kind) and observes its duration
func RecordRun(outcome string, took time.Duration) {
	runsTotal.WithLabelValues(outcome).Inc()
	runDuration.Observe(took.Seconds())
}

// RecordModulus sets the latest modulus gauge
func RecordModulus(pascals float64) {
	lastModulus.Set(pascals)
}

// RecordExport counts one served artifact
func RecordExport(kind string) {
	exportsTotal.WithLabelValues(kind).Inc()
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latency, labelled by route template
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		path := "unmatched"
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}
		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(sw.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
