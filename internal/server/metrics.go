package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthbridge_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "healthbridge_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	syncsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthbridge_syncs_total",
			Help: "Total number of sync deliveries by outcome status.",
		},
		[]string{"status"},
	)

	metricsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthbridge_metrics_processed_total",
			Help: "Per-metric pipeline outcomes across all syncs.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(httpReqs, httpLat, syncsTotal, metricsProcessed)
}

// Metrics instruments requests with Prometheus. The path label uses the
// matched chi route pattern to keep cardinality bounded.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		path := chi.RouteContext(r.Context()).RoutePattern()
		if path == "" {
			path = r.URL.Path
		}
		httpReqs.WithLabelValues(r.Method, path, strconv.Itoa(sw.status)).Inc()
		httpLat.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
