package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the favorite HTTP API
type Metrics struct {
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	requestSummary *prometheus.SummaryVec
	operations     *prometheus.CounterVec
}

// NewMetrics registers the favorite service collectors with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		requestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "favorite_service_requests_total",
				Help: "Total number of requests to favorite service",
			},
			[]string{"method", "endpoint", "status"},
		),
		requestLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "favorite_service_request_duration_seconds",
				Help:    "Duration of favorite service requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		// Client-side quantiles (p50, p90, p95, p99)
		requestSummary: factory.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "favorite_service_request_duration_summary",
				Help: "Summary of request durations with percentiles",
				Objectives: map[float64]float64{
					0.5:  0.05,
					0.9:  0.01,
					0.95: 0.01,
					0.99: 0.001,
				},
				MaxAge: 10 * time.Minute,
			},
			[]string{"method", "endpoint"},
		),
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "favorite_service_operations_total",
				Help: "Favorite state changes by operation and outcome",
			},
			[]string{"operation", "result"},
		),
	}
}

// observeOperation counts one business operation outcome
func (m *Metrics) observeOperation(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.operations.WithLabelValues(operation, result).Inc()
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and latency labelled by route template
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tpl
			}
		}

		duration := time.Since(start).Seconds()
		m.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		m.requestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
		m.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	})
}
