package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes the HTTP-level collectors in Prometheus format.
// Calculation metrics are recorded by the arith package.
type Metrics struct {
	handler http.Handler
}

var (
	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "digitcalc_active_requests",
		Help: "Current number of active requests",
	})
	totalRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "digitcalc_requests_total",
		Help: "Total number of requests received, by path and status code",
	}, []string{"path", "code"})
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "digitcalc_request_duration_seconds",
		Help:    "Request latency by path",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
	}, []string{"path"})
)

func NewMetrics() *Metrics {
	return &Metrics{
		handler: promhttp.Handler(),
	}
}

func (m *Metrics) IncrementActiveRequests() {
	activeRequests.Inc()
}

func (m *Metrics) DecrementActiveRequests() {
	activeRequests.Dec()
}

// ObserveRequest counts a finished request and records its latency.
func (m *Metrics) ObserveRequest(path string, code int, d time.Duration) {
	totalRequests.WithLabelValues(path, strconv.Itoa(code)).Inc()
	requestDuration.WithLabelValues(path).Observe(d.Seconds())
}

// WritePrometheus serves the default registry.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.metrics.WritePrometheus(w, r)
}

// statusRecorder captures the status code written by the next handler.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		start := time.Now()
		next(rec, r)
		s.metrics.ObserveRequest(r.URL.Path, rec.code, time.Since(start))
	}
}
