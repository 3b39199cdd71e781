package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of one server. Each Metrics has
// its own registry, so several servers can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestsTotal   prometheus.Counter
	activeRequests  prometheus.Gauge
	requestDuration *prometheus.HistogramVec
	multiplications *prometheus.CounterVec
	mismatches      prometheus.Counter
}

// NewMetrics creates and registers the server collectors together with the
// Go runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "limbcalc_requests_total",
			Help: "Total number of HTTP requests served.",
		}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "limbcalc_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "limbcalc_request_duration_seconds",
			Help:    "HTTP request latency by path.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),
		multiplications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "limbcalc_multiplications_total",
			Help: "Multiplications performed, by algorithm.",
		}, []string{"algorithm"}),
		mismatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "limbcalc_mismatches_total",
			Help: "Multipliers found disagreeing with the reference.",
		}),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.activeRequests,
		m.requestDuration,
		m.multiplications,
		m.mismatches,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests marks the start of a request.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
	m.requestsTotal.Inc()
}

// DecrementActiveRequests marks the end of a request.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// ObserveRequest records the latency of a request to path.
func (m *Metrics) ObserveRequest(path string, seconds float64) {
	m.requestDuration.WithLabelValues(path).Observe(seconds)
}

// AddMultiplications counts n multiplications performed by algorithm.
func (m *Metrics) AddMultiplications(algorithm string, n int) {
	m.multiplications.WithLabelValues(algorithm).Add(float64(n))
}

// AddMismatches counts n disagreeing multipliers.
func (m *Metrics) AddMismatches(n int) {
	m.mismatches.Add(float64(n))
}

// WritePrometheus serves the exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
