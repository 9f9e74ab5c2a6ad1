package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RequestDuration   *prometheus.HistogramVec
	Mutations         *prometheus.CounterVec
	UpstreamFallbacks prometheus.Counter
	StoreResets       prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ayushdesk_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
		Mutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ayushdesk_directory_mutations_total",
			Help: "Directory mutations applied, by operation.",
		}, []string{"op"}),
		UpstreamFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ayushdesk_upstream_fallbacks_total",
			Help: "Reads served from the local seed store after an upstream failure.",
		}),
		StoreResets: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ayushdesk_store_resets_total",
			Help: "Times the seed store was reset to its initial dataset.",
		}),
	}
}

// ObserveMutation increments the mutation counter for an operation. Safe on a
// nil receiver so services can run without metrics in tests.
func (m *Metrics) ObserveMutation(op string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(op).Inc()
}

// ObserveFallback counts one upstream-to-local fallback.
func (m *Metrics) ObserveFallback() {
	if m == nil {
		return
	}
	m.UpstreamFallbacks.Inc()
}

// ObserveReset counts one store reset.
func (m *Metrics) ObserveReset() {
	if m == nil {
		return
	}
	m.StoreResets.Inc()
}
