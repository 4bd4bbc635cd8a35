package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the proxy.
type Metrics struct {
	UpstreamRequests  *prometheus.CounterVec // labels: outcome={success,fallback}
	Fallbacks         *prometheus.CounterVec // labels: variable
	BulkRequests      prometheus.Counter
	ResolveDuration   prometheus.Histogram
	UpstreamReachable prometheus.Gauge
}

// NewMetrics creates and registers all proxy metrics with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nasa_proxy",
			Name:      "upstream_requests_total",
			Help:      "Per-variable resolutions by outcome.",
		}, []string{"outcome"}),
		Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nasa_proxy",
			Name:      "fallbacks_total",
			Help:      "Synthetic fallback series served, by variable key.",
		}, []string{"variable"}),
		BulkRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nasa_proxy",
			Name:      "bulk_requests_total",
			Help:      "Bulk data requests handled.",
		}),
		ResolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nasa_proxy",
			Name:      "resolve_duration_seconds",
			Help:      "Duration of a single-variable resolution including fallback.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		UpstreamReachable: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nasa_proxy",
			Name:      "upstream_reachable",
			Help:      "1 when the last GES DISC health probe succeeded, 0 otherwise.",
		}),
	}

	reg.MustRegister(
		m.UpstreamRequests,
		m.Fallbacks,
		m.BulkRequests,
		m.ResolveDuration,
		m.UpstreamReachable,
	)
	return m
}
