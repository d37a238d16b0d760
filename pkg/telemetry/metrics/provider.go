package metrics

import (
	"time"

	"the-savior/edge/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// UpstreamMetrics tracks calls to language-model providers.
//
// Metrics:
//   - savior_edge_upstream_requests_total: calls by provider, operation, outcome
//   - savior_edge_upstream_latency_seconds: call latency by provider and operation
type UpstreamMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewUpstreamMetrics creates and registers upstream metrics with the provided registry.
func NewUpstreamMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *UpstreamMetrics {
	um := &UpstreamMetrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "upstream_requests_total",
				Help:      "Total number of upstream provider calls by outcome",
			},
			[]string{"provider", "operation", "outcome"},
		),

		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "upstream_latency_seconds",
				Help:      "Upstream provider call latency in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"provider", "operation"},
		),
	}

	registry.MustRegister(um.requests, um.latency)
	return um
}

func (um *UpstreamMetrics) record(provider, operation, outcome string, duration time.Duration) {
	um.requests.WithLabelValues(provider, operation, outcome).Inc()
	um.latency.WithLabelValues(provider, operation).Observe(duration.Seconds())
}
