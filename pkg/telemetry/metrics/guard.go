package metrics

import (
	"sync"

	"the-savior/edge/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// GuardMetrics tracks the origin and rate-limit guards.
//
// Metrics:
//   - savior_edge_cors_denied_total: requests rejected by origin, per route
//   - savior_edge_ratelimit_rejections_total: requests over limit, per scope
//   - savior_edge_ratelimit_sweeps_total: sweeps by trigger
//   - savior_edge_ratelimit_swept_buckets_total: expired buckets removed
//   - savior_edge_ratelimit_buckets: live buckets, sampled on scrape
type GuardMetrics struct {
	corsDenied  *prometheus.CounterVec
	rateLimited *prometheus.CounterVec
	sweeps      *prometheus.CounterVec
	swept       prometheus.Counter

	gaugeOnce sync.Once
}

// NewGuardMetrics creates and registers guard metrics with the provided registry.
func NewGuardMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *GuardMetrics {
	gm := &GuardMetrics{
		corsDenied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cors_denied_total",
				Help:      "Total number of requests rejected by the origin check",
			},
			[]string{"route"},
		),

		rateLimited: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "ratelimit_rejections_total",
				Help:      "Total number of requests rejected by the rate limiter",
			},
			[]string{"scope"},
		),

		sweeps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "ratelimit_sweeps_total",
				Help:      "Total number of expired-bucket sweeps by trigger",
			},
			[]string{"trigger"},
		),

		swept: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "ratelimit_swept_buckets_total",
				Help:      "Total number of expired rate-limit buckets removed",
			},
		),
	}

	registry.MustRegister(gm.corsDenied, gm.rateLimited, gm.sweeps, gm.swept)
	return gm
}

func (gm *GuardMetrics) registerBucketGauge(cfg *config.MetricsConfig, registry *prometheus.Registry, count func() int) {
	gm.gaugeOnce.Do(func() {
		registry.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "ratelimit_buckets",
				Help:      "Number of rate-limit buckets currently stored",
			},
			func() float64 { return float64(count()) },
		))
	})
}
