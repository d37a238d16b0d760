package metrics

import (
	"the-savior/edge/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// CoachMetrics tracks how chat and key-check requests were answered.
type CoachMetrics struct {
	fallbacks *prometheus.CounterVec
	crisis    *prometheus.CounterVec
	keyChecks *prometheus.CounterVec
}

// NewCoachMetrics creates and registers coaching metrics with the provided registry.
func NewCoachMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CoachMetrics {
	cm := &CoachMetrics{
		fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "fallback_replies_total",
				Help:      "Total number of templated fallback replies by mode and reason",
			},
			[]string{"mode", "reason"},
		),

		crisis: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "crisis_escalations_total",
				Help:      "Total number of crisis-resources replies",
			},
			[]string{"mode"},
		),

		keyChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "key_checks_total",
				Help:      "Total number of API key checks by result",
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(cm.fallbacks, cm.crisis, cm.keyChecks)
	return cm
}
