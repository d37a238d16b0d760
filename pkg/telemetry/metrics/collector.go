package metrics

import (
	"time"

	"the-savior/edge/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Collector is the entry point for recording metrics.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	http     *HTTPMetrics
	upstream *UpstreamMetrics
	guard    *GuardMetrics
	coach    *CoachMetrics
}

// NewCollector creates a collector and registers every metric on registry.
// If registry is nil a fresh one is created. Go runtime and process
// collectors are registered alongside.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		cfg.RequestDurationBuckets = config.DefaultRequestDurationBuckets
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Collector{
		config:   cfg,
		registry: registry,
		http:     NewHTTPMetrics(cfg, registry),
		upstream: NewUpstreamMetrics(cfg, registry),
		guard:    NewGuardMetrics(cfg, registry),
		coach:    NewCoachMetrics(cfg, registry),
	}
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordHTTPRequest records one completed HTTP request.
func (c *Collector) RecordHTTPRequest(route, method string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.http.record(route, method, status, duration)
}

// RecordUpstreamCall records one provider call. outcome is "success" or an
// upstream error kind.
func (c *Collector) RecordUpstreamCall(provider, operation, outcome string, duration time.Duration) {
	if c == nil {
		return
	}
	c.upstream.record(provider, operation, outcome, duration)
}

// RecordCORSDenied records a request rejected by the origin check.
func (c *Collector) RecordCORSDenied(route string) {
	if c == nil {
		return
	}
	c.guard.corsDenied.WithLabelValues(route).Inc()
}

// RecordRateLimited records a request rejected by the rate limiter.
func (c *Collector) RecordRateLimited(scope string) {
	if c == nil {
		return
	}
	c.guard.rateLimited.WithLabelValues(scope).Inc()
}

// RecordSweep records one expired-bucket sweep. trigger is "threshold",
// "random", or "scheduled".
func (c *Collector) RecordSweep(trigger string, removed int) {
	if c == nil {
		return
	}
	c.guard.sweeps.WithLabelValues(trigger).Inc()
	c.guard.swept.Add(float64(removed))
}

// ObserveBucketCount reports the live bucket count on every scrape.
func (c *Collector) ObserveBucketCount(count func() int) {
	if c == nil {
		return
	}
	c.guard.registerBucketGauge(c.config, c.registry, count)
}

// RecordFallback records a templated reply served instead of a model reply.
func (c *Collector) RecordFallback(mode, reason string) {
	if c == nil {
		return
	}
	c.coach.fallbacks.WithLabelValues(mode, reason).Inc()
}

// RecordCrisisEscalation records a crisis-resources reply.
func (c *Collector) RecordCrisisEscalation(mode string) {
	if c == nil {
		return
	}
	c.coach.crisis.WithLabelValues(mode).Inc()
}

// RecordKeyCheck records a key verification result.
func (c *Collector) RecordKeyCheck(result string) {
	if c == nil {
		return
	}
	c.coach.keyChecks.WithLabelValues(result).Inc()
}
