package ratelimit

import (
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"the-savior/edge/pkg/limits/storage"
	"the-savior/edge/pkg/telemetry/metrics"
)

const (
	// sweepThreshold triggers a sweep when the store grows past it.
	sweepThreshold = 5000

	// sweepProbability is the share of calls that sweep opportunistically.
	sweepProbability = 0.02
)

// Sweep triggers, used as metric labels.
const (
	TriggerThreshold = "threshold"
	TriggerRandom    = "random"
	TriggerScheduled = "scheduled"
)

// Decision is the outcome of counting one request.
type Decision struct {
	Allowed           bool
	Limit             int
	Remaining         int
	ResetAtUnix       int64
	RetryAfterSeconds int

	// Headers holds X-RateLimit-Limit, X-RateLimit-Remaining and
	// X-RateLimit-Reset, plus Retry-After when the request is blocked.
	Headers http.Header
}

// Apply copies the rate-limit headers onto w.
func (d Decision) Apply(w http.ResponseWriter) {
	for key, values := range d.Headers {
		for _, v := range values {
			w.Header().Set(key, v)
		}
	}
}

// Limiter counts requests per scope and client against a MemoryStore.
// It is safe for concurrent use.
type Limiter struct {
	store   *storage.MemoryStore
	now     func() time.Time
	random  func() float64
	metrics *metrics.Collector
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// WithRandom replaces the source used for opportunistic sweeps. It must
// return values in [0, 1).
func WithRandom(random func() float64) Option {
	return func(l *Limiter) { l.random = random }
}

// WithMetrics records rejections and sweeps on collector and exports the
// bucket count as a gauge.
func WithMetrics(collector *metrics.Collector) Option {
	return func(l *Limiter) { l.metrics = collector }
}

// NewLimiter creates a limiter over store.
func NewLimiter(store *storage.MemoryStore, opts ...Option) *Limiter {
	l := &Limiter{
		store:  store,
		now:    time.Now,
		random: rand.Float64,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.metrics.ObserveBucketCount(store.Len)
	return l
}

// Store returns the underlying bucket store.
func (l *Limiter) Store() *storage.MemoryStore {
	return l.store
}

// Check counts r against policy and returns the decision. The request is
// counted even when it is blocked.
func (l *Limiter) Check(r *http.Request, policy Policy, overrides Overrides) Decision {
	limit := ParseLimit(overrides.Max, policy.LimitDefault)
	window := ParseWindow(overrides.WindowMS, policy.WindowDefault)
	now := l.now()

	if l.store.Len() > sweepThreshold {
		l.sweep(TriggerThreshold, now)
	} else if l.random() < sweepProbability {
		l.sweep(TriggerRandom, now)
	}

	key := policy.Scope + ":" + ClientIdentifier(r, overrides.TrustedHeader)
	bucket := l.store.Hit(key, window, now)

	allowed := bucket.Count <= limit
	remaining := max(0, limit-bucket.Count)
	retryAfter := max(1, int(ceilDiv(bucket.ResetAt.Sub(now).Milliseconds(), 1000)))
	resetAtUnix := ceilDiv(bucket.ResetAt.UnixMilli(), 1000)

	headers := http.Header{}
	headers.Set("X-RateLimit-Limit", strconv.Itoa(limit))
	headers.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	headers.Set("X-RateLimit-Reset", strconv.FormatInt(resetAtUnix, 10))
	if !allowed {
		headers.Set("Retry-After", strconv.Itoa(retryAfter))
		l.metrics.RecordRateLimited(policy.Scope)
	}

	return Decision{
		Allowed:           allowed,
		Limit:             limit,
		Remaining:         remaining,
		ResetAtUnix:       resetAtUnix,
		RetryAfterSeconds: retryAfter,
		Headers:           headers,
	}
}

// Sweep removes expired buckets now and returns the number removed.
func (l *Limiter) Sweep(trigger string) int {
	return l.sweep(trigger, l.now())
}

func (l *Limiter) sweep(trigger string, now time.Time) int {
	removed := l.store.Sweep(now)
	l.metrics.RecordSweep(trigger, removed)
	return removed
}

// ceilDiv divides rounding toward positive infinity.
func ceilDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a > 0) == (b > 0) {
		q++
	}
	return q
}
