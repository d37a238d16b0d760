package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Sweeper runs Limiter.Sweep on a cron schedule.
type Sweeper struct {
	limiter  *Limiter
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewSweeper creates a sweeper. An empty schedule disables it.
func NewSweeper(limiter *Limiter, schedule string, logger *slog.Logger) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		limiter:  limiter,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "ratelimit.sweeper"),
	}
}

// Start schedules the sweep and returns immediately. The sweeper stops when
// ctx is cancelled or Stop is called.
//
// Schedules use standard cron syntax or descriptors such as "@every 1m".
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("sweep schedule not configured, skipping sweeper")
		return nil
	}
	if s.running {
		return fmt.Errorf("sweeper already running")
	}

	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("rate limit sweeper started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *Sweeper) run() {
	removed := s.limiter.Sweep(TriggerScheduled)
	if removed > 0 {
		s.logger.Debug("swept expired rate limit buckets",
			"removed", removed,
			"remaining", s.limiter.Store().Len(),
		)
	}
}

// Stop stops the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		<-s.cron.Stop().Done()
		s.running = false
		s.logger.Info("rate limit sweeper stopped")
	}
}

// IsRunning returns true if the sweeper is scheduled.
func (s *Sweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
