package http

import (
	"context"
	"log/slog"
	"time"

	"solidarity-api/internal/cache"
	"solidarity-api/pkg/ratelimit"

	"github.com/robfig/cron/v3"
)

// DefaultSweepInterval is how often expired rate-limit windows and
// count-cache entries are removed when not configured.
const DefaultSweepInterval = 5 * time.Minute

// SweepTarget is a named rate-limit store to sweep.
type SweepTarget struct {
	Scope string
	Store ratelimit.Store
}

// Sweeper periodically removes expired rate-limit windows and count
// cache entries. Both stores expire entries lazily on read; the sweeper
// reclaims the memory of keys that are never read again.
type Sweeper struct {
	cron    *cron.Cron
	logger  *slog.Logger
	metrics ratelimit.Metrics
	targets []SweepTarget
	caches  []*cache.CountCache
}

// NewSweeper creates a sweeper over the given stores and caches.
// A nil metrics falls back to the no-op implementation.
func NewSweeper(logger *slog.Logger, metrics ratelimit.Metrics, targets []SweepTarget, caches []*cache.CountCache) *Sweeper {
	if metrics == nil {
		metrics = ratelimit.NewNoOpMetrics()
	}
	return &Sweeper{
		cron:    cron.New(),
		logger:  logger,
		metrics: metrics,
		targets: targets,
		caches:  caches,
	}
}

// Start schedules the sweep at the given interval and starts the cron
// scheduler in its own goroutine.
func (s *Sweeper) Start(interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if _, err := s.cron.AddFunc("@every "+interval.String(), s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("sweeper started", slog.Duration("interval", interval))
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("sweeper stopped")
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, t := range s.targets {
		removed, err := t.Store.Sweep(ctx)
		if err != nil {
			s.logger.Error("rate limit sweep failed",
				slog.String("scope", t.Scope),
				slog.Any("error", err))
			continue
		}
		s.metrics.RecordSweep(t.Scope, removed)

		if count, err := t.Store.KeyCount(ctx); err == nil {
			s.metrics.SetActiveKeys(t.Scope, count)
			s.logger.Debug("rate limit sweep completed",
				slog.String("scope", t.Scope),
				slog.Int("removed", removed),
				slog.Int("active_keys", count))
		}
	}

	for _, c := range s.caches {
		removed := c.Sweep()
		if removed > 0 {
			s.logger.Debug("count cache sweep completed",
				slog.Int("removed", removed))
		}
	}
}
