package ratelimit

import (
	"context"
	"log/slog"
	"time"
)

// Limiter applies a fixed-window rate limit for one scope (typically
// one route) against a pluggable store.
//
// Limiter fails open: if the store errors or the circuit breaker is
// open, the request is allowed and the failure is logged and counted.
// A broken limiter must never take the API down with it.
type Limiter struct {
	scope   string
	limit   int
	window  time.Duration
	store   Store
	metrics Metrics
	clock   Clock
	breaker *CircuitBreaker
}

// LimiterConfig holds configuration for a Limiter.
type LimiterConfig struct {
	// Scope identifies this limiter in decisions, logs, and metrics.
	Scope string

	// Limit is the maximum number of requests allowed per window.
	Limit int

	// Window is the fixed window duration.
	Window time.Duration

	// Store is the backing state store. Required.
	Store Store

	// Metrics for recording limiter activity.
	// Default: NoOpMetrics
	Metrics Metrics

	// Clock provides time operations for testing.
	// Default: SystemClock
	Clock Clock

	// FailureThreshold is the number of consecutive store failures
	// before the circuit opens. Default: 10
	FailureThreshold int

	// RecoveryTimeout is how long the circuit stays open before a
	// recovery probe. Default: 30 seconds
	RecoveryTimeout time.Duration
}

// NewLimiter creates a new fixed-window limiter.
func NewLimiter(cfg LimiterConfig) *Limiter {
	if cfg.Metrics == nil {
		cfg.Metrics = NewNoOpMetrics()
	}
	if cfg.Clock == nil {
		cfg.Clock = &SystemClock{}
	}

	breaker := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: cfg.FailureThreshold,
		RecoveryTimeout:  cfg.RecoveryTimeout,
		Clock:            cfg.Clock,
		Metrics:          cfg.Metrics,
		Scope:            cfg.Scope,
	})

	return &Limiter{
		scope:   cfg.Scope,
		limit:   cfg.Limit,
		window:  cfg.Window,
		store:   cfg.Store,
		metrics: cfg.Metrics,
		clock:   cfg.Clock,
		breaker: breaker,
	}
}

// Scope returns the limiter's scope name.
func (l *Limiter) Scope() string {
	return l.scope
}

// Limit returns the configured per-window request limit.
func (l *Limiter) Limit() int {
	return l.limit
}

// Window returns the configured window duration.
func (l *Limiter) Window() time.Duration {
	return l.window
}

// Check records a hit for the key and decides whether the request is
// allowed. The hit is recorded regardless of the verdict: rejected
// requests still consume window budget.
//
// Check never returns an error. Store failures produce a fail-open
// decision so availability survives limiter outages.
func (l *Limiter) Check(ctx context.Context, key string) *Decision {
	start := l.clock.Now()

	var count int
	var resetAt time.Time

	err := l.breaker.Execute(func() error {
		var innerErr error
		count, resetAt, innerErr = l.store.Incr(ctx, key, l.window)
		return innerErr
	})

	l.metrics.RecordCheckDuration(l.scope, l.clock.Now().Sub(start))

	if err != nil {
		slog.Warn("rate limit check failed, allowing request",
			slog.String("scope", l.scope),
			slog.String("key", key),
			slog.Any("error", err))
		l.metrics.RecordFailOpen(l.scope)
		return newFailOpenDecision(key, l.scope, l.limit)
	}

	// Circuit open: the store was skipped entirely.
	if count == 0 && resetAt.IsZero() {
		l.metrics.RecordFailOpen(l.scope)
		return newFailOpenDecision(key, l.scope, l.limit)
	}

	if count > l.limit {
		l.metrics.RecordDenied(l.scope)
		return newDeniedDecision(key, l.scope, l.limit, count, resetAt, l.clock.Now())
	}

	l.metrics.RecordAllowed(l.scope)
	return newAllowedDecision(key, l.scope, l.limit, count, resetAt)
}

// SweepStore removes expired windows from the backing store and
// reports the result to metrics. Intended to be driven by a scheduler.
func (l *Limiter) SweepStore(ctx context.Context) error {
	removed, err := l.store.Sweep(ctx)
	if err != nil {
		return err
	}

	l.metrics.RecordSweep(l.scope, removed)

	if keys, err := l.store.KeyCount(ctx); err == nil {
		l.metrics.SetActiveKeys(l.scope, keys)
	}

	return nil
}
