// Package ratelimit provides framework-agnostic fixed-window rate limiting.
//
// This package implements rate limiting using pluggable storage backends
// and metrics collectors. It is designed to be reusable across different
// contexts (HTTP, CLI, background jobs).
package ratelimit

import (
	"context"
	"time"
)

// Store defines the interface for fixed-window rate limit state.
//
// Implementations can use in-memory storage, Redis, or other backends.
// All methods must be thread-safe.
type Store interface {
	// Incr records a hit for the given key within a fixed window of the
	// given duration. If no live window exists for the key, a new window
	// is opened starting now and expiring after the window duration.
	//
	// The returned count includes the recorded hit and keeps growing past
	// any limit: rejected requests still consume window budget, so a
	// client that hammers a closed window pushes its own reset further
	// into irrelevance rather than sliding under the limit.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - key: Unique identifier (e.g., IP address)
	//   - window: Fixed window duration
	//
	// Returns the total hit count in the current window, the time at
	// which the window expires, and an error if the operation fails.
	Incr(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)

	// Peek returns the current hit count and window expiry for the key
	// without recording a hit. A key with no live window reports a zero
	// count and a zero reset time.
	Peek(ctx context.Context, key string) (count int, resetAt time.Time, err error)

	// Sweep removes expired windows from storage and returns the number
	// of entries removed. Backends with native expiry may implement this
	// as a no-op.
	Sweep(ctx context.Context) (int, error)

	// KeyCount returns the number of live keys currently in storage.
	//
	// This is useful for monitoring memory usage.
	KeyCount(ctx context.Context) (int, error)
}

// Metrics defines the interface for recording rate limiting metrics.
//
// Implementations can use Prometheus, StatsD, or custom metrics systems.
type Metrics interface {
	// RecordAllowed records a rate limit check that allowed the request.
	RecordAllowed(scope string)

	// RecordDenied records a rate limit violation (request denied).
	RecordDenied(scope string)

	// RecordFailOpen records a check that allowed the request because the
	// limiter itself failed. A nonzero rate here means the limiter is not
	// actually limiting.
	RecordFailOpen(scope string)

	// RecordCheckDuration records the duration of a rate limit check.
	RecordCheckDuration(scope string, duration time.Duration)

	// SetActiveKeys records the current number of live keys in the store.
	SetActiveKeys(scope string, count int)

	// RecordSweep records the number of expired windows removed by a sweep.
	RecordSweep(scope string, removed int)

	// RecordCircuitState records the current state of the circuit breaker.
	RecordCircuitState(scope, state string)
}

// Clock provides an abstraction for time operations to enable testing.
//
// This interface allows for dependency injection of time functions,
// making it easy to test time-dependent behavior with fake clocks.
type Clock interface {
	// Now returns the current time.
	//
	// Production implementations should return time.Now().
	// Test implementations can return fixed or controlled times.
	Now() time.Time
}

// SystemClock is a Clock implementation that uses the system time.
type SystemClock struct{}

// Now returns the current system time.
func (c *SystemClock) Now() time.Time {
	return time.Now()
}
