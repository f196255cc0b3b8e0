package ratelimit

import (
	"log/slog"
	"sync"
	"time"
)

// CircuitState represents the current state of the circuit breaker.
type CircuitState int

const (
	// StateClosed indicates the circuit is closed and store operations
	// are executed normally.
	StateClosed CircuitState = iota

	// StateOpen indicates the circuit is open due to excessive failures.
	// When open, store operations are skipped and requests are allowed
	// through (fail-open behavior) for availability.
	StateOpen

	// StateHalfOpen indicates the circuit is testing recovery.
	// The next operation is executed to probe whether the store has
	// recovered.
	StateHalfOpen
)

// String returns a string representation of the circuit state.
func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig holds configuration for the circuit breaker.
type CircuitBreakerConfig struct {
	// FailureThreshold is the number of consecutive failures required to
	// open the circuit. Default: 10
	FailureThreshold int

	// RecoveryTimeout is the duration to wait before attempting recovery
	// (half-open state). Default: 30 seconds
	RecoveryTimeout time.Duration

	// Clock provides time abstraction for testing.
	// Default: SystemClock
	Clock Clock

	// Metrics for recording circuit state changes.
	// Default: NoOpMetrics
	Metrics Metrics

	// Scope identifies which limiter this circuit breaker protects.
	Scope string
}

// CircuitBreaker protects the rate limit store from cascading failures.
//
// It has three states:
//
//   - Closed (normal): store operations are executed normally
//   - Open (failing): after N consecutive failures, operations are
//     skipped and requests pass through unlimited
//   - Half-Open (testing): after the recovery timeout, one operation is
//     executed to probe recovery
//
// The open state fails open rather than closed: when the limiter's own
// store is broken, availability of the API wins over strict limiting.
type CircuitBreaker struct {
	config CircuitBreakerConfig

	mu                  sync.RWMutex
	state               CircuitState
	consecutiveFailures int
	lastStateChange     time.Time
}

// NewCircuitBreaker creates a new circuit breaker with the given configuration.
//
// Zero-valued FailureThreshold, RecoveryTimeout, Clock, and Metrics are
// replaced with defaults.
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 10
	}
	if config.RecoveryTimeout <= 0 {
		config.RecoveryTimeout = 30 * time.Second
	}
	if config.Clock == nil {
		config.Clock = &SystemClock{}
	}
	if config.Metrics == nil {
		config.Metrics = NewNoOpMetrics()
	}

	cb := &CircuitBreaker{
		config:          config,
		state:           StateClosed,
		lastStateChange: config.Clock.Now(),
	}

	config.Metrics.RecordCircuitState(config.Scope, cb.state.String())

	return cb
}

// Execute runs the given operation with circuit breaker protection.
//
// Behavior by state:
//   - Closed: execute the operation, track failures
//   - Open: skip the operation and return nil (fail-open)
//   - Half-Open: execute the operation, close on success or reopen on failure
func (cb *CircuitBreaker) Execute(operation func() error) error {
	cb.attemptRecovery()

	cb.mu.RLock()
	currentState := cb.state
	cb.mu.RUnlock()

	switch currentState {
	case StateOpen:
		return nil

	case StateHalfOpen:
		err := operation()
		if err != nil {
			cb.transition(StateOpen, err)
			return err
		}
		cb.transition(StateClosed, nil)
		return nil

	default:
		err := operation()
		if err != nil {
			cb.recordFailure(err)
			return err
		}
		cb.recordSuccess()
		return nil
	}
}

// State returns the current circuit state.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// IsOpen returns true if the circuit is currently open.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.State() == StateOpen
}

// Reset resets the circuit breaker to the closed state.
//
// This is useful for testing or manual intervention.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	cb.state = StateClosed
	cb.consecutiveFailures = 0
	cb.lastStateChange = cb.config.Clock.Now()
	cb.mu.Unlock()

	cb.config.Metrics.RecordCircuitState(cb.config.Scope, StateClosed.String())
}

// recordSuccess resets the consecutive failure count.
func (cb *CircuitBreaker) recordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.consecutiveFailures = 0
}

// recordFailure counts a failure and opens the circuit at the threshold.
func (cb *CircuitBreaker) recordFailure(err error) {
	cb.mu.Lock()
	cb.consecutiveFailures++
	open := cb.consecutiveFailures >= cb.config.FailureThreshold && cb.state == StateClosed
	failures := cb.consecutiveFailures
	if open {
		cb.state = StateOpen
		cb.lastStateChange = cb.config.Clock.Now()
	}
	cb.mu.Unlock()

	if open {
		cb.config.Metrics.RecordCircuitState(cb.config.Scope, StateOpen.String())
		slog.Warn("rate limiter circuit opened",
			slog.String("scope", cb.config.Scope),
			slog.Int("consecutive_failures", failures),
			slog.Duration("recovery_timeout", cb.config.RecoveryTimeout),
			slog.Any("error", err))
	}
}

// transition moves the circuit from half-open to the given state.
func (cb *CircuitBreaker) transition(to CircuitState, err error) {
	cb.mu.Lock()
	cb.state = to
	if to == StateClosed {
		cb.consecutiveFailures = 0
	} else {
		cb.consecutiveFailures++
	}
	cb.lastStateChange = cb.config.Clock.Now()
	cb.mu.Unlock()

	cb.config.Metrics.RecordCircuitState(cb.config.Scope, to.String())
	slog.Warn("rate limiter circuit state changed",
		slog.String("scope", cb.config.Scope),
		slog.String("new_state", to.String()),
		slog.Any("error", err))
}

// attemptRecovery transitions the circuit from open to half-open once
// the recovery timeout has elapsed.
func (cb *CircuitBreaker) attemptRecovery() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != StateOpen {
		return
	}

	now := cb.config.Clock.Now()
	if now.Sub(cb.lastStateChange) >= cb.config.RecoveryTimeout {
		cb.state = StateHalfOpen
		cb.lastStateChange = now
		cb.config.Metrics.RecordCircuitState(cb.config.Scope, StateHalfOpen.String())
	}
}
