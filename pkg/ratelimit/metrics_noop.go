package ratelimit

import "time"

// NoOpMetrics implements the Metrics interface with no-op implementations.
//
// This implementation is useful for:
//   - Testing environments where metrics are not needed
//   - Disabling metrics collection (e.g., development mode)
//   - Benchmarking limiter performance without metrics overhead
//
// All methods are no-ops and have minimal performance impact.
type NoOpMetrics struct{}

// NewNoOpMetrics creates a new NoOpMetrics instance.
func NewNoOpMetrics() *NoOpMetrics {
	return &NoOpMetrics{}
}

// RecordAllowed is a no-op implementation.
func (m *NoOpMetrics) RecordAllowed(scope string) {
	// No-op
}

// RecordDenied is a no-op implementation.
func (m *NoOpMetrics) RecordDenied(scope string) {
	// No-op
}

// RecordFailOpen is a no-op implementation.
func (m *NoOpMetrics) RecordFailOpen(scope string) {
	// No-op
}

// RecordCheckDuration is a no-op implementation.
func (m *NoOpMetrics) RecordCheckDuration(scope string, duration time.Duration) {
	// No-op
}

// SetActiveKeys is a no-op implementation.
func (m *NoOpMetrics) SetActiveKeys(scope string, count int) {
	// No-op
}

// RecordSweep is a no-op implementation.
func (m *NoOpMetrics) RecordSweep(scope string, removed int) {
	// No-op
}

// RecordCircuitState is a no-op implementation.
func (m *NoOpMetrics) RecordCircuitState(scope, state string) {
	// No-op
}
