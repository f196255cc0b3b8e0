package ratelimit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements the Metrics interface using Prometheus.
//
// This implementation provides observability for rate limiting with:
//   - Request counters (allowed/denied/fail-open) by scope
//   - Rate limit check duration histograms
//   - Active key gauges for memory monitoring
//   - Circuit breaker state tracking
//   - Sweep counters
//
// All metrics use a custom registry for better testability and isolation.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	// requestsTotal tracks rate limit checks by scope and status.
	// Labels:
	//   - scope: limiter scope (e.g., "contact", "petition")
	//   - status: "allowed", "denied", or "fail_open"
	requestsTotal *prometheus.CounterVec

	// checkDuration tracks the duration of rate limit check operations.
	//
	// Buckets are optimized for fast checks (<5ms target):
	// - 0.5ms, 1ms, 2ms, 5ms (fast checks)
	// - 10ms, 25ms, 50ms (slower checks, potential issues)
	// - 100ms, 250ms, 500ms, 1s (circuit breaker should trigger)
	checkDuration *prometheus.HistogramVec

	// activeKeys tracks the current number of live keys per scope.
	activeKeys *prometheus.GaugeVec

	// circuitState tracks the circuit breaker state per scope.
	//
	// Values:
	//   - 0: Closed (normal operation)
	//   - 1: Open (failing, allowing all requests)
	//   - 2: Half-Open (testing recovery)
	circuitState *prometheus.GaugeVec

	// sweepsTotal tracks expired windows removed by sweeps per scope.
	sweepsTotal *prometheus.CounterVec
}

// NewPrometheusMetrics creates a new PrometheusMetrics instance with a custom registry.
//
// Using a custom registry (instead of the global prometheus.DefaultRegisterer) provides:
//   - Better testability (isolated metrics per test)
//   - No metric conflicts when running multiple instances
//   - Explicit metric lifecycle management
//
// The registry can be passed to promhttp.HandlerFor() to expose metrics.
func NewPrometheusMetrics() *PrometheusMetrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limit_requests_total",
			Help: "Total rate limit checks by scope and status",
		},
		[]string{"scope", "status"},
	)

	checkDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_rate_limit_check_duration_seconds",
			Help:    "Duration of rate limit check operations",
			Buckets: []float64{0.0005, 0.001, 0.002, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
		[]string{"scope"},
	)

	activeKeys := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_rate_limit_active_keys",
			Help: "Current number of live keys by scope",
		},
		[]string{"scope"},
	)

	circuitState := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_rate_limit_circuit_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"scope"},
	)

	sweepsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limit_swept_windows_total",
			Help: "Expired windows removed by sweeps, by scope",
		},
		[]string{"scope"},
	)

	registry.MustRegister(
		requestsTotal,
		checkDuration,
		activeKeys,
		circuitState,
		sweepsTotal,
	)

	return &PrometheusMetrics{
		registry:      registry,
		requestsTotal: requestsTotal,
		checkDuration: checkDuration,
		activeKeys:    activeKeys,
		circuitState:  circuitState,
		sweepsTotal:   sweepsTotal,
	}
}

// Registry returns the Prometheus registry containing all rate limit metrics.
//
// This can be used with promhttp.HandlerFor() to expose metrics:
//
//	metrics := NewPrometheusMetrics()
//	http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordAllowed records a rate limit check that allowed the request.
func (m *PrometheusMetrics) RecordAllowed(scope string) {
	m.requestsTotal.WithLabelValues(scope, "allowed").Inc()
}

// RecordDenied records a rate limit violation (request denied).
func (m *PrometheusMetrics) RecordDenied(scope string) {
	m.requestsTotal.WithLabelValues(scope, "denied").Inc()
}

// RecordFailOpen records a check that allowed the request because the
// limiter itself failed. Alert on this: a sustained nonzero rate means
// the limiter is not limiting.
func (m *PrometheusMetrics) RecordFailOpen(scope string) {
	m.requestsTotal.WithLabelValues(scope, "fail_open").Inc()
}

// RecordCheckDuration records the duration of a rate limit check operation.
//
// If duration exceeds 10ms, this may indicate store problems that could
// trigger the circuit breaker.
func (m *PrometheusMetrics) RecordCheckDuration(scope string, duration time.Duration) {
	m.checkDuration.WithLabelValues(scope).Observe(duration.Seconds())
}

// SetActiveKeys records the current number of live keys in the store.
//
// This metric is useful for monitoring memory usage and alerting when
// approaching capacity limits.
func (m *PrometheusMetrics) SetActiveKeys(scope string, count int) {
	m.activeKeys.WithLabelValues(scope).Set(float64(count))
}

// RecordSweep records the number of expired windows removed by a sweep.
func (m *PrometheusMetrics) RecordSweep(scope string, removed int) {
	m.sweepsTotal.WithLabelValues(scope).Add(float64(removed))
}

// RecordCircuitState records the current state of the circuit breaker.
//
// The state is mapped to a numeric gauge for Prometheus alerting:
//   - 0 = closed
//   - 1 = open
//   - 2 = half-open
func (m *PrometheusMetrics) RecordCircuitState(scope, state string) {
	var stateValue float64
	switch state {
	case "closed":
		stateValue = 0
	case "open":
		stateValue = 1
	case "half-open":
		stateValue = 2
	default:
		// Unknown state, default to closed
		stateValue = 0
	}
	m.circuitState.WithLabelValues(scope).Set(stateValue)
}
