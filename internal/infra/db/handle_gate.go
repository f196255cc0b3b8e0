package db

import (
	"fmt"
	"sync"

	"solidarity-api/internal/domain/entity"
)

// HandleGate bounds the number of logical database client handles in
// flight at once. database/sql already pools physical connections; this
// gate caps the handles the application layer holds on top of that
// pool, so a burst of slow requests surfaces as a classified
// entity.ErrPoolExhausted instead of an unbounded queue.
type HandleGate struct {
	mu     sync.Mutex
	active int
	total  int64
	max    int
}

// GateStats is a snapshot of the gate's bookkeeping.
type GateStats struct {
	Active int   // handles currently claimed
	Total  int64 // handles claimed over the process lifetime
	Max    int   // configured bound, 0 when disabled
}

// NewHandleGate creates a gate allowing up to max concurrent handles.
// A max of zero or less disables the gate.
func NewHandleGate(max int) *HandleGate {
	return &HandleGate{max: max}
}

// Acquire claims a handle. Returns entity.ErrPoolExhausted when the
// configured bound is reached; the caller should surface this as a
// server-side failure rather than queueing.
func (g *HandleGate) Acquire() error {
	if g.max <= 0 {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active >= g.max {
		return fmt.Errorf("acquire handle (%d/%d): %w", g.active, g.max, entity.ErrPoolExhausted)
	}

	g.active++
	g.total++
	return nil
}

// Release returns a handle to the gate. Releasing below zero is a
// programming error and panics.
func (g *HandleGate) Release() {
	if g.max <= 0 {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active <= 0 {
		panic("db: HandleGate release without acquire")
	}
	g.active--
}

// Active returns the number of handles currently claimed.
func (g *HandleGate) Active() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// Stats returns a snapshot of the gate's counters.
func (g *HandleGate) Stats() GateStats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return GateStats{Active: g.active, Total: g.total, Max: g.max}
}
