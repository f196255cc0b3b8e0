package ratelimit

import (
	"fmt"
	"time"
)

// Decision represents the result of a rate limit check.
//
// It carries everything the transport layer needs to answer the client:
// the verdict plus the metadata for X-RateLimit-* and Retry-After headers.
type Decision struct {
	// Key is the identifier used for rate limiting (e.g., IP address).
	Key string

	// Scope identifies which limiter made this decision (e.g., "contact").
	Scope string

	// Allowed indicates whether the request should be permitted.
	Allowed bool

	// FailOpen is true when the request was allowed only because the
	// limiter itself failed. Such decisions carry no meaningful counts.
	FailOpen bool

	// Limit is the maximum number of requests allowed in the window.
	Limit int

	// Remaining is the number of requests remaining in the current
	// window. Zero means the limit has been reached.
	Remaining int

	// TotalHits is the total number of hits recorded in the current
	// window, including rejected requests.
	TotalHits int

	// ResetAt is the time when the current window expires.
	ResetAt time.Time

	// RetryAfter is the duration the client should wait before retrying.
	RetryAfter time.Duration
}

// String returns a human-readable representation of the decision.
func (d *Decision) String() string {
	if d.Allowed {
		return fmt.Sprintf(
			"Decision{Allowed: true, Key: %s, Scope: %s, Remaining: %d/%d, ResetAt: %s}",
			d.Key,
			d.Scope,
			d.Remaining,
			d.Limit,
			d.ResetAt.Format(time.RFC3339),
		)
	}

	return fmt.Sprintf(
		"Decision{Allowed: false, Key: %s, Scope: %s, Limit: %d, RetryAfter: %s, ResetAt: %s}",
		d.Key,
		d.Scope,
		d.Limit,
		d.RetryAfter.String(),
		d.ResetAt.Format(time.RFC3339),
	)
}

// IsDenied returns true if the request is denied.
func (d *Decision) IsDenied() bool {
	return !d.Allowed
}

// ResetAtUnix returns the reset time as a Unix timestamp.
//
// This is useful for HTTP headers like X-RateLimit-Reset.
func (d *Decision) ResetAtUnix() int64 {
	return d.ResetAt.Unix()
}

// RetryAfterSeconds returns the retry delay in whole seconds, rounded
// up so a client that honors the header never retries early.
//
// This is useful for HTTP headers like Retry-After.
func (d *Decision) RetryAfterSeconds() int64 {
	if d.RetryAfter <= 0 {
		return 0
	}
	seconds := int64((d.RetryAfter + time.Second - 1) / time.Second)
	return seconds
}

// newAllowedDecision creates a Decision for an allowed request.
func newAllowedDecision(key, scope string, limit, count int, resetAt time.Time) *Decision {
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	return &Decision{
		Key:       key,
		Scope:     scope,
		Allowed:   true,
		Limit:     limit,
		Remaining: remaining,
		TotalHits: count,
		ResetAt:   resetAt,
	}
}

// newDeniedDecision creates a Decision for a denied request.
func newDeniedDecision(key, scope string, limit, count int, resetAt, now time.Time) *Decision {
	retryAfter := resetAt.Sub(now)
	if retryAfter < 0 {
		retryAfter = 0
	}

	return &Decision{
		Key:        key,
		Scope:      scope,
		Allowed:    false,
		Limit:      limit,
		Remaining:  0,
		TotalHits:  count,
		ResetAt:    resetAt,
		RetryAfter: retryAfter,
	}
}

// newFailOpenDecision creates a Decision for a request allowed because
// the limiter failed.
func newFailOpenDecision(key, scope string, limit int) *Decision {
	return &Decision{
		Key:       key,
		Scope:     scope,
		Allowed:   true,
		FailOpen:  true,
		Limit:     limit,
		Remaining: limit,
	}
}
