package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"solidarity-api/internal/handler/http/respond"
	"solidarity-api/pkg/ratelimit"
)

// RateLimit enforces a per-client fixed-window limit on a route group.
// The client key is the IP resolved by the configured IPExtractor;
// unresolvable clients share the UnknownClientKey bucket. Limiter
// failures never block traffic: the limiter fails open internally and
// this middleware just forwards the request.
type RateLimit struct {
	limiter   *ratelimit.Limiter
	extractor IPExtractor

	// Message replaces the default denial body text when set.
	Message string

	// StatusCode replaces 429 on denial when set.
	StatusCode int

	// SkipIf exempts a request from the limiter when it returns true.
	SkipIf func(*http.Request) bool
}

// NewRateLimit creates rate limit middleware around the given limiter.
func NewRateLimit(limiter *ratelimit.Limiter, extractor IPExtractor) *RateLimit {
	return &RateLimit{limiter: limiter, extractor: extractor}
}

// Middleware returns the HTTP middleware handler. Every gated response,
// allowed or denied, carries X-RateLimit-Limit, X-RateLimit-Remaining,
// and X-RateLimit-Reset; denied responses additionally carry
// Retry-After and a JSON error body (429 unless StatusCode overrides).
func (m *RateLimit) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.SkipIf != nil && m.SkipIf(r) {
			next.ServeHTTP(w, r)
			return
		}

		key := ClientKey(m.extractor, r)
		decision := m.limiter.Check(r.Context(), key)

		header := w.Header()
		header.Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		header.Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		if !decision.ResetAt.IsZero() {
			header.Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAtUnix(), 10))
		}

		if decision.IsDenied() {
			header.Set("Retry-After", strconv.FormatInt(decision.RetryAfterSeconds(), 10))
			slog.Warn("rate limit exceeded",
				slog.String("scope", decision.Scope),
				slog.String("key", key),
				slog.String("path", r.URL.Path),
				slog.Int("total_hits", decision.TotalHits),
			)
			status := m.StatusCode
			if status == 0 {
				status = http.StatusTooManyRequests
			}
			message := m.Message
			if message == "" {
				message = "too many requests"
			}
			respond.JSON(w, status, map[string]string{"error": message})
			return
		}

		next.ServeHTTP(w, r)
	})
}
