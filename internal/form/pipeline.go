package form

import (
	"context"
	"encoding/json"
	"net/http"

	"solidarity-api/internal/handler/http/respond"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

type payloadKey struct{}

// Payload returns the sanitized and validated form data stored by
// WithMiddleware. It is nil when the request did not pass through a
// validation stage.
func Payload(ctx context.Context) map[string]interface{} {
	data, _ := ctx.Value(payloadKey{}).(map[string]interface{})
	return data
}

// defaultMaxBodyBytes bounds form bodies. The largest accepted field is
// the 5000-char contact message, so 64KB leaves ample headroom.
const defaultMaxBodyBytes = 64 << 10

// Options configures the pipeline stages. Omitted stages are skipped.
type Options struct {
	// RateLimit is applied outermost, before the body is read.
	RateLimit Middleware

	Sanitize SanitizeSchema
	Validate ValidateSchema

	// MaxBodyBytes overrides the request body size limit.
	MaxBodyBytes int64
}

// WithMiddleware composes the stages around a handler in a fixed order:
// rate limit, JSON decode, sanitize, validate, handler. The order is
// load-bearing: abusive traffic is rejected before any parsing work,
// and validation sees normalized data rather than raw input. Each stage
// short-circuits with a JSON error response; the handler only runs with
// a fully validated payload, available via Payload.
func WithMiddleware(opts Options) Middleware {
	return func(next http.Handler) http.Handler {
		handler := next
		if opts.Sanitize != nil || opts.Validate != nil {
			handler = bodyStage(opts, handler)
		}
		if opts.RateLimit != nil {
			handler = opts.RateLimit(handler)
		}
		return handler
	}
}

func bodyStage(opts Options, next http.Handler) http.Handler {
	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBody)

		var record map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			respond.JSON(w, http.StatusBadRequest, map[string]string{
				"error": "invalid JSON body",
			})
			return
		}

		if opts.Sanitize != nil {
			record = Sanitize(record, opts.Sanitize)
		}

		data := record
		if opts.Validate != nil {
			result := Validate(record, opts.Validate)
			if !result.Valid {
				respond.JSON(w, http.StatusBadRequest, map[string]interface{}{
					"error":   "validation failed",
					"details": result.Errors,
				})
				return
			}
			data = result.Data
		}

		ctx := context.WithValue(r.Context(), payloadKey{}, data)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// String reads a string field from a validated payload, returning the
// empty string when absent.
func String(data map[string]interface{}, key string) string {
	s, _ := data[key].(string)
	return s
}

// Strings reads a string-list field from a validated payload.
func Strings(data map[string]interface{}, key string) []string {
	value, ok := data[key]
	if !ok {
		return nil
	}
	items, _ := toStringSlice(value)
	return items
}
