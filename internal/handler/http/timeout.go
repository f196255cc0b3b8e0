package http

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// DefaultRequestTimeout bounds a request end to end. It leaves room
// for the database retry policy to exhaust its backoff before the
// client sees a 504.
const DefaultRequestTimeout = 30 * time.Second

// Timeout aborts requests that outlive the given duration with a 504
// and cancels the request context, so in-flight database calls and
// retry sleeps stop early. The handler goroutine keeps running until
// it observes the cancellation; anything it writes after the abort is
// discarded.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()

			gw := &guardedWriter{ResponseWriter: w}
			done := make(chan struct{})
			go func() {
				defer close(done)
				next.ServeHTTP(gw, r.WithContext(ctx))
			}()

			select {
			case <-done:
			case <-ctx.Done():
				gw.abort()
			}
		})
	}
}

// guardedWriter serializes access between the handler goroutine and
// the timeout path, so exactly one of them produces the response.
type guardedWriter struct {
	http.ResponseWriter

	mu      sync.Mutex
	aborted bool
	wrote   bool
}

func (g *guardedWriter) WriteHeader(code int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.aborted || g.wrote {
		return
	}
	g.wrote = true
	g.ResponseWriter.WriteHeader(code)
}

func (g *guardedWriter) Write(p []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.aborted {
		return 0, http.ErrHandlerTimeout
	}
	if !g.wrote {
		g.wrote = true
		g.ResponseWriter.WriteHeader(http.StatusOK)
	}
	return g.ResponseWriter.Write(p)
}

// abort claims the response for the timeout path. The 504 is written
// only when the handler has not produced output yet.
func (g *guardedWriter) abort() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.aborted = true
	if g.wrote {
		return
	}
	g.ResponseWriter.Header().Set("Content-Type", "application/json")
	g.ResponseWriter.WriteHeader(http.StatusGatewayTimeout)
	_, _ = g.ResponseWriter.Write([]byte(`{"error":"request timeout"}`))
}
