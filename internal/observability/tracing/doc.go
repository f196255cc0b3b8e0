// Package tracing provides OpenTelemetry tracing integration.
//
// The HTTP middleware extracts W3C Trace Context headers from incoming
// requests, opens a server span per request, and echoes the trace ID in
// the X-Trace-Id response header so clients can correlate failures with
// server-side traces.
//
// Example usage:
//
//	import "solidarity-api/internal/observability/tracing"
//
//	mux := http.NewServeMux()
//	handler := tracing.Middleware(mux)
//
//	func processRequest(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "petition.sign")
//	    defer span.End()
//	    // ... process request ...
//	}
package tracing
