package http

import (
	"net/http"
)

// Header and path ceilings, enforced before any routing. Admin tokens
// are compact JWTs well under a kilobyte, and no route nests deeper
// than a video ID, so anything near these limits is not a real client.
const (
	maxAuthHeaderBytes = 8 << 10
	maxPathBytes       = 2 << 10
)

// InputValidation rejects requests with an oversized Authorization
// header (400) or an overlong path (414). Body size is capped
// separately by LimitRequestBody.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Authorization")) > maxAuthHeaderBytes {
				writeReject(w, http.StatusBadRequest, "authorization header too large")
				return
			}
			if len(r.URL.Path) > maxPathBytes {
				writeReject(w, http.StatusRequestURITooLong, "URI too long")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeReject(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
