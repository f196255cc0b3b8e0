package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"solidarity-api/pkg/config"
)

// CORSConfig holds the cross-origin policy for the browser-facing API.
type CORSConfig struct {
	// AllowedOrigins is the exact-match origin allowlist. An empty list
	// means no cross-origin requests are permitted.
	AllowedOrigins []string

	// AllowedMethods and AllowedHeaders are advertised on preflight.
	AllowedMethods []string
	AllowedHeaders []string

	// MaxAge is how long, in seconds, browsers may cache the preflight.
	MaxAge int
}

// LoadCORSConfig reads the CORS policy from environment variables.
//
// Environment variables:
//   - CORS_ALLOWED_ORIGINS: comma-separated origin allowlist
//     (default: http://localhost:3000 for local frontend development)
//   - CORS_MAX_AGE: preflight cache lifetime in seconds (default: 600)
func LoadCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: config.GetEnvStringList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         config.GetEnvInt("CORS_MAX_AGE", 600),
	}
}

func (c CORSConfig) originAllowed(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// CORS returns middleware enforcing the given cross-origin policy.
// Requests from allowed origins get the reflection headers; preflight
// requests are answered directly with 204. Requests from other origins
// pass through without CORS headers, so the browser blocks the read.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			// The response depends on the Origin header either way.
			w.Header().Add("Vary", "Origin")

			if cfg.originAllowed(origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				if cfg.originAllowed(origin) {
					w.Header().Set("Access-Control-Allow-Methods", methods)
					w.Header().Set("Access-Control-Allow-Headers", headers)
					w.Header().Set("Access-Control-Max-Age", maxAge)
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
