package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
var pathPatterns = []*PathPattern{
	// Video catalog routes with IDs
	{Pattern: regexp.MustCompile(`^/api/videos/\d+$`), Template: "/api/videos/:id"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths with IDs (e.g., /api/videos/123) to template format (e.g., /api/videos/:id).
// Static paths remain unchanged.
//
// Examples:
//
//	NormalizePath("/api/videos/123")        // "/api/videos/:id"
//	NormalizePath("/api/videos")            // "/api/videos" (unchanged)
//	NormalizePath("/api/petition")          // "/api/petition" (unchanged)
//	NormalizePath("/health")                // "/health" (unchanged)
//	NormalizePath("/auth/token")            // "/auth/token" (unchanged)
//
// Query parameters and trailing slashes are handled:
//
//	NormalizePath("/api/videos/123?x=1")    // "/api/videos/:id"
//	NormalizePath("/api/videos/123/")       // "/api/videos/:id"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	// No match found, return original path. Static paths like /health,
	// /metrics and /auth/token pass through unchanged.
	return path
}
