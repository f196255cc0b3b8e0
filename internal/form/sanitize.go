// Package form implements the request-processing pipeline shared by the
// public form routes: declarative sanitization and validation schemas,
// and a composer that applies rate limiting, sanitization, and
// validation around a handler in that fixed order.
package form

import (
	"regexp"
	"strings"
)

// CaseFold selects an optional case transform applied during sanitization.
type CaseFold int

const (
	CaseNone CaseFold = iota
	CaseLower
	CaseUpper
)

// htmlTagPattern matches HTML/XML tags for stripping.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// SanitizeRule is a declarative per-field transform. Steps apply in a
// fixed order: trim, case fold, HTML stripping, character whitelist,
// length truncation, custom transform.
type SanitizeRule struct {
	Trim      bool
	Case      CaseFold
	StripHTML bool

	// AllowedChars keeps only the runes matching the pattern.
	// The pattern must match single characters, e.g. `[a-zA-Z0-9@._-]`.
	AllowedChars *regexp.Regexp

	// MaxLength truncates the value to at most this many runes.
	// Zero means no truncation.
	MaxLength int

	// Transform runs last and may operate on any value type.
	Transform func(interface{}) interface{}
}

// SanitizeSchema maps field names to their sanitization rules.
type SanitizeSchema map[string]SanitizeRule

// Sanitize returns a copy of the record with each schema field
// transformed by its rule. It is a pure function: the input record is
// not modified, malformed input never panics, and fields without a rule
// pass through unchanged. Non-string values skip every step except the
// custom transform.
func Sanitize(record map[string]interface{}, schema SanitizeSchema) map[string]interface{} {
	out := make(map[string]interface{}, len(record))
	for key, value := range record {
		rule, ok := schema[key]
		if !ok {
			out[key] = value
			continue
		}
		out[key] = applyRule(value, rule)
	}
	return out
}

func applyRule(value interface{}, rule SanitizeRule) interface{} {
	if s, ok := value.(string); ok {
		value = sanitizeString(s, rule)
	}
	if rule.Transform != nil {
		value = rule.Transform(value)
	}
	return value
}

func sanitizeString(s string, rule SanitizeRule) string {
	if rule.Trim {
		s = strings.TrimSpace(s)
	}
	switch rule.Case {
	case CaseLower:
		s = strings.ToLower(s)
	case CaseUpper:
		s = strings.ToUpper(s)
	}
	if rule.StripHTML {
		s = htmlTagPattern.ReplaceAllString(s, "")
	}
	if rule.AllowedChars != nil {
		var b strings.Builder
		b.Grow(len(s))
		for _, r := range s {
			if rule.AllowedChars.MatchString(string(r)) {
				b.WriteRune(r)
			}
		}
		s = b.String()
	}
	if rule.MaxLength > 0 {
		runes := []rune(s)
		if len(runes) > rule.MaxLength {
			s = string(runes[:rule.MaxLength])
		}
	}
	return s
}
