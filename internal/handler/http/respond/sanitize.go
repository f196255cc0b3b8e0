package respond

import (
	"regexp"
)

var (
	// Credentials embedded in a connection string DSN
	dbPasswordPattern = regexp.MustCompile(`://([^:]+):([^@]+)@`)

	// Bearer tokens leaked into error messages
	bearerTokenPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._\-]+`)
)

// SanitizeError returns the error message with credentials masked, so
// database passwords and tokens never reach the logs verbatim.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = bearerTokenPattern.ReplaceAllString(msg, "Bearer ****")
	return msg
}
