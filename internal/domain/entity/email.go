package entity

import "regexp"

// maxEmailLength bounds email addresses per practical address limits
// (RFC 5321 path limit of 254 octets).
const maxEmailLength = 254

// emailPattern is a conservative format check: one @, no whitespace,
// at least one dot in the domain. Deliverability is not verified here.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail validates the format and length of an email address.
// Returns a ValidationError if the address is empty, too long, or
// malformed.
func ValidateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if len(email) > maxEmailLength {
		return &ValidationError{Field: "email", Message: "email must not exceed 254 characters"}
	}
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}
