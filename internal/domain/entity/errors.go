package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found.
	// This is a legitimate negative result, not a transient failure:
	// the retry layer never retries it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate indicates a natural-key conflict (e.g. a second
	// petition signature for the same email).
	ErrDuplicate = errors.New("duplicate entity")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrPoolExhausted indicates that the configured bound on logical
	// database client handles has been reached.
	ErrPoolExhausted = errors.New("connection pool exhausted")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
