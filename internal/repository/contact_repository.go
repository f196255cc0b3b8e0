package repository

import (
	"context"

	"solidarity-api/internal/domain/entity"
)

// ContactRepository defines the persistence interface for contact form
// submissions. Submissions are append-only.
type ContactRepository interface {
	// Insert stores a new contact submission and returns its assigned ID.
	// Returns an error if the database operation fails.
	Insert(ctx context.Context, s *entity.ContactSubmission) (int64, error)
}
