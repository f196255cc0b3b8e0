package repository

import (
	"context"

	"solidarity-api/internal/domain/entity"
)

// PetitionRepository defines the persistence interface for petition
// signatures. Email is the natural key; the store enforces uniqueness
// with a constraint, so Insert is the authoritative duplicate check.
type PetitionRepository interface {
	// FindByEmail retrieves a signature by email address.
	// Returns entity.ErrNotFound if no signature exists for the email.
	FindByEmail(ctx context.Context, email string) (*entity.PetitionSignature, error)

	// Insert stores a new signature and returns its assigned ID.
	// Returns entity.ErrDuplicate if a signature already exists for the
	// email (unique constraint violation).
	Insert(ctx context.Context, sig *entity.PetitionSignature) (int64, error)

	// Count returns the total number of signatures.
	Count(ctx context.Context) (int64, error)
}
