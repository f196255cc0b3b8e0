package repository

import (
	"context"

	"solidarity-api/internal/domain/entity"
)

// NewsletterRepository defines the persistence interface for newsletter
// subscriptions, keyed by email.
type NewsletterRepository interface {
	// FindByEmail retrieves a subscription by email address.
	// Returns entity.ErrNotFound if no subscription exists.
	FindByEmail(ctx context.Context, email string) (*entity.NewsletterSubscription, error)

	// Insert stores a new subscription and returns its assigned ID.
	// Returns entity.ErrDuplicate if a subscription already exists for
	// the email (unique constraint violation).
	Insert(ctx context.Context, sub *entity.NewsletterSubscription) (int64, error)

	// Update rewrites the mutable fields (first name, interests, active)
	// of an existing subscription identified by email.
	// Returns entity.ErrNotFound if no subscription exists.
	Update(ctx context.Context, sub *entity.NewsletterSubscription) error

	// CountActive returns the number of active subscriptions.
	CountActive(ctx context.Context) (int64, error)
}
