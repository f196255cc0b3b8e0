// Package newsletter provides use cases for newsletter subscriptions:
// subscribing (idempotent per email) and the subscriber counter.
package newsletter

import (
	"context"
	"errors"
	"fmt"

	"solidarity-api/internal/cache"
	"solidarity-api/internal/domain/entity"
	"solidarity-api/internal/repository"
	"solidarity-api/internal/resilience/retry"
)

// countCacheKey is the cache key for the active subscriber counter.
const countCacheKey = "newsletter:active"

// SubscribeInput represents a sanitized and validated subscription
// request. Interests outside the published list are rejected upstream
// by the validation schema.
type SubscribeInput struct {
	Email     string
	FirstName string
	Interests []string
}

// SubscribeOutcome reports whether a subscription was newly created or
// an existing one was refreshed.
type SubscribeOutcome struct {
	Created bool
}

// Service handles newsletter subscriptions. Resubscribing an inactive
// email reactivates the existing row instead of creating a second one;
// an email that is already actively subscribed is rejected.
type Service struct {
	Repo   repository.NewsletterRepository
	Counts *cache.CountCache
	Retry  retry.Config
}

// NewService creates a newsletter service with the database retry
// policy and the default count cache TTL.
func NewService(repo repository.NewsletterRepository) *Service {
	return &Service{
		Repo:   repo,
		Counts: cache.NewCountCache(cache.CountCacheConfig{}),
		Retry:  retry.DBConfig(),
	}
}

// Subscribe stores or refreshes a subscription. The insert is attempted
// first; a unique constraint conflict means the email already has a row.
// An active row returns ErrAlreadySubscribed, an inactive one is updated
// with the new name and interests and reactivated.
func (s *Service) Subscribe(ctx context.Context, in SubscribeInput) (SubscribeOutcome, error) {
	sub := &entity.NewsletterSubscription{
		Email:     in.Email,
		FirstName: in.FirstName,
		Interests: in.Interests,
		Active:    true,
	}

	err := retry.Do(ctx, s.Retry, func() error {
		_, err := s.Repo.Insert(ctx, sub)
		return err
	})
	if err == nil {
		return SubscribeOutcome{Created: true}, nil
	}
	if !errors.Is(err, entity.ErrDuplicate) {
		return SubscribeOutcome{}, fmt.Errorf("subscribe: %w", err)
	}

	var existing *entity.NewsletterSubscription
	err = retry.Do(ctx, s.Retry, func() error {
		var err error
		existing, err = s.Repo.FindByEmail(ctx, in.Email)
		return err
	})
	if err != nil {
		return SubscribeOutcome{}, fmt.Errorf("look up subscription: %w", err)
	}
	if existing.Active {
		return SubscribeOutcome{}, ErrAlreadySubscribed
	}

	err = retry.Do(ctx, s.Retry, func() error {
		return s.Repo.Update(ctx, sub)
	})
	if err != nil {
		return SubscribeOutcome{}, fmt.Errorf("refresh subscription: %w", err)
	}
	return SubscribeOutcome{Created: false}, nil
}

// SubscriberCount returns the number of active subscriptions, served
// from the read-through cache.
func (s *Service) SubscriberCount(ctx context.Context) (int64, error) {
	count, err := s.Counts.Get(ctx, countCacheKey, func(ctx context.Context) (int64, error) {
		var n int64
		err := retry.Do(ctx, s.Retry, func() error {
			var err error
			n, err = s.Repo.CountActive(ctx)
			return err
		})
		return n, err
	})
	if err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}
	return count, nil
}
