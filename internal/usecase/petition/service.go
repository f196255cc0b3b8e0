package petition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"solidarity-api/internal/cache"
	"solidarity-api/internal/domain/entity"
	"solidarity-api/internal/repository"
	"solidarity-api/internal/resilience/retry"
	"solidarity-api/pkg/ratelimit"
)

// countCacheKey is the cache key for the public signature counter.
const countCacheKey = "petition:count"

// SignInput represents a sanitized and validated petition signature.
type SignInput struct {
	Email     string
	FirstName string
	LastName  string
	City      string
	Locale    string
}

// Service handles petition signatures. The signature counter is served
// through a short-TTL read-through cache; duplicate detection relies on
// the unique constraint on email, surfaced as ErrAlreadySigned.
type Service struct {
	Repo   repository.PetitionRepository
	Counts *cache.CountCache
	Retry  retry.Config

	mu          sync.Mutex
	lastUpdated time.Time
	clock       ratelimit.Clock
}

// NewService creates a petition service with the database retry policy
// and the default count cache TTL.
func NewService(repo repository.PetitionRepository) *Service {
	return &Service{
		Repo:   repo,
		Counts: cache.NewCountCache(cache.CountCacheConfig{}),
		Retry:  retry.DBConfig(),
		clock:  &ratelimit.SystemClock{},
	}
}

// Sign stores a new signature and returns the updated total count.
// Returns ErrAlreadySigned when a signature exists for the email.
//
// The email lookup in front is advisory: it answers the common repeat
// submission without burning an insert, but the unique constraint is
// what actually prevents a racing double sign.
func (s *Service) Sign(ctx context.Context, in SignInput) (int64, error) {
	err := retry.Do(ctx, s.Retry, func() error {
		_, err := s.Repo.FindByEmail(ctx, in.Email)
		return err
	})
	if err == nil {
		return 0, ErrAlreadySigned
	}
	if !errors.Is(err, entity.ErrNotFound) {
		return 0, fmt.Errorf("check existing signature: %w", err)
	}

	sig := &entity.PetitionSignature{
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		City:      in.City,
		Locale:    entity.NormalizeLocale(in.Locale),
	}

	err = retry.Do(ctx, s.Retry, func() error {
		_, err := s.Repo.Insert(ctx, sig)
		return err
	})
	if errors.Is(err, entity.ErrDuplicate) {
		return 0, ErrAlreadySigned
	}
	if err != nil {
		return 0, fmt.Errorf("sign petition: %w", err)
	}

	// The response advertises the new total, so the cached counter is
	// refreshed rather than served stale. The signature is stored at
	// this point, so a failing recount degrades to an estimate instead
	// of failing the request.
	prev, _ := s.Counts.Peek(countCacheKey)
	s.Counts.Invalidate(countCacheKey)
	total, err := s.Count(ctx)
	if err != nil {
		slog.Warn("signature stored but count refresh failed",
			slog.String("email", in.Email),
			slog.Any("error", err))
		return prev + 1, nil
	}
	return total, nil
}

// Count returns the total number of signatures, served from the
// read-through cache.
func (s *Service) Count(ctx context.Context) (int64, error) {
	count, err := s.Counts.Get(ctx, countCacheKey, func(ctx context.Context) (int64, error) {
		var n int64
		err := retry.Do(ctx, s.Retry, func() error {
			var err error
			n, err = s.Repo.Count(ctx)
			return err
		})
		if err != nil {
			return 0, err
		}
		s.mu.Lock()
		s.lastUpdated = s.clock.Now()
		s.mu.Unlock()
		return n, nil
	})
	if err != nil {
		return 0, fmt.Errorf("count signatures: %w", err)
	}
	return count, nil
}

// LastUpdated reports when the signature counter was last recomputed
// from the database. The zero time means no count has been loaded yet.
func (s *Service) LastUpdated() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUpdated
}
