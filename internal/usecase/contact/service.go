// Package contact provides the use case for contact form submissions.
package contact

import (
	"context"
	"fmt"

	"solidarity-api/internal/domain/entity"
	"solidarity-api/internal/repository"
	"solidarity-api/internal/resilience/retry"
)

// SubmitInput represents a sanitized and validated contact submission.
type SubmitInput struct {
	Name    string
	Email   string
	Subject string
	Message string
	Locale  string
}

// Service handles contact form submissions. Persistence calls run
// through the retry wrapper so transient database failures are not
// surfaced to the visitor.
type Service struct {
	Repo  repository.ContactRepository
	Retry retry.Config
}

// NewService creates a contact service with the database retry policy.
func NewService(repo repository.ContactRepository) *Service {
	return &Service{Repo: repo, Retry: retry.DBConfig()}
}

// Submit stores a contact submission and returns its assigned ID.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (int64, error) {
	sub := &entity.ContactSubmission{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
		Locale:  entity.NormalizeLocale(in.Locale),
	}

	var id int64
	err := retry.Do(ctx, s.Retry, func() error {
		var err error
		id, err = s.Repo.Insert(ctx, sub)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("submit contact: %w", err)
	}
	return id, nil
}
