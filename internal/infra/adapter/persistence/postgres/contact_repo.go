package postgres

import (
	"context"
	"fmt"

	"solidarity-api/internal/domain/entity"
	"solidarity-api/internal/repository"
)

type ContactRepo struct{ db Querier }

func NewContactRepo(db Querier) repository.ContactRepository {
	return &ContactRepo{db: db}
}

func (repo *ContactRepo) Insert(ctx context.Context, s *entity.ContactSubmission) (int64, error) {
	const query = `
INSERT INTO contact_submissions (name, email, subject, message, locale)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`
	err := repo.db.QueryRowContext(ctx, query,
		s.Name, s.Email, s.Subject, s.Message, s.Locale,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("Insert: %w", err)
	}
	return s.ID, nil
}
