package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"solidarity-api/internal/domain/entity"
	"solidarity-api/internal/repository"
)

type NewsletterRepo struct{ db Querier }

func NewNewsletterRepo(db Querier) repository.NewsletterRepository {
	return &NewsletterRepo{db: db}
}

func (repo *NewsletterRepo) FindByEmail(ctx context.Context, email string) (*entity.NewsletterSubscription, error) {
	const query = `
SELECT id, email, first_name, interests, active, subscribed_at, updated_at
FROM newsletter_subscriptions
WHERE email = $1
LIMIT 1`
	sub, err := repo.scanSubscription(repo.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("FindByEmail: %w", entity.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("FindByEmail: %w", err)
	}
	return sub, nil
}

func (repo *NewsletterRepo) Insert(ctx context.Context, sub *entity.NewsletterSubscription) (int64, error) {
	const query = `
INSERT INTO newsletter_subscriptions (email, first_name, interests, active)
VALUES ($1, $2, $3, $4)
RETURNING id, subscribed_at, updated_at`
	interests, err := marshalInterests(sub.Interests)
	if err != nil {
		return 0, fmt.Errorf("Insert: %w", err)
	}
	err = repo.db.QueryRowContext(ctx, query,
		sub.Email, nullString(sub.FirstName), interests, sub.Active,
	).Scan(&sub.ID, &sub.SubscribedAt, &sub.UpdatedAt)
	if isUniqueViolation(err) {
		return 0, fmt.Errorf("Insert: %w", entity.ErrDuplicate)
	}
	if err != nil {
		return 0, fmt.Errorf("Insert: %w", err)
	}
	return sub.ID, nil
}

func (repo *NewsletterRepo) Update(ctx context.Context, sub *entity.NewsletterSubscription) error {
	const query = `
UPDATE newsletter_subscriptions
SET first_name = $2, interests = $3, active = $4, updated_at = now()
WHERE email = $1`
	interests, err := marshalInterests(sub.Interests)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	result, err := repo.db.ExecContext(ctx, query,
		sub.Email, nullString(sub.FirstName), interests, sub.Active,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *NewsletterRepo) CountActive(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM newsletter_subscriptions WHERE active = TRUE`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountActive: %w", err)
	}
	return count, nil
}

func (repo *NewsletterRepo) scanSubscription(row *sql.Row) (*entity.NewsletterSubscription, error) {
	var sub entity.NewsletterSubscription
	var firstName sql.NullString
	var interestsJSON []byte
	err := row.Scan(
		&sub.ID, &sub.Email, &firstName, &interestsJSON, &sub.Active,
		&sub.SubscribedAt, &sub.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	sub.FirstName = firstName.String
	if len(interestsJSON) > 0 {
		if err := json.Unmarshal(interestsJSON, &sub.Interests); err != nil {
			return nil, fmt.Errorf("unmarshal interests: %w", err)
		}
	}
	return &sub, nil
}

// marshalInterests serializes the interest list for the JSONB column.
// A nil slice is stored as an empty array, not null.
func marshalInterests(interests []string) ([]byte, error) {
	if interests == nil {
		interests = []string{}
	}
	data, err := json.Marshal(interests)
	if err != nil {
		return nil, fmt.Errorf("marshal interests: %w", err)
	}
	return data, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
