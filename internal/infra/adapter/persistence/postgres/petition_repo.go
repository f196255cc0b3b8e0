package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"solidarity-api/internal/domain/entity"
	"solidarity-api/internal/repository"
)

type PetitionRepo struct{ db Querier }

func NewPetitionRepo(db Querier) repository.PetitionRepository {
	return &PetitionRepo{db: db}
}

func (repo *PetitionRepo) FindByEmail(ctx context.Context, email string) (*entity.PetitionSignature, error) {
	const query = `
SELECT id, email, first_name, last_name, city, locale, created_at
FROM petition_signatures
WHERE email = $1
LIMIT 1`
	var sig entity.PetitionSignature
	var city sql.NullString
	err := repo.db.QueryRowContext(ctx, query, email).Scan(
		&sig.ID, &sig.Email, &sig.FirstName, &sig.LastName, &city,
		&sig.Locale, &sig.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("FindByEmail: %w", entity.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("FindByEmail: %w", err)
	}
	sig.City = city.String
	return &sig, nil
}

func (repo *PetitionRepo) Insert(ctx context.Context, sig *entity.PetitionSignature) (int64, error) {
	const query = `
INSERT INTO petition_signatures (email, first_name, last_name, city, locale)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`
	err := repo.db.QueryRowContext(ctx, query,
		sig.Email, sig.FirstName, sig.LastName, nullString(sig.City), sig.Locale,
	).Scan(&sig.ID, &sig.CreatedAt)
	if isUniqueViolation(err) {
		return 0, fmt.Errorf("Insert: %w", entity.ErrDuplicate)
	}
	if err != nil {
		return 0, fmt.Errorf("Insert: %w", err)
	}
	return sig.ID, nil
}

func (repo *PetitionRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM petition_signatures`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}
