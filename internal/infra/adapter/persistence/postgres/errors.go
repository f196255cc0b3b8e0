// Package postgres implements the repository interfaces on PostgreSQL
// via database/sql and the pgx stdlib driver.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolationCode is the PostgreSQL error code for unique
// constraint violations.
const uniqueViolationCode = "23505"

// isUniqueViolation reports whether the error is a unique constraint
// violation. The constraint is the authority on duplicates; repos map
// this to entity.ErrDuplicate so callers never race a pre-check.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
