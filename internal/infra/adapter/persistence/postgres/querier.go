package postgres

import (
	"context"
	"database/sql"
)

// Querier is the subset of *sql.DB the repositories use. It is also
// satisfied by circuitbreaker.DBCircuitBreaker, so the caller decides
// whether repository traffic goes through the database breaker.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}
