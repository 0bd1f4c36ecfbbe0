package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Transactor implements ports.DBTransactor. The multi-write flows
// (affiliate enrollment, donation accrual, withdrawal processing) open
// their transaction here and pass the pgx.Tx down to the repositories
// that write inside it.
type Transactor struct {
	pool Pool
}

// NewTransactor creates a Transactor over the connection pool.
func NewTransactor(pool Pool) *Transactor {
	return &Transactor{pool: pool}
}

// Begin opens a transaction. The caller owns Commit and Rollback;
// services defer Rollback so an early return never leaks the tx.
func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return t.pool.Begin(ctx)
}
