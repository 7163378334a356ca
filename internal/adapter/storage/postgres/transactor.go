package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Transactor implements ports.DBTransactor using pgxpool.Pool.
type Transactor struct {
	pool Pool
}

// NewTransactor creates a new Transactor wrapping the connection pool.
func NewTransactor(pool Pool) *Transactor {
	return &Transactor{pool: pool}
}

// Begin starts a new database transaction.
func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return t.pool.Begin(ctx)
}

// BeginSnapshot starts a repeatable-read transaction. The returned time is the
// database's now(), which stays constant for the whole transaction.
func (t *Transactor) BeginSnapshot(ctx context.Context) (pgx.Tx, time.Time, error) {
	tx, err := t.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadWrite})
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("begin snapshot: %w", err)
	}

	var now time.Time
	if err := tx.QueryRow(ctx, "SELECT now()").Scan(&now); err != nil {
		_ = tx.Rollback(ctx)
		return nil, time.Time{}, fmt.Errorf("read snapshot clock: %w", err)
	}
	return tx, now.UTC(), nil
}
