package postgres

import (
	"context"
	"errors"
	"fmt"

	"mypayment-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// AuditRepo implements ports.AuditRepository.
type AuditRepo struct {
	pool Pool
}

// NewAuditRepo creates a PostgreSQL-backed AuditRepository.
func NewAuditRepo(pool Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

// Create appends an audit line. seq is assigned by the database.
func (r *AuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_logs (id, action, line, chain, created_at) VALUES ($1, $2, $3, $4, $5)`,
		log.ID, log.Action, log.Line, log.Chain, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// LastChain returns the chain value of the latest persisted line, or "" when empty.
func (r *AuditRepo) LastChain(ctx context.Context) (string, error) {
	var chain string
	err := r.pool.QueryRow(ctx, `SELECT chain FROM audit_logs ORDER BY seq DESC LIMIT 1`).Scan(&chain)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("read last audit chain: %w", err)
	}
	return chain, nil
}
