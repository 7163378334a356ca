package postgres

import (
	"context"
	"fmt"

	"mypayment-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// WithdrawalRepo implements ports.WithdrawalRepository.
type WithdrawalRepo struct {
	pool Pool
}

// NewWithdrawalRepo creates a new WithdrawalRepo.
func NewWithdrawalRepo(pool Pool) *WithdrawalRepo {
	return &WithdrawalRepo{pool: pool}
}

// Create appends a withdrawal within a database transaction.
func (r *WithdrawalRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.Withdrawal) error {
	query := `INSERT INTO withdrawals (id, wallet_id, total, creation) VALUES ($1, $2, $3, $4)`

	_, err := tx.Exec(ctx, query, w.ID, w.WalletID, w.Total, w.Creation)
	if err != nil {
		return fmt.Errorf("insert withdrawal: %w", err)
	}
	return nil
}
