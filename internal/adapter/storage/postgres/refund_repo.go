package postgres

import (
	"context"
	"errors"
	"fmt"

	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/internal/core/ports"
	"mypayment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const refundColumns = `id, transaction_id, debited_wallet_id, credited_wallet_id, total, creation, seller_user_id`

// RefundRepo implements ports.RefundRepository.
type RefundRepo struct {
	pool Pool
}

// NewRefundRepo creates a new RefundRepo.
func NewRefundRepo(pool Pool) *RefundRepo {
	return &RefundRepo{pool: pool}
}

// Create inserts a refund. refunds.transaction_id is unique, so a second refund
// of the same transaction fails with AlreadyExists.
func (r *RefundRepo) Create(ctx context.Context, tx pgx.Tx, ref *domain.Refund) error {
	query := `INSERT INTO refunds (` + refundColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := tx.Exec(ctx, query,
		ref.ID, ref.TransactionID, ref.DebitedWalletID, ref.CreditedWalletID,
		ref.Total, ref.Creation, ref.SellerUserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.ErrAlreadyExists("Refund")
		}
		return fmt.Errorf("insert refund: %w", err)
	}
	return nil
}

// GetByTransactionID fetches the refund of a transaction, if any.
func (r *RefundRepo) GetByTransactionID(ctx context.Context, tx pgx.Tx, transactionID uuid.UUID) (*domain.Refund, error) {
	query := `SELECT ` + refundColumns + ` FROM refunds WHERE transaction_id = $1`

	ref, err := scanRefund(on(r.pool, tx).QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get refund by transaction: %w", err)
	}
	return ref, nil
}

// List fetches refunds matching filter, oldest first.
func (r *RefundRepo) List(ctx context.Context, tx pgx.Tx, filter ports.RecordFilter) ([]domain.Refund, error) {
	where, args := recordPredicates(filter, "debited_wallet_id", "credited_wallet_id")
	query := `SELECT ` + refundColumns + ` FROM refunds` + where + ` ORDER BY creation, id`

	rows, err := on(r.pool, tx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list refunds: %w", err)
	}
	defer rows.Close()

	var refunds []domain.Refund
	for rows.Next() {
		ref, err := scanRefund(rows)
		if err != nil {
			return nil, fmt.Errorf("scan refund row: %w", err)
		}
		refunds = append(refunds, *ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate refund rows: %w", err)
	}
	return refunds, nil
}

func scanRefund(row pgx.Row) (*domain.Refund, error) {
	ref := &domain.Refund{}
	err := row.Scan(
		&ref.ID, &ref.TransactionID, &ref.DebitedWalletID, &ref.CreditedWalletID,
		&ref.Total, &ref.Creation, &ref.SellerUserID,
	)
	if err != nil {
		return nil, err
	}
	return ref, nil
}
