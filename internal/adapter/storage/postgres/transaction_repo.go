package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, debited_wallet_id, debited_wallet_device_id, credited_wallet_id,
	transaction_type, seller_user_id, total, creation, status, store_note, qr_code_id`

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts a new transaction within a database transaction.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.DebitedWalletID, t.DebitedWalletDeviceID, t.CreditedWalletID,
		t.Type, t.SellerUserID, t.Total, t.Creation, t.Status, t.StoreNote, t.QRCodeID,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID fetches a transaction by UUID.
func (r *TransactionRepo) GetByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	return scanTransaction(on(r.pool, tx).QueryRow(ctx, query, id))
}

// GetByIDForUpdate fetches and locks a transaction row.
// This MUST be called within a transaction.
func (r *TransactionRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 FOR UPDATE`
	return scanTransaction(tx.QueryRow(ctx, query, id))
}

// UpdateStatus updates a transaction's status within a database transaction.
func (r *TransactionRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.TransactionStatus) error {
	tag, err := tx.Exec(ctx, `UPDATE transactions SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update transaction status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found: %s", id)
	}
	return nil
}

// List fetches transactions matching filter, oldest first.
func (r *TransactionRepo) List(ctx context.Context, tx pgx.Tx, filter ports.TransactionFilter) ([]domain.Transaction, error) {
	where, args := transactionPredicates(filter)
	query := `SELECT ` + transactionColumns + ` FROM transactions` + where + ` ORDER BY creation, id`

	rows, err := on(r.pool, tx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txns, nil
}

func transactionPredicates(filter ports.TransactionFilter) (string, []any) {
	var conditions []string
	var args []any
	argIdx := 1

	if filter.WalletID != nil {
		conditions = append(conditions, fmt.Sprintf("(debited_wallet_id = $%d OR credited_wallet_id = $%d)", argIdx, argIdx))
		args = append(args, *filter.WalletID)
		argIdx++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("creation >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.After != nil {
		conditions = append(conditions, fmt.Sprintf("creation > $%d", argIdx))
		args = append(args, *filter.After)
		argIdx++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("creation <= $%d", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}
	if filter.ExcludeCanceled {
		conditions = append(conditions, fmt.Sprintf("status != $%d", argIdx))
		args = append(args, domain.TransactionStatusCanceled)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	err := row.Scan(
		&t.ID, &t.DebitedWalletID, &t.DebitedWalletDeviceID, &t.CreditedWalletID,
		&t.Type, &t.SellerUserID, &t.Total, &t.Creation, &t.Status, &t.StoreNote, &t.QRCodeID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return t, nil
}
