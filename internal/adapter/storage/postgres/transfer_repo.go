package postgres

import (
	"context"
	"errors"
	"fmt"

	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const transferColumns = `id, type, transfer_identifier, approver_user_id, wallet_id, total, creation, confirmed`

// TransferRepo implements ports.TransferRepository.
type TransferRepo struct {
	pool Pool
}

// NewTransferRepo creates a new TransferRepo.
func NewTransferRepo(pool Pool) *TransferRepo {
	return &TransferRepo{pool: pool}
}

// Create inserts a pending top-up.
func (r *TransferRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transfer) error {
	query := `INSERT INTO transfers (` + transferColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := on(r.pool, tx).Exec(ctx, query,
		t.ID, t.Type, t.TransferIdentifier, t.ApproverUserID, t.WalletID, t.Total, t.Creation, t.Confirmed,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByIdentifierForUpdate locks the transfer created for a provider checkout,
// so duplicate callbacks serialize. This MUST be called within a transaction.
func (r *TransferRepo) GetByIdentifierForUpdate(ctx context.Context, tx pgx.Tx, identifier string) (*domain.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE transfer_identifier = $1 FOR UPDATE`

	t, err := scanTransfer(tx.QueryRow(ctx, query, identifier))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer by identifier: %w", err)
	}
	return t, nil
}

// Confirm flags a transfer as confirmed.
func (r *TransferRepo) Confirm(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `UPDATE transfers SET confirmed = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("confirm transfer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transfer not found: %s", id)
	}
	return nil
}

// List fetches transfers matching filter, oldest first.
func (r *TransferRepo) List(ctx context.Context, tx pgx.Tx, filter ports.RecordFilter) ([]domain.Transfer, error) {
	where, args := recordPredicates(filter, "wallet_id")
	query := `SELECT ` + transferColumns + ` FROM transfers` + where + ` ORDER BY creation, id`

	rows, err := on(r.pool, tx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var transfers []domain.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer row: %w", err)
		}
		transfers = append(transfers, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transfer rows: %w", err)
	}
	return transfers, nil
}

func scanTransfer(row pgx.Row) (*domain.Transfer, error) {
	t := &domain.Transfer{}
	err := row.Scan(
		&t.ID, &t.Type, &t.TransferIdentifier, &t.ApproverUserID, &t.WalletID, &t.Total, &t.Creation, &t.Confirmed,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}
