package postgres

import (
	"context"
	"fmt"

	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UsedQRCodeRepo implements ports.UsedQRCodeRepository.
// The primary key on used_qr_codes.id is the double-spend guard.
type UsedQRCodeRepo struct {
	pool Pool
}

// NewUsedQRCodeRepo creates a new UsedQRCodeRepo.
func NewUsedQRCodeRepo(pool Pool) *UsedQRCodeRepo {
	return &UsedQRCodeRepo{pool: pool}
}

// Create records a consumed payload.
func (r *UsedQRCodeRepo) Create(ctx context.Context, tx pgx.Tx, u *domain.UsedQRCode) error {
	query := `INSERT INTO used_qr_codes (id, tot, iat, key, store, store_id, signature, transaction_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := on(r.pool, tx).Exec(ctx, query,
		u.ID, u.Tot, u.Iat, u.Key, u.Store, u.StoreID, u.Signature, u.Type,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.ErrAlreadyUsed()
		}
		return fmt.Errorf("insert used qr code: %w", err)
	}
	return nil
}

// Exists reports whether a payload id was already consumed.
func (r *UsedQRCodeRepo) Exists(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error) {
	var exists bool
	err := on(r.pool, tx).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM used_qr_codes WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check used qr code: %w", err)
	}
	return exists, nil
}

// Delete removes a marker. Administrative cleanup only.
func (r *UsedQRCodeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM used_qr_codes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete used qr code: %w", err)
	}
	return nil
}
