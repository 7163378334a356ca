package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userPaymentColumns = `user_id, display_name, wallet_id, accepted_tos_signature, accepted_tos_version`

// UserPaymentRepo implements ports.UserPaymentRepository.
type UserPaymentRepo struct {
	pool Pool
}

// NewUserPaymentRepo creates a new UserPaymentRepo.
func NewUserPaymentRepo(pool Pool) *UserPaymentRepo {
	return &UserPaymentRepo{pool: pool}
}

// Create registers a user for the ledger.
func (r *UserPaymentRepo) Create(ctx context.Context, tx pgx.Tx, up *domain.UserPayment) error {
	query := `INSERT INTO user_payments (` + userPaymentColumns + `) VALUES ($1, $2, $3, $4, $5)`

	_, err := on(r.pool, tx).Exec(ctx, query,
		up.UserID, up.DisplayName, up.WalletID, up.AcceptedTOSSignature, up.AcceptedTOSVersion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.ErrAlreadyExists("User payment")
		}
		return fmt.Errorf("insert user payment: %w", err)
	}
	return nil
}

// GetByUserID fetches the registration of an external user.
func (r *UserPaymentRepo) GetByUserID(ctx context.Context, tx pgx.Tx, userID string) (*domain.UserPayment, error) {
	query := `SELECT ` + userPaymentColumns + ` FROM user_payments WHERE user_id = $1`
	return scanUserPayment(on(r.pool, tx).QueryRow(ctx, query, userID))
}

// GetByWalletID fetches the registration owning a wallet.
func (r *UserPaymentRepo) GetByWalletID(ctx context.Context, tx pgx.Tx, walletID uuid.UUID) (*domain.UserPayment, error) {
	query := `SELECT ` + userPaymentColumns + ` FROM user_payments WHERE wallet_id = $1`
	return scanUserPayment(on(r.pool, tx).QueryRow(ctx, query, walletID))
}

// SignTOS records the acceptance of a terms-of-service version.
func (r *UserPaymentRepo) SignTOS(ctx context.Context, tx pgx.Tx, userID string, version int, at time.Time) error {
	query := `UPDATE user_payments SET accepted_tos_version = $1, accepted_tos_signature = $2 WHERE user_id = $3`

	tag, err := on(r.pool, tx).Exec(ctx, query, version, at, userID)
	if err != nil {
		return fmt.Errorf("sign tos: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user payment not found: %s", userID)
	}
	return nil
}

func scanUserPayment(row pgx.Row) (*domain.UserPayment, error) {
	up := &domain.UserPayment{}
	err := row.Scan(&up.UserID, &up.DisplayName, &up.WalletID, &up.AcceptedTOSSignature, &up.AcceptedTOSVersion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user payment: %w", err)
	}
	return up, nil
}
