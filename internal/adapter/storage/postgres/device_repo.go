package postgres

import (
	"context"
	"errors"
	"fmt"

	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const deviceColumns = `id, name, wallet_id, public_key, creation, status, activation_token`

// DeviceRepo implements ports.WalletDeviceRepository.
type DeviceRepo struct {
	pool Pool
}

// NewDeviceRepo creates a new DeviceRepo.
func NewDeviceRepo(pool Pool) *DeviceRepo {
	return &DeviceRepo{pool: pool}
}

// Create inserts a device. A duplicate public key is reported as AlreadyExists.
func (r *DeviceRepo) Create(ctx context.Context, tx pgx.Tx, d *domain.WalletDevice) error {
	query := `INSERT INTO wallet_devices (` + deviceColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := on(r.pool, tx).Exec(ctx, query,
		d.ID, d.Name, d.WalletID, d.PublicKey, d.Creation, d.Status, d.ActivationToken,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.ErrAlreadyExists("Wallet device")
		}
		return fmt.Errorf("insert wallet device: %w", err)
	}
	return nil
}

// GetByID fetches a device by id.
func (r *DeviceRepo) GetByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.WalletDevice, error) {
	query := `SELECT ` + deviceColumns + ` FROM wallet_devices WHERE id = $1`
	return scanDevice(on(r.pool, tx).QueryRow(ctx, query, id))
}

// GetByActivationToken fetches the device a mailed activation link points to.
func (r *DeviceRepo) GetByActivationToken(ctx context.Context, tx pgx.Tx, token string) (*domain.WalletDevice, error) {
	query := `SELECT ` + deviceColumns + ` FROM wallet_devices WHERE activation_token = $1`
	return scanDevice(on(r.pool, tx).QueryRow(ctx, query, token))
}

// ListByWallet returns every device registered for a wallet.
func (r *DeviceRepo) ListByWallet(ctx context.Context, tx pgx.Tx, walletID uuid.UUID) ([]domain.WalletDevice, error) {
	query := `SELECT ` + deviceColumns + ` FROM wallet_devices WHERE wallet_id = $1 ORDER BY creation`

	rows, err := on(r.pool, tx).Query(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("list wallet devices: %w", err)
	}
	defer rows.Close()

	var devices []domain.WalletDevice
	for rows.Next() {
		var d domain.WalletDevice
		if err := rows.Scan(&d.ID, &d.Name, &d.WalletID, &d.PublicKey, &d.Creation, &d.Status, &d.ActivationToken); err != nil {
			return nil, fmt.Errorf("scan wallet device row: %w", err)
		}
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet device rows: %w", err)
	}
	return devices, nil
}

// UpdateStatus changes the lifecycle status of a device.
func (r *DeviceRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.WalletDeviceStatus) error {
	tag, err := on(r.pool, tx).Exec(ctx, `UPDATE wallet_devices SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update wallet device status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet device not found: %s", id)
	}
	return nil
}

func scanDevice(row pgx.Row) (*domain.WalletDevice, error) {
	d := &domain.WalletDevice{}
	err := row.Scan(&d.ID, &d.Name, &d.WalletID, &d.PublicKey, &d.Creation, &d.Status, &d.ActivationToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan wallet device: %w", err)
	}
	return d, nil
}
