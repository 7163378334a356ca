package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new wallet.
func (r *WalletRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, type, balance) VALUES ($1, $2, $3)`

	_, err := on(r.pool, tx).Exec(ctx, query, w.ID, w.Type, w.Balance)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetByID fetches a wallet by its UUID without locking it.
func (r *WalletRepo) GetByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT id, type, balance FROM wallets WHERE id = $1`

	w := &domain.Wallet{}
	err := on(r.pool, tx).QueryRow(ctx, query, id).Scan(&w.ID, &w.Type, &w.Balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet by id: %w", err)
	}
	return w, nil
}

// GetOwner fetches a wallet together with the user or store owning it.
func (r *WalletRepo) GetOwner(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.WalletOwner, error) {
	query := `SELECT w.id, w.type, w.balance, up.user_id, up.display_name, s.id, s.name
		FROM wallets w
		LEFT JOIN user_payments up ON up.wallet_id = w.id
		LEFT JOIN stores s ON s.wallet_id = w.id
		WHERE w.id = $1`

	o := &domain.WalletOwner{}
	var userName, storeName *string
	err := on(r.pool, tx).QueryRow(ctx, query, id).Scan(
		&o.Wallet.ID, &o.Wallet.Type, &o.Wallet.Balance,
		&o.UserID, &userName, &o.StoreID, &storeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet owner: %w", err)
	}
	switch {
	case storeName != nil:
		o.Name = *storeName
	case userName != nil:
		o.Name = *userName
	}
	return o, nil
}

// LockForUpdate locks every wallet in ids with SELECT ... FOR UPDATE, in id order,
// so two transactions locking the same pair never deadlock.
// This MUST be called within a transaction.
func (r *WalletRepo) LockForUpdate(ctx context.Context, tx pgx.Tx, ids ...uuid.UUID) (map[uuid.UUID]*domain.Wallet, error) {
	sorted := make([]uuid.UUID, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })

	query := `SELECT id, type, balance FROM wallets WHERE id = $1 FOR UPDATE`

	locked := make(map[uuid.UUID]*domain.Wallet, len(sorted))
	for _, id := range sorted {
		if _, done := locked[id]; done {
			continue
		}
		w := &domain.Wallet{}
		err := tx.QueryRow(ctx, query, id).Scan(&w.ID, &w.Type, &w.Balance)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("lock wallet %s: %w", id, ports.ErrWalletNotFound)
			}
			return nil, fmt.Errorf("lock wallet %s: %w", id, err)
		}
		locked[id] = w
	}
	return locked, nil
}

// IncrementBalance locks the wallet row and adds delta to its balance.
// The lock is held until the caller's transaction ends. The resulting sign is never checked.
func (r *WalletRepo) IncrementBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta int64) error {
	var locked uuid.UUID
	err := tx.QueryRow(ctx, `SELECT id FROM wallets WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ports.ErrWalletNotFound
		}
		return fmt.Errorf("lock wallet for increment: %w", err)
	}

	_, err = tx.Exec(ctx, `UPDATE wallets SET balance = balance + $1 WHERE id = $2`, delta, id)
	if err != nil {
		return fmt.Errorf("increment wallet balance: %w", err)
	}
	return nil
}

// List returns every wallet.
func (r *WalletRepo) List(ctx context.Context, tx pgx.Tx) ([]domain.Wallet, error) {
	rows, err := on(r.pool, tx).Query(ctx, `SELECT id, type, balance FROM wallets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		var w domain.Wallet
		if err := rows.Scan(&w.ID, &w.Type, &w.Balance); err != nil {
			return nil, fmt.Errorf("scan wallet row: %w", err)
		}
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet rows: %w", err)
	}
	return wallets, nil
}

// Delete removes a wallet. Callers make sure nothing references it anymore.
func (r *WalletRepo) Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM wallets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete wallet: %w", err)
	}
	return nil
}
