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

const (
	storeColumns  = `id, name, structure_id, wallet_id, creation`
	sellerColumns = `user_id, store_id, can_bank, can_see_history, can_cancel, can_manage_sellers`
)

// StoreRepo implements ports.StoreRepository.
type StoreRepo struct {
	pool Pool
}

// NewStoreRepo creates a new StoreRepo.
func NewStoreRepo(pool Pool) *StoreRepo {
	return &StoreRepo{pool: pool}
}

// Create inserts a store. Its wallet must already exist in the same transaction.
func (r *StoreRepo) Create(ctx context.Context, tx pgx.Tx, s *domain.Store) error {
	query := `INSERT INTO stores (` + storeColumns + `) VALUES ($1, $2, $3, $4, $5)`

	_, err := tx.Exec(ctx, query, s.ID, s.Name, s.StructureID, s.WalletID, s.Creation)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.ErrAlreadyExists("Store with this name")
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// GetByID fetches a store by id.
func (r *StoreRepo) GetByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`
	return scanStore(on(r.pool, tx).QueryRow(ctx, query, id))
}

// GetByWalletID fetches the store owning a wallet.
func (r *StoreRepo) GetByWalletID(ctx context.Context, tx pgx.Tx, walletID uuid.UUID) (*domain.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE wallet_id = $1`
	return scanStore(on(r.pool, tx).QueryRow(ctx, query, walletID))
}

// ListByStructure returns the stores of a structure.
func (r *StoreRepo) ListByStructure(ctx context.Context, tx pgx.Tx, structureID uuid.UUID) ([]domain.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE structure_id = $1 ORDER BY name`

	rows, err := on(r.pool, tx).Query(ctx, query, structureID)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var stores []domain.Store
	for rows.Next() {
		var s domain.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.StructureID, &s.WalletID, &s.Creation); err != nil {
			return nil, fmt.Errorf("scan store row: %w", err)
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate store rows: %w", err)
	}
	return stores, nil
}

// Rename changes a store name.
func (r *StoreRepo) Rename(ctx context.Context, tx pgx.Tx, id uuid.UUID, name string) error {
	_, err := tx.Exec(ctx, `UPDATE stores SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.ErrAlreadyExists("Store with this name")
		}
		return fmt.Errorf("rename store: %w", err)
	}
	return nil
}

// Delete removes a store. Sellers go with it through ON DELETE CASCADE.
func (r *StoreRepo) Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM stores WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	return nil
}

// GetSeller fetches the membership of a user at a store.
func (r *StoreRepo) GetSeller(ctx context.Context, tx pgx.Tx, userID string, storeID uuid.UUID) (*domain.Seller, error) {
	query := `SELECT ` + sellerColumns + ` FROM sellers WHERE user_id = $1 AND store_id = $2`

	s := &domain.Seller{}
	err := on(r.pool, tx).QueryRow(ctx, query, userID, storeID).Scan(
		&s.UserID, &s.StoreID, &s.CanBank, &s.CanSeeHistory, &s.CanCancel, &s.CanManageSellers,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get seller: %w", err)
	}
	return s, nil
}

// ListSellers returns the sellers of a store.
func (r *StoreRepo) ListSellers(ctx context.Context, tx pgx.Tx, storeID uuid.UUID) ([]domain.Seller, error) {
	query := `SELECT ` + sellerColumns + ` FROM sellers WHERE store_id = $1 ORDER BY user_id`
	return r.listSellers(ctx, tx, query, storeID)
}

// ListSellersByUser returns every store membership of a user.
func (r *StoreRepo) ListSellersByUser(ctx context.Context, tx pgx.Tx, userID string) ([]domain.Seller, error) {
	query := `SELECT ` + sellerColumns + ` FROM sellers WHERE user_id = $1 ORDER BY store_id`
	return r.listSellers(ctx, tx, query, userID)
}

// CreateSeller inserts a seller.
func (r *StoreRepo) CreateSeller(ctx context.Context, tx pgx.Tx, s *domain.Seller) error {
	query := `INSERT INTO sellers (` + sellerColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := tx.Exec(ctx, query, s.UserID, s.StoreID, s.CanBank, s.CanSeeHistory, s.CanCancel, s.CanManageSellers)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.ErrAlreadyExists("Seller")
		}
		return fmt.Errorf("insert seller: %w", err)
	}
	return nil
}

// UpdateSeller overwrites the four capabilities of a seller.
func (r *StoreRepo) UpdateSeller(ctx context.Context, tx pgx.Tx, s *domain.Seller) error {
	query := `UPDATE sellers
		SET can_bank = $1, can_see_history = $2, can_cancel = $3, can_manage_sellers = $4
		WHERE user_id = $5 AND store_id = $6`

	_, err := tx.Exec(ctx, query, s.CanBank, s.CanSeeHistory, s.CanCancel, s.CanManageSellers, s.UserID, s.StoreID)
	if err != nil {
		return fmt.Errorf("update seller: %w", err)
	}
	return nil
}

// DeleteSeller removes a user from a store.
func (r *StoreRepo) DeleteSeller(ctx context.Context, tx pgx.Tx, userID string, storeID uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM sellers WHERE user_id = $1 AND store_id = $2`, userID, storeID)
	if err != nil {
		return fmt.Errorf("delete seller: %w", err)
	}
	return nil
}

func (r *StoreRepo) listSellers(ctx context.Context, tx pgx.Tx, query string, arg any) ([]domain.Seller, error) {
	rows, err := on(r.pool, tx).Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}
	defer rows.Close()

	var sellers []domain.Seller
	for rows.Next() {
		var s domain.Seller
		if err := rows.Scan(&s.UserID, &s.StoreID, &s.CanBank, &s.CanSeeHistory, &s.CanCancel, &s.CanManageSellers); err != nil {
			return nil, fmt.Errorf("scan seller row: %w", err)
		}
		sellers = append(sellers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seller rows: %w", err)
	}
	return sellers, nil
}

func scanStore(row pgx.Row) (*domain.Store, error) {
	s := &domain.Store{}
	err := row.Scan(&s.ID, &s.Name, &s.StructureID, &s.WalletID, &s.Creation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan store: %w", err)
	}
	return s, nil
}
