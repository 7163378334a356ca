package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/internal/core/ports"
	"mypayment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// StoreService implements ports.StoreService.
type StoreService struct {
	repos      Repositories
	transactor ports.DBTransactor
	now        func() time.Time
	log        zerolog.Logger
}

// NewStoreService creates a new StoreService.
func NewStoreService(repos Repositories, transactor ports.DBTransactor, log zerolog.Logger) *StoreService {
	return &StoreService{
		repos:      repos,
		transactor: transactor,
		now:        utcNow,
		log:        log,
	}
}

// CreateStore creates a store and its STORE wallet in one transaction. The structure
// manager and every administrator become sellers with all capabilities.
func (s *StoreService) CreateStore(ctx context.Context, structureID uuid.UUID, name string, caller domain.AuthenticatedUser) (*domain.Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation("store name must not be empty")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	structure, err := s.managedStructure(ctx, dbTx, structureID, caller)
	if err != nil {
		return nil, err
	}

	wallet := &domain.Wallet{ID: uuid.New(), Type: domain.WalletTypeStore, Balance: 0}
	if err := s.repos.Wallets.Create(ctx, dbTx, wallet); err != nil {
		return nil, internalErr("create store wallet", err)
	}
	store := &domain.Store{
		ID:          uuid.New(),
		Name:        name,
		StructureID: structure.ID,
		WalletID:    wallet.ID,
		Creation:    s.now(),
	}
	if err := s.repos.Stores.Create(ctx, dbTx, store); err != nil {
		return nil, internalErr("create store", err)
	}

	seen := make(map[string]bool, len(structure.AdministratorIDs)+1)
	for _, userID := range append([]string{structure.ManagerUserID}, structure.AdministratorIDs...) {
		if seen[userID] {
			continue
		}
		seen[userID] = true
		seller := domain.FullSeller(userID, store.ID)
		if err := s.repos.Stores.CreateSeller(ctx, dbTx, &seller); err != nil {
			return nil, internalErr("create owner seller", err)
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("store_id", store.ID.String()).
		Str("structure_id", structure.ID.String()).
		Str("name", store.Name).
		Str("user_id", caller.ID).
		Msg("store created")
	return store, nil
}

// ListUserStores returns every store the caller sells at, with their capabilities.
func (s *StoreService) ListUserStores(ctx context.Context, caller domain.AuthenticatedUser) ([]domain.UserStore, error) {
	sellers, err := s.repos.Stores.ListSellersByUser(ctx, nil, caller.ID)
	if err != nil {
		return nil, internalErr("list user sellers", err)
	}

	stores := make([]domain.UserStore, 0, len(sellers))
	for _, seller := range sellers {
		store, err := s.repos.Stores.GetByID(ctx, nil, seller.StoreID)
		if err != nil {
			return nil, internalErr("get store", err)
		}
		if store == nil {
			continue
		}
		stores = append(stores, domain.UserStore{
			Store:            *store,
			CanBank:          seller.CanBank,
			CanSeeHistory:    seller.CanSeeHistory,
			CanCancel:        seller.CanCancel,
			CanManageSellers: seller.CanManageSellers,
		})
	}
	return stores, nil
}

// RenameStore changes a store name. Structure manager or administrator only.
func (s *StoreService) RenameStore(ctx context.Context, storeID uuid.UUID, name string, caller domain.AuthenticatedUser) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperror.Validation("store name must not be empty")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	store, err := s.getStore(ctx, dbTx, storeID)
	if err != nil {
		return err
	}
	if _, err := s.managedStructure(ctx, dbTx, store.StructureID, caller); err != nil {
		return err
	}
	if err := s.repos.Stores.Rename(ctx, dbTx, store.ID, name); err != nil {
		return internalErr("rename store", err)
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().Str("store_id", store.ID.String()).Str("name", name).Str("user_id", caller.ID).Msg("store renamed")
	return nil
}

// DeleteStore removes a store, its sellers and its wallet. A store whose wallet
// appears in any transaction, transfer or refund cannot be deleted.
func (s *StoreService) DeleteStore(ctx context.Context, storeID uuid.UUID, caller domain.AuthenticatedUser) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	store, err := s.getStore(ctx, dbTx, storeID)
	if err != nil {
		return err
	}
	if _, err := s.managedStructure(ctx, dbTx, store.StructureID, caller); err != nil {
		return err
	}

	// Holding the wallet lock keeps a concurrent scan from landing after the history check.
	if _, err := s.repos.Wallets.LockForUpdate(ctx, dbTx, store.WalletID); err != nil {
		return internalErr("lock store wallet", err)
	}
	used, err := s.walletHasHistory(ctx, dbTx, store.WalletID)
	if err != nil {
		return err
	}
	if used {
		return apperror.ErrInvalidState("Store has items in history and cannot be deleted anymore")
	}

	if err := s.repos.Stores.Delete(ctx, dbTx, store.ID); err != nil {
		return internalErr("delete store", err)
	}
	if err := s.repos.Wallets.Delete(ctx, dbTx, store.WalletID); err != nil {
		return internalErr("delete store wallet", err)
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().Str("store_id", store.ID.String()).Str("user_id", caller.ID).Msg("store deleted")
	return nil
}

func (s *StoreService) walletHasHistory(ctx context.Context, tx pgx.Tx, walletID uuid.UUID) (bool, error) {
	transactions, err := s.repos.Transactions.List(ctx, tx, ports.TransactionFilter{WalletID: &walletID})
	if err != nil {
		return false, internalErr("list store transactions", err)
	}
	transfers, err := s.repos.Transfers.List(ctx, tx, ports.RecordFilter{WalletID: &walletID})
	if err != nil {
		return false, internalErr("list store transfers", err)
	}
	refunds, err := s.repos.Refunds.List(ctx, tx, ports.RecordFilter{WalletID: &walletID})
	if err != nil {
		return false, internalErr("list store refunds", err)
	}
	return len(transactions)+len(transfers)+len(refunds) > 0, nil
}

// AddSeller adds a user to the store. The caller needs can_manage_sellers.
func (s *StoreService) AddSeller(ctx context.Context, storeID uuid.UUID, seller domain.Seller, caller domain.AuthenticatedUser) (*domain.Seller, error) {
	if strings.TrimSpace(seller.UserID) == "" {
		return nil, apperror.Validation("user_id must not be empty")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	store, err := s.sellerManagedStore(ctx, dbTx, storeID, caller)
	if err != nil {
		return nil, err
	}

	seller.StoreID = store.ID
	if err := s.repos.Stores.CreateSeller(ctx, dbTx, &seller); err != nil {
		return nil, internalErr("create seller", err)
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("store_id", store.ID.String()).
		Str("seller_user_id", seller.UserID).
		Str("user_id", caller.ID).
		Msg("seller added")
	return &seller, nil
}

// ListSellers returns the sellers of a store. The caller needs can_manage_sellers.
func (s *StoreService) ListSellers(ctx context.Context, storeID uuid.UUID, caller domain.AuthenticatedUser) ([]domain.Seller, error) {
	store, err := s.sellerManagedStore(ctx, nil, storeID, caller)
	if err != nil {
		return nil, err
	}
	sellers, err := s.repos.Stores.ListSellers(ctx, nil, store.ID)
	if err != nil {
		return nil, internalErr("list sellers", err)
	}
	return sellers, nil
}

// UpdateSeller changes the capabilities of a seller. The structure manager can never
// be edited, and administrators only by the manager.
func (s *StoreService) UpdateSeller(ctx context.Context, storeID uuid.UUID, userID string, update ports.SellerUpdate, caller domain.AuthenticatedUser) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	seller, err := s.editableSeller(ctx, dbTx, storeID, userID, caller, "updated")
	if err != nil {
		return err
	}
	applySellerUpdate(seller, update)
	if err := s.repos.Stores.UpdateSeller(ctx, dbTx, seller); err != nil {
		return internalErr("update seller", err)
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("store_id", storeID.String()).
		Str("seller_user_id", userID).
		Str("user_id", caller.ID).
		Msg("seller updated")
	return nil
}

// RemoveSeller removes a seller from a store, with the same protections as UpdateSeller.
func (s *StoreService) RemoveSeller(ctx context.Context, storeID uuid.UUID, userID string, caller domain.AuthenticatedUser) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	seller, err := s.editableSeller(ctx, dbTx, storeID, userID, caller, "deleted")
	if err != nil {
		return err
	}
	if err := s.repos.Stores.DeleteSeller(ctx, dbTx, seller.UserID, seller.StoreID); err != nil {
		return internalErr("delete seller", err)
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("store_id", storeID.String()).
		Str("seller_user_id", userID).
		Str("user_id", caller.ID).
		Msg("seller removed")
	return nil
}

// AddAdministrator makes userID an administrator of the structure and a full
// seller of each of its stores. Structure manager only.
func (s *StoreService) AddAdministrator(ctx context.Context, structureID uuid.UUID, userID string, caller domain.AuthenticatedUser) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	structure, err := s.ownedStructure(ctx, dbTx, structureID, caller)
	if err != nil {
		return err
	}
	if userID == structure.ManagerUserID {
		return apperror.ErrInvalidState("The structure manager cannot be added as an administrator")
	}
	if err := s.repos.Structures.AddAdministrator(ctx, dbTx, structure.ID, userID); err != nil {
		return internalErr("add structure administrator", err)
	}

	err = s.eachStoreSeller(ctx, dbTx, structure.ID, userID, func(store domain.Store, seller *domain.Seller) error {
		full := domain.FullSeller(userID, store.ID)
		if seller == nil {
			return s.repos.Stores.CreateSeller(ctx, dbTx, &full)
		}
		return s.repos.Stores.UpdateSeller(ctx, dbTx, &full)
	})
	if err != nil {
		return internalErr("grant administrator seller rights", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().Str("structure_id", structure.ID.String()).Str("admin_user_id", userID).Msg("structure administrator added")
	return nil
}

// RemoveAdministrator revokes userID's administrator role. The user stays a seller
// of each store but loses can_cancel and can_manage_sellers. Structure manager only.
func (s *StoreService) RemoveAdministrator(ctx context.Context, structureID uuid.UUID, userID string, caller domain.AuthenticatedUser) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	structure, err := s.ownedStructure(ctx, dbTx, structureID, caller)
	if err != nil {
		return err
	}
	if !structure.IsAdministrator(userID) {
		return apperror.ErrInvalidState("User is not an administrator of this structure")
	}
	if err := s.repos.Structures.RemoveAdministrator(ctx, dbTx, structure.ID, userID); err != nil {
		return internalErr("remove structure administrator", err)
	}

	err = s.eachStoreSeller(ctx, dbTx, structure.ID, userID, func(_ domain.Store, seller *domain.Seller) error {
		if seller == nil {
			return nil
		}
		seller.CanCancel = false
		seller.CanManageSellers = false
		return s.repos.Stores.UpdateSeller(ctx, dbTx, seller)
	})
	if err != nil {
		return internalErr("revoke administrator seller rights", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().Str("structure_id", structure.ID.String()).Str("admin_user_id", userID).Msg("structure administrator removed")
	return nil
}

// eachStoreSeller calls fn for every store of the structure with userID's seller row there, nil if none.
func (s *StoreService) eachStoreSeller(ctx context.Context, tx pgx.Tx, structureID uuid.UUID, userID string, fn func(domain.Store, *domain.Seller) error) error {
	stores, err := s.repos.Stores.ListByStructure(ctx, tx, structureID)
	if err != nil {
		return err
	}
	for _, store := range stores {
		seller, err := s.repos.Stores.GetSeller(ctx, tx, userID, store.ID)
		if err != nil {
			return err
		}
		if err := fn(store, seller); err != nil {
			return err
		}
	}
	return nil
}

func (s *StoreService) getStore(ctx context.Context, tx pgx.Tx, storeID uuid.UUID) (*domain.Store, error) {
	store, err := s.repos.Stores.GetByID(ctx, tx, storeID)
	if err != nil {
		return nil, internalErr("get store", err)
	}
	if store == nil {
		return nil, apperror.ErrNotFound("Store")
	}
	return store, nil
}

func (s *StoreService) getStructure(ctx context.Context, tx pgx.Tx, structureID uuid.UUID) (*domain.Structure, error) {
	structure, err := s.repos.Structures.GetByID(ctx, tx, structureID)
	if err != nil {
		return nil, internalErr("get structure", err)
	}
	if structure == nil {
		return nil, apperror.ErrNotFound("Structure")
	}
	return structure, nil
}

// managedStructure loads a structure the caller manages or administers.
func (s *StoreService) managedStructure(ctx context.Context, tx pgx.Tx, structureID uuid.UUID, caller domain.AuthenticatedUser) (*domain.Structure, error) {
	structure, err := s.getStructure(ctx, tx, structureID)
	if err != nil {
		return nil, err
	}
	if !structure.IsManagerOrAdministrator(caller.ID) {
		return nil, apperror.ErrPermissionDenied("User is not the manager for this structure")
	}
	return structure, nil
}

// ownedStructure loads a structure the caller manages.
func (s *StoreService) ownedStructure(ctx context.Context, tx pgx.Tx, structureID uuid.UUID, caller domain.AuthenticatedUser) (*domain.Structure, error) {
	structure, err := s.getStructure(ctx, tx, structureID)
	if err != nil {
		return nil, err
	}
	if structure.ManagerUserID != caller.ID {
		return nil, apperror.ErrPermissionDenied("User is not the manager for this structure")
	}
	return structure, nil
}

// sellerManagedStore loads a store where the caller holds can_manage_sellers.
func (s *StoreService) sellerManagedStore(ctx context.Context, tx pgx.Tx, storeID uuid.UUID, caller domain.AuthenticatedUser) (*domain.Store, error) {
	store, err := s.getStore(ctx, tx, storeID)
	if err != nil {
		return nil, err
	}
	self, err := s.repos.Stores.GetSeller(ctx, tx, caller.ID, store.ID)
	if err != nil {
		return nil, internalErr("get seller", err)
	}
	if self == nil || !self.CanManageSellers {
		return nil, apperror.ErrPermissionDenied("User does not have the permission to manage sellers")
	}
	return store, nil
}

// editableSeller checks that caller may change userID's seller row and returns it.
func (s *StoreService) editableSeller(ctx context.Context, tx pgx.Tx, storeID uuid.UUID, userID string, caller domain.AuthenticatedUser, verb string) (*domain.Seller, error) {
	store, err := s.sellerManagedStore(ctx, tx, storeID, caller)
	if err != nil {
		return nil, err
	}
	structure, err := s.repos.Structures.GetByID(ctx, tx, store.StructureID)
	if err != nil {
		return nil, internalErr("get structure", err)
	}
	if structure == nil {
		return nil, apperror.ErrInvariantViolation("Store structure does not exist")
	}
	if userID == structure.ManagerUserID ||
		(structure.IsAdministrator(userID) && caller.ID != structure.ManagerUserID) {
		return nil, apperror.ErrInvalidState("User is the manager for this structure and cannot be " + verb + " as a seller")
	}

	seller, err := s.repos.Stores.GetSeller(ctx, tx, userID, store.ID)
	if err != nil {
		return nil, internalErr("get seller", err)
	}
	if seller == nil {
		return nil, apperror.ErrNotFound("Seller")
	}
	return seller, nil
}

func applySellerUpdate(seller *domain.Seller, update ports.SellerUpdate) {
	if update.CanBank != nil {
		seller.CanBank = *update.CanBank
	}
	if update.CanSeeHistory != nil {
		seller.CanSeeHistory = *update.CanSeeHistory
	}
	if update.CanCancel != nil {
		seller.CanCancel = *update.CanCancel
	}
	if update.CanManageSellers != nil {
		seller.CanManageSellers = *update.CanManageSellers
	}
}
