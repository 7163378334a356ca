package ports

import (
	"context"
	"errors"
	"time"

	"mypayment-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrWalletNotFound is returned by IncrementBalance when the wallet row does not exist.
var ErrWalletNotFound = errors.New("wallet not found")

// Read methods accept a nil pgx.Tx to read outside of any transaction, without locks.
// Mutations always run inside the caller's transaction.

// WalletRepository defines persistence operations for wallets.
type WalletRepository interface {
	Create(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet) error
	GetByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error)
	GetOwner(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.WalletOwner, error)
	// LockForUpdate locks the given wallets in id order and returns them keyed by id.
	LockForUpdate(ctx context.Context, tx pgx.Tx, ids ...uuid.UUID) (map[uuid.UUID]*domain.Wallet, error)
	// IncrementBalance locks the wallet row and applies balance += delta. It never checks the sign.
	IncrementBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta int64) error
	List(ctx context.Context, tx pgx.Tx) ([]domain.Wallet, error)
	Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

// WalletDeviceRepository defines persistence operations for signing devices.
type WalletDeviceRepository interface {
	Create(ctx context.Context, tx pgx.Tx, device *domain.WalletDevice) error
	GetByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.WalletDevice, error)
	GetByActivationToken(ctx context.Context, tx pgx.Tx, token string) (*domain.WalletDevice, error)
	ListByWallet(ctx context.Context, tx pgx.Tx, walletID uuid.UUID) ([]domain.WalletDevice, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.WalletDeviceStatus) error
}

// UserPaymentRepository defines persistence operations for registered users.
type UserPaymentRepository interface {
	Create(ctx context.Context, tx pgx.Tx, up *domain.UserPayment) error
	GetByUserID(ctx context.Context, tx pgx.Tx, userID string) (*domain.UserPayment, error)
	GetByWalletID(ctx context.Context, tx pgx.Tx, walletID uuid.UUID) (*domain.UserPayment, error)
	SignTOS(ctx context.Context, tx pgx.Tx, userID string, version int, at time.Time) error
}

// StructureRepository reads structures and manages their administrators.
type StructureRepository interface {
	GetByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Structure, error)
	// AddAdministrator fails with apperror AlreadyExists when userID already administers the structure.
	AddAdministrator(ctx context.Context, tx pgx.Tx, structureID uuid.UUID, userID string) error
	RemoveAdministrator(ctx context.Context, tx pgx.Tx, structureID uuid.UUID, userID string) error
}

// StoreRepository defines persistence operations for stores and their sellers.
type StoreRepository interface {
	// Create fails with apperror AlreadyExists when the name is taken. Store names are global.
	Create(ctx context.Context, tx pgx.Tx, store *domain.Store) error
	GetByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Store, error)
	GetByWalletID(ctx context.Context, tx pgx.Tx, walletID uuid.UUID) (*domain.Store, error)
	ListByStructure(ctx context.Context, tx pgx.Tx, structureID uuid.UUID) ([]domain.Store, error)
	// Rename fails with apperror AlreadyExists when the name is taken.
	Rename(ctx context.Context, tx pgx.Tx, id uuid.UUID, name string) error
	// Delete removes the store and, by cascade, its sellers.
	Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error

	GetSeller(ctx context.Context, tx pgx.Tx, userID string, storeID uuid.UUID) (*domain.Seller, error)
	ListSellers(ctx context.Context, tx pgx.Tx, storeID uuid.UUID) ([]domain.Seller, error)
	ListSellersByUser(ctx context.Context, tx pgx.Tx, userID string) ([]domain.Seller, error)
	// CreateSeller fails with apperror AlreadyExists when the user already sells at the store.
	CreateSeller(ctx context.Context, tx pgx.Tx, seller *domain.Seller) error
	UpdateSeller(ctx context.Context, tx pgx.Tx, seller *domain.Seller) error
	DeleteSeller(ctx context.Context, tx pgx.Tx, userID string, storeID uuid.UUID) error
}

// MembershipRepository answers association-membership questions.
type MembershipRepository interface {
	HasValidMembership(ctx context.Context, tx pgx.Tx, userID string, associationMembershipID uuid.UUID, at time.Time) (bool, error)
}

// TransactionFilter selects transactions. Nil fields add no predicate.
type TransactionFilter struct {
	WalletID        *uuid.UUID // debited or credited
	From            *time.Time // creation >= From
	After           *time.Time // creation > After
	To              *time.Time // creation <= To
	ExcludeCanceled bool
}

// TransactionRepository defines persistence operations for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	GetByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Transaction, error)
	// GetByIDForUpdate locks the transaction row so concurrent reversals serialize.
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Transaction, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.TransactionStatus) error
	List(ctx context.Context, tx pgx.Tx, filter TransactionFilter) ([]domain.Transaction, error)
}

// RecordFilter selects refunds or transfers. Nil fields add no predicate.
type RecordFilter struct {
	WalletID *uuid.UUID
	From     *time.Time
	After    *time.Time // exclusive lower bound
	To       *time.Time
}

// RefundRepository defines persistence operations for refunds.
type RefundRepository interface {
	// Create fails with apperror AlreadyExists when the transaction already has a refund.
	Create(ctx context.Context, tx pgx.Tx, refund *domain.Refund) error
	GetByTransactionID(ctx context.Context, tx pgx.Tx, transactionID uuid.UUID) (*domain.Refund, error)
	List(ctx context.Context, tx pgx.Tx, filter RecordFilter) ([]domain.Refund, error)
}

// TransferRepository defines persistence operations for top-ups.
type TransferRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transfer *domain.Transfer) error
	GetByIdentifierForUpdate(ctx context.Context, tx pgx.Tx, identifier string) (*domain.Transfer, error)
	Confirm(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	List(ctx context.Context, tx pgx.Tx, filter RecordFilter) ([]domain.Transfer, error)
}

// InvoiceListParams filters invoices. Empty StructureIDs means all structures.
type InvoiceListParams struct {
	StructureIDs []uuid.UUID
	From         *time.Time
	To           *time.Time
	Page         int
	PageSize     int
}

// InvoiceRepository defines persistence operations for invoices and their details.
type InvoiceRepository interface {
	Create(ctx context.Context, tx pgx.Tx, invoice *domain.Invoice) error
	GetByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Invoice, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Invoice, error)
	GetLastByStructure(ctx context.Context, tx pgx.Tx, structureID uuid.UUID) (*domain.Invoice, error)
	// SumUnreceivedByStore totals InvoiceDetail rows of unreceived invoices for a store.
	SumUnreceivedByStore(ctx context.Context, tx pgx.Tx, storeID uuid.UUID) (int64, error)
	List(ctx context.Context, tx pgx.Tx, params InvoiceListParams) ([]domain.Invoice, error)
	UpdatePaid(ctx context.Context, tx pgx.Tx, id uuid.UUID, paid bool) error
	MarkReceived(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

// WithdrawalRepository appends withdrawals.
type WithdrawalRepository interface {
	Create(ctx context.Context, tx pgx.Tx, withdrawal *domain.Withdrawal) error
}

// UsedQRCodeRepository is the durable idempotency registry.
type UsedQRCodeRepository interface {
	// Create inserts the marker; a primary-key conflict yields apperror AlreadyUsed.
	Create(ctx context.Context, tx pgx.Tx, used *domain.UsedQRCode) error
	Exists(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error)
	// Delete is administrative cleanup only.
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuditRepository persists ledger audit lines.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	LastChain(ctx context.Context) (string, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	// BeginSnapshot starts a repeatable-read transaction and returns the database clock
	// fixed for its whole duration.
	BeginSnapshot(ctx context.Context) (pgx.Tx, time.Time, error)
}
