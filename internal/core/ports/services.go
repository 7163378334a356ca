package ports

import (
	"context"
	"time"

	"mypayment-ledger/internal/core/domain"

	"github.com/google/uuid"
)

// TokenService validates bearer tokens issued by the host application.
type TokenService interface {
	Validate(tokenString string) (*domain.AuthenticatedUser, error)
}

// QRVerifier authenticates a QR payload against a device public key.
type QRVerifier interface {
	Verify(ctx context.Context, payload domain.QRPayload, signature string, publicKey []byte) bool
}

// WebhookSigner signs and verifies provider callbacks with a shared secret.
type WebhookSigner interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
}

// UsedQRCodeCache is the Redis fast path in front of the durable registry.
type UsedQRCodeCache interface {
	IsUsed(ctx context.Context, id uuid.UUID) (bool, error)
	MarkUsed(ctx context.Context, id uuid.UUID, ttl time.Duration) error
}

// RateLimitStore counts requests per key in fixed windows.
type RateLimitStore interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp
}

// Message is a user-facing notification.
type Message struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Action  string `json:"action_module"`
}

// Notifier delivers best-effort notifications to users.
type Notifier interface {
	NotifyUser(ctx context.Context, userID string, msg Message) error
}

// CheckoutRequest asks the external provider for a hosted checkout.
type CheckoutRequest struct {
	Amount      int64
	Name        string
	RedirectURL string
	PayerUserID string
	PayerName   string
}

// Checkout is a hosted checkout created by the provider.
type Checkout struct {
	ID  string
	URL string
}

// CheckoutProvider is the external top-up payment provider.
type CheckoutProvider interface {
	InitCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error)
}

// AuditService records tamper-evident ledger audit lines.
type AuditService interface {
	Record(ctx context.Context, action domain.AuditAction, line string)
}

// --- Service Ports (Business Logic) ---

// ScanRequest is a seller consuming a user's QR code at a store.
type ScanRequest struct {
	StoreID uuid.UUID
	Seller  domain.AuthenticatedUser
	Info    domain.ScanInfo
}

// RefundRequest reverses all (Amount nil) or part of a transaction.
type RefundRequest struct {
	TransactionID uuid.UUID
	Caller        domain.AuthenticatedUser
	Amount        *int64
}

// TransferEngine orchestrates scan, refund and cancel.
type TransferEngine interface {
	CheckScan(ctx context.Context, req ScanRequest) (bool, error)
	Scan(ctx context.Context, req ScanRequest) (*domain.Transaction, error)
	Refund(ctx context.Context, req RefundRequest) (*domain.Refund, error)
	Cancel(ctx context.Context, transactionID uuid.UUID, caller domain.AuthenticatedUser) error
}

// TopupRequest starts a top-up through the checkout provider.
type TopupRequest struct {
	User        domain.AuthenticatedUser
	Amount      int64
	RedirectURL string
}

// CheckoutConfirmation is the provider's asynchronous completion notice.
type CheckoutConfirmation struct {
	CheckoutID string `json:"checkout_id"`
	PaidAmount int64  `json:"paid_amount"`
}

// TopupService converts provider checkouts into wallet credits.
type TopupService interface {
	InitTopup(ctx context.Context, req TopupRequest) (*Checkout, error)
	ConfirmCheckout(ctx context.Context, confirmation CheckoutConfirmation) (*domain.Transfer, error)
	IsTrustedRedirect(redirectURL string) bool
}

// InvoiceService batches store activity into invoices.
type InvoiceService interface {
	Create(ctx context.Context, structureID uuid.UUID, caller domain.AuthenticatedUser) (*domain.Invoice, error)
	List(ctx context.Context, caller domain.AuthenticatedUser, params InvoiceListParams) ([]domain.Invoice, error)
	ListByStructure(ctx context.Context, structureID uuid.UUID, caller domain.AuthenticatedUser, params InvoiceListParams) ([]domain.Invoice, error)
	MarkPaid(ctx context.Context, invoiceID uuid.UUID, paid bool, caller domain.AuthenticatedUser) error
	MarkReceived(ctx context.Context, invoiceID uuid.UUID, caller domain.AuthenticatedUser) error
	Delete(ctx context.Context, invoiceID uuid.UUID, caller domain.AuthenticatedUser) error
	Get(ctx context.Context, invoiceID uuid.UUID, caller domain.AuthenticatedUser) (*domain.Invoice, error)
}

// IntegrityService exposes the auditor snapshot and incremental feed.
type IntegrityService interface {
	Snapshot(ctx context.Context, initialisation bool, lastChecked time.Time) (*domain.IntegritySnapshot, error)
}

// TOSInfo describes the terms-of-service state of a user.
type TOSInfo struct {
	AcceptedTOSVersion int   `json:"accepted_tos_version"`
	LatestTOSVersion   int   `json:"latest_tos_version"`
	MaxWalletBalance   int64 `json:"max_wallet_balance"`
}

// AccountService manages registration, TOS and signing devices.
type AccountService interface {
	Register(ctx context.Context, user domain.AuthenticatedUser) (*domain.UserPayment, error)
	GetTOS(ctx context.Context, user domain.AuthenticatedUser) (*TOSInfo, error)
	SignTOS(ctx context.Context, user domain.AuthenticatedUser, version int) error
	GetWallet(ctx context.Context, user domain.AuthenticatedUser) (*domain.Wallet, error)
	CreateDevice(ctx context.Context, user domain.AuthenticatedUser, name string, publicKey string) (*domain.WalletDevice, error)
	ListDevices(ctx context.Context, user domain.AuthenticatedUser) ([]domain.WalletDevice, error)
	GetDevice(ctx context.Context, user domain.AuthenticatedUser, deviceID uuid.UUID) (*domain.WalletDevice, error)
	ActivateDevice(ctx context.Context, token string) error
	RevokeDevice(ctx context.Context, user domain.AuthenticatedUser, deviceID uuid.UUID) error
}

// SellerUpdate changes the given capabilities. Nil fields are left as they are.
type SellerUpdate struct {
	CanBank          *bool `json:"can_bank"`
	CanSeeHistory    *bool `json:"can_see_history"`
	CanCancel        *bool `json:"can_cancel"`
	CanManageSellers *bool `json:"can_manage_sellers"`
}

// StoreService manages stores, their sellers and structure administrators.
type StoreService interface {
	CreateStore(ctx context.Context, structureID uuid.UUID, name string, caller domain.AuthenticatedUser) (*domain.Store, error)
	ListUserStores(ctx context.Context, caller domain.AuthenticatedUser) ([]domain.UserStore, error)
	RenameStore(ctx context.Context, storeID uuid.UUID, name string, caller domain.AuthenticatedUser) error
	DeleteStore(ctx context.Context, storeID uuid.UUID, caller domain.AuthenticatedUser) error

	AddSeller(ctx context.Context, storeID uuid.UUID, seller domain.Seller, caller domain.AuthenticatedUser) (*domain.Seller, error)
	ListSellers(ctx context.Context, storeID uuid.UUID, caller domain.AuthenticatedUser) ([]domain.Seller, error)
	UpdateSeller(ctx context.Context, storeID uuid.UUID, userID string, update SellerUpdate, caller domain.AuthenticatedUser) error
	RemoveSeller(ctx context.Context, storeID uuid.UUID, userID string, caller domain.AuthenticatedUser) error

	AddAdministrator(ctx context.Context, structureID uuid.UUID, userID string, caller domain.AuthenticatedUser) error
	RemoveAdministrator(ctx context.Context, structureID uuid.UUID, userID string, caller domain.AuthenticatedUser) error
}

// HistoryService renders wallet histories.
type HistoryService interface {
	UserHistory(ctx context.Context, user domain.AuthenticatedUser, from, to *time.Time) ([]domain.HistoryEntry, error)
	StoreHistory(ctx context.Context, storeID uuid.UUID, user domain.AuthenticatedUser, from, to *time.Time) ([]domain.StoreHistoryEntry, error)
}
