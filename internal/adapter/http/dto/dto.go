package dto

import (
	"time"

	"github.com/google/uuid"
)

// SignTOSRequest is the request body for accepting the terms of service.
type SignTOSRequest struct {
	AcceptedTOSVersion int `json:"accepted_tos_version" binding:"required,gt=0"`
}

// CreateDeviceRequest registers a new signing device.
type CreateDeviceRequest struct {
	Name             string `json:"name" binding:"required,min=1,max=100"`
	Ed25519PublicKey string `json:"ed25519_public_key" binding:"required,ed25519_key"`
}

// ScanRequest is a QR code as read by a seller's terminal. Only the id is
// required here: every other check happens after the code is consumed.
type ScanRequest struct {
	ID               uuid.UUID `json:"id" binding:"required"`
	Tot              int64     `json:"tot"`
	Iat              time.Time `json:"iat"`
	Key              uuid.UUID `json:"key"`
	Store            bool      `json:"store"`
	Signature        string    `json:"signature"`
	BypassMembership bool      `json:"bypass_membership"`
}

// CheckScanResponse tells whether a QR code can be scanned by the store.
type CheckScanResponse struct {
	Success bool `json:"success"`
}

// RefundRequest reverses all or part of a transaction.
type RefundRequest struct {
	CompleteRefund bool   `json:"complete_refund"`
	Amount         *int64 `json:"amount,omitempty" binding:"omitempty,gt=0"`
}

// TopupRequest starts a wallet top-up.
type TopupRequest struct {
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	RedirectURL string `json:"redirect_url" binding:"required,safe_url"`
}

// TopupResponse carries the hosted checkout URL the user is sent to.
type TopupResponse struct {
	URL string `json:"url"`
}

// CheckoutCallbackRequest is the provider's signed completion notice.
type CheckoutCallbackRequest struct {
	CheckoutID string `json:"checkout_id" binding:"required,safe_id"`
	PaidAmount int64  `json:"paid_amount" binding:"required,gt=0"`
}

// TransferRedirectQuery is where the provider sends the user back. The other
// fields are provider outcome parameters forwarded to URL.
type TransferRedirectQuery struct {
	URL              string `form:"url" binding:"required"`
	CheckoutIntentID string `form:"checkoutIntentId"`
	Code             string `form:"code"`
	OrderID          string `form:"orderId"`
	Error            string `form:"error"`
}

// DateRangeQuery filters histories.
type DateRangeQuery struct {
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02T15:04:05Z07:00"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02T15:04:05Z07:00"`
}

// InvoiceListQuery filters and pages invoices.
type InvoiceListQuery struct {
	DateRangeQuery
	StructureIDs []string `form:"structures_ids" binding:"dive,uuid"`
	Page         int      `form:"page" binding:"omitempty,gte=1"`
	PageSize     int      `form:"page_size" binding:"omitempty,gte=1,lte=100"`
}

// MarkPaidQuery sets or clears the paid flag of an invoice.
type MarkPaidQuery struct {
	Paid *bool `form:"paid" binding:"required"`
}

// IntegrityQuery selects the initialisation or incremental integrity feed.
type IntegrityQuery struct {
	IsInitialisation bool       `form:"isInitialisation"`
	LastChecked      *time.Time `form:"lastChecked" time_format:"2006-01-02T15:04:05Z07:00"`
}

// WalletResponse is the caller's wallet as shown to them.
type WalletResponse struct {
	ID      uuid.UUID `json:"id"`
	Balance int64     `json:"balance"`
}

// StoreRequest names a store on creation or rename.
type StoreRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// SellerCreateRequest adds a user to a store with the given capabilities.
type SellerCreateRequest struct {
	UserID           string `json:"user_id" binding:"required,safe_id"`
	CanBank          bool   `json:"can_bank"`
	CanSeeHistory    bool   `json:"can_see_history"`
	CanCancel        bool   `json:"can_cancel"`
	CanManageSellers bool   `json:"can_manage_sellers"`
}
