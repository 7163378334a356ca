package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType represents how a wallet-to-wallet transaction was initiated.
type TransactionType string

const (
	TransactionTypeDirect   TransactionType = "direct"
	TransactionTypeIndirect TransactionType = "indirect"
	TransactionTypeRequest  TransactionType = "request"
	TransactionTypeRefund   TransactionType = "refund"
)

// TransactionStatus represents the lifecycle state of a transaction.
type TransactionStatus string

const (
	TransactionStatusConfirmed TransactionStatus = "confirmed"
	TransactionStatusCanceled  TransactionStatus = "canceled"
	TransactionStatusRefunded  TransactionStatus = "refunded"
	TransactionStatusPending   TransactionStatus = "pending"
)

// Transaction moves Total cents from the debited wallet to the credited wallet.
type Transaction struct {
	ID                    uuid.UUID         `json:"id"`
	DebitedWalletID       uuid.UUID         `json:"debited_wallet_id"`
	DebitedWalletDeviceID uuid.UUID         `json:"debited_wallet_device_id"`
	CreditedWalletID      uuid.UUID         `json:"credited_wallet_id"`
	Type                  TransactionType   `json:"transaction_type"`
	SellerUserID          *string           `json:"seller_user_id,omitempty"`
	Total                 int64             `json:"total"`
	Creation              time.Time         `json:"creation"`
	Status                TransactionStatus `json:"status"`
	StoreNote             *string           `json:"store_note,omitempty"`
	QRCodeID              *uuid.UUID        `json:"qr_code_id,omitempty"`
}

// IsConfirmed returns true if the transaction still counts and may be reversed.
func (t *Transaction) IsConfirmed() bool {
	return t.Status == TransactionStatusConfirmed
}

// IsCancelableAt reports whether now is strictly inside the cancel window.
func (t *Transaction) IsCancelableAt(now time.Time, window time.Duration) bool {
	return now.Sub(t.Creation) < window
}

// IsRefundableAt reports whether now is strictly inside the refund window.
func (t *Transaction) IsRefundableAt(now time.Time, window time.Duration) bool {
	return now.Sub(t.Creation) < window
}

// Refund reverses all or part of one transaction. At most one exists per transaction.
type Refund struct {
	ID               uuid.UUID `json:"id"`
	TransactionID    uuid.UUID `json:"transaction_id"`
	DebitedWalletID  uuid.UUID `json:"debited_wallet_id"`
	CreditedWalletID uuid.UUID `json:"credited_wallet_id"`
	Total            int64     `json:"total"`
	Creation         time.Time `json:"creation"`
	SellerUserID     *string   `json:"seller_user_id,omitempty"`
}
