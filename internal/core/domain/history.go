package domain

import (
	"time"

	"github.com/google/uuid"
)

// HistoryType classifies an entry of a wallet history.
type HistoryType string

const (
	HistoryTypeTransfer         HistoryType = "transfer"
	HistoryTypeReceived         HistoryType = "received"
	HistoryTypeGiven            HistoryType = "given"
	HistoryTypeIndirectGiven    HistoryType = "indirect_given"
	HistoryTypeIndirectReceived HistoryType = "indirect_received"
	HistoryTypeRefundCredited   HistoryType = "refund_credited"
	HistoryTypeRefundDebited    HistoryType = "refund_debited"
)

// HistoryRefund summarises the refund attached to a history transaction.
type HistoryRefund struct {
	Total    int64     `json:"total"`
	Creation time.Time `json:"creation"`
}

// HistoryEntry is one line of a wallet history.
type HistoryEntry struct {
	ID        uuid.UUID         `json:"id"`
	Type      HistoryType       `json:"type"`
	OtherName string            `json:"other_wallet_name"`
	Total     int64             `json:"total"`
	Creation  time.Time         `json:"creation"`
	Status    TransactionStatus `json:"status"`
	Refund    *HistoryRefund    `json:"refund,omitempty"`
}

// StoreHistoryEntry is one line of a store wallet history, as seen by sellers.
type StoreHistoryEntry struct {
	ID           uuid.UUID         `json:"id"`
	Type         HistoryType       `json:"type"`
	OtherName    string            `json:"other_wallet_name"`
	Total        int64             `json:"total"`
	Creation     time.Time         `json:"creation"`
	Status       TransactionStatus `json:"status"`
	SellerUserID *string           `json:"seller_user_id,omitempty"`
	StoreNote    *string           `json:"store_note,omitempty"`
	Refund       *HistoryRefund    `json:"refund,omitempty"`
}

// IntegritySnapshot is the data exposed to external auditors.
// Date is the settled instant the data is consistent at.
type IntegritySnapshot struct {
	Date         time.Time     `json:"date"`
	Wallets      []Wallet      `json:"wallets"`
	Transactions []Transaction `json:"transactions"`
	Transfers    []Transfer    `json:"transfers"`
	Refunds      []Refund      `json:"refunds"`
}
