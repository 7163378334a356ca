package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TransferType identifies the external provider a top-up went through.
type TransferType string

const (
	TransferTypeHelloAsso TransferType = "hello_asso"
)

// Name returns the upper-case identifier used in audit lines (e.g. HELLO_ASSO).
func (t TransferType) Name() string {
	return strings.ToUpper(string(t))
}

// Transfer is a top-up of a wallet from an external checkout.
type Transfer struct {
	ID                 uuid.UUID    `json:"id"`
	Type               TransferType `json:"type"`
	TransferIdentifier string       `json:"transfer_identifier"`
	ApproverUserID     *string      `json:"approver_user_id,omitempty"`
	WalletID           uuid.UUID    `json:"wallet_id"`
	Total              int64        `json:"total"`
	Creation           time.Time    `json:"creation"`
	Confirmed          bool         `json:"confirmed"`
}

// Status derives the display status of a top-up. It is never persisted.
// An unconfirmed transfer older than pendingWindow is considered abandoned.
func (t *Transfer) Status(now time.Time, pendingWindow time.Duration) TransactionStatus {
	if t.Confirmed {
		return TransactionStatusConfirmed
	}
	if now.Sub(t.Creation) < pendingWindow {
		return TransactionStatusPending
	}
	return TransactionStatusCanceled
}
