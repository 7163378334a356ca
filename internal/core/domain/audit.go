package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AuditAction is the leading keyword of a ledger audit line.
type AuditAction string

const (
	AuditActionTransfer    AuditAction = "transfer"
	AuditActionRefund      AuditAction = "refund"
	AuditActionCancel      AuditAction = "cancel"
	AuditActionTransaction AuditAction = "transaction"
	AuditActionWithdrawal  AuditAction = "withdrawal"
)

// Name returns the upper-case keyword written in audit lines.
func (a AuditAction) Name() string {
	return strings.ToUpper(string(a))
}

// AuditLog is a persisted ledger audit line with its position in the hash chain.
type AuditLog struct {
	ID        uuid.UUID   `json:"id"`
	Action    AuditAction `json:"action"`
	Line      string      `json:"line"`
	Chain     string      `json:"chain"` // hex BLAKE2b-256 of previous chain || line
	CreatedAt time.Time   `json:"created_at"`
}

// The formats below are consumed by external integrity verification and must not change.

func FormatTransactionLog(t *Transaction) string {
	return fmt.Sprintf("%s %s %s %s %d", AuditActionTransaction.Name(), t.ID, t.DebitedWalletID, t.CreditedWalletID, t.Total)
}

func FormatRefundLog(r *Refund) string {
	return fmt.Sprintf("%s %s %s %d", AuditActionRefund.Name(), r.ID, r.TransactionID, r.Total)
}

func FormatCancelLog(transactionID uuid.UUID) string {
	return fmt.Sprintf("%s %s", AuditActionCancel.Name(), transactionID)
}

func FormatTransferLog(t *Transfer) string {
	return fmt.Sprintf("%s %s %s %d %s", AuditActionTransfer.Name(), t.ID, t.Type.Name(), t.Total, t.WalletID)
}

func FormatWithdrawalLog(w *Withdrawal) string {
	return fmt.Sprintf("%s %s %d", AuditActionWithdrawal.Name(), w.WalletID, w.Total)
}
