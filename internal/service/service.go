package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mypayment-ledger/internal/core/ports"
	"mypayment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Repositories groups the ledger repositories shared by the services.
// A service only touches the fields it needs.
type Repositories struct {
	Wallets      ports.WalletRepository
	Devices      ports.WalletDeviceRepository
	UserPayments ports.UserPaymentRepository
	Structures   ports.StructureRepository
	Stores       ports.StoreRepository
	Memberships  ports.MembershipRepository
	Transactions ports.TransactionRepository
	Refunds      ports.RefundRepository
	Transfers    ports.TransferRepository
	Invoices     ports.InvoiceRepository
	Withdrawals  ports.WithdrawalRepository
}

// internalErr passes AppErrors through and wraps anything else as SYS_001.
func internalErr(op string, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.InternalError(fmt.Errorf("%s: %w", op, err))
}

// applyDelta adds delta to a wallet balance. A missing wallet is an invariant violation.
func applyDelta(ctx context.Context, wallets ports.WalletRepository, tx pgx.Tx, walletID uuid.UUID, delta int64) error {
	if err := wallets.IncrementBalance(ctx, tx, walletID, delta); err != nil {
		if errors.Is(err, ports.ErrWalletNotFound) {
			return apperror.ErrInvariantViolation(fmt.Sprintf("wallet %s disappeared during balance update", walletID))
		}
		return internalErr("increment balance", err)
	}
	return nil
}

// formatEuros renders cents exactly, without going through a float.
func formatEuros(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2) + " €"
}

func utcNow() time.Time {
	return time.Now().UTC()
}
