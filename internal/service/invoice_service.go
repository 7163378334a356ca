package service

import (
	"context"
	"fmt"
	"time"

	"mypayment-ledger/config"
	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/internal/core/ports"
	"mypayment-ledger/pkg/apperror"
	"mypayment-ledger/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// InvoiceService implements ports.InvoiceService.
type InvoiceService struct {
	repos      Repositories
	transactor ports.DBTransactor
	audit      ports.AuditService
	cfg        config.LedgerConfig
	now        func() time.Time
	log        zerolog.Logger
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(
	repos Repositories,
	transactor ports.DBTransactor,
	audit ports.AuditService,
	cfg config.LedgerConfig,
	log zerolog.Logger,
) *InvoiceService {
	return &InvoiceService{
		repos:      repos,
		transactor: transactor,
		audit:      audit,
		cfg:        cfg,
		now:        utcNow,
		log:        logger.Component(log, logger.ComponentLedger),
	}
}

func requireBankHolder(caller domain.AuthenticatedUser) error {
	if !caller.IsBankHolder {
		return apperror.ErrPermissionDenied("User is not the bank account holder")
	}
	return nil
}

// Create nets the settled activity of every store of the structure into a new invoice.
// It reads under a repeatable-read snapshot so balances and transactions agree.
func (s *InvoiceService) Create(ctx context.Context, structureID uuid.UUID, caller domain.AuthenticatedUser) (*domain.Invoice, error) {
	dbTx, now, err := s.transactor.BeginSnapshot(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin snapshot: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := requireBankHolder(caller); err != nil {
		return nil, err
	}

	structure, err := s.repos.Structures.GetByID(ctx, dbTx, structureID)
	if err != nil {
		return nil, internalErr("get structure", err)
	}
	if structure == nil {
		return nil, apperror.ErrNotFound("Structure")
	}

	stores, err := s.repos.Stores.ListByStructure(ctx, dbTx, structureID)
	if err != nil {
		return nil, internalErr("list stores", err)
	}

	// Transactions younger than the backoff may still be canceled; they are not settled yet.
	cutoff := now.Add(-s.cfg.SettleBackoff)
	young, err := s.repos.Transactions.List(ctx, dbTx, ports.TransactionFilter{From: &cutoff, ExcludeCanceled: true})
	if err != nil {
		return nil, internalErr("list young transactions", err)
	}

	invoiceID := uuid.New()
	var details []domain.InvoiceDetail
	var total int64
	for _, store := range stores {
		delta, err := s.storeDelta(ctx, dbTx, store, young)
		if err != nil {
			return nil, err
		}
		if delta == 0 {
			continue
		}
		details = append(details, domain.InvoiceDetail{InvoiceID: invoiceID, StoreID: store.ID, Total: delta})
		total += delta
	}
	if len(details) == 0 {
		return nil, apperror.ErrNothingToInvoice()
	}

	last, err := s.repos.Invoices.GetLastByStructure(ctx, dbTx, structureID)
	if err != nil {
		return nil, internalErr("get last invoice", err)
	}
	previous, start := "", structure.Creation
	if last != nil {
		previous, start = last.Reference, last.EndDate
	}
	reference, err := domain.NextInvoiceReference(previous, structure.ShortID, cutoff)
	if err != nil {
		return nil, apperror.ErrInvariantViolation(err.Error())
	}

	invoice := &domain.Invoice{
		ID:          invoiceID,
		Reference:   reference,
		StructureID: structureID,
		Creation:    now,
		StartDate:   start,
		EndDate:     cutoff,
		Total:       total,
		Details:     details,
	}
	if err := s.repos.Invoices.Create(ctx, dbTx, invoice); err != nil {
		return nil, internalErr("create invoice", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("invoice_id", invoice.ID.String()).
		Str("reference", invoice.Reference).
		Int64("total", invoice.Total).
		Int("details", len(details)).
		Msg("invoice created")

	return invoice, nil
}

// storeDelta is the store balance minus unsettled activity minus what is already invoiced.
func (s *InvoiceService) storeDelta(ctx context.Context, tx pgx.Tx, store domain.Store, young []domain.Transaction) (int64, error) {
	wallet, err := s.repos.Wallets.GetByID(ctx, tx, store.WalletID)
	if err != nil {
		return 0, internalErr("get store wallet", err)
	}
	if wallet == nil {
		s.log.Error().Str("store_id", store.ID.String()).Msg("store references a missing wallet")
		return 0, apperror.ErrInvariantViolation("Could not find wallet associated with the store")
	}

	balance := wallet.Balance
	for _, t := range young {
		switch wallet.ID {
		case t.CreditedWalletID:
			balance -= t.Total
		case t.DebitedWalletID:
			balance += t.Total
		}
	}

	pending, err := s.repos.Invoices.SumUnreceivedByStore(ctx, tx, store.ID)
	if err != nil {
		return 0, internalErr("sum unreceived invoices", err)
	}
	return balance - pending, nil
}

// List returns invoices of any structure. Bank holder only.
func (s *InvoiceService) List(ctx context.Context, caller domain.AuthenticatedUser, params ports.InvoiceListParams) ([]domain.Invoice, error) {
	if err := requireBankHolder(caller); err != nil {
		return nil, err
	}
	invoices, err := s.repos.Invoices.List(ctx, nil, params)
	if err != nil {
		return nil, internalErr("list invoices", err)
	}
	return invoices, nil
}

// ListByStructure returns the invoices of one structure to its manager or administrators.
func (s *InvoiceService) ListByStructure(ctx context.Context, structureID uuid.UUID, caller domain.AuthenticatedUser, params ports.InvoiceListParams) ([]domain.Invoice, error) {
	structure, err := s.repos.Structures.GetByID(ctx, nil, structureID)
	if err != nil {
		return nil, internalErr("get structure", err)
	}
	if structure == nil {
		return nil, apperror.ErrNotFound("Structure")
	}
	if !structure.IsManagerOrAdministrator(caller.ID) {
		return nil, apperror.ErrPermissionDenied("User is not allowed to access this structure invoices")
	}

	params.StructureIDs = []uuid.UUID{structureID}
	invoices, err := s.repos.Invoices.List(ctx, nil, params)
	if err != nil {
		return nil, internalErr("list invoices", err)
	}
	return invoices, nil
}

// Get returns one invoice with its details to the bank holder, or to the manager
// and administrators of the invoiced structure.
func (s *InvoiceService) Get(ctx context.Context, invoiceID uuid.UUID, caller domain.AuthenticatedUser) (*domain.Invoice, error) {
	invoice, err := s.repos.Invoices.GetByID(ctx, nil, invoiceID)
	if err != nil {
		return nil, internalErr("get invoice", err)
	}
	if invoice == nil {
		return nil, apperror.ErrNotFound("Invoice")
	}
	if caller.IsBankHolder {
		return invoice, nil
	}

	structure, err := s.repos.Structures.GetByID(ctx, nil, invoice.StructureID)
	if err != nil {
		return nil, internalErr("get structure", err)
	}
	if structure == nil {
		return nil, apperror.ErrNotFound("Structure")
	}
	if !structure.IsManagerOrAdministrator(caller.ID) {
		return nil, apperror.ErrPermissionDenied("User is not allowed to access this invoice")
	}
	return invoice, nil
}

// MarkPaid sets the paid flag. Bank holder only.
func (s *InvoiceService) MarkPaid(ctx context.Context, invoiceID uuid.UUID, paid bool, caller domain.AuthenticatedUser) error {
	if err := requireBankHolder(caller); err != nil {
		return err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	invoice, err := s.repos.Invoices.GetByIDForUpdate(ctx, dbTx, invoiceID)
	if err != nil {
		return internalErr("lock invoice", err)
	}
	if invoice == nil {
		return apperror.ErrNotFound("Invoice")
	}
	if invoice.Received && !paid {
		return apperror.ErrInvalidState("Cannot mark a received invoice as unpaid")
	}
	if err := s.repos.Invoices.UpdatePaid(ctx, dbTx, invoice.ID, paid); err != nil {
		return internalErr("update invoice paid", err)
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().Str("invoice_id", invoiceID.String()).Bool("paid", paid).Str("user_id", caller.ID).Msg("invoice paid status updated")
	return nil
}

// MarkReceived withdraws every detail total from its store wallet.
// Only a paid, not yet received invoice can be received, by the structure manager or an administrator.
func (s *InvoiceService) MarkReceived(ctx context.Context, invoiceID uuid.UUID, caller domain.AuthenticatedUser) error {
	now := s.now()

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	invoice, err := s.repos.Invoices.GetByIDForUpdate(ctx, dbTx, invoiceID)
	if err != nil {
		return internalErr("lock invoice", err)
	}
	if invoice == nil {
		return apperror.ErrNotFound("Invoice")
	}
	if !invoice.Paid {
		return apperror.ErrInvalidState("Cannot mark an invoice as received if it is not paid")
	}
	if invoice.Received {
		return apperror.ErrAlreadyReceived()
	}

	structure, err := s.repos.Structures.GetByID(ctx, dbTx, invoice.StructureID)
	if err != nil {
		return internalErr("get structure", err)
	}
	if structure == nil {
		return apperror.ErrInvariantViolation("Invoice structure does not exist")
	}
	if !structure.IsManagerOrAdministrator(caller.ID) {
		return apperror.ErrPermissionDenied("User is not allowed to edit this structure invoice")
	}

	if err := s.repos.Invoices.MarkReceived(ctx, dbTx, invoice.ID); err != nil {
		return internalErr("mark invoice received", err)
	}

	storeWallets := make([]uuid.UUID, len(invoice.Details))
	for i, detail := range invoice.Details {
		store, err := s.repos.Stores.GetByID(ctx, dbTx, detail.StoreID)
		if err != nil {
			return internalErr("get store", err)
		}
		if store == nil {
			s.log.Error().Str("invoice_id", invoice.ID.String()).Str("store_id", detail.StoreID.String()).Msg("invoice references a missing store")
			return apperror.ErrInvariantViolation("Could not find store associated with the invoice")
		}
		storeWallets[i] = store.WalletID
	}
	if _, err := s.repos.Wallets.LockForUpdate(ctx, dbTx, storeWallets...); err != nil {
		return internalErr("lock store wallets", err)
	}

	withdrawals := make([]*domain.Withdrawal, 0, len(invoice.Details))
	for i, detail := range invoice.Details {
		if err := applyDelta(ctx, s.repos.Wallets, dbTx, storeWallets[i], -detail.Total); err != nil {
			return err
		}
		w := &domain.Withdrawal{ID: uuid.New(), WalletID: storeWallets[i], Total: detail.Total, Creation: now}
		if err := s.repos.Withdrawals.Create(ctx, dbTx, w); err != nil {
			return internalErr("create withdrawal", err)
		}
		withdrawals = append(withdrawals, w)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	for _, w := range withdrawals {
		s.audit.Record(ctx, domain.AuditActionWithdrawal, domain.FormatWithdrawalLog(w))
	}
	s.log.Info().Str("invoice_id", invoice.ID.String()).Int("withdrawals", len(withdrawals)).Msg("invoice received")
	return nil
}

// Delete removes an unpaid invoice. Bank holder only.
func (s *InvoiceService) Delete(ctx context.Context, invoiceID uuid.UUID, caller domain.AuthenticatedUser) error {
	if err := requireBankHolder(caller); err != nil {
		return err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	invoice, err := s.repos.Invoices.GetByIDForUpdate(ctx, dbTx, invoiceID)
	if err != nil {
		return internalErr("lock invoice", err)
	}
	if invoice == nil {
		return apperror.ErrNotFound("Invoice")
	}
	if invoice.Paid {
		return apperror.ErrInvalidState("Cannot delete an invoice that has already been paid")
	}
	if err := s.repos.Invoices.Delete(ctx, dbTx, invoice.ID); err != nil {
		return internalErr("delete invoice", err)
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().Str("invoice_id", invoiceID.String()).Str("user_id", caller.ID).Msg("invoice deleted")
	return nil
}
