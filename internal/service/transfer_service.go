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

const notificationModule = "MyPayment"

// TransferService implements ports.TransferEngine: QR scans, refunds and cancellations.
type TransferService struct {
	repos      Repositories
	registry   *QRRegistry
	verifier   ports.QRVerifier
	transactor ports.DBTransactor
	audit      ports.AuditService
	notifier   ports.Notifier
	cfg        config.LedgerConfig
	now        func() time.Time
	log        zerolog.Logger
}

// NewTransferService creates a new TransferService.
func NewTransferService(
	repos Repositories,
	registry *QRRegistry,
	verifier ports.QRVerifier,
	transactor ports.DBTransactor,
	audit ports.AuditService,
	notifier ports.Notifier,
	cfg config.LedgerConfig,
	log zerolog.Logger,
) *TransferService {
	return &TransferService{
		repos:      repos,
		registry:   registry,
		verifier:   verifier,
		transactor: transactor,
		audit:      audit,
		notifier:   notifier,
		cfg:        cfg,
		now:        utcNow,
		log:        logger.Component(log, logger.ComponentLedger),
	}
}

// scanResolution is what both CheckScan and Scan resolve before touching balances.
type scanResolution struct {
	store     *domain.Store
	structure *domain.Structure
	device    *domain.WalletDevice
	owner     *domain.WalletOwner
}

// resolveScan loads the store, the seller capability and the debited wallet owner.
func (s *TransferService) resolveScan(ctx context.Context, tx pgx.Tx, req ports.ScanRequest) (*scanResolution, error) {
	store, err := s.repos.Stores.GetByID(ctx, tx, req.StoreID)
	if err != nil {
		return nil, internalErr("get store", err)
	}
	if store == nil {
		return nil, apperror.ErrNotFound("Store")
	}

	seller, err := s.repos.Stores.GetSeller(ctx, tx, req.Seller.ID, store.ID)
	if err != nil {
		return nil, internalErr("get seller", err)
	}
	if seller == nil || !seller.CanBank {
		return nil, apperror.ErrPermissionDenied("User does not have `can_bank` permission for this store")
	}

	device, err := s.repos.Devices.GetByID(ctx, tx, req.Info.Key)
	if err != nil {
		return nil, internalErr("get wallet device", err)
	}
	if device == nil {
		return nil, apperror.ErrNotFound("Wallet device")
	}

	structure, err := s.repos.Structures.GetByID(ctx, tx, store.StructureID)
	if err != nil {
		return nil, internalErr("get structure", err)
	}
	if structure == nil {
		s.log.Error().Str("store_id", store.ID.String()).Msg("store references a missing structure")
		return nil, apperror.ErrInvariantViolation("Store structure does not exist")
	}

	return &scanResolution{store: store, structure: structure, device: device}, nil
}

// resolveDebitedUser loads the owner of the device wallet and checks it is a user.
func (s *TransferService) resolveDebitedUser(ctx context.Context, tx pgx.Tx, res *scanResolution) error {
	owner, err := s.repos.Wallets.GetOwner(ctx, tx, res.device.WalletID)
	if err != nil {
		return internalErr("get debited wallet", err)
	}
	if owner == nil {
		s.log.Error().Str("wallet_device_id", res.device.ID.String()).Msg("wallet device references a missing wallet")
		return apperror.ErrInvariantViolation("Could not find wallet associated with the debited wallet device")
	}
	if owner.Wallet.Type != domain.WalletTypeUser || owner.UserID == nil || owner.StoreID != nil {
		return apperror.ErrPermissionDenied("Stores are not allowed to make transaction by QR code")
	}
	res.owner = owner
	return nil
}

// isMember reports whether the debited user satisfies the structure membership requirement.
func (s *TransferService) isMember(ctx context.Context, tx pgx.Tx, res *scanResolution, at time.Time) (bool, error) {
	if res.structure.AssociationMembershipID == nil {
		return true, nil
	}
	ok, err := s.repos.Memberships.HasValidMembership(ctx, tx, *res.owner.UserID, *res.structure.AssociationMembershipID, at)
	if err != nil {
		return false, internalErr("check membership", err)
	}
	return ok, nil
}

// CheckScan tells a seller whether a code can be banked at the store, without consuming it.
// It fails on unresolvable input and returns false when the membership requirement is not met.
func (s *TransferService) CheckScan(ctx context.Context, req ports.ScanRequest) (bool, error) {
	res, err := s.resolveScan(ctx, nil, req)
	if err != nil {
		return false, err
	}
	if err := s.resolveDebitedUser(ctx, nil, res); err != nil {
		return false, err
	}
	return s.isMember(ctx, nil, res, s.now())
}

// Scan consumes a signed QR code and moves its total from the user wallet to the store wallet.
// The used marker is committed even when the scan itself is rejected.
func (s *TransferService) Scan(ctx context.Context, req ports.ScanRequest) (*domain.Transaction, error) {
	used, err := s.registry.IsUsed(ctx, req.Info.ID)
	if err != nil {
		return nil, internalErr("check used qr code", err)
	}
	if used {
		return nil, apperror.ErrAlreadyUsed()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.registry.MarkUsed(ctx, dbTx, req.Info, req.StoreID); err != nil {
		return nil, internalErr("mark qr code used", err)
	}

	// Savepoint: a rejected scan only rolls back to here.
	nested, err := dbTx.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin savepoint: %w", err))
	}

	txn, res, scanErr := s.scan(ctx, nested, req)
	if scanErr != nil {
		if err := nested.Rollback(ctx); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("rollback savepoint: %w", err))
		}
	} else if err := nested.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("release savepoint: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.registry.Remember(ctx, req.Info.ID)

	if scanErr != nil {
		s.log.Info().
			Err(scanErr).
			Str("qr_code_id", req.Info.ID.String()).
			Str("store_id", req.StoreID.String()).
			Str("request_id", logger.RequestID(ctx)).
			Msg("scan rejected, qr code consumed")
		return nil, scanErr
	}

	s.audit.Record(ctx, domain.AuditActionTransaction, domain.FormatTransactionLog(txn))
	notify(ctx, s.notifier, s.log, *res.owner.UserID, ports.Message{
		Title:   "💳 Paiement - " + res.store.Name,
		Content: fmt.Sprintf("Une transaction de %s a été effectuée", formatEuros(txn.Total)),
		Action:  notificationModule,
	})

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("store_id", res.store.ID.String()).
		Int64("total", txn.Total).
		Msg("scan processed successfully")

	return txn, nil
}

// scan runs every check and mutation after the used marker, in order, inside tx.
func (s *TransferService) scan(ctx context.Context, tx pgx.Tx, req ports.ScanRequest) (*domain.Transaction, *scanResolution, error) {
	info := req.Info
	now := s.now()

	res, err := s.resolveScan(ctx, tx, req)
	if err != nil {
		return nil, nil, err
	}
	if !res.device.IsActive() {
		return nil, nil, apperror.ErrInvalidState("Wallet device is not active")
	}

	if !s.verifier.Verify(ctx, info.QRPayload, info.Signature, res.device.PublicKey) {
		return nil, nil, apperror.ErrInvalidSignature()
	}

	if !info.Store {
		return nil, nil, apperror.Validation("QR Code is not intended to be scanned for a store")
	}
	if info.Tot <= 0 {
		return nil, nil, apperror.Validation("Total must be greater than 0")
	}
	if info.IsExpiredAt(now, s.cfg.QRExpiration) {
		return nil, nil, apperror.ErrExpired("QR Code is expired")
	}

	if err := s.resolveDebitedUser(ctx, tx, res); err != nil {
		return nil, nil, err
	}
	userPayment, err := s.repos.UserPayments.GetByUserID(ctx, tx, *res.owner.UserID)
	if err != nil {
		return nil, nil, internalErr("get user payment", err)
	}
	if userPayment == nil || !userPayment.HasSignedTOS(s.cfg.LatestTOSVersion) {
		return nil, nil, apperror.ErrInvalidState("Debited user has not signed the latest TOS")
	}

	debitedID := res.owner.Wallet.ID
	locked, err := s.repos.Wallets.LockForUpdate(ctx, tx, debitedID, res.store.WalletID)
	if err != nil {
		return nil, nil, internalErr("lock wallets", err)
	}
	debited, credited := locked[debitedID], locked[res.store.WalletID]
	if debited == nil || credited == nil {
		return nil, nil, apperror.ErrInvariantViolation("Scan wallets disappeared while locking")
	}
	if debited.Balance < info.Tot {
		return nil, nil, apperror.ErrInsufficientBalance()
	}

	if !info.BypassMembership {
		member, err := s.isMember(ctx, tx, res, now)
		if err != nil {
			return nil, nil, err
		}
		if !member {
			return nil, nil, apperror.ErrMembershipRequired()
		}
	}

	if err := applyDelta(ctx, s.repos.Wallets, tx, credited.ID, info.Tot); err != nil {
		return nil, nil, err
	}
	if err := applyDelta(ctx, s.repos.Wallets, tx, debited.ID, -info.Tot); err != nil {
		return nil, nil, err
	}

	sellerID := req.Seller.ID
	qrID := info.ID
	txn := &domain.Transaction{
		ID:                    uuid.New(),
		DebitedWalletID:       debited.ID,
		DebitedWalletDeviceID: res.device.ID,
		CreditedWalletID:      credited.ID,
		Type:                  domain.TransactionTypeDirect,
		SellerUserID:          &sellerID,
		Total:                 info.Tot,
		Creation:              now,
		Status:                domain.TransactionStatusConfirmed,
		QRCodeID:              &qrID,
	}
	if err := s.repos.Transactions.Create(ctx, tx, txn); err != nil {
		return nil, nil, internalErr("create transaction", err)
	}

	return txn, res, nil
}

// Refund reverses all or part of a CONFIRMED store transaction younger than the refund window.
func (s *TransferService) Refund(ctx context.Context, req ports.RefundRequest) (*domain.Refund, error) {
	now := s.now()

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	txn, err := s.repos.Transactions.GetByIDForUpdate(ctx, dbTx, req.TransactionID)
	if err != nil {
		return nil, internalErr("lock transaction", err)
	}
	if txn == nil {
		return nil, apperror.ErrNotFound("Transaction")
	}
	if !txn.IsConfirmed() {
		return nil, apperror.ErrInvalidState("Transaction is not available for refund")
	}
	if !txn.IsRefundableAt(now, s.cfg.RefundWindow) {
		return nil, apperror.ErrExpired("Transaction is too old to be refunded")
	}

	credited, err := s.repos.Wallets.GetOwner(ctx, dbTx, txn.CreditedWalletID)
	if err != nil {
		return nil, internalErr("get credited wallet", err)
	}
	if credited == nil {
		return nil, apperror.ErrNotFound("Credited wallet")
	}
	// Transactions between users are not refundable.
	if credited.Wallet.Type != domain.WalletTypeStore {
		return nil, apperror.ErrPermissionDenied("Transaction credited to a user can not be refunded")
	}
	if credited.StoreID == nil {
		return nil, apperror.ErrInvariantViolation("Missing store in store wallet")
	}

	seller, err := s.repos.Stores.GetSeller(ctx, dbTx, req.Caller.ID, *credited.StoreID)
	if err != nil {
		return nil, internalErr("get seller", err)
	}
	if seller == nil || !seller.CanCancel {
		return nil, apperror.ErrPermissionDenied("User does not have the permission to refund this transaction")
	}

	amount := txn.Total
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, apperror.Validation("Refund amount must be greater than 0")
		}
		if *req.Amount > txn.Total {
			return nil, apperror.Validation("Refund amount is greater than the transaction total")
		}
		amount = *req.Amount
	}

	debited, err := s.repos.Wallets.GetOwner(ctx, dbTx, txn.DebitedWalletID)
	if err != nil {
		return nil, internalErr("get debited wallet", err)
	}
	if debited == nil {
		return nil, apperror.ErrNotFound("Debited wallet")
	}

	if err := s.lockPair(ctx, dbTx, txn); err != nil {
		return nil, err
	}
	if err := s.repos.Transactions.UpdateStatus(ctx, dbTx, txn.ID, domain.TransactionStatusRefunded); err != nil {
		return nil, internalErr("update transaction status", err)
	}

	sellerID := req.Caller.ID
	refund := &domain.Refund{
		ID:               uuid.New(),
		TransactionID:    txn.ID,
		DebitedWalletID:  txn.CreditedWalletID,
		CreditedWalletID: txn.DebitedWalletID,
		Total:            amount,
		Creation:         now,
		SellerUserID:     &sellerID,
	}
	if err := s.repos.Refunds.Create(ctx, dbTx, refund); err != nil {
		return nil, internalErr("create refund", err)
	}

	if err := applyDelta(ctx, s.repos.Wallets, dbTx, txn.DebitedWalletID, amount); err != nil {
		return nil, err
	}
	if err := applyDelta(ctx, s.repos.Wallets, dbTx, txn.CreditedWalletID, -amount); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.audit.Record(ctx, domain.AuditActionRefund, domain.FormatRefundLog(refund))

	if debited.UserID != nil {
		notify(ctx, s.notifier, s.log, *debited.UserID, ports.Message{
			Title:   "💳 Remboursement",
			Content: fmt.Sprintf("La transaction pour %s (%s) a été remboursée de %s", credited.Name, formatEuros(txn.Total), formatEuros(amount)),
			Action:  notificationModule,
		})
	}
	if credited.UserID != nil {
		notify(ctx, s.notifier, s.log, *credited.UserID, ports.Message{
			Title:   "💳 Remboursement",
			Content: fmt.Sprintf("Vous avez remboursé la transaction de %s (%s) de %s", debited.Name, formatEuros(txn.Total), formatEuros(amount)),
			Action:  notificationModule,
		})
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("refund_id", refund.ID.String()).
		Int64("total", amount).
		Msg("refund processed successfully")

	return refund, nil
}

// Cancel voids a CONFIRMED transaction younger than the cancel window. No Refund row is created.
func (s *TransferService) Cancel(ctx context.Context, transactionID uuid.UUID, caller domain.AuthenticatedUser) error {
	now := s.now()

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	txn, err := s.repos.Transactions.GetByIDForUpdate(ctx, dbTx, transactionID)
	if err != nil {
		return internalErr("lock transaction", err)
	}
	if txn == nil {
		return apperror.ErrNotFound("Transaction")
	}
	if !txn.IsCancelableAt(now, s.cfg.CancelWindow) {
		return apperror.ErrExpired("Transaction is too old to be canceled")
	}

	credited, err := s.repos.Wallets.GetOwner(ctx, dbTx, txn.CreditedWalletID)
	if err != nil {
		return internalErr("get credited wallet", err)
	}
	if credited == nil {
		return apperror.ErrNotFound("Credited wallet")
	}

	switch credited.Wallet.Type {
	case domain.WalletTypeStore:
		if credited.StoreID == nil {
			return apperror.ErrInvariantViolation("Missing store in store wallet")
		}
		seller, err := s.repos.Stores.GetSeller(ctx, dbTx, caller.ID, *credited.StoreID)
		if err != nil {
			return internalErr("get seller", err)
		}
		if seller == nil || !seller.CanCancel {
			return apperror.ErrPermissionDenied("User does not have the permission to cancel this transaction")
		}
	default:
		if credited.UserID == nil || *credited.UserID != caller.ID {
			return apperror.ErrPermissionDenied("User is not allowed to cancel this transaction")
		}
	}

	if !txn.IsConfirmed() {
		return apperror.ErrInvalidState("Only confirmed transactions can be canceled")
	}

	debited, err := s.repos.Wallets.GetOwner(ctx, dbTx, txn.DebitedWalletID)
	if err != nil {
		return internalErr("get debited wallet", err)
	}
	if debited == nil {
		return apperror.ErrNotFound("Debited wallet")
	}

	if err := s.lockPair(ctx, dbTx, txn); err != nil {
		return err
	}
	if err := s.repos.Transactions.UpdateStatus(ctx, dbTx, txn.ID, domain.TransactionStatusCanceled); err != nil {
		return internalErr("update transaction status", err)
	}
	if err := applyDelta(ctx, s.repos.Wallets, dbTx, txn.DebitedWalletID, txn.Total); err != nil {
		return err
	}
	if err := applyDelta(ctx, s.repos.Wallets, dbTx, txn.CreditedWalletID, -txn.Total); err != nil {
		return err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.audit.Record(ctx, domain.AuditActionCancel, domain.FormatCancelLog(txn.ID))

	if debited.UserID != nil {
		notify(ctx, s.notifier, s.log, *debited.UserID, ports.Message{
			Title:   "💳 Paiement annulé",
			Content: fmt.Sprintf("La transaction de %s a été annulée", formatEuros(txn.Total)),
			Action:  notificationModule,
		})
	}

	s.log.Info().Str("tx_id", txn.ID.String()).Msg("transaction canceled")
	return nil
}

// lockPair locks both wallets of txn in id order, like a scan does, before they are reversed.
func (s *TransferService) lockPair(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	locked, err := s.repos.Wallets.LockForUpdate(ctx, tx, txn.DebitedWalletID, txn.CreditedWalletID)
	if err != nil {
		return internalErr("lock wallets", err)
	}
	if locked[txn.DebitedWalletID] == nil || locked[txn.CreditedWalletID] == nil {
		return apperror.ErrInvariantViolation("Transaction wallets disappeared while locking")
	}
	return nil
}
