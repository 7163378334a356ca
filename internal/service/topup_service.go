package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"mypayment-ledger/config"
	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/internal/core/ports"
	"mypayment-ledger/pkg/apperror"
	"mypayment-ledger/pkg/logger"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TopupService implements ports.TopupService on top of an external checkout provider.
type TopupService struct {
	repos      Repositories
	provider   ports.CheckoutProvider
	transactor ports.DBTransactor
	audit      ports.AuditService
	ledger     config.LedgerConfig
	checkout   config.CheckoutConfig
	now        func() time.Time
	log        zerolog.Logger
}

// NewTopupService creates a new TopupService.
func NewTopupService(
	repos Repositories,
	provider ports.CheckoutProvider,
	transactor ports.DBTransactor,
	audit ports.AuditService,
	ledger config.LedgerConfig,
	checkout config.CheckoutConfig,
	log zerolog.Logger,
) *TopupService {
	return &TopupService{
		repos:      repos,
		provider:   provider,
		transactor: transactor,
		audit:      audit,
		ledger:     ledger,
		checkout:   checkout,
		now:        utcNow,
		log:        logger.Component(log, logger.ComponentLedger),
	}
}

// IsTrustedRedirect reports whether redirectURL is one of the configured redirect targets.
func (s *TopupService) IsTrustedRedirect(redirectURL string) bool {
	for _, u := range s.checkout.TrustedRedirectURLs {
		if u == redirectURL {
			return true
		}
	}
	return false
}

// InitTopup opens a provider checkout and records the pending Transfer.
func (s *TopupService) InitTopup(ctx context.Context, req ports.TopupRequest) (*ports.Checkout, error) {
	if !s.IsTrustedRedirect(req.RedirectURL) {
		s.log.Warn().
			Str("user_id", req.User.ID).
			Str("redirect_url", req.RedirectURL).
			Msg("top-up requested with an untrusted redirect url")
		return nil, apperror.Validation("Redirect URL is not trusted")
	}
	if req.Amount < s.ledger.MinTopupAmount {
		return nil, apperror.Validation(fmt.Sprintf("Please give an amount in cents, at least %d", s.ledger.MinTopupAmount))
	}

	userPayment, err := s.repos.UserPayments.GetByUserID(ctx, nil, req.User.ID)
	if err != nil {
		return nil, internalErr("get user payment", err)
	}
	if userPayment == nil {
		return nil, apperror.ErrNotFound("User payment")
	}
	if !userPayment.HasSignedTOS(s.ledger.LatestTOSVersion) {
		return nil, apperror.ErrInvalidState("User has not signed the latest TOS")
	}

	wallet, err := s.repos.Wallets.GetByID(ctx, nil, userPayment.WalletID)
	if err != nil {
		return nil, internalErr("get wallet", err)
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("Wallet")
	}
	if wallet.Balance+req.Amount > s.ledger.MaxWalletBalance {
		return nil, apperror.ErrBalanceLimitExceeded()
	}

	checkout, err := s.provider.InitCheckout(ctx, ports.CheckoutRequest{
		Amount:      req.Amount,
		Name:        "Recharge " + s.checkout.PaymentName,
		RedirectURL: s.redirectionURI(req.RedirectURL),
		PayerUserID: req.User.ID,
		PayerName:   req.User.Name,
	})
	if err != nil {
		return nil, internalErr("init checkout", err)
	}

	transfer := &domain.Transfer{
		ID:                 uuid.New(),
		Type:               domain.TransferTypeHelloAsso,
		TransferIdentifier: checkout.ID,
		WalletID:           wallet.ID,
		Total:              req.Amount,
		Creation:           s.now(),
		Confirmed:          false,
	}
	if err := s.repos.Transfers.Create(ctx, nil, transfer); err != nil {
		return nil, internalErr("create transfer", err)
	}

	s.log.Info().
		Str("transfer_id", transfer.ID.String()).
		Str("checkout_id", checkout.ID).
		Int64("total", transfer.Total).
		Msg("top-up initiated")

	return checkout, nil
}

// redirectionURI routes the provider back through the ledger's redirect endpoint.
func (s *TopupService) redirectionURI(target string) string {
	if s.checkout.ClientURL == "" {
		return target
	}
	return s.checkout.ClientURL + "mypayment/transfer/redirect?url=" + url.QueryEscape(target)
}

// ConfirmCheckout credits the wallet of the transfer matching a paid checkout.
// The transfer row is locked so duplicate callbacks serialize.
func (s *TopupService) ConfirmCheckout(ctx context.Context, confirmation ports.CheckoutConfirmation) (*domain.Transfer, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	transfer, err := s.repos.Transfers.GetByIdentifierForUpdate(ctx, dbTx, confirmation.CheckoutID)
	if err != nil {
		return nil, internalErr("lock transfer", err)
	}
	if transfer == nil {
		s.log.Error().Str("checkout_id", confirmation.CheckoutID).Msg("payment callback: transfer not found")
		return nil, apperror.ErrNotFound("Transfer")
	}
	if transfer.Total != confirmation.PaidAmount {
		s.log.Error().
			Str("transfer_id", transfer.ID.String()).
			Int64("expected", transfer.Total).
			Int64("paid", confirmation.PaidAmount).
			Msg("payment callback: paid amount does not match transfer total")
		return nil, apperror.ErrAmountMismatch()
	}
	if transfer.Confirmed {
		s.log.Error().Str("transfer_id", transfer.ID.String()).Msg("payment callback: transfer already confirmed")
		return nil, apperror.ErrAlreadyConfirmed()
	}

	if err := s.repos.Transfers.Confirm(ctx, dbTx, transfer.ID); err != nil {
		return nil, internalErr("confirm transfer", err)
	}
	if err := applyDelta(ctx, s.repos.Wallets, dbTx, transfer.WalletID, confirmation.PaidAmount); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	transfer.Confirmed = true

	s.audit.Record(ctx, domain.AuditActionTransfer, domain.FormatTransferLog(transfer))
	s.log.Info().Str("transfer_id", transfer.ID.String()).Int64("total", transfer.Total).Msg("top-up confirmed")

	return transfer, nil
}
