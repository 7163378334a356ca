package service

import (
	"context"
	"sort"
	"time"

	"mypayment-ledger/config"
	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/internal/core/ports"
	"mypayment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const transferDisplayName = "Transfer"

// HistoryService implements ports.HistoryService. All reads are unlocked.
type HistoryService struct {
	repos Repositories
	cfg   config.LedgerConfig
	now   func() time.Time
	log   zerolog.Logger
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(repos Repositories, cfg config.LedgerConfig, log zerolog.Logger) *HistoryService {
	return &HistoryService{repos: repos, cfg: cfg, now: utcNow, log: log}
}

// ownerNames resolves wallet display names once per request.
type ownerNames struct {
	ctx     context.Context
	wallets ports.WalletRepository
	names   map[uuid.UUID]string
}

func (o *ownerNames) name(id uuid.UUID) (string, error) {
	if n, ok := o.names[id]; ok {
		return n, nil
	}
	owner, err := o.wallets.GetOwner(o.ctx, nil, id)
	if err != nil {
		return "", internalErr("get wallet owner", err)
	}
	n := "Unknown"
	if owner != nil && owner.Name != "" {
		n = owner.Name
	}
	o.names[id] = n
	return n, nil
}

func (s *HistoryService) names(ctx context.Context) *ownerNames {
	return &ownerNames{ctx: ctx, wallets: s.repos.Wallets, names: make(map[uuid.UUID]string)}
}

// refundOf returns the refund summary of a REFUNDED transaction.
func (s *HistoryService) refundOf(ctx context.Context, t *domain.Transaction) (*domain.HistoryRefund, error) {
	if t.Status != domain.TransactionStatusRefunded {
		return nil, nil
	}
	r, err := s.repos.Refunds.GetByTransactionID(ctx, nil, t.ID)
	if err != nil {
		return nil, internalErr("get refund", err)
	}
	if r == nil {
		return nil, nil
	}
	return &domain.HistoryRefund{Total: r.Total, Creation: r.Creation}, nil
}

// UserHistory merges the transactions, top-ups and refunds of the user's wallet.
func (s *HistoryService) UserHistory(ctx context.Context, user domain.AuthenticatedUser, from, to *time.Time) ([]domain.HistoryEntry, error) {
	up, err := s.repos.UserPayments.GetByUserID(ctx, nil, user.ID)
	if err != nil {
		return nil, internalErr("get user payment", err)
	}
	if up == nil {
		return nil, apperror.ErrNotFound("User payment")
	}
	walletID := up.WalletID
	names := s.names(ctx)
	now := s.now()

	transactions, err := s.repos.Transactions.List(ctx, nil, ports.TransactionFilter{WalletID: &walletID, From: from, To: to})
	if err != nil {
		return nil, internalErr("list transactions", err)
	}

	history := make([]domain.HistoryEntry, 0, len(transactions))
	for i := range transactions {
		t := &transactions[i]
		entryType, other := domain.HistoryTypeGiven, t.CreditedWalletID
		if t.CreditedWalletID == walletID {
			entryType, other = domain.HistoryTypeReceived, t.DebitedWalletID
		}
		otherName, err := names.name(other)
		if err != nil {
			return nil, err
		}
		refund, err := s.refundOf(ctx, t)
		if err != nil {
			return nil, err
		}
		history = append(history, domain.HistoryEntry{
			ID:        t.ID,
			Type:      entryType,
			OtherName: otherName,
			Total:     t.Total,
			Creation:  t.Creation,
			Status:    t.Status,
			Refund:    refund,
		})
	}

	transfers, err := s.repos.Transfers.List(ctx, nil, ports.RecordFilter{WalletID: &walletID, From: from, To: to})
	if err != nil {
		return nil, internalErr("list transfers", err)
	}
	for i := range transfers {
		tr := &transfers[i]
		history = append(history, domain.HistoryEntry{
			ID:        tr.ID,
			Type:      domain.HistoryTypeTransfer,
			OtherName: transferDisplayName,
			Total:     tr.Total,
			Creation:  tr.Creation,
			Status:    tr.Status(now, s.cfg.TransferPendingWindow),
		})
	}

	refunds, err := s.repos.Refunds.List(ctx, nil, ports.RecordFilter{WalletID: &walletID, From: from, To: to})
	if err != nil {
		return nil, internalErr("list refunds", err)
	}
	for _, r := range refunds {
		entryType, other := refundSide(r, walletID)
		otherName, err := names.name(other)
		if err != nil {
			return nil, err
		}
		history = append(history, domain.HistoryEntry{
			ID:        r.ID,
			Type:      entryType,
			OtherName: otherName,
			Total:     r.Total,
			Creation:  r.Creation,
			Status:    domain.TransactionStatusConfirmed,
		})
	}

	sort.SliceStable(history, func(i, j int) bool { return history[i].Creation.Before(history[j].Creation) })
	return history, nil
}

// StoreHistory lists the store wallet activity to sellers allowed to see it.
func (s *HistoryService) StoreHistory(ctx context.Context, storeID uuid.UUID, user domain.AuthenticatedUser, from, to *time.Time) ([]domain.StoreHistoryEntry, error) {
	store, err := s.repos.Stores.GetByID(ctx, nil, storeID)
	if err != nil {
		return nil, internalErr("get store", err)
	}
	if store == nil {
		return nil, apperror.ErrNotFound("Store")
	}
	seller, err := s.repos.Stores.GetSeller(ctx, nil, user.ID, store.ID)
	if err != nil {
		return nil, internalErr("get seller", err)
	}
	if seller == nil || !seller.CanSeeHistory {
		return nil, apperror.ErrPermissionDenied("User is not authorized to see the store history")
	}

	walletID := store.WalletID
	names := s.names(ctx)

	transactions, err := s.repos.Transactions.List(ctx, nil, ports.TransactionFilter{WalletID: &walletID, From: from, To: to})
	if err != nil {
		return nil, internalErr("list transactions", err)
	}

	history := make([]domain.StoreHistoryEntry, 0, len(transactions))
	for i := range transactions {
		t := &transactions[i]
		entryType, other := domain.HistoryTypeReceived, t.DebitedWalletID
		if t.DebitedWalletID == walletID {
			entryType, other = domain.HistoryTypeGiven, t.CreditedWalletID
		}
		otherName, err := names.name(other)
		if err != nil {
			return nil, err
		}
		refund, err := s.refundOf(ctx, t)
		if err != nil {
			return nil, err
		}
		history = append(history, domain.StoreHistoryEntry{
			ID:           t.ID,
			Type:         entryType,
			OtherName:    otherName,
			Total:        t.Total,
			Creation:     t.Creation,
			Status:       t.Status,
			SellerUserID: t.SellerUserID,
			StoreNote:    t.StoreNote,
			Refund:       refund,
		})
	}

	transfers, err := s.repos.Transfers.List(ctx, nil, ports.RecordFilter{WalletID: &walletID, From: from, To: to})
	if err != nil {
		return nil, internalErr("list transfers", err)
	}
	if len(transfers) > 0 {
		s.log.Error().Str("store_id", store.ID.String()).Int("transfers", len(transfers)).Msg("store wallet has top-ups")
	}

	refunds, err := s.repos.Refunds.List(ctx, nil, ports.RecordFilter{WalletID: &walletID, From: from, To: to})
	if err != nil {
		return nil, internalErr("list refunds", err)
	}
	for _, r := range refunds {
		entryType, other := refundSide(r, walletID)
		otherName, err := names.name(other)
		if err != nil {
			return nil, err
		}
		history = append(history, domain.StoreHistoryEntry{
			ID:           r.ID,
			Type:         entryType,
			OtherName:    otherName,
			Total:        r.Total,
			Creation:     r.Creation,
			Status:       domain.TransactionStatusConfirmed,
			SellerUserID: r.SellerUserID,
		})
	}

	sort.SliceStable(history, func(i, j int) bool { return history[i].Creation.Before(history[j].Creation) })
	return history, nil
}

// refundSide tells whether walletID paid or received the refund, and who the other side is.
func refundSide(r domain.Refund, walletID uuid.UUID) (domain.HistoryType, uuid.UUID) {
	if r.DebitedWalletID == walletID {
		return domain.HistoryTypeRefundDebited, r.CreditedWalletID
	}
	return domain.HistoryTypeRefundCredited, r.DebitedWalletID
}
