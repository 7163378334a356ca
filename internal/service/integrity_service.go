package service

import (
	"context"
	"fmt"
	"time"

	"mypayment-ledger/config"
	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/internal/core/ports"
	"mypayment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// IntegrityService implements ports.IntegrityService for external auditors.
type IntegrityService struct {
	repos      Repositories
	transactor ports.DBTransactor
	cfg        config.LedgerConfig
	log        zerolog.Logger
}

// NewIntegrityService creates a new IntegrityService.
func NewIntegrityService(repos Repositories, transactor ports.DBTransactor, cfg config.LedgerConfig, log zerolog.Logger) *IntegrityService {
	return &IntegrityService{repos: repos, transactor: transactor, cfg: cfg, log: log}
}

// Snapshot returns wallet balances as of now - SettleBackoff. Unless initialisation is set,
// it also returns the transactions, transfers and refunds created in (lastChecked, date].
func (s *IntegrityService) Snapshot(ctx context.Context, initialisation bool, lastChecked time.Time) (*domain.IntegritySnapshot, error) {
	dbTx, now, err := s.transactor.BeginSnapshot(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin snapshot: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	date := now.Add(-s.cfg.SettleBackoff)

	wallets, err := s.repos.Wallets.List(ctx, dbTx)
	if err != nil {
		return nil, internalErr("list wallets", err)
	}
	young, err := s.repos.Transactions.List(ctx, dbTx, ports.TransactionFilter{After: &date, ExcludeCanceled: true})
	if err != nil {
		return nil, internalErr("list young transactions", err)
	}

	index := make(map[uuid.UUID]int, len(wallets))
	for i, w := range wallets {
		index[w.ID] = i
	}
	for _, t := range young {
		if i, ok := index[t.DebitedWalletID]; ok {
			wallets[i].Balance += t.Total
		}
		if i, ok := index[t.CreditedWalletID]; ok {
			wallets[i].Balance -= t.Total
		}
	}

	snapshot := &domain.IntegritySnapshot{
		Date:         date,
		Wallets:      wallets,
		Transactions: []domain.Transaction{},
		Transfers:    []domain.Transfer{},
		Refunds:      []domain.Refund{},
	}
	if initialisation {
		return snapshot, nil
	}

	transactions, err := s.repos.Transactions.List(ctx, dbTx, ports.TransactionFilter{After: &lastChecked, To: &date})
	if err != nil {
		return nil, internalErr("list transactions", err)
	}
	transfers, err := s.repos.Transfers.List(ctx, dbTx, ports.RecordFilter{After: &lastChecked, To: &date})
	if err != nil {
		return nil, internalErr("list transfers", err)
	}
	refunds, err := s.repos.Refunds.List(ctx, dbTx, ports.RecordFilter{After: &lastChecked, To: &date})
	if err != nil {
		return nil, internalErr("list refunds", err)
	}

	if transactions != nil {
		snapshot.Transactions = transactions
	}
	if transfers != nil {
		snapshot.Transfers = transfers
	}
	if refunds != nil {
		snapshot.Refunds = refunds
	}

	s.log.Info().
		Time("date", date).
		Time("last_checked", lastChecked).
		Int("transactions", len(snapshot.Transactions)).
		Msg("integrity snapshot served")

	return snapshot, nil
}
