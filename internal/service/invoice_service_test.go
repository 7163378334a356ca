package service

import (
	"context"
	"testing"
	"time"

	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/internal/core/ports"
	"mypayment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	bankHolder = domain.AuthenticatedUser{ID: "treasurer", Name: "Treasurer", IsBankHolder: true}
	manager    = domain.AuthenticatedUser{ID: "manager", Name: "Manager"}
)

func (f *ledgerFixture) invoiceService() *InvoiceService {
	svc := NewInvoiceService(f.store.repos(), f.store, f.audit, f.cfg, newTestLogger())
	svc.now = f.clock.Now
	return svc
}

func TestInvoiceCreate_ExcludesUnsettledTransactions(t *testing.T) {
	f := newLedgerFixture(t)
	f.seedTransaction(f.user.wallet, f.shop.WalletID, 600, time.Hour)
	f.seedTransaction(f.user.wallet, f.shop.WalletID, 200, 10*time.Second)
	svc := f.invoiceService()

	invoice, err := svc.Create(context.Background(), f.structure.ID, bankHolder)
	require.NoError(t, err)

	cutoff := f.clock.Now().Add(-f.cfg.SettleBackoff)
	assert.Equal(t, "PAY2025ECL0001", invoice.Reference)
	assert.Equal(t, int64(600), invoice.Total)
	assert.Equal(t, f.structure.Creation, invoice.StartDate)
	assert.Equal(t, cutoff, invoice.EndDate)
	assert.Equal(t, f.clock.Now(), invoice.Creation)
	assert.False(t, invoice.Paid)
	assert.False(t, invoice.Received)
	require.Len(t, invoice.Details, 1)
	assert.Equal(t, domain.InvoiceDetail{InvoiceID: invoice.ID, StoreID: f.shop.ID, Total: 600}, invoice.Details[0])

	// The store wallet keeps its balance until the invoice is received.
	assert.Equal(t, int64(800), f.store.balance(f.shop.WalletID))
}

func TestInvoiceCreate_OneDetailPerActiveStore(t *testing.T) {
	f := newLedgerFixture(t)
	foyer := f.addStore("Foyer", 0)
	f.addStore("Empty", 0)
	f.seedTransaction(f.user.wallet, f.shop.WalletID, 400, time.Hour)
	f.seedTransaction(f.user.wallet, foyer.WalletID, 150, time.Hour)

	invoice, err := f.invoiceService().Create(context.Background(), f.structure.ID, bankHolder)
	require.NoError(t, err)

	assert.Equal(t, int64(550), invoice.Total)
	totals := make(map[uuid.UUID]int64)
	for _, d := range invoice.Details {
		totals[d.StoreID] = d.Total
	}
	assert.Equal(t, map[uuid.UUID]int64{f.shop.ID: 400, foyer.ID: 150}, totals)
}

func TestInvoiceCreate_NeverDoubleCounts(t *testing.T) {
	f := newLedgerFixture(t)
	f.seedTransaction(f.user.wallet, f.shop.WalletID, 600, time.Hour)
	f.seedTransaction(f.user.wallet, f.shop.WalletID, 200, 10*time.Second)
	svc := f.invoiceService()
	ctx := context.Background()

	first, err := svc.Create(ctx, f.structure.ID, bankHolder)
	require.NoError(t, err)

	_, err = svc.Create(ctx, f.structure.ID, bankHolder)
	assertCode(t, err, apperror.CodeNothingToInvoice)

	// The young transaction settles and lands on the next invoice only.
	f.clock.Advance(time.Minute)
	second, err := svc.Create(ctx, f.structure.ID, bankHolder)
	require.NoError(t, err)
	assert.Equal(t, "PAY2025ECL0002", second.Reference)
	assert.Equal(t, int64(200), second.Total)
	assert.Equal(t, first.EndDate, second.StartDate)

	require.NoError(t, svc.MarkPaid(ctx, first.ID, true, bankHolder))
	require.NoError(t, svc.MarkReceived(ctx, first.ID, manager))

	assert.Equal(t, int64(200), f.store.balance(f.shop.WalletID))
	_, _, withdrawals := f.store.counts()
	assert.Equal(t, 1, withdrawals)
	assert.Equal(t,
		[]string{domain.FormatWithdrawalLog(&domain.Withdrawal{WalletID: f.shop.WalletID, Total: 600})},
		f.audit.recorded())

	_, err = svc.Create(ctx, f.structure.ID, bankHolder)
	assertCode(t, err, apperror.CodeNothingToInvoice)
}

func TestInvoiceCreate_Rejections(t *testing.T) {
	f := newLedgerFixture(t)
	f.seedTransaction(f.user.wallet, f.shop.WalletID, 600, time.Hour)
	svc := f.invoiceService()

	_, err := svc.Create(context.Background(), f.structure.ID, manager)
	assertCode(t, err, apperror.CodePermissionDenied)

	_, err = svc.Create(context.Background(), uuid.New(), bankHolder)
	assertCode(t, err, apperror.CodeNotFound)
}

func TestInvoiceCreate_NothingToInvoice(t *testing.T) {
	f := newLedgerFixture(t)
	_, err := f.invoiceService().Create(context.Background(), f.structure.ID, bankHolder)
	assertCode(t, err, apperror.CodeNothingToInvoice)
}

func TestInvoiceCreate_ReferenceRollsOverYear(t *testing.T) {
	f := newLedgerFixture(t)
	previousID := uuid.New()
	f.store.invoices[previousID] = domain.Invoice{
		ID:          previousID,
		Reference:   "PAY2024ECL0042",
		StructureID: f.structure.ID,
		EndDate:     f.clock.Now().AddDate(0, -3, 0),
		Paid:        true,
		Received:    true,
	}
	f.seedTransaction(f.user.wallet, f.shop.WalletID, 100, time.Hour)

	invoice, err := f.invoiceService().Create(context.Background(), f.structure.ID, bankHolder)
	require.NoError(t, err)
	assert.Equal(t, "PAY2025ECL0001", invoice.Reference)
	assert.Equal(t, f.clock.Now().AddDate(0, -3, 0), invoice.StartDate)
}

func newInvoiceUnderTest(t *testing.T) (*ledgerFixture, *InvoiceService, *domain.Invoice) {
	t.Helper()
	f := newLedgerFixture(t)
	f.seedTransaction(f.user.wallet, f.shop.WalletID, 600, time.Hour)
	svc := f.invoiceService()
	invoice, err := svc.Create(context.Background(), f.structure.ID, bankHolder)
	require.NoError(t, err)
	return f, svc, invoice
}

func TestInvoiceMarkPaid(t *testing.T) {
	ctx := context.Background()

	t.Run("bank holder only", func(t *testing.T) {
		_, svc, invoice := newInvoiceUnderTest(t)
		assertCode(t, svc.MarkPaid(ctx, invoice.ID, true, manager), apperror.CodePermissionDenied)
	})

	t.Run("unknown invoice", func(t *testing.T) {
		_, svc, _ := newInvoiceUnderTest(t)
		assertCode(t, svc.MarkPaid(ctx, uuid.New(), true, bankHolder), apperror.CodeNotFound)
	})

	t.Run("toggle", func(t *testing.T) {
		f, svc, invoice := newInvoiceUnderTest(t)
		require.NoError(t, svc.MarkPaid(ctx, invoice.ID, true, bankHolder))
		assert.True(t, f.store.invoices[invoice.ID].Paid)
		require.NoError(t, svc.MarkPaid(ctx, invoice.ID, false, bankHolder))
		assert.False(t, f.store.invoices[invoice.ID].Paid)
	})

	t.Run("received invoice stays paid", func(t *testing.T) {
		f, svc, invoice := newInvoiceUnderTest(t)
		require.NoError(t, svc.MarkPaid(ctx, invoice.ID, true, bankHolder))
		require.NoError(t, svc.MarkReceived(ctx, invoice.ID, manager))

		assertCode(t, svc.MarkPaid(ctx, invoice.ID, false, bankHolder), apperror.CodeInvalidState)
		assert.True(t, f.store.invoices[invoice.ID].Paid)
	})
}

func TestInvoiceMarkReceived(t *testing.T) {
	ctx := context.Background()

	t.Run("unpaid", func(t *testing.T) {
		f, svc, invoice := newInvoiceUnderTest(t)
		assertCode(t, svc.MarkReceived(ctx, invoice.ID, manager), apperror.CodeInvalidState)
		assert.Equal(t, int64(600), f.store.balance(f.shop.WalletID))
	})

	t.Run("not a manager", func(t *testing.T) {
		f, svc, invoice := newInvoiceUnderTest(t)
		require.NoError(t, svc.MarkPaid(ctx, invoice.ID, true, bankHolder))
		assertCode(t, svc.MarkReceived(ctx, invoice.ID, bankHolder), apperror.CodePermissionDenied)
		assert.Equal(t, int64(600), f.store.balance(f.shop.WalletID))
	})

	t.Run("administrator", func(t *testing.T) {
		f, svc, invoice := newInvoiceUnderTest(t)
		st := f.store.structures[f.structure.ID]
		st.AdministratorIDs = []string{"admin"}
		f.store.structures[f.structure.ID] = st

		require.NoError(t, svc.MarkPaid(ctx, invoice.ID, true, bankHolder))
		require.NoError(t, svc.MarkReceived(ctx, invoice.ID, domain.AuthenticatedUser{ID: "admin"}))
		assert.Equal(t, int64(0), f.store.balance(f.shop.WalletID))
	})

	t.Run("twice", func(t *testing.T) {
		f, svc, invoice := newInvoiceUnderTest(t)
		require.NoError(t, svc.MarkPaid(ctx, invoice.ID, true, bankHolder))
		require.NoError(t, svc.MarkReceived(ctx, invoice.ID, manager))

		assertCode(t, svc.MarkReceived(ctx, invoice.ID, manager), apperror.CodeAlreadyReceived)
		assert.Equal(t, int64(0), f.store.balance(f.shop.WalletID))
		_, _, withdrawals := f.store.counts()
		assert.Equal(t, 1, withdrawals)
	})

	t.Run("missing store rolls back", func(t *testing.T) {
		f, svc, invoice := newInvoiceUnderTest(t)
		require.NoError(t, svc.MarkPaid(ctx, invoice.ID, true, bankHolder))
		delete(f.store.stores, f.shop.ID)

		assertCode(t, svc.MarkReceived(ctx, invoice.ID, manager), apperror.CodeInvariantViolation)
		assert.False(t, f.store.invoices[invoice.ID].Received)
		assert.Zero(t, f.store.lockCount())
	})
}

func TestInvoiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("unpaid", func(t *testing.T) {
		f, svc, invoice := newInvoiceUnderTest(t)
		require.NoError(t, svc.Delete(ctx, invoice.ID, bankHolder))
		_, ok := f.store.invoices[invoice.ID]
		assert.False(t, ok)

		// The released amount can be invoiced again.
		again, err := svc.Create(ctx, f.structure.ID, bankHolder)
		require.NoError(t, err)
		assert.Equal(t, int64(600), again.Total)
	})

	t.Run("paid", func(t *testing.T) {
		_, svc, invoice := newInvoiceUnderTest(t)
		require.NoError(t, svc.MarkPaid(ctx, invoice.ID, true, bankHolder))
		assertCode(t, svc.Delete(ctx, invoice.ID, bankHolder), apperror.CodeInvalidState)
	})

	t.Run("bank holder only", func(t *testing.T) {
		_, svc, invoice := newInvoiceUnderTest(t)
		assertCode(t, svc.Delete(ctx, invoice.ID, manager), apperror.CodePermissionDenied)
	})
}

func TestInvoiceList(t *testing.T) {
	ctx := context.Background()
	f, svc, invoice := newInvoiceUnderTest(t)

	all, err := svc.List(ctx, bankHolder, ports.InvoiceListParams{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, invoice.ID, all[0].ID)

	_, err = svc.List(ctx, manager, ports.InvoiceListParams{})
	assertCode(t, err, apperror.CodePermissionDenied)

	mine, err := svc.ListByStructure(ctx, f.structure.ID, manager, ports.InvoiceListParams{StructureIDs: []uuid.UUID{uuid.New()}})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, invoice.ID, mine[0].ID)

	_, err = svc.ListByStructure(ctx, f.structure.ID, domain.AuthenticatedUser{ID: "someone"}, ports.InvoiceListParams{})
	assertCode(t, err, apperror.CodePermissionDenied)

	_, err = svc.ListByStructure(ctx, uuid.New(), manager, ports.InvoiceListParams{})
	assertCode(t, err, apperror.CodeNotFound)
}

func TestInvoiceGet(t *testing.T) {
	ctx := context.Background()
	f, svc, invoice := newInvoiceUnderTest(t)
	st := f.store.structures[f.structure.ID]
	st.AdministratorIDs = []string{"admin"}
	f.store.structures[f.structure.ID] = st

	for _, caller := range []domain.AuthenticatedUser{bankHolder, manager, {ID: "admin"}} {
		got, err := svc.Get(ctx, invoice.ID, caller)
		require.NoError(t, err, caller.ID)
		assert.Equal(t, invoice.Reference, got.Reference)
		require.Len(t, got.Details, 1)
		assert.Equal(t, f.shop.ID, got.Details[0].StoreID)
	}

	_, err := svc.Get(ctx, invoice.ID, f.seller)
	assertCode(t, err, apperror.CodePermissionDenied)

	_, err = svc.Get(ctx, uuid.New(), bankHolder)
	assertCode(t, err, apperror.CodeNotFound)
}
