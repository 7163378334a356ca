package service

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"sync"
	"testing"
	"time"

	"mypayment-ledger/config"
	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// recordingAudit keeps audit lines in memory.
type recordingAudit struct {
	mu    sync.Mutex
	lines []string
}

func (a *recordingAudit) Record(_ context.Context, _ domain.AuditAction, line string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lines = append(a.lines, line)
}

func (a *recordingAudit) recorded() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.lines...)
}

// testUser is a registered user with an active signing device.
type testUser struct {
	auth   domain.AuthenticatedUser
	wallet uuid.UUID
	device uuid.UUID
	priv   ed25519.PrivateKey
}

// ledgerFixture seeds one structure with one store, its seller and a paying user.
type ledgerFixture struct {
	clock     *testClock
	store     *memStore
	cfg       config.LedgerConfig
	audit     *recordingAudit
	structure domain.Structure
	shop      domain.Store
	seller    domain.AuthenticatedUser
	user      testUser
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	clock := newTestClock()
	f := &ledgerFixture{
		clock: clock,
		store: newMemStore(clock.Now),
		cfg:   config.DefaultLedgerConfig(),
		audit: &recordingAudit{},
	}

	f.structure = domain.Structure{
		ID:            uuid.New(),
		ShortID:       "ECL",
		Name:          "BDE",
		ManagerUserID: "manager",
		Creation:      clock.Now().AddDate(-1, 0, 0),
	}
	f.store.structures[f.structure.ID] = f.structure
	f.shop = f.addStore("Cafet", 0)

	f.seller = domain.AuthenticatedUser{ID: "seller", Name: "Seller"}
	f.addSeller(f.seller.ID, f.shop.ID, domain.Seller{CanBank: true, CanCancel: true, CanSeeHistory: true})

	f.user = f.addUser(t, "alice", "Alice", 1000)
	return f
}

func (f *ledgerFixture) addStore(name string, balance int64) domain.Store {
	wallet := domain.Wallet{ID: uuid.New(), Type: domain.WalletTypeStore, Balance: balance}
	f.store.wallets[wallet.ID] = wallet
	st := domain.Store{
		ID:          uuid.New(),
		Name:        name,
		StructureID: f.structure.ID,
		WalletID:    wallet.ID,
		Creation:    f.clock.Now().AddDate(-1, 0, 0),
	}
	f.store.stores[st.ID] = st
	return st
}

func (f *ledgerFixture) addSeller(userID string, storeID uuid.UUID, perms domain.Seller) {
	perms.UserID = userID
	perms.StoreID = storeID
	f.store.sellers[sellerKey(userID, storeID)] = perms
}

func (f *ledgerFixture) addUser(t *testing.T, id, name string, balance int64) testUser {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	wallet := domain.Wallet{ID: uuid.New(), Type: domain.WalletTypeUser, Balance: balance}
	f.store.wallets[wallet.ID] = wallet
	f.store.userPayments[id] = domain.UserPayment{
		UserID:               id,
		DisplayName:          name,
		WalletID:             wallet.ID,
		AcceptedTOSSignature: f.clock.Now().AddDate(0, -1, 0),
		AcceptedTOSVersion:   f.cfg.LatestTOSVersion,
	}
	device := domain.WalletDevice{
		ID:              uuid.New(),
		Name:            "phone",
		WalletID:        wallet.ID,
		PublicKey:       pub,
		Creation:        f.clock.Now().AddDate(0, -1, 0),
		Status:          domain.WalletDeviceStatusActive,
		ActivationToken: uuid.NewString(),
	}
	f.store.devices[device.ID] = device

	return testUser{
		auth:   domain.AuthenticatedUser{ID: id, Name: name},
		wallet: wallet.ID,
		device: device.ID,
		priv:   priv,
	}
}

// code signs a fresh store QR payload of tot cents issued now.
func (f *ledgerFixture) code(t *testing.T, u testUser, tot int64) domain.ScanInfo {
	t.Helper()
	return f.sign(t, u, domain.QRPayload{ID: uuid.New(), Tot: tot, Iat: f.clock.Now(), Key: u.device, Store: true})
}

func (f *ledgerFixture) sign(t *testing.T, u testUser, p domain.QRPayload) domain.ScanInfo {
	t.Helper()
	return domain.ScanInfo{QRPayload: p, Signature: signedPayload(t, u.priv, p)}
}

func (f *ledgerFixture) scanRequest(info domain.ScanInfo) ports.ScanRequest {
	return ports.ScanRequest{StoreID: f.shop.ID, Seller: f.seller, Info: info}
}

// seedTransaction inserts a confirmed transaction and moves the balances accordingly.
func (f *ledgerFixture) seedTransaction(debited, credited uuid.UUID, total int64, age time.Duration) domain.Transaction {
	txn := domain.Transaction{
		ID:               uuid.New(),
		DebitedWalletID:  debited,
		CreditedWalletID: credited,
		Type:             domain.TransactionTypeDirect,
		Total:            total,
		Creation:         f.clock.Now().Add(-age),
		Status:           domain.TransactionStatusConfirmed,
	}
	f.store.transactions[txn.ID] = txn
	d := f.store.wallets[debited]
	d.Balance -= total
	f.store.wallets[debited] = d
	c := f.store.wallets[credited]
	c.Balance += total
	f.store.wallets[credited] = c
	return txn
}

func (f *ledgerFixture) transferService() *TransferService {
	registry := NewQRRegistry(f.store.usedQRRepo(), nil, newTestLogger())
	svc := NewTransferService(
		f.store.repos(),
		registry,
		NewEd25519Verifier(newTestLogger()),
		f.store,
		f.audit,
		NoopNotifier{},
		f.cfg,
		newTestLogger(),
	)
	svc.now = f.clock.Now
	return svc
}
