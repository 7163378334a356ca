package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/internal/core/ports"
	"mypayment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// memStore is an in-memory ledger database for service tests.
// Writes apply immediately and are journaled on the calling fakeTx so a rollback
// (or a savepoint rollback) undoes them. Row locks are held by the root transaction
// until it ends. A nil tx reads and writes without locks, like the pool.
type memStore struct {
	mu   sync.Mutex
	cond *sync.Cond

	wallets      map[uuid.UUID]domain.Wallet
	devices      map[uuid.UUID]domain.WalletDevice
	userPayments map[string]domain.UserPayment
	structures   map[uuid.UUID]domain.Structure
	stores       map[uuid.UUID]domain.Store
	sellers      map[string]domain.Seller
	memberships  []domain.Membership
	transactions map[uuid.UUID]domain.Transaction
	refunds      map[uuid.UUID]domain.Refund
	transfers    map[uuid.UUID]domain.Transfer
	invoices     map[uuid.UUID]domain.Invoice
	withdrawals  map[uuid.UUID]domain.Withdrawal
	usedQR       map[uuid.UUID]domain.UsedQRCode

	locks map[string]*fakeTx
	fail  map[string]error
	clock func() time.Time
}

func newMemStore(clock func() time.Time) *memStore {
	s := &memStore{
		wallets:      make(map[uuid.UUID]domain.Wallet),
		devices:      make(map[uuid.UUID]domain.WalletDevice),
		userPayments: make(map[string]domain.UserPayment),
		structures:   make(map[uuid.UUID]domain.Structure),
		stores:       make(map[uuid.UUID]domain.Store),
		sellers:      make(map[string]domain.Seller),
		transactions: make(map[uuid.UUID]domain.Transaction),
		refunds:      make(map[uuid.UUID]domain.Refund),
		transfers:    make(map[uuid.UUID]domain.Transfer),
		invoices:     make(map[uuid.UUID]domain.Invoice),
		withdrawals:  make(map[uuid.UUID]domain.Withdrawal),
		usedQR:       make(map[uuid.UUID]domain.UsedQRCode),
		locks:        make(map[string]*fakeTx),
		fail:         make(map[string]error),
		clock:        clock,
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *memStore) repos() Repositories {
	return Repositories{
		Wallets:      memWallets{s},
		Devices:      memDevices{s},
		UserPayments: memUserPayments{s},
		Structures:   memStructures{s},
		Stores:       memStores{s},
		Memberships:  memMemberships{s},
		Transactions: memTransactions{s},
		Refunds:      memRefunds{s},
		Transfers:    memTransfers{s},
		Invoices:     memInvoices{s},
		Withdrawals:  memWithdrawals{s},
	}
}

func (s *memStore) usedQRRepo() ports.UsedQRCodeRepository { return memUsedQR{s} }

// failOn makes the named operation return err until cleared with a nil err.
func (s *memStore) failOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fail, op)
		return
	}
	s.fail[op] = err
}

// Begin and BeginSnapshot implement ports.DBTransactor.
func (s *memStore) Begin(context.Context) (pgx.Tx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail["begin"]; err != nil {
		return nil, err
	}
	t := &fakeTx{store: s}
	t.root = t
	return t, nil
}

func (s *memStore) BeginSnapshot(ctx context.Context) (pgx.Tx, time.Time, error) {
	tx, err := s.Begin(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	return tx, s.clock(), nil
}

// fakeTx is a pgx.Tx whose nested Begin behaves like a savepoint.
// Methods the services never call are left to the nil embedded interface.
type fakeTx struct {
	pgx.Tx
	store  *memStore
	parent *fakeTx
	root   *fakeTx
	undo   []func()
	held   []string
	done   bool
}

func (t *fakeTx) Begin(context.Context) (pgx.Tx, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if t.done {
		return nil, pgx.ErrTxClosed
	}
	return &fakeTx{store: t.store, parent: t, root: t.root}, nil
}

func (t *fakeTx) Commit(context.Context) error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.done {
		return pgx.ErrTxClosed
	}
	if err := s.fail["commit"]; err != nil && t.parent == nil {
		t.rollbackLocked()
		return err
	}
	t.done = true
	if t.parent != nil {
		t.parent.undo = append(t.parent.undo, t.undo...)
		t.undo = nil
		return nil
	}
	t.undo = nil
	t.releaseLocked()
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.done {
		return pgx.ErrTxClosed
	}
	t.rollbackLocked()
	return nil
}

func (t *fakeTx) rollbackLocked() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
	t.done = true
	if t.parent == nil {
		t.releaseLocked()
	}
}

func (t *fakeTx) releaseLocked() {
	for _, key := range t.held {
		delete(t.store.locks, key)
	}
	t.held = nil
	t.store.cond.Broadcast()
}

func asFakeTx(tx pgx.Tx) *fakeTx {
	if tx == nil {
		return nil
	}
	ft, _ := tx.(*fakeTx)
	return ft
}

// lock blocks until the root transaction of tx owns key. Callers hold s.mu.
func (s *memStore) lock(tx pgx.Tx, key string) {
	ft := asFakeTx(tx)
	if ft == nil {
		return
	}
	root := ft.root
	for {
		owner, ok := s.locks[key]
		if !ok {
			s.locks[key] = root
			root.held = append(root.held, key)
			return
		}
		if owner == root {
			return
		}
		s.cond.Wait()
	}
}

// journal registers undo on tx. Callers hold s.mu.
func (s *memStore) journal(tx pgx.Tx, undo func()) {
	if ft := asFakeTx(tx); ft != nil {
		ft.undo = append(ft.undo, undo)
	}
}

func inRange(at time.Time, from, to *time.Time) bool {
	if from != nil && at.Before(*from) {
		return false
	}
	if to != nil && at.After(*to) {
		return false
	}
	return true
}

func afterBound(at time.Time, after *time.Time) bool {
	return after == nil || at.After(*after)
}

// ---------------------------------------------------------------------------
// Wallets
// ---------------------------------------------------------------------------

type memWallets struct{ s *memStore }

func (r memWallets) Create(_ context.Context, tx pgx.Tx, wallet *domain.Wallet) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.wallets[wallet.ID]; ok {
		return apperror.ErrAlreadyExists("Wallet")
	}
	s.wallets[wallet.ID] = *wallet
	id := wallet.ID
	s.journal(tx, func() { delete(s.wallets, id) })
	return nil
}

func (r memWallets) GetByID(_ context.Context, _ pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.wallets[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r memWallets) GetOwner(_ context.Context, _ pgx.Tx, id uuid.UUID) (*domain.WalletOwner, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wallets[id]
	if !ok {
		return nil, nil
	}
	owner := &domain.WalletOwner{Wallet: w}
	for _, up := range s.userPayments {
		if up.WalletID == id {
			userID := up.UserID
			owner.UserID = &userID
			owner.Name = up.DisplayName
		}
	}
	for _, st := range s.stores {
		if st.WalletID == id {
			storeID := st.ID
			owner.StoreID = &storeID
			owner.Name = st.Name
		}
	}
	return owner, nil
}

func (r memWallets) LockForUpdate(_ context.Context, tx pgx.Tx, ids ...uuid.UUID) (map[uuid.UUID]*domain.Wallet, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	sorted := append([]uuid.UUID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })

	locked := make(map[uuid.UUID]*domain.Wallet, len(sorted))
	for _, id := range sorted {
		s.lock(tx, "wallet:"+id.String())
		w, ok := s.wallets[id]
		if !ok {
			return nil, ports.ErrWalletNotFound
		}
		locked[id] = &w
	}
	return locked, nil
}

func (r memWallets) IncrementBalance(_ context.Context, tx pgx.Tx, id uuid.UUID, delta int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail["wallets.increment"]; err != nil {
		return err
	}
	s.lock(tx, "wallet:"+id.String())
	w, ok := s.wallets[id]
	if !ok {
		return ports.ErrWalletNotFound
	}
	w.Balance += delta
	s.wallets[id] = w
	s.journal(tx, func() {
		w := s.wallets[id]
		w.Balance -= delta
		s.wallets[id] = w
	})
	return nil
}

func (r memWallets) List(context.Context, pgx.Tx) ([]domain.Wallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Wallet, 0, len(r.s.wallets))
	for _, w := range r.s.wallets {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (r memWallets) Delete(_ context.Context, tx pgx.Tx, id uuid.UUID) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.wallets[id]
	if !ok {
		return nil
	}
	delete(s.wallets, id)
	s.journal(tx, func() { s.wallets[id] = prev })
	return nil
}

// ---------------------------------------------------------------------------
// Devices
// ---------------------------------------------------------------------------

type memDevices struct{ s *memStore }

func (r memDevices) Create(_ context.Context, tx pgx.Tx, device *domain.WalletDevice) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	s.devices[device.ID] = *device
	id := device.ID
	s.journal(tx, func() { delete(s.devices, id) })
	return nil
}

func (r memDevices) GetByID(_ context.Context, _ pgx.Tx, id uuid.UUID) (*domain.WalletDevice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.devices[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r memDevices) GetByActivationToken(_ context.Context, _ pgx.Tx, token string) (*domain.WalletDevice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.devices {
		if d.ActivationToken == token {
			return &d, nil
		}
	}
	return nil, nil
}

func (r memDevices) ListByWallet(_ context.Context, _ pgx.Tx, walletID uuid.UUID) ([]domain.WalletDevice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.WalletDevice
	for _, d := range r.s.devices {
		if d.WalletID == walletID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Creation.Before(out[j].Creation) })
	return out, nil
}

func (r memDevices) UpdateStatus(_ context.Context, tx pgx.Tx, id uuid.UUID, status domain.WalletDeviceStatus) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.devices[id]
	if !ok {
		return nil
	}
	d := prev
	d.Status = status
	s.devices[id] = d
	s.journal(tx, func() { s.devices[id] = prev })
	return nil
}

// ---------------------------------------------------------------------------
// User payments
// ---------------------------------------------------------------------------

type memUserPayments struct{ s *memStore }

func (r memUserPayments) Create(_ context.Context, tx pgx.Tx, up *domain.UserPayment) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.userPayments[up.UserID]; ok {
		return apperror.ErrAlreadyExists("User payment")
	}
	s.userPayments[up.UserID] = *up
	userID := up.UserID
	s.journal(tx, func() { delete(s.userPayments, userID) })
	return nil
}

func (r memUserPayments) GetByUserID(_ context.Context, _ pgx.Tx, userID string) (*domain.UserPayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	up, ok := r.s.userPayments[userID]
	if !ok {
		return nil, nil
	}
	return &up, nil
}

func (r memUserPayments) GetByWalletID(_ context.Context, _ pgx.Tx, walletID uuid.UUID) (*domain.UserPayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, up := range r.s.userPayments {
		if up.WalletID == walletID {
			return &up, nil
		}
	}
	return nil, nil
}

func (r memUserPayments) SignTOS(_ context.Context, tx pgx.Tx, userID string, version int, at time.Time) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.userPayments[userID]
	if !ok {
		return nil
	}
	up := prev
	up.AcceptedTOSVersion = version
	up.AcceptedTOSSignature = at
	s.userPayments[userID] = up
	s.journal(tx, func() { s.userPayments[userID] = prev })
	return nil
}

// ---------------------------------------------------------------------------
// Structures, stores, sellers and memberships
// ---------------------------------------------------------------------------

type memStructures struct{ s *memStore }

func (r memStructures) GetByID(_ context.Context, _ pgx.Tx, id uuid.UUID) (*domain.Structure, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.structures[id]
	if !ok {
		return nil, nil
	}
	st.AdministratorIDs = append([]string(nil), st.AdministratorIDs...)
	return &st, nil
}

func (r memStructures) setAdministrators(tx pgx.Tx, id uuid.UUID, apply func([]string) []string) {
	s := r.s
	prev := s.structures[id]
	next := prev
	next.AdministratorIDs = apply(append([]string(nil), prev.AdministratorIDs...))
	s.structures[id] = next
	s.journal(tx, func() { s.structures[id] = prev })
}

func (r memStructures) AddAdministrator(_ context.Context, tx pgx.Tx, structureID uuid.UUID, userID string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.structures[structureID]
	if st.IsAdministrator(userID) {
		return apperror.ErrAlreadyExists("Structure administrator")
	}
	r.setAdministrators(tx, structureID, func(ids []string) []string {
		ids = append(ids, userID)
		sort.Strings(ids)
		return ids
	})
	return nil
}

func (r memStructures) RemoveAdministrator(_ context.Context, tx pgx.Tx, structureID uuid.UUID, userID string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	r.setAdministrators(tx, structureID, func(ids []string) []string {
		out := ids[:0]
		for _, id := range ids {
			if id != userID {
				out = append(out, id)
			}
		}
		return out
	})
	return nil
}

type memStores struct{ s *memStore }

func sellerKey(userID string, storeID uuid.UUID) string {
	return userID + "|" + storeID.String()
}

func (r memStores) GetByID(_ context.Context, _ pgx.Tx, id uuid.UUID) (*domain.Store, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.stores[id]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (r memStores) GetByWalletID(_ context.Context, _ pgx.Tx, walletID uuid.UUID) (*domain.Store, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, st := range r.s.stores {
		if st.WalletID == walletID {
			return &st, nil
		}
	}
	return nil, nil
}

func (r memStores) ListByStructure(_ context.Context, _ pgx.Tx, structureID uuid.UUID) ([]domain.Store, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Store
	for _, st := range r.s.stores {
		if st.StructureID == structureID {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memStores) GetSeller(_ context.Context, _ pgx.Tx, userID string, storeID uuid.UUID) (*domain.Seller, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sel, ok := r.s.sellers[sellerKey(userID, storeID)]
	if !ok {
		return nil, nil
	}
	return &sel, nil
}

func (r memStores) Create(_ context.Context, tx pgx.Tx, store *domain.Store) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.stores {
		if existing.Name == store.Name {
			return apperror.ErrAlreadyExists("Store with this name")
		}
	}
	s.stores[store.ID] = *store
	id := store.ID
	s.journal(tx, func() { delete(s.stores, id) })
	return nil
}

func (r memStores) Rename(_ context.Context, tx pgx.Tx, id uuid.UUID, name string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.stores {
		if existing.Name == name && existing.ID != id {
			return apperror.ErrAlreadyExists("Store with this name")
		}
	}
	prev, ok := s.stores[id]
	if !ok {
		return nil
	}
	next := prev
	next.Name = name
	s.stores[id] = next
	s.journal(tx, func() { s.stores[id] = prev })
	return nil
}

func (r memStores) Delete(_ context.Context, tx pgx.Tx, id uuid.UUID) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.stores[id]
	if !ok {
		return nil
	}
	delete(s.stores, id)
	removed := map[string]domain.Seller{}
	for key, sel := range s.sellers {
		if sel.StoreID == id {
			removed[key] = sel
			delete(s.sellers, key)
		}
	}
	s.journal(tx, func() {
		s.stores[id] = prev
		for key, sel := range removed {
			s.sellers[key] = sel
		}
	})
	return nil
}

func (r memStores) listSellers(match func(domain.Seller) bool) []domain.Seller {
	var out []domain.Seller
	for _, sel := range r.s.sellers {
		if match(sel) {
			out = append(out, sel)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return sellerKey(out[i].UserID, out[i].StoreID) < sellerKey(out[j].UserID, out[j].StoreID)
	})
	return out
}

func (r memStores) ListSellers(_ context.Context, _ pgx.Tx, storeID uuid.UUID) ([]domain.Seller, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.listSellers(func(sel domain.Seller) bool { return sel.StoreID == storeID }), nil
}

func (r memStores) ListSellersByUser(_ context.Context, _ pgx.Tx, userID string) ([]domain.Seller, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.listSellers(func(sel domain.Seller) bool { return sel.UserID == userID }), nil
}

func (r memStores) CreateSeller(_ context.Context, tx pgx.Tx, seller *domain.Seller) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail["sellers.create"]; err != nil {
		return err
	}
	key := sellerKey(seller.UserID, seller.StoreID)
	if _, ok := s.sellers[key]; ok {
		return apperror.ErrAlreadyExists("Seller")
	}
	s.sellers[key] = *seller
	s.journal(tx, func() { delete(s.sellers, key) })
	return nil
}

func (r memStores) UpdateSeller(_ context.Context, tx pgx.Tx, seller *domain.Seller) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	key := sellerKey(seller.UserID, seller.StoreID)
	prev, ok := s.sellers[key]
	if !ok {
		return nil
	}
	s.sellers[key] = *seller
	s.journal(tx, func() { s.sellers[key] = prev })
	return nil
}

func (r memStores) DeleteSeller(_ context.Context, tx pgx.Tx, userID string, storeID uuid.UUID) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	key := sellerKey(userID, storeID)
	prev, ok := s.sellers[key]
	if !ok {
		return nil
	}
	delete(s.sellers, key)
	s.journal(tx, func() { s.sellers[key] = prev })
	return nil
}

type memMemberships struct{ s *memStore }

func (r memMemberships) HasValidMembership(_ context.Context, _ pgx.Tx, userID string, associationMembershipID uuid.UUID, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.memberships {
		m := &r.s.memberships[i]
		if m.UserID == userID && m.AssociationMembershipID == associationMembershipID && m.ValidAt(at) {
			return true, nil
		}
	}
	return false, nil
}

// ---------------------------------------------------------------------------
// Transactions and refunds
// ---------------------------------------------------------------------------

type memTransactions struct{ s *memStore }

func (r memTransactions) Create(_ context.Context, tx pgx.Tx, transaction *domain.Transaction) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail["transactions.create"]; err != nil {
		return err
	}
	s.transactions[transaction.ID] = *transaction
	id := transaction.ID
	s.journal(tx, func() { delete(s.transactions, id) })
	return nil
}

func (r memTransactions) GetByID(_ context.Context, _ pgx.Tx, id uuid.UUID) (*domain.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transactions[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r memTransactions) GetByIDForUpdate(_ context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Transaction, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lock(tx, "transaction:"+id.String())
	t, ok := s.transactions[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r memTransactions) UpdateStatus(_ context.Context, tx pgx.Tx, id uuid.UUID, status domain.TransactionStatus) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.transactions[id]
	if !ok {
		return nil
	}
	t := prev
	t.Status = status
	s.transactions[id] = t
	s.journal(tx, func() { s.transactions[id] = prev })
	return nil
}

func (r memTransactions) List(_ context.Context, _ pgx.Tx, filter ports.TransactionFilter) ([]domain.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Transaction
	for _, t := range r.s.transactions {
		if filter.WalletID != nil && t.DebitedWalletID != *filter.WalletID && t.CreditedWalletID != *filter.WalletID {
			continue
		}
		if filter.ExcludeCanceled && t.Status == domain.TransactionStatusCanceled {
			continue
		}
		if !inRange(t.Creation, filter.From, filter.To) || !afterBound(t.Creation, filter.After) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Creation.Before(out[j].Creation) })
	return out, nil
}

type memRefunds struct{ s *memStore }

func (r memRefunds) Create(_ context.Context, tx pgx.Tx, refund *domain.Refund) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.refunds {
		if existing.TransactionID == refund.TransactionID {
			return apperror.ErrAlreadyExists("Refund")
		}
	}
	s.refunds[refund.ID] = *refund
	id := refund.ID
	s.journal(tx, func() { delete(s.refunds, id) })
	return nil
}

func (r memRefunds) GetByTransactionID(_ context.Context, _ pgx.Tx, transactionID uuid.UUID) (*domain.Refund, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ref := range r.s.refunds {
		if ref.TransactionID == transactionID {
			return &ref, nil
		}
	}
	return nil, nil
}

func (r memRefunds) List(_ context.Context, _ pgx.Tx, filter ports.RecordFilter) ([]domain.Refund, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Refund
	for _, ref := range r.s.refunds {
		if filter.WalletID != nil && ref.DebitedWalletID != *filter.WalletID && ref.CreditedWalletID != *filter.WalletID {
			continue
		}
		if !inRange(ref.Creation, filter.From, filter.To) || !afterBound(ref.Creation, filter.After) {
			continue
		}
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Creation.Before(out[j].Creation) })
	return out, nil
}

// ---------------------------------------------------------------------------
// Transfers
// ---------------------------------------------------------------------------

type memTransfers struct{ s *memStore }

func (r memTransfers) Create(_ context.Context, tx pgx.Tx, transfer *domain.Transfer) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transfers[transfer.ID] = *transfer
	id := transfer.ID
	s.journal(tx, func() { delete(s.transfers, id) })
	return nil
}

func (r memTransfers) GetByIdentifierForUpdate(_ context.Context, tx pgx.Tx, identifier string) (*domain.Transfer, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lock(tx, "transfer:"+identifier)
	for _, tr := range s.transfers {
		if tr.TransferIdentifier == identifier {
			return &tr, nil
		}
	}
	return nil, nil
}

func (r memTransfers) Confirm(_ context.Context, tx pgx.Tx, id uuid.UUID) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.transfers[id]
	if !ok {
		return nil
	}
	tr := prev
	tr.Confirmed = true
	s.transfers[id] = tr
	s.journal(tx, func() { s.transfers[id] = prev })
	return nil
}

func (r memTransfers) List(_ context.Context, _ pgx.Tx, filter ports.RecordFilter) ([]domain.Transfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Transfer
	for _, tr := range r.s.transfers {
		if filter.WalletID != nil && tr.WalletID != *filter.WalletID {
			continue
		}
		if !inRange(tr.Creation, filter.From, filter.To) || !afterBound(tr.Creation, filter.After) {
			continue
		}
		out = append(out, tr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Creation.Before(out[j].Creation) })
	return out, nil
}

// ---------------------------------------------------------------------------
// Invoices and withdrawals
// ---------------------------------------------------------------------------

type memInvoices struct{ s *memStore }

func cloneInvoice(inv domain.Invoice) *domain.Invoice {
	inv.Details = append([]domain.InvoiceDetail(nil), inv.Details...)
	return &inv
}

func (r memInvoices) Create(_ context.Context, tx pgx.Tx, invoice *domain.Invoice) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.invoices {
		if existing.Reference == invoice.Reference {
			return apperror.ErrAlreadyExists("Invoice")
		}
	}
	s.invoices[invoice.ID] = *cloneInvoice(*invoice)
	id := invoice.ID
	s.journal(tx, func() { delete(s.invoices, id) })
	return nil
}

func (r memInvoices) GetByID(_ context.Context, _ pgx.Tx, id uuid.UUID) (*domain.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	return cloneInvoice(inv), nil
}

func (r memInvoices) GetByIDForUpdate(_ context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Invoice, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lock(tx, "invoice:"+id.String())
	inv, ok := s.invoices[id]
	if !ok {
		return nil, nil
	}
	return cloneInvoice(inv), nil
}

func (r memInvoices) GetLastByStructure(_ context.Context, _ pgx.Tx, structureID uuid.UUID) (*domain.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var last *domain.Invoice
	for _, inv := range r.s.invoices {
		if inv.StructureID != structureID {
			continue
		}
		if last == nil || inv.EndDate.After(last.EndDate) {
			last = cloneInvoice(inv)
		}
	}
	return last, nil
}

func (r memInvoices) SumUnreceivedByStore(_ context.Context, _ pgx.Tx, storeID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sum int64
	for _, inv := range r.s.invoices {
		if inv.Received {
			continue
		}
		for _, d := range inv.Details {
			if d.StoreID == storeID {
				sum += d.Total
			}
		}
	}
	return sum, nil
}

func (r memInvoices) List(_ context.Context, _ pgx.Tx, params ports.InvoiceListParams) ([]domain.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Invoice
	for _, inv := range r.s.invoices {
		if len(params.StructureIDs) > 0 {
			found := false
			for _, id := range params.StructureIDs {
				if id == inv.StructureID {
					found = true
				}
			}
			if !found {
				continue
			}
		}
		if !inRange(inv.EndDate, params.From, params.To) {
			continue
		}
		out = append(out, *cloneInvoice(inv))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndDate.After(out[j].EndDate) })
	return out, nil
}

func (r memInvoices) update(tx pgx.Tx, id uuid.UUID, apply func(*domain.Invoice)) {
	s := r.s
	prev, ok := s.invoices[id]
	if !ok {
		return
	}
	next := cloneInvoice(prev)
	apply(next)
	s.invoices[id] = *next
	s.journal(tx, func() { s.invoices[id] = prev })
}

func (r memInvoices) UpdatePaid(_ context.Context, tx pgx.Tx, id uuid.UUID, paid bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.update(tx, id, func(inv *domain.Invoice) { inv.Paid = paid })
	return nil
}

func (r memInvoices) MarkReceived(_ context.Context, tx pgx.Tx, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.update(tx, id, func(inv *domain.Invoice) { inv.Received = true })
	return nil
}

func (r memInvoices) Delete(_ context.Context, tx pgx.Tx, id uuid.UUID) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.invoices[id]
	if !ok {
		return nil
	}
	delete(s.invoices, id)
	s.journal(tx, func() { s.invoices[id] = prev })
	return nil
}

type memWithdrawals struct{ s *memStore }

func (r memWithdrawals) Create(_ context.Context, tx pgx.Tx, withdrawal *domain.Withdrawal) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	s.withdrawals[withdrawal.ID] = *withdrawal
	id := withdrawal.ID
	s.journal(tx, func() { delete(s.withdrawals, id) })
	return nil
}

// ---------------------------------------------------------------------------
// Used QR codes
// ---------------------------------------------------------------------------

type memUsedQR struct{ s *memStore }

func (r memUsedQR) Create(_ context.Context, tx pgx.Tx, used *domain.UsedQRCode) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.usedQR[used.ID]; ok {
		return apperror.ErrAlreadyUsed()
	}
	s.usedQR[used.ID] = *used
	id := used.ID
	s.journal(tx, func() { delete(s.usedQR, id) })
	return nil
}

func (r memUsedQR) Exists(_ context.Context, _ pgx.Tx, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail["usedqr.exists"]; err != nil {
		return false, err
	}
	_, ok := r.s.usedQR[id]
	return ok, nil
}

func (r memUsedQR) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.usedQR, id)
	return nil
}

// ---------------------------------------------------------------------------
// Read helpers for assertions
// ---------------------------------------------------------------------------

func (s *memStore) balance(id uuid.UUID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wallets[id].Balance
}

func (s *memStore) transaction(id uuid.UUID) domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transactions[id]
}

func (s *memStore) isUsed(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.usedQR[id]
	return ok
}

func (s *memStore) counts() (transactions, refunds, withdrawals int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.transactions), len(s.refunds), len(s.withdrawals)
}

func (s *memStore) lockCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}
