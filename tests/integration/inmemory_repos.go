package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"prepaid-point-ledger/internal/core/domain"
	"prepaid-point-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func balanceKey(walletID, storeID uuid.UUID) string {
	return walletID.String() + "|" + storeID.String()
}

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct {
	mu       sync.RWMutex
	wallets  map[uuid.UUID]*domain.Wallet
	balances map[string]int64
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{
		wallets:  make(map[uuid.UUID]*domain.Wallet),
		balances: make(map[string]int64),
	}
}

func (r *inMemoryWalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.wallets[w.ID] = &cp
	return nil
}

func (r *inMemoryWalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wallets[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWalletRepo) GetByCustomerID(ctx context.Context, customerID uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wallets {
		if w.Kind == domain.WalletKindIndividual && w.OwnerCustomerID != nil && *w.OwnerCustomerID == customerID {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryWalletRepo) GetByGroupID(ctx context.Context, groupID uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wallets {
		if w.Kind == domain.WalletKindGroup && w.OwnerGroupID != nil && *w.OwnerGroupID == groupID {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryWalletRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.WalletStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[id]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.Status = status
	w.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *inMemoryWalletRepo) LockBalance(ctx context.Context, tx pgx.Tx, walletID, storeID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := balanceKey(walletID, storeID)
	if _, ok := r.balances[key]; !ok {
		r.balances[key] = 0
	}
	return r.balances[key], nil
}

func (r *inMemoryWalletRepo) SetBalance(ctx context.Context, tx pgx.Tx, walletID, storeID uuid.UUID, balance int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[balanceKey(walletID, storeID)] = balance
	return nil
}

func (r *inMemoryWalletRepo) GetBalance(ctx context.Context, walletID, storeID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.balances[balanceKey(walletID, storeID)], nil
}

func (r *inMemoryWalletRepo) ListBalances(ctx context.Context, walletID uuid.UUID) ([]domain.WalletStoreBalance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listBalancesLocked(walletID), nil
}

func (r *inMemoryWalletRepo) ListBalancesForUpdate(ctx context.Context, tx pgx.Tx, walletID uuid.UUID) ([]domain.WalletStoreBalance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listBalancesLocked(walletID), nil
}

func (r *inMemoryWalletRepo) listBalancesLocked(walletID uuid.UUID) []domain.WalletStoreBalance {
	var result []domain.WalletStoreBalance
	prefix := walletID.String() + "|"
	for key, balance := range r.balances {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			storeID, err := uuid.Parse(key[len(prefix):])
			if err != nil {
				continue
			}
			result = append(result, domain.WalletStoreBalance{
				WalletID: walletID,
				StoreID:  storeID,
				Balance:  balance,
			})
		}
	}
	sort.Slice(result, func(a, b int) bool {
		return result[a].StoreID.String() < result[b].StoreID.String()
	})
	return result
}

// --- In-Memory Lot Repo ---

type inMemoryLotRepo struct {
	mu    sync.RWMutex
	lots  map[uuid.UUID]*domain.WalletStoreLot
	moves []domain.WalletLotMove
}

func newInMemoryLotRepo() *inMemoryLotRepo {
	return &inMemoryLotRepo{lots: make(map[uuid.UUID]*domain.WalletStoreLot)}
}

func (r *inMemoryLotRepo) CreateLot(ctx context.Context, tx pgx.Tx, lot *domain.WalletStoreLot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *lot
	r.lots[lot.ID] = &cp
	return nil
}

func (r *inMemoryLotRepo) GetLotForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.WalletStoreLot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.lots[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *inMemoryLotRepo) GetLotByChargeTxForUpdate(ctx context.Context, tx pgx.Tx, chargeTxID uuid.UUID) (*domain.WalletStoreLot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.lots {
		if l.ChargeTransactionID == chargeTxID {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryLotRepo) ListOpenLotsForUpdate(ctx context.Context, tx pgx.Tx, walletID, storeID uuid.UUID, now time.Time) ([]domain.WalletStoreLot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.WalletStoreLot
	for _, l := range r.lots {
		if l.WalletID != walletID || l.StoreID != storeID {
			continue
		}
		if l.RemainingAmount <= 0 || l.IsExpired(now) {
			continue
		}
		result = append(result, *l)
	}
	sort.Slice(result, func(a, b int) bool {
		if !result[a].CreatedAt.Equal(result[b].CreatedAt) {
			return result[a].CreatedAt.Before(result[b].CreatedAt)
		}
		return result[a].ID.String() < result[b].ID.String()
	})
	return result, nil
}

func (r *inMemoryLotRepo) UpdateRemaining(ctx context.Context, tx pgx.Tx, lotID uuid.UUID, remaining int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lots[lotID]
	if !ok {
		return fmt.Errorf("lot not found")
	}
	l.RemainingAmount = remaining
	return nil
}

func (r *inMemoryLotRepo) CreateMove(ctx context.Context, tx pgx.Tx, move *domain.WalletLotMove) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moves = append(r.moves, *move)
	return nil
}

func (r *inMemoryLotRepo) ListMovesByTransaction(ctx context.Context, tx pgx.Tx, transactionID uuid.UUID) ([]domain.WalletLotMove, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.WalletLotMove
	for _, m := range r.moves {
		if m.TransactionID == transactionID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (r *inMemoryLotRepo) ListMovesByLot(ctx context.Context, tx pgx.Tx, lotID uuid.UUID) ([]domain.WalletLotMove, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.WalletLotMove
	for _, m := range r.moves {
		if m.LotID == lotID {
			result = append(result, m)
		}
	}
	return result, nil
}

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct {
	mu           sync.RWMutex
	transactions map[uuid.UUID]*domain.Transaction
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{transactions: make(map[uuid.UUID]*domain.Transaction)}
}

func (r *inMemoryTransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.transactions[t.ID] = &cp
	return nil
}

func (r *inMemoryTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.transactions[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *inMemoryTransactionRepo) GetByUniqueNo(ctx context.Context, uniqueNo string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.transactions {
		if t.UniqueNo == uniqueNo {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryTransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Transaction
	for _, t := range r.transactions {
		if t.WalletID != params.WalletID {
			continue
		}
		if params.StoreID != nil && t.StoreID != *params.StoreID {
			continue
		}
		if params.Type != nil && t.Type != *params.Type {
			continue
		}
		if params.From != nil && t.CreatedAt.Unix() < *params.From {
			continue
		}
		if params.To != nil && t.CreatedAt.Unix() > *params.To {
			continue
		}
		result = append(result, *t)
	}
	sort.Slice(result, func(a, b int) bool {
		return result[a].CreatedAt.After(result[b].CreatedAt)
	})
	total := int64(len(result))

	start := (params.Page - 1) * params.PageSize
	if start >= len(result) {
		return []domain.Transaction{}, total, nil
	}
	end := start + params.PageSize
	if end > len(result) {
		end = len(result)
	}
	return result[start:end], total, nil
}

func (r *inMemoryTransactionRepo) ReversalExists(ctx context.Context, tx pgx.Tx, transactionID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.transactions {
		if t.ReversesTransactionID != nil && *t.ReversesTransactionID == transactionID {
			return true, nil
		}
	}
	return false, nil
}

func (r *inMemoryTransactionRepo) NetContributions(ctx context.Context, tx pgx.Tx, walletID, storeID uuid.UUID) ([]domain.MemberContribution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	net := make(map[uuid.UUID]int64)
	for _, t := range r.transactions {
		if t.WalletID != walletID || t.StoreID != storeID || t.CounterpartyWalletID == nil {
			continue
		}
		switch t.Type {
		case domain.TransactionTypeTransferIn:
			net[*t.CounterpartyWalletID] += t.Amount
		case domain.TransactionTypeTransferOut:
			net[*t.CounterpartyWalletID] -= t.Amount
		}
	}
	result := make([]domain.MemberContribution, 0, len(net))
	for walletID, amount := range net {
		result = append(result, domain.MemberContribution{WalletID: walletID, Net: amount})
	}
	sort.Slice(result, func(a, b int) bool {
		return result[a].WalletID.String() < result[b].WalletID.String()
	})
	return result, nil
}

// --- In-Memory Idempotency Repo ---

type inMemoryIdempotencyRepo struct {
	mu      sync.Mutex
	records map[string]*domain.IdempotencyRecord
}

func newInMemoryIdempotencyRepo() *inMemoryIdempotencyRepo {
	return &inMemoryIdempotencyRepo{records: make(map[string]*domain.IdempotencyRecord)}
}

func (r *inMemoryIdempotencyRepo) InsertInProgress(ctx context.Context, record *domain.IdempotencyRecord) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := record.Scope.CacheKey()
	if _, ok := r.records[key]; ok {
		return false, nil
	}
	cp := *record
	r.records[key] = &cp
	return true, nil
}

func (r *inMemoryIdempotencyRepo) Get(ctx context.Context, scope domain.IdempotencyScope) (*domain.IdempotencyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[scope.CacheKey()]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *inMemoryIdempotencyRepo) MarkDone(ctx context.Context, scope domain.IdempotencyScope, responseStatus int, responseBody []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[scope.CacheKey()]
	if !ok {
		return fmt.Errorf("idempotency record not found")
	}
	rec.Status = domain.IdempotencyStatusDone
	rec.ResponseStatus = responseStatus
	rec.ResponseBody = append([]byte(nil), responseBody...)
	rec.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *inMemoryIdempotencyRepo) Delete(ctx context.Context, scope domain.IdempotencyScope) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, scope.CacheKey())
	return nil
}

// --- In-Memory QR Token Repo ---

type inMemoryQrTokenRepo struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]*domain.QrToken
}

func newInMemoryQrTokenRepo() *inMemoryQrTokenRepo {
	return &inMemoryQrTokenRepo{tokens: make(map[uuid.UUID]*domain.QrToken)}
}

func (r *inMemoryQrTokenRepo) Create(ctx context.Context, token *domain.QrToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *token
	r.tokens[token.ID] = &cp
	return nil
}

func (r *inMemoryQrTokenRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.QrToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *inMemoryQrTokenRepo) Consume(ctx context.Context, tx pgx.Tx, id uuid.UUID, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok || t.State != domain.QrStateIssued || t.IsExpired(now) {
		return false, nil
	}
	t.State = domain.QrStateConsumed
	consumedAt := now
	t.ConsumedAt = &consumedAt
	return true, nil
}

func (r *inMemoryQrTokenRepo) Revoke(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok || t.State != domain.QrStateIssued {
		return false, nil
	}
	t.State = domain.QrStateRevoked
	return true, nil
}

func (r *inMemoryQrTokenRepo) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, t := range r.tokens {
		if t.State == domain.QrStateIssued && t.IsExpired(now) {
			t.State = domain.QrStateExpired
			count++
		}
	}
	return count, nil
}

// --- In-Memory Intent Repo ---

type inMemoryIntentRepo struct {
	mu      sync.Mutex
	intents map[uuid.UUID]*domain.PaymentIntent
	items   map[uuid.UUID][]domain.PaymentIntentItem
}

func newInMemoryIntentRepo() *inMemoryIntentRepo {
	return &inMemoryIntentRepo{
		intents: make(map[uuid.UUID]*domain.PaymentIntent),
		items:   make(map[uuid.UUID][]domain.PaymentIntentItem),
	}
}

func (r *inMemoryIntentRepo) Create(ctx context.Context, tx pgx.Tx, intent *domain.PaymentIntent, items []domain.PaymentIntentItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *intent
	r.intents[intent.ID] = &cp
	r.items[intent.ID] = append([]domain.PaymentIntentItem(nil), items...)
	return nil
}

func (r *inMemoryIntentRepo) getByPublicIDLocked(publicID uuid.UUID) *domain.PaymentIntent {
	for _, i := range r.intents {
		if i.PublicID == publicID {
			return i
		}
	}
	return nil
}

func (r *inMemoryIntentRepo) GetByPublicID(ctx context.Context, publicID uuid.UUID) (*domain.PaymentIntent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.getByPublicIDLocked(publicID)
	if i == nil {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (r *inMemoryIntentRepo) GetByPublicIDForUpdate(ctx context.Context, tx pgx.Tx, publicID uuid.UUID) (*domain.PaymentIntent, error) {
	return r.GetByPublicID(ctx, publicID)
}

func (r *inMemoryIntentRepo) ListItems(ctx context.Context, intentID uuid.UUID) ([]domain.PaymentIntentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.PaymentIntentItem(nil), r.items[intentID]...), nil
}

func (r *inMemoryIntentRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, expected, next domain.IntentStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.intents[id]
	if !ok || i.Status != expected {
		return false, nil
	}
	i.Status = next
	return true, nil
}

func (r *inMemoryIntentRepo) MarkCompleted(ctx context.Context, tx pgx.Tx, id uuid.UUID, approvedAt, completedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.intents[id]
	if !ok {
		return fmt.Errorf("intent not found")
	}
	i.Status = domain.IntentStatusCompleted
	i.ApprovedAt = &approvedAt
	i.CompletedAt = &completedAt
	return nil
}

func (r *inMemoryIntentRepo) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, i := range r.intents {
		if i.Status == domain.IntentStatusPending && i.IsExpired(now) {
			i.Status = domain.IntentStatusExpired
			count++
		}
	}
	return count, nil
}

// --- In-Memory Group Repo ---

type inMemoryGroupRepo struct {
	mu      sync.Mutex
	groups  map[uuid.UUID]*domain.Group
	members map[uuid.UUID][]domain.GroupMember
}

func newInMemoryGroupRepo() *inMemoryGroupRepo {
	return &inMemoryGroupRepo{
		groups:  make(map[uuid.UUID]*domain.Group),
		members: make(map[uuid.UUID][]domain.GroupMember),
	}
}

func (r *inMemoryGroupRepo) Create(ctx context.Context, group *domain.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *group
	r.groups[group.ID] = &cp
	return nil
}

func (r *inMemoryGroupRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (r *inMemoryGroupRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Group, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryGroupRepo) MarkDisbanded(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[id]
	if !ok {
		return fmt.Errorf("group not found")
	}
	g.Status = domain.GroupStatusDisbanded
	g.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *inMemoryGroupRepo) AddMember(ctx context.Context, member *domain.GroupMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members[member.GroupID] {
		if m.CustomerID == member.CustomerID {
			return nil // already a member
		}
	}
	r.members[member.GroupID] = append(r.members[member.GroupID], *member)
	return nil
}

func (r *inMemoryGroupRepo) ListMembers(ctx context.Context, groupID uuid.UUID) ([]domain.GroupMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.GroupMember(nil), r.members[groupID]...), nil
}

func (r *inMemoryGroupRepo) IsMember(ctx context.Context, groupID, customerID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members[groupID] {
		if m.CustomerID == customerID {
			return true, nil
		}
	}
	return false, nil
}

// --- In-Memory PIN Credential Repo ---

type inMemoryPinRepo struct {
	mu     sync.RWMutex
	hashes map[uuid.UUID]string
}

func newInMemoryPinRepo() *inMemoryPinRepo {
	return &inMemoryPinRepo{hashes: make(map[uuid.UUID]string)}
}

func (r *inMemoryPinRepo) Upsert(ctx context.Context, customerID uuid.UUID, pinHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hashes[customerID] = pinHash
	return nil
}

func (r *inMemoryPinRepo) GetHash(ctx context.Context, customerID uuid.UUID) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hashes[customerID], nil
}

// --- In-Memory Transactor ---

// inMemoryTransactor serializes all transactions behind one mutex, standing
// in for the per-row locks the postgres adapter takes.
type inMemoryTransactor struct {
	mu sync.Mutex
}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	return &serialTx{release: &t.mu}, nil
}

// serialTx is a no-op pgx.Tx that holds the transactor mutex until the first
// Commit or Rollback.
type serialTx struct {
	release *sync.Mutex
	once    sync.Once
}

func (t *serialTx) done() {
	t.once.Do(func() { t.release.Unlock() })
}

func (t *serialTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *serialTx) Commit(ctx context.Context) error          { t.done(); return nil }
func (t *serialTx) Rollback(ctx context.Context) error        { t.done(); return nil }
func (t *serialTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *serialTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *serialTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *serialTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *serialTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *serialTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *serialTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *serialTx) Conn() *pgx.Conn { return nil }
