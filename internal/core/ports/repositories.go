package ports

import (
	"context"
	"time"

	"prepaid-point-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletRepository defines persistence operations for wallets and their
// per-store balance projections.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic locking.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByCustomerID(ctx context.Context, customerID uuid.UUID) (*domain.Wallet, error)
	GetByGroupID(ctx context.Context, groupID uuid.UUID) (*domain.Wallet, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.WalletStatus) error

	// LockBalance upserts the (wallet, store) balance row and locks it for the
	// rest of the transaction. Every ledger mutation at that pair takes this
	// lock first, which serializes writers per wallet-store pair.
	LockBalance(ctx context.Context, tx pgx.Tx, walletID, storeID uuid.UUID) (int64, error)
	SetBalance(ctx context.Context, tx pgx.Tx, walletID, storeID uuid.UUID, balance int64) error
	GetBalance(ctx context.Context, walletID, storeID uuid.UUID) (int64, error)
	ListBalances(ctx context.Context, walletID uuid.UUID) ([]domain.WalletStoreBalance, error)
	ListBalancesForUpdate(ctx context.Context, tx pgx.Tx, walletID uuid.UUID) ([]domain.WalletStoreBalance, error)
}

// LotRepository defines persistence operations for prepaid lots and the
// append-only lot move journal.
type LotRepository interface {
	CreateLot(ctx context.Context, tx pgx.Tx, lot *domain.WalletStoreLot) error
	GetLotForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.WalletStoreLot, error)
	GetLotByChargeTxForUpdate(ctx context.Context, tx pgx.Tx, chargeTxID uuid.UUID) (*domain.WalletStoreLot, error)
	// ListOpenLotsForUpdate returns lots with remaining value, unexpired as of
	// now, ordered oldest first (created_at, then id), all locked FOR UPDATE.
	ListOpenLotsForUpdate(ctx context.Context, tx pgx.Tx, walletID, storeID uuid.UUID, now time.Time) ([]domain.WalletStoreLot, error)
	UpdateRemaining(ctx context.Context, tx pgx.Tx, lotID uuid.UUID, remaining int64) error

	CreateMove(ctx context.Context, tx pgx.Tx, move *domain.WalletLotMove) error
	ListMovesByTransaction(ctx context.Context, tx pgx.Tx, transactionID uuid.UUID) ([]domain.WalletLotMove, error)
	ListMovesByLot(ctx context.Context, tx pgx.Tx, lotID uuid.UUID) ([]domain.WalletLotMove, error)
}

// TransactionRepository defines persistence operations for ledger rows.
// Rows are append-only; there is no update method.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	GetByUniqueNo(ctx context.Context, uniqueNo string) (*domain.Transaction, error)
	List(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
	// ReversalExists reports whether a CANCEL_* row already targets the
	// given transaction.
	ReversalExists(ctx context.Context, tx pgx.Tx, transactionID uuid.UUID) (bool, error)
	// NetContributions aggregates, per counterparty wallet, the net amount
	// transferred into walletID at storeID (TRANSFER_IN minus TRANSFER_OUT).
	NetContributions(ctx context.Context, tx pgx.Tx, walletID, storeID uuid.UUID) ([]domain.MemberContribution, error)
}

// TransactionListParams holds filter + pagination for listing ledger rows.
type TransactionListParams struct {
	WalletID uuid.UUID
	StoreID  *uuid.UUID
	Type     *domain.TransactionType
	From     *int64 // Unix timestamp
	To       *int64 // Unix timestamp
	Page     int
	PageSize int
}

// IdempotencyRepository defines the authoritative store behind idempotency
// keys. Redis only fronts it as a replay cache.
type IdempotencyRepository interface {
	// InsertInProgress inserts an IN_PROGRESS record if none exists for the
	// scope. Returns true if the insert won, false if the scope was taken.
	InsertInProgress(ctx context.Context, record *domain.IdempotencyRecord) (bool, error)
	Get(ctx context.Context, scope domain.IdempotencyScope) (*domain.IdempotencyRecord, error)
	MarkDone(ctx context.Context, scope domain.IdempotencyScope, responseStatus int, responseBody []byte) error
	// Delete releases a scope after a failed attempt so the client may retry.
	Delete(ctx context.Context, scope domain.IdempotencyScope) error
}

// QrTokenRepository defines persistence operations for scan tokens.
type QrTokenRepository interface {
	Create(ctx context.Context, token *domain.QrToken) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.QrToken, error)
	// Consume atomically moves an unexpired ISSUED token to CONSUMED.
	// Returns false when the compare-and-set matched no row.
	Consume(ctx context.Context, tx pgx.Tx, id uuid.UUID, now time.Time) (bool, error)
	// Revoke moves an ISSUED token to REVOKED; false when no row matched.
	Revoke(ctx context.Context, id uuid.UUID) (bool, error)
	// SweepExpired marks overdue ISSUED tokens EXPIRED and returns the count.
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

// IntentRepository defines persistence operations for payment intents.
type IntentRepository interface {
	Create(ctx context.Context, tx pgx.Tx, intent *domain.PaymentIntent, items []domain.PaymentIntentItem) error
	GetByPublicID(ctx context.Context, publicID uuid.UUID) (*domain.PaymentIntent, error)
	GetByPublicIDForUpdate(ctx context.Context, tx pgx.Tx, publicID uuid.UUID) (*domain.PaymentIntent, error)
	ListItems(ctx context.Context, intentID uuid.UUID) ([]domain.PaymentIntentItem, error)
	// UpdateStatus is a compare-and-set on the current status; false when the
	// intent was no longer in expected state.
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, expected, next domain.IntentStatus) (bool, error)
	MarkCompleted(ctx context.Context, tx pgx.Tx, id uuid.UUID, approvedAt, completedAt time.Time) error
	// SweepExpired marks overdue PENDING intents EXPIRED and returns the count.
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

// GroupRepository defines persistence operations for groups and membership.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Group, error)
	MarkDisbanded(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	AddMember(ctx context.Context, member *domain.GroupMember) error
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]domain.GroupMember, error)
	IsMember(ctx context.Context, groupID, customerID uuid.UUID) (bool, error)
}

// PinCredentialRepository stores customer PIN hashes for the bundled verifier.
type PinCredentialRepository interface {
	Upsert(ctx context.Context, customerID uuid.UUID, pinHash string) error
	GetHash(ctx context.Context, customerID uuid.UUID) (string, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
