package ports

import (
	"context"
	"time"

	"prepaid-point-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// HashService handles PIN hashing (Argon2id).
type HashService interface {
	Hash(pin string) (string, error)
	Verify(pin string, hash string) (bool, error)
}

// TokenService handles JWT token operations for authenticated actors.
type TokenService interface {
	Generate(actorType domain.ActorType, actorID uuid.UUID) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	ActorType domain.ActorType
	ActorID   uuid.UUID
}

// --- Service Ports (Business Logic) ---

// LedgerService is the core point ledger: lot-backed charges, consumption,
// reversals and wallet-to-wallet transfers. Each call is one atomic unit.
type LedgerService interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
	UseLot(ctx context.Context, req UseRequest) (*UseResult, error)
	CancelUse(ctx context.Context, req CancelRequest) (*domain.Transaction, error)
	CancelCharge(ctx context.Context, req CancelRequest) (*domain.Transaction, error)
	Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error)
	GetBalance(ctx context.Context, walletID, storeID uuid.UUID) (int64, error)
	ListBalances(ctx context.Context, walletID uuid.UUID) ([]domain.WalletStoreBalance, error)
	ListTransactions(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)

	// UseLotTx and TransferTx run inside a caller-owned transaction so that
	// intent approval and group disbanding compose with their own writes.
	UseLotTx(ctx context.Context, tx pgx.Tx, req UseRequest) (*UseResult, error)
	TransferTx(ctx context.Context, tx pgx.Tx, req TransferRequest) (*TransferResult, error)
}

// ChargeRequest holds validated input for loading value into a wallet.
type ChargeRequest struct {
	WalletID     uuid.UUID
	StoreID      uuid.UUID
	Amount       int64
	BonusPercent int
	ExpiresAt    *time.Time
}

// ChargeResult is the committed outcome of a charge.
type ChargeResult struct {
	Transaction *domain.Transaction
	Lot         *domain.WalletStoreLot
	Balance     int64
}

// UseRequest holds validated input for spending from a wallet at a store.
type UseRequest struct {
	WalletID uuid.UUID
	StoreID  uuid.UUID
	Amount   int64
}

// UseResult is the committed outcome of a spend, with per-lot provenance.
type UseResult struct {
	Transaction *domain.Transaction
	Moves       []domain.WalletLotMove
	Balance     int64
}

// CancelRequest targets a prior transaction by its external reference.
type CancelRequest struct {
	WalletID uuid.UUID
	UniqueNo string
}

// TransferRequest moves value between two wallets at the same store.
type TransferRequest struct {
	FromWalletID uuid.UUID
	ToWalletID   uuid.UUID
	FromStoreID  uuid.UUID
	ToStoreID    uuid.UUID
	Amount       int64
}

// TransferResult is the committed pair of ledger rows for one transfer.
type TransferResult struct {
	Out         *domain.Transaction
	In          *domain.Transaction
	FromBalance int64
	ToBalance   int64
}

// IdempotencyService guards effectful endpoints against duplicate delivery.
type IdempotencyService interface {
	// Begin claims the scope or classifies the duplicate.
	Begin(ctx context.Context, scope domain.IdempotencyScope, bodyHash string) (*BeginResult, error)
	// Complete persists the canonical response and fills the replay cache.
	Complete(ctx context.Context, scope domain.IdempotencyScope, status int, body []byte) error
	// Abandon releases the scope after a server-side failure.
	Abandon(ctx context.Context, scope domain.IdempotencyScope) error
}

// BeginState classifies the outcome of claiming an idempotency scope.
type BeginState string

const (
	BeginStateClaimed    BeginState = "CLAIMED"     // first delivery, proceed
	BeginStateReplay     BeginState = "REPLAY"      // done, stored response follows
	BeginStateInProgress BeginState = "IN_PROGRESS" // concurrent first delivery
)

// BeginResult carries the stored response when State is REPLAY.
type BeginResult struct {
	State          BeginState
	ResponseStatus int
	ResponseBody   []byte
}

// QrTokenService manages the scan-token lifecycle.
type QrTokenService interface {
	Create(ctx context.Context, req CreateQrTokenRequest) (*domain.QrToken, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.QrToken, error)
	Consume(ctx context.Context, id uuid.UUID) (*domain.QrToken, error)
	Revoke(ctx context.Context, customerID, id uuid.UUID) error
	SweepExpired(ctx context.Context) (int64, error)
}

// CreateQrTokenRequest holds validated input for issuing a scan token.
type CreateQrTokenRequest struct {
	CustomerID uuid.UUID
	WalletID   uuid.UUID
	Mode       domain.QrTokenMode
	StoreID    uuid.UUID
	TTLSeconds int
}

// IntentService drives the payment intent state machine.
type IntentService interface {
	Initiate(ctx context.Context, req InitiateIntentRequest) (*domain.PaymentIntent, error)
	Get(ctx context.Context, publicID uuid.UUID) (*domain.PaymentIntent, []domain.PaymentIntentItem, error)
	Approve(ctx context.Context, req ApproveIntentRequest) (*ApproveResult, error)
	Decline(ctx context.Context, customerID, publicID uuid.UUID) error
	Cancel(ctx context.Context, storeID, publicID uuid.UUID) error
	SweepExpired(ctx context.Context) (int64, error)
}

// InitiateIntentRequest is a store's proposal built from a scanned token.
type InitiateIntentRequest struct {
	QrTokenID uuid.UUID
	StoreID   uuid.UUID
	Items     []IntentItemInput
}

// IntentItemInput is one line item of a proposal.
type IntentItemInput struct {
	Name      string
	UnitPrice int64
	Quantity  int
}

// ApproveIntentRequest carries the customer's approval plus their PIN.
type ApproveIntentRequest struct {
	CustomerID uuid.UUID
	PublicID   uuid.UUID
	Pin        string
}

// ApproveResult is the committed outcome of an approval.
type ApproveResult struct {
	Intent      *domain.PaymentIntent
	Transaction *domain.Transaction
	Balance     int64
}

// GroupService coordinates shared group wallets.
type GroupService interface {
	CreateGroup(ctx context.Context, req CreateGroupRequest) (*domain.Group, *domain.Wallet, error)
	GetGroup(ctx context.Context, groupID uuid.UUID) (*domain.Group, []domain.GroupMember, error)
	JoinGroup(ctx context.Context, groupID, customerID uuid.UUID) error
	// PointShare moves value from a member's wallet into the group wallet,
	// deduplicated by the caller's idempotency scope.
	PointShare(ctx context.Context, req PointShareRequest) (*PointShareResult, error)
	// DisbandGroup refunds every store balance to members pro rata by net
	// contribution and closes the group wallet, all in one transaction.
	DisbandGroup(ctx context.Context, groupID, requesterID uuid.UUID) (*DisbandResult, error)
}

// CreateGroupRequest holds validated input for creating a group.
type CreateGroupRequest struct {
	Name      string
	CreatorID uuid.UUID
}

// PointShareRequest holds validated input for pooling funds into a group.
type PointShareRequest struct {
	GroupID    uuid.UUID
	CustomerID uuid.UUID
	StoreID    uuid.UUID
	Amount     int64
	Scope      domain.IdempotencyScope
}

// PointShareResult reports the transfer, or the replayed canonical response.
type PointShareResult struct {
	Transfer *TransferResult
	Replayed bool
	// Stored response when Replayed; InProgress when a concurrent duplicate
	// is still running.
	ResponseStatus int
	ResponseBody   []byte
	InProgress     bool
}

// DisbandResult reports the per-member refunds of a disband.
type DisbandResult struct {
	GroupID uuid.UUID
	Refunds []MemberRefund
}

// MemberRefund is one member's share of one store balance.
type MemberRefund struct {
	WalletID uuid.UUID
	StoreID  uuid.UUID
	Amount   int64
}

// WalletService manages wallet lifecycle and provider linkage.
type WalletService interface {
	CreateForCustomer(ctx context.Context, customerID uuid.UUID) (*domain.Wallet, error)
	Get(ctx context.Context, walletID uuid.UUID) (*domain.Wallet, error)
	GetByCustomer(ctx context.Context, customerID uuid.UUID) (*domain.Wallet, error)
}

// PinService manages customer PIN enrollment and verification with lockout.
type PinService interface {
	Enroll(ctx context.Context, customerID uuid.UUID, pin string) error
	// Verify returns nil on success, PinMismatch or PinLocked otherwise.
	Verify(ctx context.Context, customerID uuid.UUID, pin string) error
}
