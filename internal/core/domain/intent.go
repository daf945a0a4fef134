package domain

import (
	"time"

	"github.com/google/uuid"
)

// IntentStatus is the payment intent state machine:
// PENDING -> {APPROVED, DECLINED, CANCELED, EXPIRED}; APPROVED -> COMPLETED.
type IntentStatus string

const (
	IntentStatusPending   IntentStatus = "PENDING"
	IntentStatusApproved  IntentStatus = "APPROVED"
	IntentStatusDeclined  IntentStatus = "DECLINED"
	IntentStatusCanceled  IntentStatus = "CANCELED"
	IntentStatusExpired   IntentStatus = "EXPIRED"
	IntentStatusCompleted IntentStatus = "COMPLETED"
)

// intentTransitions enumerates every legal transition; everything else is
// rejected with InvalidStateTransition.
var intentTransitions = map[IntentStatus][]IntentStatus{
	IntentStatusPending:  {IntentStatusApproved, IntentStatusDeclined, IntentStatusCanceled, IntentStatusExpired},
	IntentStatusApproved: {IntentStatusCompleted},
}

// CanTransition reports whether from -> to is a legal intent transition.
func CanTransition(from, to IntentStatus) bool {
	for _, next := range intentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalIntentStatus returns true for states that admit no transition.
func IsTerminalIntentStatus(s IntentStatus) bool {
	return len(intentTransitions[s]) == 0
}

// PaymentIntent is a pending payment proposal created from a QR scan,
// awaiting customer approval before it becomes a ledger mutation.
type PaymentIntent struct {
	ID          uuid.UUID    `json:"id"`
	PublicID    uuid.UUID    `json:"public_id"` // handed to clients; UUIDv7
	QrTokenID   uuid.UUID    `json:"qr_token_id"`
	StoreID     uuid.UUID    `json:"store_id"`
	WalletID    uuid.UUID    `json:"wallet_id"`
	CustomerID  uuid.UUID    `json:"customer_id"`
	TotalAmount int64        `json:"total_amount"`
	Status      IntentStatus `json:"status"`
	ExpiresAt   time.Time    `json:"expires_at"`
	CreatedAt   time.Time    `json:"created_at"`
	ApprovedAt  *time.Time   `json:"approved_at,omitempty"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// PaymentIntentItem is one ordered line item of an intent.
type PaymentIntentItem struct {
	ID        uuid.UUID `json:"id"`
	IntentID  uuid.UUID `json:"intent_id"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	Position  int       `json:"position"`
}

// NewPaymentIntent creates a PENDING intent bound to a consumed QR token.
func NewPaymentIntent(token *QrToken, storeID uuid.UUID, totalAmount int64, ttl time.Duration) *PaymentIntent {
	now := time.Now().UTC()
	return &PaymentIntent{
		ID:          newTimeOrderedID(),
		PublicID:    newTimeOrderedID(),
		QrTokenID:   token.ID,
		StoreID:     storeID,
		WalletID:    token.WalletID,
		CustomerID:  token.CustomerID,
		TotalAmount: totalAmount,
		Status:      IntentStatusPending,
		ExpiresAt:   now.Add(ttl),
		CreatedAt:   now,
	}
}

// IsExpired checks the wall-clock expiry regardless of stored status.
func (i *PaymentIntent) IsExpired(now time.Time) bool {
	return !i.ExpiresAt.After(now)
}
