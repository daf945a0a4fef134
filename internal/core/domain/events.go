package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentEvent is emitted after a payment intent reaches COMPLETED.
// Delivery is at-least-once; consumers must dedupe on TransactionUniqueNo.
type PaymentEvent struct {
	IntentPublicID       uuid.UUID `json:"intent_public_id"`
	TransactionUniqueNo  string    `json:"transaction_unique_no"`
	CustomerID           uuid.UUID `json:"customer_id"`
	WalletID             uuid.UUID `json:"wallet_id"`
	StoreID              uuid.UUID `json:"store_id"`
	Amount               int64     `json:"amount"`
	OccurredAt           time.Time `json:"occurred_at"`
}

// CancelEvent is emitted after a CANCEL_USE reversal commits.
type CancelEvent struct {
	TransactionUniqueNo string    `json:"transaction_unique_no"`
	CanceledUniqueNo    string    `json:"canceled_unique_no"`
	WalletID            uuid.UUID `json:"wallet_id"`
	StoreID             uuid.UUID `json:"store_id"`
	Amount              int64     `json:"amount"`
	OccurredAt          time.Time `json:"occurred_at"`
}

// RegistrationIdentity is the finalized identity read from the external
// registration session store. The core never reads transient pre-registration
// state, only this final shape.
type RegistrationIdentity struct {
	CustomerID  uuid.UUID `json:"customer_id"`
	DisplayName string    `json:"display_name"`
}
