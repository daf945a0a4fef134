package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TransactionType represents the kind of point movement.
type TransactionType string

const (
	TransactionTypeCharge       TransactionType = "CHARGE"
	TransactionTypeUse          TransactionType = "USE"
	TransactionTypeTransferIn   TransactionType = "TRANSFER_IN"
	TransactionTypeTransferOut  TransactionType = "TRANSFER_OUT"
	TransactionTypeCancelCharge TransactionType = "CANCEL_CHARGE"
	TransactionTypeCancelUse    TransactionType = "CANCEL_USE"
)

// uniqueNoPrefix maps a transaction type to the prefix of its external
// reference number.
var uniqueNoPrefix = map[TransactionType]string{
	TransactionTypeCharge:       "CHG",
	TransactionTypeUse:          "USE",
	TransactionTypeTransferIn:   "TRI",
	TransactionTypeTransferOut:  "TRO",
	TransactionTypeCancelCharge: "CCH",
	TransactionTypeCancelUse:    "CUS",
}

// Transaction is an immutable, append-only ledger row. Corrections never edit
// a row; a cancellation is a new row linked via ReversesTransactionID.
type Transaction struct {
	ID                    uuid.UUID       `json:"id"`
	UniqueNo              string          `json:"transaction_unique_no"`
	Type                  TransactionType `json:"type"`
	WalletID              uuid.UUID       `json:"wallet_id"`
	StoreID               uuid.UUID       `json:"store_id"`
	Amount                int64           `json:"amount"`
	CounterpartyWalletID  *uuid.UUID      `json:"counterparty_wallet_id,omitempty"`
	LinkedTransactionID   *uuid.UUID      `json:"linked_transaction_id,omitempty"`
	ReversesTransactionID *uuid.UUID      `json:"reverses_transaction_id,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
}

// NewTransaction creates a ledger row with a fresh time-ordered unique
// reference number. Timestamping is explicit here, at the call site, not a
// persistence hook.
func NewTransaction(txType TransactionType, walletID, storeID uuid.UUID, amount int64) *Transaction {
	id := newTimeOrderedID()
	return &Transaction{
		ID:        id,
		UniqueNo:  BuildTransactionUniqueNo(txType, id),
		Type:      txType,
		WalletID:  walletID,
		StoreID:   storeID,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
}

// BuildTransactionUniqueNo constructs the external reference for a ledger row.
func BuildTransactionUniqueNo(txType TransactionType, id uuid.UUID) string {
	prefix, ok := uniqueNoPrefix[txType]
	if !ok {
		prefix = "TXN"
	}
	return fmt.Sprintf("%s-%s", prefix, id.String())
}

// IsReversal returns true for CANCEL_CHARGE and CANCEL_USE rows.
func (t *Transaction) IsReversal() bool {
	return t.Type == TransactionTypeCancelCharge || t.Type == TransactionTypeCancelUse
}

// IsCancelable returns true if this row is the kind a reversal may target.
func (t *Transaction) IsCancelable() bool {
	return t.Type == TransactionTypeCharge || t.Type == TransactionTypeUse
}

// newTimeOrderedID returns a UUIDv7 so ids sort by creation time; falls back
// to a random UUID if the entropy source fails.
func newTimeOrderedID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
