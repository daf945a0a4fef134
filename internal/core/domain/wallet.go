package domain

import (
	"time"

	"github.com/google/uuid"
)

// WalletKind distinguishes individual customer wallets from shared group wallets.
type WalletKind string

const (
	WalletKindIndividual WalletKind = "INDIVIDUAL"
	WalletKindGroup      WalletKind = "GROUP"
)

// WalletStatus is the explicit lifecycle state of a wallet.
type WalletStatus string

const (
	WalletStatusActive WalletStatus = "ACTIVE"
	WalletStatusClosed WalletStatus = "CLOSED"
)

// Wallet is a container of per-store prepaid balances. It is owned by exactly
// one customer (INDIVIDUAL) or one group (GROUP) and is immutable after
// creation except for balance derivations and the lifecycle status.
type Wallet struct {
	ID              uuid.UUID    `json:"id"`
	Kind            WalletKind   `json:"kind"`
	OwnerCustomerID *uuid.UUID   `json:"owner_customer_id,omitempty"`
	OwnerGroupID    *uuid.UUID   `json:"owner_group_id,omitempty"`
	UserKey         *string      `json:"-"` // Opaque provider linkage; absent linkage is normal
	Status          WalletStatus `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// NewCustomerWallet creates an ACTIVE individual wallet for a customer.
func NewCustomerWallet(customerID uuid.UUID, userKey *string) *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		ID:              uuid.New(),
		Kind:            WalletKindIndividual,
		OwnerCustomerID: &customerID,
		UserKey:         userKey,
		Status:          WalletStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// NewGroupWallet creates an ACTIVE shared wallet owned by a group.
func NewGroupWallet(groupID uuid.UUID) *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		ID:           uuid.New(),
		Kind:         WalletKindGroup,
		OwnerGroupID: &groupID,
		Status:       WalletStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsActive returns true if the wallet can participate in ledger mutations.
func (w *Wallet) IsActive() bool {
	return w.Status == WalletStatusActive
}

// WalletStoreBalance is the cached projection of a wallet's balance at one
// store. It is never the source of truth: the invariant
// balance == sum of remaining lot amounts is maintained by every ledger
// mutation in the same database transaction.
type WalletStoreBalance struct {
	WalletID  uuid.UUID `json:"wallet_id"`
	StoreID   uuid.UUID `json:"store_id"`
	Balance   int64     `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}
