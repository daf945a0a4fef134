package domain

import (
	"time"

	"github.com/google/uuid"
)

// WalletStoreLot is the true unit of prepaid value: a discrete tranche created
// by one charge, consumed oldest-first. Its remaining amount is never
// negative.
type WalletStoreLot struct {
	ID                  uuid.UUID  `json:"id"`
	WalletID            uuid.UUID  `json:"wallet_id"`
	StoreID             uuid.UUID  `json:"store_id"`
	ChargeTransactionID uuid.UUID  `json:"charge_transaction_id"`
	InitialAmount       int64      `json:"initial_amount"`
	RemainingAmount     int64      `json:"remaining_amount"`
	BonusPercent        int        `json:"bonus_percent"`
	ExpiresAt           *time.Time `json:"expires_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

// NewLot creates a full lot for a charge transaction. The bonus inflates the
// credited value: a 10% bonus on a 1000 charge yields an 1100 lot. Integer
// arithmetic, fractions floored.
func NewLot(chargeTx *Transaction, bonusPercent int, expiresAt *time.Time) *WalletStoreLot {
	credited := chargeTx.Amount * int64(100+bonusPercent) / 100
	return &WalletStoreLot{
		ID:                  uuid.New(),
		WalletID:            chargeTx.WalletID,
		StoreID:             chargeTx.StoreID,
		ChargeTransactionID: chargeTx.ID,
		InitialAmount:       credited,
		RemainingAmount:     credited,
		BonusPercent:        bonusPercent,
		ExpiresAt:           expiresAt,
		CreatedAt:           chargeTx.CreatedAt,
	}
}

// IsExhausted returns true once the lot has no value left.
func (l *WalletStoreLot) IsExhausted() bool {
	return l.RemainingAmount == 0
}

// IsExpired returns true if the lot carries an expiry in the past.
func (l *WalletStoreLot) IsExpired(now time.Time) bool {
	return l.ExpiresAt != nil && !l.ExpiresAt.After(now)
}

// WalletLotMove is one signed adjustment to one lot, the atomic unit of
// ledger provenance. Rows are append-only; reversals add new rows with the
// opposite sign, linked to the reversing transaction.
type WalletLotMove struct {
	ID            uuid.UUID `json:"id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	LotID         uuid.UUID `json:"lot_id"`
	Delta         int64     `json:"delta"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewLotMove records a signed delta against a lot on behalf of a transaction.
func NewLotMove(transactionID, lotID uuid.UUID, delta int64, at time.Time) *WalletLotMove {
	return &WalletLotMove{
		ID:            uuid.New(),
		TransactionID: transactionID,
		LotID:         lotID,
		Delta:         delta,
		CreatedAt:     at,
	}
}
