package domain

import (
	"time"

	"github.com/google/uuid"
)

// QrTokenMode is the scan flow a token was issued for.
type QrTokenMode string

const (
	QrModeCPQR   QrTokenMode = "CPQR" // customer-presented QR
	QrModeMPQR   QrTokenMode = "MPQR" // merchant-presented QR
	QrModeRefund QrTokenMode = "REFUND"
)

// QrTokenState is the lifecycle of a scan token. CONSUMED, EXPIRED and
// REVOKED are terminal.
type QrTokenState string

const (
	QrStateIssued   QrTokenState = "ISSUED"
	QrStateConsumed QrTokenState = "CONSUMED"
	QrStateExpired  QrTokenState = "EXPIRED"
	QrStateRevoked  QrTokenState = "REVOKED"
)

// QR token TTL bounds, in seconds.
const (
	QrTokenMinTTLSeconds = 10
	QrTokenMaxTTLSeconds = 300
)

// QrToken binds a customer wallet to a store for one short-lived scan.
type QrToken struct {
	ID         uuid.UUID    `json:"id"` // UUIDv7, time-ordered
	CustomerID uuid.UUID    `json:"customer_id"`
	WalletID   uuid.UUID    `json:"wallet_id"`
	Mode       QrTokenMode  `json:"mode"`
	StoreID    uuid.UUID    `json:"store_id"`
	State      QrTokenState `json:"state"`
	ExpiresAt  time.Time    `json:"expires_at"`
	CreatedAt  time.Time    `json:"created_at"`
	ConsumedAt *time.Time   `json:"consumed_at,omitempty"`
}

// NewQrToken issues a token in state ISSUED expiring after ttl.
// TTL bounds are validated by the caller.
func NewQrToken(customerID, walletID uuid.UUID, mode QrTokenMode, storeID uuid.UUID, ttl time.Duration) *QrToken {
	now := time.Now().UTC()
	return &QrToken{
		ID:         newTimeOrderedID(),
		CustomerID: customerID,
		WalletID:   walletID,
		Mode:       mode,
		StoreID:    storeID,
		State:      QrStateIssued,
		ExpiresAt:  now.Add(ttl),
		CreatedAt:  now,
	}
}

// IsTerminal returns true when no further state change is allowed.
func (t *QrToken) IsTerminal() bool {
	return t.State != QrStateIssued
}

// IsExpired checks the wall-clock expiry regardless of stored state.
func (t *QrToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// ValidQrTokenMode reports whether s names a known mode.
func ValidQrTokenMode(s string) bool {
	switch QrTokenMode(s) {
	case QrModeCPQR, QrModeMPQR, QrModeRefund:
		return true
	}
	return false
}
