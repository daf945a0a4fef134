package ports

import (
	"context"
	"time"

	"prepaid-point-ledger/internal/core/domain"

	"github.com/google/uuid"
)

// PinVerdict is the outcome of an external PIN verification call.
type PinVerdict string

const (
	PinVerdictOK       PinVerdict = "OK"
	PinVerdictMismatch PinVerdict = "MISMATCH"
	PinVerdictLocked   PinVerdict = "LOCKED"
)

// PinVerifier checks a customer's PIN. Implementations are an external
// authentication service or the bundled Argon2id verifier.
type PinVerifier interface {
	VerifyPin(ctx context.Context, customerID uuid.UUID, pin string) (PinVerdict, error)
}

// ProviderLinkClient resolves the opaque provider-side user key for a
// customer. A missing linkage is reported as ("", nil).
type ProviderLinkClient interface {
	LookupUserKey(ctx context.Context, customerID uuid.UUID) (string, error)
}

// EventPublisher emits ledger events after commit. Delivery is best effort
// and at-least-once; failures are logged, never surfaced to the caller.
type EventPublisher interface {
	PublishPayment(ctx context.Context, event domain.PaymentEvent) error
	PublishCancel(ctx context.Context, event domain.CancelEvent) error
	Close() error
}

// SessionStore reads finalized registration identities written by the
// external onboarding flow.
type SessionStore interface {
	GetIdentity(ctx context.Context, sessionID string) (*domain.RegistrationIdentity, error)
}

// ReplayCache is the Redis fast path in front of the idempotency store.
type ReplayCache interface {
	Get(ctx context.Context, key string) (*CachedResponse, error) // nil on miss
	Set(ctx context.Context, key string, value CachedResponse, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CachedResponse is the cached canonical response for a DONE idempotency key.
type CachedResponse struct {
	BodyHash       string `json:"body_hash"`
	ResponseStatus int    `json:"response_status"`
	ResponseBody   []byte `json:"response_body"`
}

// PinLockoutStore counts consecutive PIN failures per customer within a
// rolling window.
type PinLockoutStore interface {
	// RecordFailure increments the counter and returns the new count.
	RecordFailure(ctx context.Context, customerID uuid.UUID, window time.Duration) (int64, error)
	Failures(ctx context.Context, customerID uuid.UUID) (int64, error)
	Reset(ctx context.Context, customerID uuid.UUID) error
}

// RateLimitStore implements a fixed-window request counter.
type RateLimitStore interface {
	// Increment bumps the window counter and returns the new count.
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}
