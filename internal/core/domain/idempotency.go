package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ActorType identifies the kind of authenticated caller an idempotency key
// is scoped to.
type ActorType string

const (
	ActorTypeCustomer ActorType = "CUSTOMER"
	ActorTypeOwner    ActorType = "OWNER"
)

// IdempotencyStatus is the lifecycle of a guarded mutation.
type IdempotencyStatus string

const (
	IdempotencyStatusInProgress IdempotencyStatus = "IN_PROGRESS"
	IdempotencyStatusDone       IdempotencyStatus = "DONE"
)

// IdempotencyScope is the uniqueness scope of a client-supplied key:
// (actor, method, path, key). Two actors reusing the same key never collide.
type IdempotencyScope struct {
	ActorType ActorType `json:"actor_type"`
	ActorID   uuid.UUID `json:"actor_id"`
	Method    string    `json:"http_method"`
	Path      string    `json:"path"`
	Key       uuid.UUID `json:"key"`
}

// CacheKey returns the flat key used for the Redis replay fast path.
func (s IdempotencyScope) CacheKey() string {
	return fmt.Sprintf("%s:%s:%s:%s:%s", s.ActorType, s.ActorID, s.Method, s.Path, s.Key)
}

// IdempotencyRecord is the authoritative row behind one idempotency key.
// Once DONE it is immutable and holds the canonical first response.
type IdempotencyRecord struct {
	Scope          IdempotencyScope  `json:"scope"`
	BodyHash       string            `json:"body_hash"`
	Status         IdempotencyStatus `json:"status"`
	ResponseStatus int               `json:"response_status"`
	ResponseBody   []byte            `json:"response_body,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// NewIdempotencyRecord creates an IN_PROGRESS record for a fresh key.
func NewIdempotencyRecord(scope IdempotencyScope, bodyHash string) *IdempotencyRecord {
	now := time.Now().UTC()
	return &IdempotencyRecord{
		Scope:     scope,
		BodyHash:  bodyHash,
		Status:    IdempotencyStatusInProgress,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsDone returns true once the canonical response has been persisted.
func (r *IdempotencyRecord) IsDone() bool {
	return r.Status == IdempotencyStatusDone
}

// HashRequestBody fingerprints a request body for conflict detection.
func HashRequestBody(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
