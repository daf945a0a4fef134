package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"prepaid-point-ledger/internal/core/domain"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// SessionStore reads finalized registration identities written by the
// external onboarding flow. This adapter never writes; intermediate
// pre-registration state belongs to the onboarding service alone.
type SessionStore struct {
	client *goredis.Client
	prefix string
}

// NewSessionStore creates a new Redis-backed registration session reader.
func NewSessionStore(client *goredis.Client) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: "regsession:",
	}
}

// GetIdentity returns the finalized identity for a session, or nil, nil when
// the session is unknown or not yet finalized.
func (s *SessionStore) GetIdentity(ctx context.Context, sessionID string) (*domain.RegistrationIdentity, error) {
	val, err := s.client.Get(ctx, s.prefix+sessionID).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis session get: %w", err)
	}

	var identity domain.RegistrationIdentity
	if err := json.Unmarshal(val, &identity); err != nil {
		return nil, fmt.Errorf("redis session unmarshal: %w", err)
	}
	if identity.CustomerID == uuid.Nil {
		return nil, nil
	}
	return &identity, nil
}
