package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// LockoutStore counts consecutive PIN failures per customer in Redis.
type LockoutStore struct {
	client *goredis.Client
	prefix string
}

// NewLockoutStore creates a new Redis-backed PIN lockout store.
func NewLockoutStore(client *goredis.Client) *LockoutStore {
	return &LockoutStore{
		client: client,
		prefix: "pinlock:",
	}
}

// RecordFailure increments the failure counter and returns the new count.
// The window starts at the first failure and is not extended by later ones.
func (s *LockoutStore) RecordFailure(ctx context.Context, customerID uuid.UUID, window time.Duration) (int64, error) {
	key := s.prefix + customerID.String()
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis lockout incr: %w", err)
	}
	if count == 1 {
		s.client.Expire(ctx, key, window)
	}
	return count, nil
}

// Failures returns the current failure count, zero when none recorded.
func (s *LockoutStore) Failures(ctx context.Context, customerID uuid.UUID) (int64, error) {
	count, err := s.client.Get(ctx, s.prefix+customerID.String()).Int64()
	if err != nil {
		if err == goredis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("redis lockout get: %w", err)
	}
	return count, nil
}

// Reset clears the counter after a successful verification.
func (s *LockoutStore) Reset(ctx context.Context, customerID uuid.UUID) error {
	if err := s.client.Del(ctx, s.prefix+customerID.String()).Err(); err != nil {
		return fmt.Errorf("redis lockout reset: %w", err)
	}
	return nil
}
