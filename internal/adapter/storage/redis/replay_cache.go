package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"prepaid-point-ledger/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

// ReplayCache implements ports.ReplayCache using Redis. It fronts the
// authoritative idempotency table so replays of DONE keys skip the database.
type ReplayCache struct {
	client *goredis.Client
	prefix string
}

// NewReplayCache creates a new Redis-backed replay cache.
func NewReplayCache(client *goredis.Client) *ReplayCache {
	return &ReplayCache{
		client: client,
		prefix: "idem:",
	}
}

// Get retrieves a cached canonical response by scope key.
// Returns nil, nil if the key does not exist.
func (c *ReplayCache) Get(ctx context.Context, key string) (*ports.CachedResponse, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis replay get: %w", err)
	}

	var cached ports.CachedResponse
	if err := json.Unmarshal(val, &cached); err != nil {
		return nil, fmt.Errorf("redis replay unmarshal: %w", err)
	}
	return &cached, nil
}

// Set stores a canonical response with TTL.
func (c *ReplayCache) Set(ctx context.Context, key string, value ports.CachedResponse, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redis replay marshal: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis replay set: %w", err)
	}
	return nil
}

// Delete drops a cached response, used when a scope is abandoned.
func (c *ReplayCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis replay delete: %w", err)
	}
	return nil
}
