package redis

import (
	"context"
	"testing"
	"time"

	"prepaid-point-ledger/internal/core/ports"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplayCache_SetAndGet(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewReplayCache(client)
	ctx := context.Background()

	key := "CUSTOMER:abc:POST:/api/v1/wallets/charge:key-1"
	value := ports.CachedResponse{
		BodyHash:       "deadbeef",
		ResponseStatus: 201,
		ResponseBody:   []byte(`{"data":{"balance":3000}}`),
	}

	// Get before set => nil
	result, err := cache.Get(ctx, key)
	assert.NoError(t, err)
	assert.Nil(t, result)

	err = cache.Set(ctx, key, value, 24*time.Hour)
	require.NoError(t, err)

	result, err = cache.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, value.BodyHash, result.BodyHash)
	assert.Equal(t, 201, result.ResponseStatus)
	assert.Equal(t, value.ResponseBody, result.ResponseBody)
}

func TestReplayCache_TTLExpiry(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewReplayCache(client)
	ctx := context.Background()

	err := cache.Set(ctx, "k", ports.CachedResponse{ResponseStatus: 200}, time.Second)
	require.NoError(t, err)

	s.FastForward(2 * time.Second)

	result, err := cache.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, result, "expired key should return nil")
}

func TestReplayCache_Delete(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewReplayCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", ports.CachedResponse{ResponseStatus: 200}, time.Hour))
	require.NoError(t, cache.Delete(ctx, "k"))

	result, err := cache.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, result)
}
