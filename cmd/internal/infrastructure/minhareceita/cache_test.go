package minhareceita

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCache(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisCache(client, time.Hour)
}

func TestRedisCacheRoundTrip(t *testing.T) {
	mr, cache := setupTestCache(t)
	ctx := context.Background()

	_, err := cache.Get(ctx, "26005330000163")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "26005330000163", &Company{CNPJ: "26005330000163", LegalName: "ACME"}))

	got, err := cache.Get(ctx, "26005330000163")
	require.NoError(t, err)
	assert.Equal(t, "ACME", got.LegalName)

	mr.FastForward(2 * time.Hour)
	_, err = cache.Get(ctx, "26005330000163")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCacheRemembersNotFound(t *testing.T) {
	mr, cache := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetNotFound(ctx, "11222333000181"))
	assert.True(t, mr.Exists(cacheKeyPrefix+"11222333000181"))

	_, err := cache.Get(ctx, "11222333000181")
	assert.ErrorIs(t, err, ErrNotFound)
}
