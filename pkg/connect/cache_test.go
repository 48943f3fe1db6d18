package connect_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipedream-labs/connect-go/pkg/connect"
)

func liveEntry(data string) *connect.CacheEntry {
	now := time.Now()

	return &connect.CacheEntry{
		Data:       []byte(data),
		StatusCode: 200,
		StoredAt:   now,
		ExpiresAt:  now.Add(time.Minute),
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := connect.NewMemoryCache(10)

	require.NoError(t, cache.Set(ctx, "key1", liveEntry("value")))

	entry, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), entry.Data)
	assert.Equal(t, 200, entry.StatusCode)

	assert.True(t, cache.Has(ctx, "key1"))
	assert.False(t, cache.Has(ctx, "missing"))
}

func TestMemoryCache_Missing(t *testing.T) {
	t.Parallel()

	cache := connect.NewMemoryCache(10)

	_, err := cache.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, connect.ErrCacheKeyNotFound)
}

func TestMemoryCache_Expiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := connect.NewMemoryCache(10)

	expired := liveEntry("stale")
	expired.ExpiresAt = time.Now().Add(-time.Second)

	require.NoError(t, cache.Set(ctx, "key1", expired))

	_, err := cache.Get(ctx, "key1")
	assert.ErrorIs(t, err, connect.ErrCacheEntryExpired)
	assert.False(t, cache.Has(ctx, "key1"))
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := connect.NewMemoryCache(10)

	require.NoError(t, cache.Set(ctx, "key1", liveEntry("a")))
	require.NoError(t, cache.Set(ctx, "key2", liveEntry("b")))

	require.NoError(t, cache.Delete(ctx, "key1"))
	assert.False(t, cache.Has(ctx, "key1"))
	assert.True(t, cache.Has(ctx, "key2"))

	require.NoError(t, cache.Clear(ctx))
	assert.False(t, cache.Has(ctx, "key2"))
}

func TestMemoryCache_EvictsWhenFull(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := connect.NewMemoryCache(2)

	require.NoError(t, cache.Set(ctx, "key1", liveEntry("a")))
	require.NoError(t, cache.Set(ctx, "key2", liveEntry("b")))
	require.NoError(t, cache.Set(ctx, "key3", liveEntry("c")))

	// One of the earlier entries was evicted to make room.
	live := 0

	for _, key := range []string{"key1", "key2", "key3"} {
		if cache.Has(ctx, key) {
			live++
		}
	}

	assert.Equal(t, 2, live)
	assert.True(t, cache.Has(ctx, "key3"))
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := connect.NewNoOpCache()

	require.NoError(t, cache.Set(ctx, "key1", liveEntry("a")))

	_, err := cache.Get(ctx, "key1")
	assert.ErrorIs(t, err, connect.ErrCacheDisabled)
	assert.False(t, cache.Has(ctx, "key1"))
	assert.NoError(t, cache.Clear(ctx))
	assert.NoError(t, cache.Close())
}

func TestNewCacheFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("nil config defaults to memory", func(t *testing.T) {
		t.Parallel()

		cache, err := connect.NewCacheFromConfig(nil)
		require.NoError(t, err)
		assert.IsType(t, &connect.MemoryCache{}, cache)
	})

	t.Run("none type", func(t *testing.T) {
		t.Parallel()

		cache, err := connect.NewCacheFromConfig(&connect.CacheConfig{Type: connect.CacheTypeNone})
		require.NoError(t, err)
		assert.IsType(t, &connect.NoOpCache{}, cache)
	})

	t.Run("nats without config", func(t *testing.T) {
		t.Parallel()

		_, err := connect.NewCacheFromConfig(&connect.CacheConfig{Type: connect.CacheTypeNATS})
		assert.ErrorIs(t, err, connect.ErrNATSConfigRequired)
	})

	t.Run("unsupported type", func(t *testing.T) {
		t.Parallel()

		_, err := connect.NewCacheFromConfig(&connect.CacheConfig{Type: "redis"})
		assert.ErrorIs(t, err, connect.ErrUnsupportedCacheType)
	})
}

func TestCacheConfig_TTL(t *testing.T) {
	t.Parallel()

	config := &connect.CacheConfig{Options: &connect.CacheOptions{TTL: 5 * time.Minute}}
	assert.Equal(t, 5*time.Minute, config.TTL())

	assert.Equal(t, time.Minute, (&connect.CacheConfig{}).TTL())
}
