package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *CacheManager {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewCacheManager(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestInvalidateUserCache(t *testing.T) {
	cm := newTestManager(t)
	ctx := context.Background()

	// Simulate a populated cache: the record, stale existence flags and a
	// couple of list pages
	require.NoError(t, cm.User.Set(ctx, "id:42", "record", time.Minute))
	require.NoError(t, cm.User.Set(ctx, "list:|||0|10|user_id|asc", "page", time.Minute))
	require.NoError(t, cm.User.Set(ctx, "list:erin|||0|10|user_id|asc", "page", time.Minute))
	require.NoError(t, cm.Exists.Set(ctx, "username:jdoe", false, time.Minute))
	require.NoError(t, cm.Exists.Set(ctx, "email:jdoe@example.com", false, time.Minute))
	require.NoError(t, cm.User.Set(ctx, "id:other", "record", time.Minute))

	InvalidateUserCache(ctx, cm, "42", "jdoe", "jdoe@example.com")

	var s string
	assert.ErrorIs(t, cm.User.Get(ctx, "id:42", &s), ErrCacheNotFound)
	assert.ErrorIs(t, cm.User.Get(ctx, "list:|||0|10|user_id|asc", &s), ErrCacheNotFound)
	assert.ErrorIs(t, cm.User.Get(ctx, "list:erin|||0|10|user_id|asc", &s), ErrCacheNotFound)

	var b bool
	assert.ErrorIs(t, cm.Exists.Get(ctx, "username:jdoe", &b), ErrCacheNotFound)
	assert.ErrorIs(t, cm.Exists.Get(ctx, "email:jdoe@example.com", &b), ErrCacheNotFound)

	// Entries of other users survive
	assert.NoError(t, cm.User.Get(ctx, "id:other", &s))
}

func TestInvalidateUserCache_NilClient(t *testing.T) {
	cm := NewCacheManager(nil)

	// Degrades to a no-op without a cache backend
	InvalidateUserCache(context.Background(), cm, "42", "jdoe", "jdoe@example.com")
}
