package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// redisStoreForTest connects to a local Redis, skipping the test when
// none is reachable. Set REDIS_TEST_ADDR to point elsewhere.
func redisStoreForTest(t *testing.T) *RedisStore {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available at %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client)
}

func testKey(t *testing.T) string {
	return fmt.Sprintf("test:%s:%d", t.Name(), time.Now().UnixNano())
}

func TestRedisStore_SetGet(t *testing.T) {
	store := redisStoreForTest(t)
	ctx := context.Background()
	key := testKey(t)

	require.NoError(t, store.Set(ctx, key, []byte(`{"name":"value"}`), time.Minute))
	t.Cleanup(func() { _ = store.Delete(ctx, key) })

	data, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"name":"value"}`), data)
}

func TestRedisStore_GetMissing(t *testing.T) {
	store := redisStoreForTest(t)

	_, err := store.Get(context.Background(), testKey(t))
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisStore_Delete(t *testing.T) {
	store := redisStoreForTest(t)
	ctx := context.Background()
	key := testKey(t)

	require.NoError(t, store.Set(ctx, key, []byte("x"), time.Minute))
	require.NoError(t, store.Delete(ctx, key))

	_, err := store.Get(ctx, key)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisStore_Expiry(t *testing.T) {
	store := redisStoreForTest(t)
	ctx := context.Background()
	key := testKey(t)

	require.NoError(t, store.Set(ctx, key, []byte("x"), 50*time.Millisecond))
	time.Sleep(100 * time.Millisecond)

	_, err := store.Get(ctx, key)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisStore_ZeroTTLNoOp(t *testing.T) {
	store := redisStoreForTest(t)
	ctx := context.Background()
	key := testKey(t)

	require.NoError(t, store.Set(ctx, key, []byte("x"), 0))

	_, err := store.Get(ctx, key)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestNewRedisStore_NilClientPanics(t *testing.T) {
	assert.Panics(t, func() { NewRedisStore(nil) })
}
