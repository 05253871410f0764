package redisstore

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tally/internal/domain"
)

// Tests require Redis; TALLY_TEST_REDIS overrides the address.
func testRedisAddr() string {
	if addr := os.Getenv("TALLY_TEST_REDIS"); addr != "" {
		return addr
	}
	return domain.DefaultRedisAddr
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: testRedisAddr()})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("Redis not available at %s: %v", testRedisAddr(), err)
	}

	prefix := "tally-test:" + t.Name() + ":"
	cleanup := func() {
		keys, _ := client.Keys(ctx, prefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
	}
	cleanup()
	t.Cleanup(func() {
		cleanup()
		_ = client.Close()
	})

	return New(client, prefix)
}

func TestStore_GetMissing(t *testing.T) {
	s := setupTestStore(t)

	value, ok, err := s.Get(context.Background(), "tasks")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestStore_SetGet(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "tasks", []byte(`[{"id":"a"}]`)))

	value, ok, err := s.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"a"}]`, string(value))
}

func TestStore_UpdateConcurrent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(ctx, "log", func(cur []byte, _ bool) ([]byte, error) {
				return append(cur, 'x'), nil
			})
		}()
	}
	wg.Wait()

	value, _, err := s.Get(ctx, "log")
	require.NoError(t, err)
	assert.Len(t, value, n)
}

func TestStore_UpdateErrorKeepsValue(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "tasks", []byte("keep")))

	boom := errors.New("boom")
	err := s.Update(ctx, "tasks", func([]byte, bool) ([]byte, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	value, _, err := s.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, "keep", string(value))
}

func TestDial_Unreachable(t *testing.T) {
	_, err := Dial(context.Background(), domain.RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
