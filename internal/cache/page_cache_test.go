package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// newTestStore connects to the Redis at TEST_REDIS_ADDR and skips otherwise.
func newTestStore(t *testing.T, ttl time.Duration) *PageStore {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("Skipping Redis test - set TEST_REDIS_ADDR to run")
	}

	s := New(addr, ttl)
	require.NoError(t, s.Client.Ping(context.Background()).Err())
	t.Cleanup(func() { s.Close() })
	return s
}

// testURL returns a URL unique to the test and deletes its key afterwards.
func testURL(t *testing.T, s *PageStore) string {
	url := "https://atrezzovazquez.es/shop.php?page=" + t.Name() + time.Now().Format("150405.000000")
	t.Cleanup(func() { s.Client.Del(context.Background(), keyPrefix+url) })
	return url
}

func TestPageStoreMiss(t *testing.T) {
	s := newTestStore(t, time.Minute)

	body, ok, err := s.Get(context.Background(), testURL(t, s))
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, body)
}

func TestPageStoreSetGet(t *testing.T) {
	s := newTestStore(t, time.Minute)
	ctx := context.Background()
	url := testURL(t, s)

	require.NoError(t, s.Set(ctx, url, "<html>1</html>"))

	body, ok, err := s.Get(ctx, url)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "<html>1</html>", body)

	raw, err := s.Client.Get(ctx, "catalog:page:"+url).Result()
	require.NoError(t, err)
	require.Equal(t, "<html>1</html>", raw)

	exists, err := s.Client.Exists(ctx, url).Result()
	require.NoError(t, err)
	require.Zero(t, exists)
}

func TestPageStoreTTL(t *testing.T) {
	s := newTestStore(t, time.Minute)
	ctx := context.Background()
	url := testURL(t, s)

	require.NoError(t, s.Set(ctx, url, "x"))

	ttl, err := s.Client.TTL(ctx, keyPrefix+url).Result()
	require.NoError(t, err)
	require.Greater(t, ttl, 50*time.Second)
	require.LessOrEqual(t, ttl, time.Minute)
}

func TestPageStoreNoTTL(t *testing.T) {
	s := newTestStore(t, 0)
	ctx := context.Background()
	url := testURL(t, s)

	require.NoError(t, s.Set(ctx, url, "x"))

	ttl, err := s.Client.TTL(ctx, keyPrefix+url).Result()
	require.NoError(t, err)
	require.Equal(t, time.Duration(-1), ttl)
}

func TestPageStoreUnreachable(t *testing.T) {
	s := New("127.0.0.1:1", time.Minute)
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, ok, err := s.Get(ctx, "u")
	require.Error(t, err)
	require.False(t, ok)
	require.Error(t, s.Set(ctx, "u", "x"))
}
