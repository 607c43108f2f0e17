package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "catalog:page:"

// PageStore keeps downloaded catalog pages in Redis so reruns do not hit the site again.
type PageStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func New(addr string, ttl time.Duration) *PageStore {
	return &PageStore{
		Client: redis.NewClient(&redis.Options{Addr: addr}),
		TTL:    ttl,
	}
}

func (s *PageStore) Get(ctx context.Context, url string) (string, bool, error) {
	val, err := s.Client.Get(ctx, keyPrefix+url).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *PageStore) Set(ctx context.Context, url, body string) error {
	return s.Client.Set(ctx, keyPrefix+url, body, s.TTL).Err()
}

func (s *PageStore) Close() error {
	return s.Client.Close()
}
