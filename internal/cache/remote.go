package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// RemoteStore is the persisted cache tier. A miss is (nil, nil).
type RemoteStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, retention time.Duration) error
	Del(ctx context.Context, keys ...string) error
	KeysByPrefix(ctx context.Context, prefix string) ([]string, error)
}

type redisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) RemoteStore {
	return &redisStore{rdb: rdb}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, retention time.Duration) error {
	return s.rdb.Set(ctx, key, value, retention).Err()
}

func (s *redisStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}

func (s *redisStore) KeysByPrefix(ctx context.Context, prefix string) ([]string, error) {
	var (
		out    []string
		cursor uint64
	)
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return nil, err
		}
		out = append(out, keys...)
		if next == 0 {
			return out, nil
		}
		cursor = next
	}
}
