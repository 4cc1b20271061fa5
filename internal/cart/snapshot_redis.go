package cart

import (
	"context"
	"encoding/json"
	"time"

	"storefront-service/internal/domain"

	"github.com/go-redis/redis/v8"
)

// cartRetention keeps abandoned carts around for a month.
const cartRetention = 30 * 24 * time.Hour

type redisSnapshotStore struct {
	rdb *redis.Client
}

func NewRedisSnapshotStore(rdb *redis.Client) SnapshotStore {
	return &redisSnapshotStore{rdb: rdb}
}

func cartKey(cartID string) string {
	return "cart:" + cartID
}

func (s *redisSnapshotStore) Load(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	b, err := s.rdb.Get(ctx, cartKey(cartID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []domain.CartItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *redisSnapshotStore) Save(ctx context.Context, cartID string, items []domain.CartItem) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, cartKey(cartID), b, cartRetention).Err()
}

func (s *redisSnapshotStore) Delete(ctx context.Context, cartID string) error {
	return s.rdb.Del(ctx, cartKey(cartID)).Err()
}
