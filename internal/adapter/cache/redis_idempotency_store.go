package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/coderanges/swiftcrm/internal/usecase"
)

// RedisIdempotencyStore guards create endpoints against duplicate
// submissions keyed by user and X-Idempotency-Key.
type RedisIdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisIdempotencyStore(rdb *redis.Client, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{rdb: rdb, ttl: ttl}
}

func (s *RedisIdempotencyStore) TryLock(ctx context.Context, scope, key string) (bool, error) {
	return s.rdb.SetNX(ctx, "crm:idemp:"+scope+":"+key, "1", s.ttl).Result()
}

func (s *RedisIdempotencyStore) Remember(ctx context.Context, scope, key, value string) error {
	return s.rdb.Set(ctx, "crm:idemp:map:"+scope+":"+key, value, s.ttl).Err()
}

func (s *RedisIdempotencyStore) Recall(ctx context.Context, scope, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, "crm:idemp:map:"+scope+":"+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	return val, true, err
}

var _ usecase.IdempotencyStore = (*RedisIdempotencyStore)(nil)
