package tokenstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on top of Redis with one key per refresh token.
// Expiry is handled by Redis TTLs, so expired tokens vanish on their own.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func refreshKey(jti string) string {
	return fmt.Sprintf("refresh:%s", jti)
}

func (s *RedisStore) Save(ctx context.Context, jti string, userID uuid.UUID, ttl time.Duration) error {
	return s.client.Set(ctx, refreshKey(jti), userID.String(), ttl).Err()
}

func (s *RedisStore) Exists(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, refreshKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisStore) Revoke(ctx context.Context, jti string) error {
	return s.client.Del(ctx, refreshKey(jti)).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
