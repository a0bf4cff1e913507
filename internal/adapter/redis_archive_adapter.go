package adapter

import (
	"context"

	"github.com/redis/go-redis/v9"

	"quizflow/internal/domain"
)

// RedisArchiveAdapter implements the domain.Cache interface using a Redis
// client. The archive uses a hash keyed by quiz ID so repeated backups merge
// by ID, and a list for analytics events.
type RedisArchiveAdapter struct {
	client *redis.Client
}

// NewRedisArchiveAdapter creates a new instance of RedisArchiveAdapter.
// It expects a connected *redis.Client.
func NewRedisArchiveAdapter(client *redis.Client) domain.Cache {
	return &RedisArchiveAdapter{client: client}
}

// HSet stores one field of a hash.
func (r *RedisArchiveAdapter) HSet(ctx context.Context, key, field, value string) error {
	return r.client.HSet(ctx, key, field, value).Err()
}

// HGetAll returns all fields of a hash. A missing key yields an empty map.
func (r *RedisArchiveAdapter) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return r.client.HGetAll(ctx, key).Result()
}

// HLen returns the number of fields in a hash.
func (r *RedisArchiveAdapter) HLen(ctx context.Context, key string) (int64, error) {
	return r.client.HLen(ctx, key).Result()
}

// RPush appends a value to a list.
func (r *RedisArchiveAdapter) RPush(ctx context.Context, key, value string) error {
	return r.client.RPush(ctx, key, value).Err()
}

// Delete removes the given keys.
func (r *RedisArchiveAdapter) Delete(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

// Ping checks the health of the Redis server.
func (r *RedisArchiveAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
