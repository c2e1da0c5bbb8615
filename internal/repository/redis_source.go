package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/employee-assistant/internal/domain"
)

// DefaultSnapshotKey is the Redis key holding the JSON employee snapshot.
const DefaultSnapshotKey = "employee-assistant:employees"

// RedisClient is the subset of the go-redis client used for snapshots.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisSource reads the employee list from a JSON snapshot stored in Redis.
type RedisSource struct {
	client RedisClient
	key    string
}

// NewRedisSource builds a source reading key. An empty key uses DefaultSnapshotKey.
func NewRedisSource(client RedisClient, key string) *RedisSource {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &RedisSource{client: client, key: key}
}

func (s *RedisSource) LoadEmployees(ctx context.Context) ([]domain.Employee, error) {
	if s.client == nil {
		return nil, unavailable("redis client not configured")
	}
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, unavailable("snapshot key %q not found", s.key)
	}
	if err != nil {
		return nil, unavailable("get %q: %w", s.key, err)
	}
	return DecodeEmployeesJSON(data)
}

// WriteSnapshot publishes employees as the snapshot read by LoadEmployees.
func (s *RedisSource) WriteSnapshot(ctx context.Context, employees []domain.Employee) error {
	if s.client == nil {
		return unavailable("redis client not configured")
	}
	data, err := EncodeEmployeesJSON(employees)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, data, 0).Err()
}
