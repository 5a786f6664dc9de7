package snapshotstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"agroute-trip-service/internal/ports"
)

const keyPrefix = "agroute:snapshot:"

// RedisSnapshotStore implements the SnapshotStore port on Redis so a
// snapshot written by the planning view can be read by a print view in
// another process. Entries expire after TTL; a print view that never
// loads should not pin memory forever.
type RedisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSnapshotStore(addr string, ttl time.Duration) *RedisSnapshotStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisSnapshotStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

// Ping verifies connectivity at startup.
func (s *RedisSnapshotStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("snapshot store: ping redis: %w", err)
	}
	return nil
}

func (s *RedisSnapshotStore) Put(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("snapshot store: key must be non-empty")
	}
	if err := s.client.Set(ctx, keyPrefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("snapshot store: set %q: %w", key, err)
	}
	return nil
}

func (s *RedisSnapshotStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ports.ErrSnapshotNotFound
	}
	if err != nil {
		return "", fmt.Errorf("snapshot store: get %q: %w", key, err)
	}
	return v, nil
}

func (s *RedisSnapshotStore) Close() error {
	return s.client.Close()
}
