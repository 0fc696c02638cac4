package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore is the alternate backend for deployments that already run redis.
// Blobs never expire; the key space is flat "{deviceID}_{category}".
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, deviceID string, category string, blob []byte) error {
	return s.client.Set(ctx, Key(deviceID, category), blob, 0).Err()
}

func (s *RedisStore) Get(ctx context.Context, deviceID string, category string) ([]byte, error) {
	val, err := s.client.Get(ctx, Key(deviceID, category)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}
