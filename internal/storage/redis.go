// ABOUTME: Redis-backed store so several terminals share one session and cart
// ABOUTME: Keys live under seefirst:<namespace>: with no expiry

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "seefirst:"

// Redis is a Store backed by a redis server
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis wraps an existing client. An empty namespace means "default".
func NewRedis(client *redis.Client, namespace string) *Redis {
	if namespace == "" {
		namespace = "default"
	}
	return &Redis{
		client: client,
		prefix: keyPrefix + namespace + ":",
	}
}

func (r *Redis) key(k string) string {
	return r.prefix + k
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s from redis: %w", key, err)
	}
	return val, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s to redis: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	if err := r.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to delete keys from redis: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
