// ABOUTME: Key-value persistence standing in for browser local storage
// ABOUTME: Defines the Store interface and opens the configured backend

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by Get when the key has never been set or was deleted
var ErrNotFound = errors.New("key not found")

// Backend names accepted by Open
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Store persists small JSON documents (session, cart) under string keys.
// Values must be valid JSON.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Options selects and configures a backend
type Options struct {
	Backend       string
	Dir           string // file backend directory
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Namespace     string // redis key namespace, defaults to "default"
}

// Open returns the backend named in opts. The redis backend is pinged before use.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendFile:
		if opts.Dir == "" {
			return nil, fmt.Errorf("file storage requires a directory")
		}
		return NewFile(opts.Dir), nil

	case BackendRedis:
		if opts.RedisAddr == "" {
			return nil, fmt.Errorf("redis storage requires an address")
		}
		rdb := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("cannot connect to redis at %s: %w", opts.RedisAddr, err)
		}
		return NewRedis(rdb, opts.Namespace), nil

	case BackendMemory:
		return NewMemory(), nil
	}

	return nil, fmt.Errorf("unknown storage backend %q (want file, redis or memory)", opts.Backend)
}
