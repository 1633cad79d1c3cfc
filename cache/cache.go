// Package cache provides a Redis-backed memoizer for slow upstream lookups.
// When Redis is unreachable every call falls through to the wrapped function,
// so the cache is an optimization, never a dependency.
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

var (
	mu     sync.Mutex
	client *redis.Client
	addr   = "localhost:6379"
)

// SetAddr points the cache at a Redis instance. Safe to call before any
// Memoize; calls after the client exists are ignored.
func SetAddr(a string) {
	mu.Lock()
	defer mu.Unlock()
	if client == nil && a != "" {
		addr = a
	}
}

func get() *redis.Client {
	mu.Lock()
	defer mu.Unlock()
	if client == nil {
		client = redis.NewClient(&redis.Options{Addr: addr})
	}
	return client
}

// Memoize caches the result of fn under key for ttl.
func Memoize[T any](ctx context.Context, key string, ttl time.Duration, fn func() (T, error)) (T, error) {
	var result T
	rdb := get()

	cached, err := rdb.Get(ctx, key).Bytes()
	if err == nil {
		if jsonErr := json.Unmarshal(cached, &result); jsonErr == nil {
			return result, nil
		}
	}

	result, err = fn()
	if err != nil {
		return result, err
	}

	if data, err := json.Marshal(result); err == nil {
		rdb.Set(ctx, key, data, ttl)
	}

	return result, nil
}
