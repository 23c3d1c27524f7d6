package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/feral-file/ff-portfolio/internal/adapter"
	"github.com/feral-file/ff-portfolio/internal/store"
)

// Cache is a string key-value cache with per-entry TTL
//
//go:generate mockgen -source=cache.go -destination=../mocks/cache.go -package=mocks -mock_names=Cache=MockCache
type Cache interface {
	// Get returns the live value stored under key; found is false on a miss or an expired entry
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Put stores value under key for ttl; a zero ttl never expires
	Put(ctx context.Context, key string, value string, ttl time.Duration) error
}

type redisCache struct {
	client    adapter.RedisClient
	keyPrefix string
}

// NewRedisCache creates a cache backed by redis
func NewRedisCache(client adapter.RedisClient, keyPrefix string) Cache {
	return &redisCache{client: client, keyPrefix: keyPrefix}
}

func (c *redisCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, c.keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get cache entry: %w", err)
	}
	return value, true, nil
}

func (c *redisCache) Put(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to put cache entry: %w", err)
	}
	return nil
}

type storeCache struct {
	store store.Store
	clock adapter.Clock
}

// NewStoreCache creates a cache backed by the database key_value_store table
func NewStoreCache(s store.Store, clock adapter.Clock) Cache {
	return &storeCache{store: s, clock: clock}
}

func (c *storeCache) Get(ctx context.Context, key string) (string, bool, error) {
	kv, err := c.store.GetKeyValue(ctx, key)
	if err != nil {
		return "", false, err
	}
	if kv == nil || kv.Expired(c.clock.Now()) {
		return "", false, nil
	}
	return kv.Value, true, nil
}

func (c *storeCache) Put(ctx context.Context, key string, value string, ttl time.Duration) error {
	var expiresAt *time.Time
	if ttl > 0 {
		t := c.clock.Now().Add(ttl)
		expiresAt = &t
	}
	return c.store.SetKeyValue(ctx, key, value, expiresAt)
}
