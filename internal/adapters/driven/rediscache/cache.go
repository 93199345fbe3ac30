// Package rediscache implements the cache port on Redis. It holds the
// OAuth tokens, last-run timestamps and cycle dates the cron automations
// share between runs.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mhersey/vaultkeeper/internal/core/domain"
	"github.com/mhersey/vaultkeeper/internal/logger"
)

// releaseScript deletes a lock key only while the caller still owns it.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Cache implements driven.Cache on a Redis client.
type Cache struct {
	client *redis.Client
}

// New creates a Cache for the given address and password.
func New(addr, password string) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

// Ping verifies the Redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("pinging redis: %w", err)
	}
	return nil
}

// Get returns the value stored under key, or domain.ErrNotFound on a miss.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s", domain.ErrNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("getting %s: %w", key, err)
	}
	return val, nil
}

// Set stores value under key with no expiry.
func (c *Cache) Set(ctx context.Context, key, value string) error {
	if err := c.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	logger.Debug("set %s", key)
	return nil
}

// AcquireLock takes an exclusive lock under key for ttl via SETNX and
// returns the owning token.
func (c *Cache) AcquireLock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	ok, err := c.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", fmt.Errorf("acquiring lock %s: %w", key, err)
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrLockHeld, key)
	}
	logger.Debug("acquired lock %s", key)
	return token, nil
}

// ReleaseLock releases the lock under key if token still owns it. Releasing
// a lock that expired is not an error.
func (c *Cache) ReleaseLock(ctx context.Context, key, token string) error {
	if err := releaseScript.Run(ctx, c.client, []string{key}, token).Err(); err != nil &&
		!errors.Is(err, redis.Nil) {
		return fmt.Errorf("releasing lock %s: %w", key, err)
	}
	logger.Debug("released lock %s", key)
	return nil
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}
