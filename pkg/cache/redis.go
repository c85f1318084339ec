package cache

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces cache entries in Redis so invalidation scans never
// touch keys owned by other tenants of the same instance.
const keyPrefix = "blog:cache:"

// Redis is the cache layer backed by a Redis instance, for deployments
// where several replicas should share one response cache. TTL handling is
// delegated to Redis key expiry.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed cache layer.
func NewRedis(client *redis.Client) *Redis {
	if client == nil {
		panic("redis client cannot be nil")
	}
	return &Redis{client: client}
}

// Get retrieves a value by key.
// Returns ErrCacheMiss if the key doesn't exist or has expired.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			CacheMisses.Inc()
			return nil, ErrCacheMiss
		}
		CacheErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	CacheHits.WithLabelValues("redis").Inc()
	return value, nil
}

// Set stores a value with the given TTL, overwriting any existing entry.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := r.client.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes a single entry.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		CacheErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// InvalidatePattern removes every entry whose key matches the regex. The
// pattern applies to the caller-visible key, not the Redis key, so the same
// patterns work against both cache layers.
func (r *Redis) InvalidatePattern(ctx context.Context, pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		CacheErrors.WithLabelValues("invalidate").Inc()
		return fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	var matched []string
	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		redisKey := iter.Val()
		if re.MatchString(redisKey[len(keyPrefix):]) {
			matched = append(matched, redisKey)
		}
	}
	if err := iter.Err(); err != nil {
		CacheErrors.WithLabelValues("invalidate").Inc()
		return fmt.Errorf("redis scan: %w", err)
	}

	if len(matched) == 0 {
		return nil
	}

	if err := r.client.Del(ctx, matched...).Err(); err != nil {
		CacheErrors.WithLabelValues("invalidate").Inc()
		return fmt.Errorf("redis del: %w", err)
	}
	CacheInvalidations.WithLabelValues("redis").Add(float64(len(matched)))

	return nil
}
