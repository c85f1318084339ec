// Package cache provides the response cache used by the read endpoints,
// with TTL expiry, pattern-based invalidation and ETag helpers.
package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrCacheMiss indicates the requested key was not found or has expired.
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidPattern indicates the invalidation pattern is not a valid
	// regular expression.
	ErrInvalidPattern = errors.New("invalid invalidation pattern")
)

// Store is a key/value response cache. Keys are caller-defined strings
// (e.g. "posts:2:10"); values are serialized response bodies.
type Store interface {
	// Get returns the value for key, or ErrCacheMiss if the key was never
	// set or its TTL has elapsed.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key for the given TTL, overwriting any
	// existing entry. Non-positive TTLs are not stored.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a single entry.
	Delete(ctx context.Context, key string) error

	// InvalidatePattern removes every entry whose key matches the given
	// regular expression. Used after mutating writes so stale list
	// responses are not served.
	InvalidatePattern(ctx context.Context, pattern string) error
}

// Entry is a cached value with its expiry.
type Entry struct {
	Value     []byte    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the entry is past its expiry at the given time.
func (e *Entry) IsExpired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// TTL returns the time until expiration, or 0 if already expired.
func (e *Entry) TTL(now time.Time) time.Duration {
	ttl := e.ExpiresAt.Sub(now)
	if ttl < 0 {
		return 0
	}
	return ttl
}
