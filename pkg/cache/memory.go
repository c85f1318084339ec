package cache

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"
)

// Memory is the default in-process cache layer. Expiry is lazy: an entry
// past its TTL is treated as absent on the next read and removed then, with
// no background sweep.
type Memory struct {
	mu      sync.Mutex
	entries map[string]Entry

	now func() time.Time
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]Entry),
		now:     time.Now,
	}
}

// Get retrieves a value by key.
// Returns ErrCacheMiss if the key doesn't exist or the entry is expired.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		CacheMisses.Inc()
		return nil, ErrCacheMiss
	}

	if entry.IsExpired(m.now()) {
		delete(m.entries, key)
		CacheMisses.Inc()
		return nil, ErrCacheMiss
	}

	CacheHits.WithLabelValues("memory").Inc()
	return entry.Value, nil
}

// Set stores a value with the given TTL, overwriting any existing entry.
func (m *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = Entry{
		Value:     value,
		ExpiresAt: m.now().Add(ttl),
	}
	return nil
}

// Delete removes a single entry.
func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}

// InvalidatePattern removes every entry whose key matches the regex.
func (m *Memory) InvalidatePattern(ctx context.Context, pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		CacheErrors.WithLabelValues("invalidate").Inc()
		return fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.entries {
		if re.MatchString(key) {
			delete(m.entries, key)
			CacheInvalidations.WithLabelValues("memory").Inc()
		}
	}
	return nil
}

// Len returns the number of live entries, counting expired ones that have
// not yet been lazily removed.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}
