// Package cache provides response caching for the blog API read paths.
//
// Two interchangeable layers implement the Store interface:
//
//   - Memory: a process-local map with lazy TTL expiry (the default)
//   - Redis: shared cache for multi-replica deployments, selected by
//     configuring REDIS_URL
//
// Both layers support pattern-based invalidation so that mutating writes
// can drop every stale list response in one call:
//
//	if err := store.InvalidatePattern(ctx, "^posts:"); err != nil {
//		return err
//	}
//
// # Basic Usage
//
//	store := cache.NewMemory()
//
//	body, err := store.Get(ctx, "posts:1:10")
//	if err == cache.ErrCacheMiss {
//		// build the response, then:
//		_ = store.Set(ctx, "posts:1:10", body, 5*time.Minute)
//	}
//
// # Conditional Requests
//
// The ETag helpers let handlers short-circuit to 304 Not Modified when the
// client already holds the current body:
//
//	etag := cache.ETag(body)
//	if cache.MatchesIfNoneMatch(r.Header.Get("If-None-Match"), etag) {
//		w.WriteHeader(http.StatusNotModified)
//		return
//	}
//
// # Metrics
//
// The package exports Prometheus metrics:
//
//   - blog_cache_hits_total{layer} - Cache hits by layer
//   - blog_cache_misses_total - Cache misses
//   - blog_cache_invalidations_total{layer} - Entries removed by pattern
//   - blog_not_modified_total - 304 responses served
//   - blog_cache_errors_total{operation} - Cache operation errors
package cache
