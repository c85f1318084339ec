// Package metrics provides the centralized Prometheus registry for the
// blog API. All metrics are defined in their respective packages (api,
// cache, ratelimit) to maintain modularity and avoid circular dependencies.
//
// This package provides documentation and reference for all available
// metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the service.
// All metrics are automatically registered via promauto in their
// respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Rate Limit Metrics (pkg/ratelimit):
//   - blog_rate_limit_allowed_total (Counter): Requests allowed by the limiter
//   - blog_rate_limit_blocked_total (Counter): Requests blocked with 429
//   - blog_rate_limit_clients (Gauge): Client windows currently tracked
//
// Cache Metrics (pkg/cache):
//   - blog_cache_hits_total{layer="memory"|"redis"} (Counter): Cache hits by layer
//   - blog_cache_misses_total (Counter): Cache misses
//   - blog_cache_invalidations_total{layer} (Counter): Entries removed by pattern invalidation
//   - blog_not_modified_total (Counter): 304 Not Modified responses served
//   - blog_cache_errors_total{operation} (Counter): Cache operation errors
//
// Request Metrics (pkg/api):
//   - blog_http_requests_total{route, method, status} (Counter): Requests by route and HTTP status
//   - blog_http_request_duration_seconds{route} (Histogram): Request duration by route
//   - blog_http_compressed_responses_total (Counter): Responses served gzip-compressed
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(blog_cache_hits_total[5m])) /
//   (sum(rate(blog_cache_hits_total[5m])) + sum(rate(blog_cache_misses_total[5m])))
//
//   # Share of requests rejected by the limiter
//   rate(blog_rate_limit_blocked_total[5m]) /
//   (rate(blog_rate_limit_allowed_total[5m]) + rate(blog_rate_limit_blocked_total[5m]))
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(blog_http_request_duration_seconds_bucket[5m]))
//
//   # 304 Response Rate
//   rate(blog_not_modified_total[5m]) / rate(blog_http_requests_total[5m])
