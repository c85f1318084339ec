package api

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jhartmann-dev/blog-api/pkg/token"
)

// Prometheus metrics for HTTP handling.
var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_http_requests_total",
		Help: "Total HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "blog_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds by route",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"route"})

	compressedResponsesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_http_compressed_responses_total",
		Help: "Total HTTP responses served gzip-compressed",
	})
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument records request counts and durations. The route label uses
// the matched mux pattern so path parameters don't explode cardinality.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// withOrigin validates the Origin header against the allow-list and sets
// CORS headers for allowed cross-origin callers. Same-origin requests
// carry no Origin header and pass through.
func (s *Server) withOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		if _, ok := s.allowedOrigins[origin]; !ok {
			s.logger.Warn().Str("origin", origin).Msg("Request from disallowed origin")
			s.writeError(w, errForbidden, "Origin not allowed")
			return
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Add("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, x-api-key, If-None-Match")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// rateLimited gates a handler behind the per-client limiter. Every
// response carries the X-RateLimit headers; an exhausted window yields
// 429 with Retry-After.
func (s *Server) rateLimited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := clientIP(r)
		res := s.limiter.Check(clientID)

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(s.limiter.Limit()))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		w.Header().Set("X-RateLimit-Reset", res.ResetAt.UTC().Format(time.RFC3339))

		if !res.Allowed {
			retryAfter := int(res.RetryAfter(time.Now()).Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

			s.writeJSON(w, errTooManyRequests.status, errorBody{
				Success:    false,
				Error:      errTooManyRequests.label,
				Message:    "Rate limit exceeded. Please try again later.",
				StatusCode: errTooManyRequests.status,
				RetryAfter: retryAfter,
			})
			return
		}

		next(w, r)
	}
}

// requireAPIKey guards the protected routes: 401 when the x-api-key
// header is missing, 403 when it is not on the allow-list.
func (s *Server) requireAPIKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get("x-api-key")
		if apiKey == "" {
			s.writeError(w, errUnauthorized, "API key is required. Please provide 'x-api-key' header.")
			return
		}

		if _, ok := s.apiKeys[apiKey]; !ok {
			s.logger.Warn().Str("path", r.URL.Path).Msg("Invalid API key")
			s.writeError(w, errForbidden, "Invalid API key provided.")
			return
		}

		next(w, r)
	}
}

// requireAuth verifies a Bearer token and passes the claims through.
func (s *Server) requireAuth(next func(http.ResponseWriter, *http.Request, *token.Claims)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			s.writeError(w, errUnauthorized, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			s.writeError(w, errUnauthorized, "Invalid authorization header format. Use 'Bearer <token>'")
			return
		}

		claims, err := s.tokens.Verify(parts[1])
		if err != nil {
			s.writeError(w, errUnauthorized, "Invalid or expired token")
			return
		}

		next(w, r, claims)
	}
}

// clientIP derives the rate-limiter client identifier from proxy headers,
// falling back to the connection's remote address.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if first, _, found := strings.Cut(forwarded, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
