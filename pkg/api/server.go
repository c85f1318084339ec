// Package api implements the HTTP surface of the blog service. Handlers
// compose the rate limiter, response cache, stores and token service; all
// input validation happens here at the boundary, before any store is
// touched.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhartmann-dev/blog-api/pkg/cache"
	"github.com/jhartmann-dev/blog-api/pkg/ratelimit"
	"github.com/jhartmann-dev/blog-api/pkg/store"
	"github.com/jhartmann-dev/blog-api/pkg/token"
)

// Config holds the server dependencies and settings.
type Config struct {
	Posts   *store.PostStore
	Users   *store.UserStore
	Tokens  *token.Service
	Cache   cache.Store
	Limiter *ratelimit.Limiter

	// CacheTTL is how long read responses stay cached.
	CacheTTL time.Duration

	// APIKeys is the allow-list for the protected routes.
	APIKeys []string

	// AllowedOrigins is the CORS allow-list.
	AllowedOrigins []string

	Logger zerolog.Logger
}

// Server routes requests to the blog API handlers.
type Server struct {
	posts   *store.PostStore
	users   *store.UserStore
	tokens  *token.Service
	cache   cache.Store
	limiter *ratelimit.Limiter

	cacheTTL       time.Duration
	apiKeys        map[string]struct{}
	allowedOrigins map[string]struct{}
	logger         zerolog.Logger
}

// New creates a Server wired to the given dependencies.
func New(cfg Config) (*Server, error) {
	if cfg.Posts == nil || cfg.Users == nil {
		return nil, fmt.Errorf("post and user stores are required")
	}
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("token service is required")
	}
	if cfg.Cache == nil {
		return nil, fmt.Errorf("response cache is required")
	}
	if cfg.Limiter == nil {
		return nil, fmt.Errorf("rate limiter is required")
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}

	apiKeys := make(map[string]struct{}, len(cfg.APIKeys))
	for _, k := range cfg.APIKeys {
		apiKeys[k] = struct{}{}
	}
	origins := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		origins[o] = struct{}{}
	}

	return &Server{
		posts:          cfg.Posts,
		users:          cfg.Users,
		tokens:         cfg.Tokens,
		cache:          cfg.Cache,
		limiter:        cfg.Limiter,
		cacheTTL:       cfg.CacheTTL,
		apiKeys:        apiKeys,
		allowedOrigins: origins,
		logger:         cfg.Logger,
	}, nil
}

// Handler returns the root http.Handler for the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/register", s.rateLimited(s.handleRegister))
	mux.HandleFunc("GET /api/auth/me", s.requireAuth(s.handleMe))

	mux.HandleFunc("GET /api/posts", s.rateLimited(s.handleListPosts))
	mux.HandleFunc("POST /api/posts", s.rateLimited(s.handleCreatePost))
	mux.HandleFunc("GET /api/posts/infinite", s.rateLimited(s.handleInfinitePosts))

	mux.HandleFunc("GET /api/protected/posts", s.requireAPIKey(s.handleProtectedList))
	mux.HandleFunc("POST /api/protected/posts", s.requireAPIKey(s.handleProtectedCreate))
	mux.HandleFunc("GET /api/protected/posts/{id}", s.requireAPIKey(s.handleProtectedGet))
	mux.HandleFunc("PUT /api/protected/posts/{id}", s.requireAPIKey(s.handleProtectedUpdate))
	mux.HandleFunc("DELETE /api/protected/posts/{id}", s.requireAPIKey(s.handleProtectedDelete))

	return s.withOrigin(s.instrument(mux))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

// invalidatePostCaches drops every cached posts listing. Called after each
// mutating write so stale pages are never served.
func (s *Server) invalidatePostCaches(r *http.Request) {
	if err := s.cache.InvalidatePattern(r.Context(), "^posts:"); err != nil {
		s.logger.Error().Err(err).Msg("Failed to invalidate post caches")
	}
}
