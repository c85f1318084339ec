package main

import (
	"context"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhartmann-dev/blog-api/internal/config"
	"github.com/jhartmann-dev/blog-api/pkg/api"
	"github.com/jhartmann-dev/blog-api/pkg/cache"
	"github.com/jhartmann-dev/blog-api/pkg/logging"
	"github.com/jhartmann-dev/blog-api/pkg/ratelimit"
	"github.com/jhartmann-dev/blog-api/pkg/store"
	"github.com/jhartmann-dev/blog-api/pkg/token"
)

func main() {
	cfg := config.FromEnv()

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
		Output: os.Stderr,
	})

	if cfg.TokenSecret == config.DefaultTokenSecret {
		logger.Warn().Msg("TOKEN_SECRET not set, using development default")
	}

	posts := store.NewPostStore()
	users := store.NewUserStore()

	if cfg.SeedDemoData {
		seedDemoPosts(posts)
		logger.Info().Int("posts", posts.Count()).Msg("Seeded demo posts")
	}

	tokens, err := token.NewService(cfg.TokenSecret)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create token service")
	}

	responseCache := newCacheLayer(cfg, logger)

	limiter := ratelimit.New(cfg.RateLimitMax, cfg.RateLimitWindow, logging.NewLogger("ratelimit"))
	defer limiter.Close()

	server, err := api.New(api.Config{
		Posts:          posts,
		Users:          users,
		Tokens:         tokens,
		Cache:          responseCache,
		Limiter:        limiter,
		CacheTTL:       cfg.CacheTTL,
		APIKeys:        cfg.APIKeys,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logging.NewLogger("api"),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create API server")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", server.Handler())

	logger.Info().
		Str("addr", cfg.Addr).
		Int("rate_limit_max", cfg.RateLimitMax).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Starting blog API server")

	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}

// newCacheLayer picks the response cache backend: Redis when REDIS_URL is
// set and reachable, the in-process cache otherwise.
func newCacheLayer(cfg config.Config, logger zerolog.Logger) cache.Store {
	if cfg.RedisURL == "" {
		logger.Info().Msg("Using in-memory response cache")
		return cache.NewMemory()
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Fatal().Err(err).Str("redis_url", cfg.RedisURL).Msg("Failed to connect to Redis")
	}

	logger.Info().Str("redis_url", cfg.RedisURL).Msg("Using Redis response cache")
	return cache.NewRedis(client)
}

// seedDemoPosts loads a few sample posts so a fresh instance has content
// to browse.
func seedDemoPosts(posts *store.PostStore) {
	posts.Create(
		"Introduction to RESTful APIs",
		"Learn the basics of REST architecture and how to design clean APIs. This post covers HTTP methods, status codes, and best practices.",
	)
	posts.Create(
		"Understanding HTTP Protocol",
		"Deep dive into HTTP protocol, headers, request/response cycle, and common status codes used in web development.",
	)
	posts.Create(
		"Async Programming with JavaScript",
		"Master async/await, Promises, and error handling in modern JavaScript. Learn how to handle asynchronous operations effectively.",
	)
}
