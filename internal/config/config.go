// Package config collects the service configuration from environment
// variables at process start.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Development fallbacks. Real deployments must override the secret and the
// API keys; main logs a warning when the defaults are in use.
const (
	DefaultTokenSecret = "dev-secret-change-me"
	defaultAPIKeys     = "demo-api-key-12345,test-api-key-67890"
	defaultOrigins     = "http://localhost:3000,http://localhost:8080"
)

// Config is the full service configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// TokenSecret signs login tokens.
	TokenSecret string

	// APIKeys is the allow-list for the protected routes' x-api-key header.
	APIKeys []string

	// AllowedOrigins is the CORS allow-list.
	AllowedOrigins []string

	// RateLimitMax is the number of requests allowed per client per window.
	RateLimitMax int

	// RateLimitWindow is the fixed-window duration.
	RateLimitWindow time.Duration

	// CacheTTL is the response cache TTL for the read endpoints.
	CacheTTL time.Duration

	// RedisURL selects the shared Redis cache layer when non-empty;
	// otherwise the in-process cache is used.
	RedisURL string

	// LogLevel and LogPretty configure zerolog output.
	LogLevel  string
	LogPretty bool

	// SeedDemoData loads a few sample posts at startup.
	SeedDemoData bool
}

// FromEnv builds a Config from environment variables, falling back to
// development defaults.
func FromEnv() Config {
	return Config{
		Addr:            ":" + getEnv("PORT", "8080"),
		TokenSecret:     getEnv("TOKEN_SECRET", DefaultTokenSecret),
		APIKeys:         splitList(getEnv("API_KEYS", defaultAPIKeys)),
		AllowedOrigins:  splitList(getEnv("ALLOWED_ORIGINS", defaultOrigins)),
		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		CacheTTL:        getEnvDuration("CACHE_TTL", 5*time.Minute),
		RedisURL:        os.Getenv("REDIS_URL"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogPretty:       getEnvBool("LOG_PRETTY", false),
		SeedDemoData:    getEnvBool("SEED_DEMO_DATA", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
