package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultGeminiModel = "gemini-2.0-flash"
	defaultResultTTL   = 5 * time.Minute
	defaultMaxPosts    = 50
)

type Config struct {
	AppEnv    string
	Port      string
	LogLevel  string
	LogFormat string

	TwitterBearerToken string
	TwitterBaseURL     string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	// RedisURL is optional: empty means the in-memory result store.
	RedisURL  string
	ResultTTL time.Duration

	// MaxPosts bounds how many posts one analysis fetches and scores.
	MaxPosts int
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		TwitterBearerToken: getEnv("TWITTER_BEARER_TOKEN", ""),
		TwitterBaseURL:     getEnv("TWITTER_BASE_URL", ""),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiModel:        getEnv("GEMINI_MODEL", defaultGeminiModel),
		GeminiBaseURL:      getEnv("GEMINI_BASE_URL", ""),
		RedisURL:           getEnv("REDIS_URL", ""),
		ResultTTL:          defaultResultTTL,
		MaxPosts:           defaultMaxPosts,
	}

	if cfg.TwitterBearerToken == "" {
		return nil, fmt.Errorf("TWITTER_BEARER_TOKEN is required")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	if raw := os.Getenv("RESULT_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("RESULT_TTL must be a valid duration: %w", err)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("RESULT_TTL must be positive, got %s", ttl)
		}
		cfg.ResultTTL = ttl
	}

	if raw := os.Getenv("MAX_POSTS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("MAX_POSTS must be an integer: %w", err)
		}
		if n < 10 || n > 100 {
			return nil, fmt.Errorf("MAX_POSTS must be between 10 and 100, got %d", n)
		}
		cfg.MaxPosts = n
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
