package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Port string

	// Database settings. When DatabaseURL is set a Postgres connection is
	// used; otherwise SQLitePath (file or :memory:) is opened.
	DatabaseURL string
	SQLitePath  string

	// Auth settings
	JWTSecret string

	// Logging settings
	LogLevel  string
	LogFormat string

	// Advisor settings. An empty OpenAIKey leaves the completion client
	// unconfigured and every advisor call takes the fallback path.
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	AITimeout     time.Duration

	// Cache settings (dashboard stats)
	StatsCacheTTL time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		Port:          getEnv("PORT", "3000"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		SQLitePath:    getEnv("SQLITE_PATH", "./data/court.db"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
	}

	aiTimeout, err := strconv.Atoi(getEnv("AI_TIMEOUT_SECONDS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid AI_TIMEOUT_SECONDS: %w", err)
	}
	cfg.AITimeout = time.Duration(aiTimeout) * time.Second

	statsTTL, err := strconv.Atoi(getEnv("STATS_CACHE_TTL_SECONDS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid STATS_CACHE_TTL_SECONDS: %w", err)
	}
	cfg.StatsCacheTTL = time.Duration(statsTTL) * time.Second

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
