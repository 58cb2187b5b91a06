package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}
	getEnvOr := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		return fallback
	}
	getIntOr := func(key string, fallback int) int {
		if value, ok := os.LookupEnv(key); ok {
			if n, err := strconv.Atoi(value); err == nil {
				return n
			}
			log.Warn("Invalid integer env var, using fallback", "key", key, "fallback", fallback)
		}
		return fallback
	}
	getDurationOr := func(key string, fallback time.Duration) time.Duration {
		if value, ok := os.LookupEnv(key); ok {
			if d, err := time.ParseDuration(value); err == nil {
				return d
			}
			log.Warn("Invalid duration env var, using fallback", "key", key, "fallback", fallback)
		}
		return fallback
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: getEnvOr("MIGRATIONS_DIR", "./migrations"),
		Port:          getEnvOr("PORT", "8080"),
		QueryTimeout:  getDurationOr("QUERY_TIMEOUT", 5*time.Second),
		Turso: TursoConfig{
			PrimaryURL: getEnvOr("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvOr("TURSO_AUTH_TOKEN", ""),
		},
		Slack: SlackConfig{
			Token:         getEnvOr("SLACK_TOKEN", ""),
			ChannelID:     getEnvOr("SLACK_CHANNEL_ID", ""),
			SigningSecret: getEnvOr("SLACK_SIGNING_SECRET", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: strings.Split(getEnvOr("CORS_ALLOW_ORIGINS", "*"), ","),
		},
		RateLimit: RateLimitConfig{
			Enabled:  getEnvOr("RATE_LIMIT_ENABLED", "true") == "true",
			Requests: getIntOr("RATE_LIMIT_REQUESTS", 120),
			Window:   getDurationOr("RATE_LIMIT_WINDOW", time.Minute),
		},
	}
	return cfg
}
