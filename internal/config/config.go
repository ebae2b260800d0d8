package config

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv             string
	DBPath             string
	DBDriver           string
	RedisAddr          string
	HTTPPort           int
	SessionTTL         time.Duration
	FetchTimeout       time.Duration
	SheetCacheTTL      time.Duration
	ChromePath         string
	BootstrapAdminPass string
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() *Config {
	portStr := getEnv("HTTP_PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = 8080
	}

	return &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		DBPath:             getEnv("DB_PATH", "./data/users.db"),
		DBDriver:           getEnv("DB_DRIVER", "sqlite3"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:           port,
		SessionTTL:         getDuration("SESSION_TTL", 12*time.Hour),
		FetchTimeout:       getDuration("FETCH_TIMEOUT", 30*time.Second),
		SheetCacheTTL:      getDuration("SHEET_CACHE_TTL", 2*time.Minute),
		ChromePath:         getEnv("CHROME_PATH", ""),
		BootstrapAdminPass: getEnv("BOOTSTRAP_ADMIN_PASSWORD", "admin"),
	}
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return d
}
