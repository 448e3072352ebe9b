package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// Persistence
	DBPath     string
	StorageKey string
	PrefsKey   string

	// Cache
	CacheTTL time.Duration

	// Printing
	PrintDelay time.Duration

	// Warranty sweep
	WarrantyCron       string
	WarrantyWindowDays int

	// Observability
	OTLPEndpoint string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBPath:     getEnv("CRM_DB", "crm.db"),
		StorageKey: getEnv("CRM_STORAGE_KEY", "crm.byphone.v2"),
		PrefsKey:   getEnv("CRM_PREFS_KEY", "crm.prefs.v1"),

		CacheTTL: getEnvDuration("CACHE_TTL", 5*time.Minute),

		PrintDelay: getEnvDuration("PRINT_DELAY", 120*time.Millisecond),

		WarrantyCron:       getEnv("WARRANTY_CRON", "0 9 * * *"),
		WarrantyWindowDays: getEnvInt("WARRANTY_WINDOW_DAYS", 7),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
