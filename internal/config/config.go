package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	FixturePath   string
	LogLevel      slog.Level
	TickInterval  time.Duration
	PriceCacheTTL time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		FixturePath:   envOrDefault("LENDSTAT_FIXTURE", "market.yaml"),
		LogLevel:      envOrDefaultLevel("LOG_LEVEL", slog.LevelInfo),
		TickInterval:  envOrDefaultDuration("TICK_INTERVAL", 5*time.Second),
		PriceCacheTTL: envOrDefaultDuration("PRICE_CACHE_TTL", 30*time.Second),
	}
}

// ParseLevel parses a log level name, case-insensitively.
func ParseLevel(s string) (slog.Level, bool) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, false
	}
	return level, true
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultLevel(key string, defaultVal slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		level, ok := ParseLevel(v)
		if !ok {
			slog.Warn("invalid log level env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return level
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
