package config

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Clear any env vars that might affect defaults
	for _, key := range []string{"LENDSTAT_FIXTURE", "LOG_LEVEL", "TICK_INTERVAL", "PRICE_CACHE_TTL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.FixturePath != "market.yaml" {
		t.Errorf("FixturePath = %q, want default", cfg.FixturePath)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want INFO", cfg.LogLevel)
	}
	if cfg.TickInterval != 5*time.Second {
		t.Errorf("TickInterval = %v, want 5s", cfg.TickInterval)
	}
	if cfg.PriceCacheTTL != 30*time.Second {
		t.Errorf("PriceCacheTTL = %v, want 30s", cfg.PriceCacheTTL)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("LENDSTAT_FIXTURE", "/etc/lendstat/devnet.yaml")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TICK_INTERVAL", "250ms")
	t.Setenv("PRICE_CACHE_TTL", "1m")

	cfg := Load()

	if cfg.FixturePath != "/etc/lendstat/devnet.yaml" {
		t.Errorf("FixturePath = %q, want override", cfg.FixturePath)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want DEBUG", cfg.LogLevel)
	}
	if cfg.TickInterval != 250*time.Millisecond {
		t.Errorf("TickInterval = %v, want 250ms", cfg.TickInterval)
	}
	if cfg.PriceCacheTTL != time.Minute {
		t.Errorf("PriceCacheTTL = %v, want 1m", cfg.PriceCacheTTL)
	}
}

func TestLoadInvalidEnvFallsBackToDefault(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("TICK_INTERVAL", "invalid-duration")
	t.Setenv("PRICE_CACHE_TTL", "-5s")

	cfg := Load()

	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want default INFO on invalid input", cfg.LogLevel)
	}
	if cfg.TickInterval != 5*time.Second {
		t.Errorf("TickInterval = %v, want default 5s on invalid input", cfg.TickInterval)
	}
	if cfg.PriceCacheTTL != 30*time.Second {
		t.Errorf("PriceCacheTTL = %v, want default 30s on non-positive input", cfg.PriceCacheTTL)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"DEBUG", slog.LevelDebug, true},
		{"warn", slog.LevelWarn, true},
		{" error ", slog.LevelError, true},
		{"nope", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}
