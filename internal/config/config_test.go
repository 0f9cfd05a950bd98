package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	unsetEnvWithCleanup(t, "SERVER_PORT")
	unsetEnvWithCleanup(t, "PORT")
	unsetEnvWithCleanup(t, "TOKEN_TTL_HOURS")
	unsetEnvWithCleanup(t, "LOW_STOCK_THRESHOLD")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ServerPort != "5000" {
		t.Fatalf("expected default ServerPort 5000, got %q", cfg.ServerPort)
	}
	if cfg.TokenTTLHours != 168 {
		t.Fatalf("expected default token ttl of 168 hours, got %d", cfg.TokenTTLHours)
	}
	if cfg.LowStockThreshold != 10 {
		t.Fatalf("expected default low-stock threshold 10, got %d", cfg.LowStockThreshold)
	}
}

func TestLoadConfig_PlatformPortWinsOverServerPort(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	setEnvWithCleanup(t, "SERVER_PORT", "5000")
	setEnvWithCleanup(t, "PORT", "9090")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ServerPort != "9090" {
		t.Fatalf("expected platform PORT to win, got %q", cfg.ServerPort)
	}
}

func TestLoadConfig_CoercesBadValues(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	setEnvWithCleanup(t, "TOKEN_TTL_HOURS", "-5")
	setEnvWithCleanup(t, "BCRYPT_COST", "99")
	setEnvWithCleanup(t, "LOW_STOCK_THRESHOLD", "0")
	setEnvWithCleanup(t, "LOGIN_RATE_LIMIT_PER_MINUTE", "-1")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.TokenTTLHours != 168 {
		t.Fatalf("expected negative ttl to fall back to 168, got %d", cfg.TokenTTLHours)
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("expected out-of-range bcrypt cost to fall back to 10, got %d", cfg.BcryptCost)
	}
	if cfg.LowStockThreshold != 10 {
		t.Fatalf("expected zero threshold to fall back to 10, got %d", cfg.LowStockThreshold)
	}
	if cfg.LoginRateLimitPerMinute != 0 {
		t.Fatalf("expected negative login limit to coerce to 0, got %d", cfg.LoginRateLimitPerMinute)
	}
}

func TestLoadConfig_TrimsRateLimitPrefix(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	setEnvWithCleanup(t, "REDIS_RATE_LIMIT_PREFIX", "   ")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.RedisRateLimitPrefix != "bms:rate_limit" {
		t.Fatalf("expected blank prefix to fall back to default, got %q", cfg.RedisRateLimitPrefix)
	}
}

func setEnvWithCleanup(t *testing.T, key string, value string) {
	t.Helper()
	prev, hadPrev := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set env %s: %v", key, err)
	}
	t.Cleanup(func() {
		if hadPrev {
			_ = os.Setenv(key, prev)
			return
		}
		_ = os.Unsetenv(key)
	})
}

func unsetEnvWithCleanup(t *testing.T, key string) {
	t.Helper()
	prev, hadPrev := os.LookupEnv(key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset env %s: %v", key, err)
	}
	t.Cleanup(func() {
		if hadPrev {
			_ = os.Setenv(key, prev)
			return
		}
		_ = os.Unsetenv(key)
	})
}
