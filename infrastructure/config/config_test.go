package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var configEnvVars = []string{
	"CONFIG_FILE", "SERVER_ADDRESS", "ENVIRONMENT", "SERVICE_NAME", "LOG_LEVEL",
	"CATALOG_PATH", "CACHE_TTL", "ENABLE_METRICS", "ENABLE_TRACING", "ENABLE_CORS",
	"WATCH_CONFIG", "ALLOWED_ORIGINS", "CIRCUIT_BREAKER_ENABLED",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
	}
}

func writeConfigFile(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadConfigLayers(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, t.TempDir(), `
server_address: ":9090"
log_level: debug
cache_ttl: 60
catalog_path: /etc/skincare/catalog.yaml
allowed_origins: [https://example.com]
circuit_breaker:
  timeout: 5s
  failure_ratio: 0.5
`)
	t.Setenv("CONFIG_FILE", path)

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.ServerAddress)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 60, cfg.CacheTTL)
		assert.Equal(t, "/etc/skincare/catalog.yaml", cfg.CatalogPath)
		assert.Equal(t, []string{"https://example.com"}, cfg.AllowedOrigins)
		assert.Equal(t, 5*time.Second, cfg.CircuitBreaker.Timeout)
		assert.Equal(t, 0.5, cfg.CircuitBreaker.FailureRatio)
		assert.Equal(t, uint32(10), cfg.CircuitBreaker.MinRequests)
		assert.Equal(t, path, cfg.ConfigFile)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "WARN")
		t.Setenv("CACHE_TTL", "0")
		t.Setenv("ENABLE_METRICS", "false")
		t.Setenv("ALLOWED_ORIGINS", "https://a.test, https://b.test")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, 0, cfg.CacheTTL)
		assert.False(t, cfg.EnableMetrics)
		assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.AllowedOrigins)
	})
}

func TestLoadConfigFileErrors(t *testing.T) {
	clearEnv(t)

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("unknown field", func(t *testing.T) {
		path := writeConfigFile(t, t.TempDir(), "log_lvl: debug\n")
		_, err := LoadConfigFile(path)
		assert.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"unknown environment", func(c *Config) { c.Environment = "staging" }, "unknown environment"},
		{"empty address", func(c *Config) { c.ServerAddress = "" }, "SERVER_ADDRESS"},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }, "unknown log level"},
		{"negative ttl", func(c *Config) { c.CacheTTL = -1 }, "cache TTL"},
		{"failure ratio", func(c *Config) { c.CircuitBreaker.FailureRatio = 1.5 }, "failure ratio"},
		{"breaker timeout", func(c *Config) { c.CircuitBreaker.Timeout = 0 }, "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("disabled breaker skips its checks", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.CircuitBreaker = CircuitBreakerConfig{}
		assert.NoError(t, cfg.Validate())
	})
}

func TestNewConfigWatcherRequiresFile(t *testing.T) {
	_, err := NewConfigWatcher(DefaultConfig(), zap.NewNop())
	assert.Error(t, err)
}

func TestConfigWatcherReload(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeConfigFile(t, dir, "log_level: info\n")

	initial, err := LoadConfigFile(path)
	require.NoError(t, err)

	watcher, err := NewConfigWatcher(initial, zap.NewNop())
	require.NoError(t, err)
	watcher.debounce = 10 * time.Millisecond

	changed := make(chan *Config, 1)
	watcher.OnChange(func(cfg *Config) { changed <- cfg })

	t.Run("invalid file keeps the previous configuration", func(t *testing.T) {
		writeConfigFile(t, dir, "log_level: loud\n")
		watcher.reloadConfig()
		assert.Same(t, initial, watcher.GetConfig())
	})

	t.Run("unchanged file notifies nobody", func(t *testing.T) {
		writeConfigFile(t, dir, "log_level: info\n")
		watcher.reloadConfig()
		assert.Same(t, initial, watcher.GetConfig())
		assert.Empty(t, changed)
	})

	t.Run("file change is picked up", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- watcher.Run(ctx) }()
		defer func() {
			cancel()
			assert.NoError(t, <-done)
		}()

		// Rewrite until the watcher has registered the directory
		require.Eventually(t, func() bool {
			_ = os.WriteFile(path, []byte("log_level: debug\n"), 0o600)
			select {
			case cfg := <-changed:
				return cfg.LogLevel == "debug"
			case <-time.After(50 * time.Millisecond):
				return false
			}
		}, 5*time.Second, 10*time.Millisecond)

		assert.Equal(t, "debug", watcher.GetConfig().LogLevel)
	})
}

func TestDiffConfigs(t *testing.T) {
	old := DefaultConfig()
	updated := DefaultConfig()
	assert.Empty(t, diffConfigs(old, updated))

	updated.LogLevel = "debug"
	updated.CacheTTL = 10
	assert.Equal(t, []string{
		"log_level: info -> debug",
		"cache_ttl: 300 -> 10",
	}, diffConfigs(old, updated))
}
