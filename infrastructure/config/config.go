// Package config loads the service configuration from defaults, an optional
// YAML file and environment variables, in increasing order of priority.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment names
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"server_address"`
	Environment   string `yaml:"environment"`
	ServiceName   string `yaml:"service_name"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Catalog replaces the embedded ingredient catalog when set
	CatalogPath string `yaml:"catalog_path"`

	// Query cache TTL in seconds, 0 disables caching
	CacheTTL int `yaml:"cache_ttl"`

	// Feature flags
	EnableMetrics bool `yaml:"enable_metrics"`
	EnableTracing bool `yaml:"enable_tracing"`
	EnableCORS    bool `yaml:"enable_cors"`
	WatchConfig   bool `yaml:"watch_config"`

	AllowedOrigins []string `yaml:"allowed_origins"`

	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker"`

	// ConfigFile is the YAML file this configuration was read from, if any
	ConfigFile string `yaml:"-"`
}

// CircuitBreakerConfig configures the breaker in front of the API routes
type CircuitBreakerConfig struct {
	Enabled      bool          `yaml:"enabled"`
	MaxRequests  uint32        `yaml:"max_requests"`
	Interval     time.Duration `yaml:"interval"`
	Timeout      time.Duration `yaml:"timeout"`
	FailureRatio float64       `yaml:"failure_ratio"`
	MinRequests  uint32        `yaml:"min_requests"`
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() *Config {
	return &Config{
		ServerAddress:  ":8080",
		Environment:    Development,
		ServiceName:    "skincare-backend",
		LogLevel:       "info",
		CacheTTL:       300,
		EnableMetrics:  true,
		EnableTracing:  false,
		EnableCORS:     true,
		WatchConfig:    false,
		AllowedOrigins: []string{"*"},
		CircuitBreaker: CircuitBreakerConfig{
			Enabled:      true,
			MaxRequests:  3,
			Interval:     10 * time.Second,
			Timeout:      30 * time.Second,
			FailureRatio: 0.6,
			MinRequests:  10,
		},
	}
}

// LoadConfig loads configuration from defaults, the file named by
// CONFIG_FILE and environment variables
func LoadConfig() (*Config, error) {
	return LoadConfigFile(os.Getenv("CONFIG_FILE"))
}

// LoadConfigFile loads configuration with path as the YAML layer. An empty
// path skips the file layer.
func LoadConfigFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.loadEnvironmentVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	c.ConfigFile = path
	return nil
}

// loadEnvironmentVariables overlays environment variables on the configuration
func (c *Config) loadEnvironmentVariables() {
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.ServiceName = getEnv("SERVICE_NAME", c.ServiceName)
	c.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", c.LogLevel))
	c.CatalogPath = getEnv("CATALOG_PATH", c.CatalogPath)
	c.CacheTTL = getEnvInt("CACHE_TTL", c.CacheTTL)

	c.EnableMetrics = getEnvBool("ENABLE_METRICS", c.EnableMetrics)
	c.EnableTracing = getEnvBool("ENABLE_TRACING", c.EnableTracing)
	c.EnableCORS = getEnvBool("ENABLE_CORS", c.EnableCORS)
	c.WatchConfig = getEnvBool("WATCH_CONFIG", c.WatchConfig)

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.AllowedOrigins = splitList(origins)
	}

	c.CircuitBreaker.Enabled = getEnvBool("CIRCUIT_BREAKER_ENABLED", c.CircuitBreaker.Enabled)
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	switch c.Environment {
	case Development, Production, Test:
	default:
		return fmt.Errorf("unknown environment %q", c.Environment)
	}
	if c.ServerAddress == "" {
		return fmt.Errorf("SERVER_ADDRESS is required")
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache TTL must be 0 or greater, got %d", c.CacheTTL)
	}
	if c.CircuitBreaker.Enabled {
		if c.CircuitBreaker.FailureRatio <= 0 || c.CircuitBreaker.FailureRatio > 1 {
			return fmt.Errorf("circuit breaker failure ratio must be in (0, 1], got %v", c.CircuitBreaker.FailureRatio)
		}
		if c.CircuitBreaker.Timeout <= 0 {
			return fmt.Errorf("circuit breaker timeout must be positive")
		}
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
