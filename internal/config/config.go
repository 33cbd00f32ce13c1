package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Store       StoreConfig
	RateLimit   RateLimitConfig
	Logger      LoggerConfig
	StubStore   StubStoreConfig
}

// ServerConfig holds the console HTTP server configuration
type ServerConfig struct {
	Port            int
	Host            string
	MetricsPort     int
	ShutdownTimeout time.Duration
}

// StoreConfig points at the remote payment-method store
type StoreConfig struct {
	BaseURL string
	Timeout time.Duration
}

// RateLimitConfig bounds console requests per client IP. Field* applies to
// the per-keystroke validation endpoint, which sees one request per key.
type RateLimitConfig struct {
	RequestsPerSecond      float64
	Burst                  int
	FieldRequestsPerSecond float64
	FieldBurst             int
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level string // debug, info, warn, error; empty picks the environment default
}

// StubStoreConfig configures cmd/stubstore
type StubStoreConfig struct {
	Port int
	Seed bool
}

// Load reads an optional .env file from the working directory and then the
// environment. Variables already set in the environment win over .env.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return LoadFromEnv()
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:            getEnvAsInt("HTTP_PORT", 8080),
			Host:            getEnv("HTTP_HOST", "0.0.0.0"),
			MetricsPort:     getEnvAsInt("METRICS_PORT", 9090),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Store: StoreConfig{
			BaseURL: getEnv("PAYSTORE_BASE_URL", getEnv("VITE_API_BASE_URL", "http://localhost:8081")),
			Timeout: getEnvAsDuration("PAYSTORE_TIMEOUT", 15*time.Second),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 5),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 20),

			FieldRequestsPerSecond: getEnvAsFloat("RATE_LIMIT_FIELD_RPS", 50),
			FieldBurst:             getEnvAsInt("RATE_LIMIT_FIELD_BURST", 200),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", ""),
		},
		StubStore: StubStoreConfig{
			Port: getEnvAsInt("STUBSTORE_PORT", 8081),
			Seed: getEnvAsBool("STUBSTORE_SEED", true),
		},
	}

	if cfg.Store.BaseURL == "" {
		return nil, fmt.Errorf("PAYSTORE_BASE_URL is required")
	}
	if cfg.Store.Timeout <= 0 {
		return nil, fmt.Errorf("PAYSTORE_TIMEOUT must be positive")
	}
	if cfg.RateLimit.RequestsPerSecond <= 0 || cfg.RateLimit.Burst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if cfg.RateLimit.FieldRequestsPerSecond <= 0 || cfg.RateLimit.FieldBurst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_FIELD_RPS and RATE_LIMIT_FIELD_BURST must be positive")
	}

	return cfg, nil
}

// IsDevelopment reports whether the service runs outside production
func (c *Config) IsDevelopment() bool {
	return c.Environment != "production"
}

// Addr returns the console listen address
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go durations ("15s") or whole seconds ("15")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
