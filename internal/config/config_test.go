package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"PAYSTORE_BASE_URL", "VITE_API_BASE_URL", "PAYSTORE_TIMEOUT", "HTTP_PORT", "ENVIRONMENT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "RATE_LIMIT_FIELD_RPS", "RATE_LIMIT_FIELD_BURST"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadFromEnv()

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8081", cfg.Store.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Store.Timeout)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.True(t, cfg.IsDevelopment())
	assert.Greater(t, cfg.RateLimit.FieldBurst, cfg.RateLimit.Burst)
	assert.Greater(t, cfg.RateLimit.FieldRequestsPerSecond, cfg.RateLimit.RequestsPerSecond)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("PAYSTORE_BASE_URL", "")
	t.Setenv("VITE_API_BASE_URL", "http://store.internal:9000")
	t.Setenv("PAYSTORE_TIMEOUT", "3")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("STUBSTORE_SEED", "false")

	cfg, err := LoadFromEnv()

	require.NoError(t, err)
	assert.Equal(t, "http://store.internal:9000", cfg.Store.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Store.Timeout)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
	assert.False(t, cfg.StubStore.Seed)
	assert.False(t, cfg.IsDevelopment())

	t.Setenv("PAYSTORE_BASE_URL", "http://primary:8081")
	cfg, err = LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://primary:8081", cfg.Store.BaseURL)
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	t.Setenv("PAYSTORE_TIMEOUT", "-1s")
	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "250ms")
	assert.Equal(t, 250*time.Millisecond, getEnvAsDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION", "nope")
	assert.Equal(t, time.Second, getEnvAsDuration("TEST_DURATION", time.Second))
}
