package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("CHECKOUT_SETTLEMENT_LATENCY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 2*time.Second, cfg.Checkout.SettlementLatency)
	assert.Equal(t, 500*time.Millisecond, cfg.Checkout.SuccessResetDelay)
	assert.Equal(t, 5, cfg.Checkout.InstantTransferDiscountPercent)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 15*time.Second, cfg.Session.EventHeartbeat)
	assert.Equal(t, 10, cfg.Worker.Concurrency)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CHECKOUT_SETTLEMENT_LATENCY", "150ms")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("SESSION_IDLE_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 150*time.Millisecond, cfg.Checkout.SettlementLatency)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 2*time.Hour, cfg.Session.IdleTimeout, "unparsable values fall back to the default")
}

func TestValidate(t *testing.T) {
	t.Run("unknown environment", func(t *testing.T) {
		t.Setenv("APP_ENV", "qa")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("discount out of range", func(t *testing.T) {
		t.Setenv("CHECKOUT_INSTANT_TRANSFER_DISCOUNT_PERCENT", "120")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("worker without concurrency", func(t *testing.T) {
		t.Setenv("WORKER_CONCURRENCY", "0")
		_, err := Load()
		assert.ErrorContains(t, err, "worker")
	})

	t.Run("worker with negative concurrency", func(t *testing.T) {
		t.Setenv("WORKER_CONCURRENCY", "-2")
		_, err := Load()
		assert.ErrorContains(t, err, "worker")
	})

	t.Run("production requires secure cookie", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("SESSION_COOKIE_SECURE", "false")
		_, err := Load()
		assert.ErrorContains(t, err, "SESSION_COOKIE_SECURE")
	})
}
