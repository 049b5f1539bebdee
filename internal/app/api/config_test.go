package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "POSTGRES_DSN", "POSTGRES_DRIVER", "REDIS_ADDR", "LEDGER_TTL",
		"TEMPORAL_ADDRESS", "TEMPORAL_NAMESPACE", "TEMPORAL_DISABLED",
		"CATALOG_SETTLE_DELAY", "BAKERY_NAME", "CURRENCY_LABEL", "ENVIRONMENT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "pgx", cfg.PostgresDriver)
	assert.Equal(t, 500*time.Millisecond, cfg.SettleDelay)
	assert.Equal(t, "Mahajana Bakery", cfg.BakeryName)
	assert.Equal(t, "Rs.", cfg.CurrencyLabel)
	assert.False(t, cfg.TemporalDisabled)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("POSTGRES_DRIVER", "PQ")
	t.Setenv("CATALOG_SETTLE_DELAY", "250")
	t.Setenv("LEDGER_TTL", "48h")
	t.Setenv("TEMPORAL_DISABLED", "true")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "pq", cfg.PostgresDriver)
	assert.Equal(t, 250*time.Millisecond, cfg.SettleDelay)
	assert.Equal(t, 48*time.Hour, cfg.LedgerTTL)
	assert.True(t, cfg.TemporalDisabled)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":                 "http",
		"POSTGRES_DRIVER":      "mysql",
		"CATALOG_SETTLE_DELAY": "-1s",
		"LEDGER_TTL":           "soon",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
