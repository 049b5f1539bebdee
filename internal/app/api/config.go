package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	catalogapp "github.com/Apurer/bakery-ledger/internal/domains/catalog/application"
	platformpostgres "github.com/Apurer/bakery-ledger/internal/platform/postgres"
)

// Config carries environment-driven settings for the API and worker processes.
type Config struct {
	Port              string
	PostgresDSN       string
	PostgresDriver    string
	RedisAddr         string
	LedgerTTL         time.Duration
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	SettleDelay       time.Duration
	BakeryName        string
	CurrencyLabel     string
	Environment       string
	ShutdownTimeout   time.Duration
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		PostgresDriver:    strings.ToLower(envDefault("POSTGRES_DRIVER", platformpostgres.DriverPgx)),
		RedisAddr:         strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		SettleDelay:       catalogapp.DefaultSettleDelay,
		BakeryName:        envDefault("BAKERY_NAME", "Mahajana Bakery"),
		CurrencyLabel:     envDefault("CURRENCY_LABEL", "Rs."),
		Environment:       envDefault("ENVIRONMENT", "local"),
		ShutdownTimeout:   10 * time.Second,
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}
	switch cfg.PostgresDriver {
	case platformpostgres.DriverPgx, platformpostgres.DriverPQ:
	default:
		return Config{}, fmt.Errorf("POSTGRES_DRIVER must be %q or %q", platformpostgres.DriverPgx, platformpostgres.DriverPQ)
	}
	if raw := strings.TrimSpace(os.Getenv("CATALOG_SETTLE_DELAY")); raw != "" {
		delay, err := parseDuration(raw)
		if err != nil || delay < 0 {
			return Config{}, fmt.Errorf("CATALOG_SETTLE_DELAY must be a non-negative duration such as 500ms")
		}
		cfg.SettleDelay = delay
	}
	if raw := strings.TrimSpace(os.Getenv("LEDGER_TTL")); raw != "" {
		ttl, err := parseDuration(raw)
		if err != nil || ttl < 0 {
			return Config{}, fmt.Errorf("LEDGER_TTL must be a non-negative duration such as 720h")
		}
		cfg.LedgerTTL = ttl
	}
	return cfg, nil
}

// parseDuration accepts Go durations and bare integers as milliseconds.
func parseDuration(raw string) (time.Duration, error) {
	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(raw)
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
