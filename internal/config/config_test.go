package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DATABASE_URL", "DB_MIGRATE", "REDIS_ADDR", "REDIS_DB", "AMQP_URL", "AMQP_EXCHANGE",
		"SWEEP_INTERVAL", "BID_LOCK_TIMEOUT", "BID_LOCK_TTL", "BID_COMMIT_RETRIES",
		"BID_MIN_INCREMENT_PCT", "BID_MAX_INCREMENT_PCT", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "SEED_DEMO_DATA",
	} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Empty(t, cfg.DatabaseURL)
	require.True(t, cfg.DBMigrate)
	require.Equal(t, time.Minute, cfg.SweepInterval)
	require.Equal(t, 5*time.Second, cfg.BidLockTimeout)
	require.Equal(t, 3, cfg.BidCommitRetries)
	require.True(t, cfg.MinIncrementPct.Equal(decimal.NewFromInt(1)))
	require.True(t, cfg.MaxIncrementPct.Equal(decimal.NewFromInt(10)))
	require.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	require.Equal(t, "auction.events", cfg.AMQPExchange)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SWEEP_INTERVAL", "15s")
	t.Setenv("BID_COMMIT_RETRIES", "5")
	t.Setenv("BID_MIN_INCREMENT_PCT", "0.5")
	t.Setenv("BID_MAX_INCREMENT_PCT", "25")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("SEED_DEMO_DATA", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, 15*time.Second, cfg.SweepInterval)
	require.Equal(t, 5, cfg.BidCommitRetries)
	require.True(t, cfg.MinIncrementPct.Equal(decimal.RequireFromString("0.5")))
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	require.True(t, cfg.SeedDemoData)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad_duration", key: "SWEEP_INTERVAL", value: "soon"},
		{name: "zero_retries", key: "BID_COMMIT_RETRIES", value: "0"},
		{name: "bad_bool", key: "DB_MIGRATE", value: "maybe"},
		{name: "min_above_max", key: "BID_MIN_INCREMENT_PCT", value: "50"},
		{name: "zero_max_increment", key: "BID_MAX_INCREMENT_PCT", value: "0"},
		{name: "negative_max_increment", key: "BID_MAX_INCREMENT_PCT", value: "-5"},
		{name: "bad_max_increment", key: "BID_MAX_INCREMENT_PCT", value: "ten"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := FromEnv()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.key[:4])
		})
	}
}
