package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds the runtime settings of the auction engine
type Config struct {
	Port string

	DatabaseURL string // empty selects the in-memory store
	DBMigrate   bool

	RedisAddr     string // empty selects the in-process lock
	RedisPassword string
	RedisDB       int

	AMQPURL      string // empty disables domain events
	AMQPExchange string

	SweepInterval    time.Duration
	BidLockTimeout   time.Duration
	BidLockTTL       time.Duration
	BidCommitRetries int
	MinIncrementPct  decimal.Decimal
	MaxIncrementPct  decimal.Decimal

	CORSAllowedOrigins []string
	LogLevel           string
	SeedDemoData       bool
}

// Load reads .env when present and then the process environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only
func FromEnv() (*Config, error) {
	var errs []error
	cfg := &Config{
		Port:               getEnvOrDefault("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DBMigrate:          getBool("DB_MIGRATE", true, &errs),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            getInt("REDIS_DB", 0, &errs),
		AMQPURL:            os.Getenv("AMQP_URL"),
		AMQPExchange:       getEnvOrDefault("AMQP_EXCHANGE", "auction.events"),
		SweepInterval:      getDuration("SWEEP_INTERVAL", time.Minute, &errs),
		BidLockTimeout:     getDuration("BID_LOCK_TIMEOUT", 5*time.Second, &errs),
		BidLockTTL:         getDuration("BID_LOCK_TTL", 10*time.Second, &errs),
		BidCommitRetries:   getInt("BID_COMMIT_RETRIES", 3, &errs),
		MinIncrementPct:    getDecimal("BID_MIN_INCREMENT_PCT", decimal.NewFromInt(1), &errs),
		MaxIncrementPct:    getDecimal("BID_MAX_INCREMENT_PCT", decimal.NewFromInt(10), &errs),
		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		SeedDemoData:       getBool("SEED_DEMO_DATA", false, &errs),
	}

	if cfg.SweepInterval <= 0 {
		errs = append(errs, fmt.Errorf("SWEEP_INTERVAL must be positive"))
	}
	if cfg.BidLockTimeout <= 0 {
		errs = append(errs, fmt.Errorf("BID_LOCK_TIMEOUT must be positive"))
	}
	if cfg.BidCommitRetries < 1 {
		errs = append(errs, fmt.Errorf("BID_COMMIT_RETRIES must be at least 1"))
	}
	if !cfg.MaxIncrementPct.IsPositive() {
		errs = append(errs, fmt.Errorf("BID_MAX_INCREMENT_PCT must be positive"))
	}
	if cfg.MinIncrementPct.IsNegative() || cfg.MaxIncrementPct.LessThan(cfg.MinIncrementPct) {
		errs = append(errs, fmt.Errorf("BID_MIN_INCREMENT_PCT and BID_MAX_INCREMENT_PCT must satisfy 0 <= min <= max"))
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, def int, errs *[]error) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid int %q", key, raw))
		return def
	}
	return n
}

func getBool(key string, def bool, errs *[]error) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid bool %q", key, raw))
		return def
	}
	return b
}

func getDuration(key string, def time.Duration, errs *[]error) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid duration %q", key, raw))
		return def
	}
	return d
}

func getDecimal(key string, def decimal.Decimal, errs *[]error) decimal.Decimal {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid number %q", key, raw))
		return def
	}
	return d
}

func getList(key string, def []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
