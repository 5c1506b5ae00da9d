package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	CreditAPIAddress   string
	CreditAPIKey       string
	CreditAPITimeout   time.Duration
	SellerTaxID        string
	ReconcileInterval  time.Duration
	ReconcileBatch     int
	WorkerPoolSize     int
	StaleAttemptAfter  time.Duration
	OutboxInterval     time.Duration
	ShutdownTimeout    time.Duration
	RedisAddress       string
	CatalogCacheTTL    time.Duration
	KafkaBrokers       []string
	OrderEventsTopic   string
	CORSAllowedOrigins []string
	LogLevel           string
}

const (
	defaultRunAddress        = ":8000"
	defaultCreditAPIAddress  = "https://api.pre.credix.finance"
	defaultCreditAPITimeout  = 10 * time.Second
	defaultReconcileInterval = 5 * time.Second
	defaultReconcileBatch    = 16
	defaultWorkerPoolSize    = 2
	defaultStaleAttemptAfter = 2 * time.Minute
	defaultOutboxInterval    = 2 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
	defaultCatalogCacheTTL   = 5 * time.Minute
	defaultOrderEventsTopic  = "orders.created"
	defaultLogLevel          = "info"
)

// Load parses configuration from flags and environment variables.
// A .env file in the working directory is merged into the environment first.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		CreditAPIAddress:   getString(lookup, "CREDIT_API_ADDRESS", defaultCreditAPIAddress),
		CreditAPIKey:       getString(lookup, "CREDIT_API_KEY", ""),
		CreditAPITimeout:   getDuration(lookup, "CREDIT_API_TIMEOUT", defaultCreditAPITimeout),
		SellerTaxID:        getString(lookup, "SELLER_TAX_ID", ""),
		ReconcileInterval:  getDuration(lookup, "RECONCILE_INTERVAL", defaultReconcileInterval),
		ReconcileBatch:     getInt(lookup, "RECONCILE_BATCH", defaultReconcileBatch),
		WorkerPoolSize:     getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		StaleAttemptAfter:  getDuration(lookup, "STALE_ATTEMPT_AFTER", defaultStaleAttemptAfter),
		OutboxInterval:     getDuration(lookup, "OUTBOX_INTERVAL", defaultOutboxInterval),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		RedisAddress:       getString(lookup, "REDIS_ADDRESS", ""),
		CatalogCacheTTL:    getDuration(lookup, "CATALOG_CACHE_TTL", defaultCatalogCacheTTL),
		KafkaBrokers:       getList(lookup, "KAFKA_BROKERS"),
		OrderEventsTopic:   getString(lookup, "ORDER_EVENTS_TOPIC", defaultOrderEventsTopic),
		CORSAllowedOrigins: getList(lookup, "CORS_ALLOWED_ORIGINS"),
		LogLevel:           getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		reconcileIntervalStr = cfg.ReconcileInterval.String()
		shutdownTimeoutStr   = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.CreditAPIAddress, "c", cfg.CreditAPIAddress, "Credit provider base URL")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconciliation workers")
	fs.StringVar(&reconcileIntervalStr, "reconcile-interval", reconcileIntervalStr, "Interval between reconciliation passes")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.ReconcileBatch, "reconcile-batch", cfg.ReconcileBatch, "Maximum attempts per reconciliation pass")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ReconcileInterval, err = time.ParseDuration(reconcileIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if keyFile, ok := lookup("CREDIT_API_KEY_FILE"); ok && keyFile != "" {
		content, err := os.ReadFile(keyFile)
		if err != nil {
			return nil, fmt.Errorf("read credit api key file: %w", err)
		}
		cfg.CreditAPIKey = strings.TrimSpace(string(content))
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ReconcileBatch <= 0 {
		cfg.ReconcileBatch = defaultReconcileBatch
	}

	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}

	if cfg.StaleAttemptAfter <= 0 {
		cfg.StaleAttemptAfter = defaultStaleAttemptAfter
	}

	if cfg.OutboxInterval <= 0 {
		cfg.OutboxInterval = defaultOutboxInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.CreditAPITimeout <= 0 {
		cfg.CreditAPITimeout = defaultCreditAPITimeout
	}

	if cfg.CatalogCacheTTL <= 0 {
		cfg.CatalogCacheTTL = defaultCatalogCacheTTL
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	parsed, err := url.Parse(cfg.CreditAPIAddress)
	if err != nil || !parsed.IsAbs() {
		return nil, fmt.Errorf("credit api address must be an absolute URL")
	}

	if cfg.CreditAPIKey == "" {
		return nil, fmt.Errorf("credit api key must be provided")
	}

	if cfg.SellerTaxID == "" {
		return nil, fmt.Errorf("seller tax id must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getList(lookup envLookup, key string) []string {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
