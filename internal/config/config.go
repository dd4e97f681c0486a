package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config holds the whole application configuration.
// It is populated from environment variables.
type Config struct {
	App      AppConfig
	Redis    RedisConfig
	Session  SessionConfig
	Checkout CheckoutConfig
	Catalog  CatalogConfig
	Worker   WorkerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Password string
	DB       int
}

// SessionConfig controls the session cookie and idle session eviction.
type SessionConfig struct {
	CookieSecure  bool
	CookieDomain  string
	IdleTimeout   time.Duration
	SweepInterval time.Duration

	// EventHeartbeat is the keep-alive period of the session event stream
	EventHeartbeat time.Duration
}

// CheckoutConfig holds the fixed timings of the checkout flow.
type CheckoutConfig struct {
	SettlementLatency              time.Duration // simulated gateway delay
	SuccessResetDelay              time.Duration // delay before a closed Success panel returns to Cart
	InstantTransferDiscountPercent int           // display-only badge
	TrackingQueue                  string
}

type CatalogConfig struct {
	CacheTTL time.Duration
}

// WorkerConfig is read by cmd/worker only
type WorkerConfig struct {
	Concurrency     int
	HealthPort      string
	ShutdownTimeout time.Duration
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Storefront API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", true),
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			CookieSecure:  getEnvBool("SESSION_COOKIE_SECURE", false),
			CookieDomain:  getEnv("SESSION_COOKIE_DOMAIN", ""),
			IdleTimeout:   getEnvDuration("SESSION_IDLE_TIMEOUT", 2*time.Hour),
			SweepInterval: getEnvDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),

			EventHeartbeat: getEnvDuration("SESSION_EVENT_HEARTBEAT", 15*time.Second),
		},
		Checkout: CheckoutConfig{
			SettlementLatency:              getEnvDuration("CHECKOUT_SETTLEMENT_LATENCY", 2*time.Second),
			SuccessResetDelay:              getEnvDuration("CHECKOUT_SUCCESS_RESET_DELAY", 500*time.Millisecond),
			InstantTransferDiscountPercent: getEnvInt("CHECKOUT_INSTANT_TRANSFER_DISCOUNT_PERCENT", 5),
			TrackingQueue:                  getEnv("CHECKOUT_TRACKING_QUEUE", "low"),
		},
		Catalog: CatalogConfig{
			CacheTTL: getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		},
		Worker: WorkerConfig{
			Concurrency:     getEnvInt("WORKER_CONCURRENCY", 10),
			HealthPort:      getEnv("WORKER_HEALTH_PORT", "9999"),
			ShutdownTimeout: getEnvDuration("WORKER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that the loaded values are usable
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(&c.App,
		validation.Field(&c.App.Port, validation.Required),
		validation.Field(&c.App.Environment, validation.In("development", "staging", "production", "test")),
	); err != nil {
		return fmt.Errorf("app: %w", err)
	}

	if err := validation.ValidateStruct(&c.Checkout,
		validation.Field(&c.Checkout.SettlementLatency, validation.Min(time.Duration(0))),
		validation.Field(&c.Checkout.SuccessResetDelay, validation.Min(time.Duration(0))),
		validation.Field(&c.Checkout.InstantTransferDiscountPercent, validation.Min(0), validation.Max(100)),
		validation.Field(&c.Checkout.TrackingQueue, validation.Required),
	); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}

	if err := validation.ValidateStruct(&c.Session,
		validation.Field(&c.Session.IdleTimeout, validation.Required),
		validation.Field(&c.Session.SweepInterval, validation.Required),
		validation.Field(&c.Session.EventHeartbeat, validation.Required),
	); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	if err := validation.ValidateStruct(&c.Worker,
		validation.Field(&c.Worker.Concurrency, validation.Required, validation.Min(1)),
		validation.Field(&c.Worker.HealthPort, validation.Required),
	); err != nil {
		return fmt.Errorf("worker: %w", err)
	}

	// Production must serve the session cookie over HTTPS
	if c.App.Environment == "production" && !c.Session.CookieSecure {
		return fmt.Errorf("SESSION_COOKIE_SECURE must be set in production")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
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

func getEnvBool(key string, defaultValue bool) bool {
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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
