package config

import (
	"fmt"
	"time"

	"github.com/lavenshop/cart-service/internal/domain"
	pkgconfig "github.com/lavenshop/cart-service/pkg/config"
)

// Config holds all cart service configuration, loaded from the environment.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	HTTPPort        int           `env:"CART_HTTP_PORT" envDefault:"8084"`
	APITimeout      time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	CartTTL       time.Duration `env:"CART_TTL" envDefault:"168h"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	CatalogServiceURL string `env:"CATALOG_SERVICE_URL" envDefault:"http://localhost:8081"`
	OrderServiceURL   string `env:"ORDER_SERVICE_URL" envDefault:"http://localhost:8083"`

	// Shipping policy. Pages must never carry their own numbers; these two
	// values are the only source.
	FreeShippingThresholdVND int64 `env:"FREE_SHIPPING_THRESHOLD_VND" envDefault:"300000"`
	ShippingFlatFeeVND       int64 `env:"SHIPPING_FLAT_FEE_VND" envDefault:"30000"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	CircuitBreakerTimeout      time.Duration `env:"CB_TIMEOUT" envDefault:"30s"`
	CircuitBreakerFailureRatio float64       `env:"CB_FAILURE_RATIO" envDefault:"0.5"`
	CircuitBreakerMinRequests  uint32        `env:"CB_MIN_REQUESTS" envDefault:"5"`

	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := pkgconfig.Load(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("CART_HTTP_PORT must be a valid port, got %d", c.HTTPPort)
	}
	if c.CartTTL <= 0 {
		return fmt.Errorf("CART_TTL must be positive, got %s", c.CartTTL)
	}
	if c.FreeShippingThresholdVND < 0 {
		return fmt.Errorf("FREE_SHIPPING_THRESHOLD_VND must not be negative, got %d", c.FreeShippingThresholdVND)
	}
	if c.ShippingFlatFeeVND < 0 {
		return fmt.Errorf("SHIPPING_FLAT_FEE_VND must not be negative, got %d", c.ShippingFlatFeeVND)
	}
	if len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS must not be empty")
	}
	return nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// ShippingPolicy returns the configured shipping policy.
func (c *Config) ShippingPolicy() domain.ShippingPolicy {
	return domain.ShippingPolicy{
		FreeShippingThreshold: c.FreeShippingThresholdVND,
		FlatFee:               c.ShippingFlatFeeVND,
	}
}
