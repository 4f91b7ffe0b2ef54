package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	Redis    RedisConfig
	Cart     CartConfig
	Currency CurrencyConfig
	Search   SearchConfig
	CORS     CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs error
	if _, err := url.ParseRequestURI(c.Upstream.BaseURL); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("upstream base url: %w", err))
	}
	if c.Upstream.Timeout <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("upstream timeout must be positive, got %s", c.Upstream.Timeout))
	}
	if c.Currency.USDToINRRate <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("currency rate must be positive, got %v", c.Currency.USDToINRRate))
	}
	if c.Cart.TaxRatePercent < 0 || c.Cart.TaxRatePercent > 100 {
		errs = multierr.Append(errs, fmt.Errorf("cart tax rate out of range: %v", c.Cart.TaxRatePercent))
	}
	if c.Search.DefaultPriceCap <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("default price cap must be positive, got %d", c.Search.DefaultPriceCap))
	}
	return errs
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig points at the public demo product API the catalog is
// proxied from.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"STOREFRONT_UPSTREAM_BASE_URL" default:"https://dummyjson.com/products"`
	Timeout time.Duration `envconfig:"STOREFRONT_UPSTREAM_TIMEOUT" default:"10s"`
}

// RedisConfig is optional; carts live in process memory when URL is empty.
type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type CartConfig struct {
	SessionTTL     time.Duration `envconfig:"STOREFRONT_CART_SESSION_TTL" default:"72h"`
	TaxRatePercent float64       `envconfig:"STOREFRONT_CART_TAX_RATE_PERCENT" default:"8"`
}

type CurrencyConfig struct {
	USDToINRRate float64 `envconfig:"STOREFRONT_CURRENCY_USD_TO_INR_RATE" default:"83"`
}

type SearchConfig struct {
	DebounceDelay   time.Duration `envconfig:"STOREFRONT_SEARCH_DEBOUNCE_DELAY" default:"300ms"`
	DefaultPriceCap int           `envconfig:"STOREFRONT_SEARCH_DEFAULT_PRICE_CAP" default:"10000"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"STOREFRONT_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
