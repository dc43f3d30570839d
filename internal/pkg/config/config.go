package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, provider secrets, etc.)
// - default: Values common across all environments (timezone, rates, TTLs, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	Log       LogConfig
	Checkout  CheckoutConfig
	Stripe    StripeConfig
	Khalti    KhaltiConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Kathmandu"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"20700"` // 5*60*60 + 45*60
}

type CheckoutConfig struct {
	// NPR per USD. A build-time constant, not a live quote.
	ExchangeRate      decimal.Decimal `envconfig:"CHECKOUT_EXCHANGE_RATE" default:"137.10"`
	MinimumMinorUnits int64           `envconfig:"CHECKOUT_MIN_MINOR_UNITS" default:"1000"`
	RoomPriceShare    decimal.Decimal `envconfig:"CHECKOUT_ROOM_SHARE" default:"0.80"`
	BaseCurrency      string          `envconfig:"CHECKOUT_BASE_CURRENCY" default:"usd"`
	SecondaryCurrency string          `envconfig:"CHECKOUT_SECONDARY_CURRENCY" default:"NPR"`
	ConfirmationPath  string          `envconfig:"CHECKOUT_CONFIRMATION_PATH" default:"/booking/confirmation"`
	TimeZone          string          `envconfig:"CHECKOUT_TIMEZONE" default:"Asia/Kathmandu"`
	SessionTTL        time.Duration   `envconfig:"CHECKOUT_SESSION_TTL" default:"30m"`
	SubmitLockTTL     time.Duration   `envconfig:"CHECKOUT_SUBMIT_LOCK_TTL" default:"2m"`
}

type StripeConfig struct {
	SecretKey  string `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	SuccessURL string `envconfig:"STRIPE_SUCCESS_URL" default:"http://localhost:3000/booking/confirmation"`
	CancelURL  string `envconfig:"STRIPE_CANCEL_URL" default:"http://localhost:3000/checkout"`
}

type KhaltiConfig struct {
	BaseURL    string `envconfig:"KHALTI_BASE_URL" default:"https://dev.khalti.com/api/v2"`
	SecretKey  string `envconfig:"KHALTI_SECRET_KEY" required:"true"`
	ReturnURL  string `envconfig:"KHALTI_RETURN_URL" default:"http://localhost:8080/api/checkout/khalti/return"`
	WebsiteURL string `envconfig:"KHALTI_WEBSITE_URL" default:"http://localhost:3000"`
	// Zero keeps the transport default (no deadline).
	Timeout time.Duration `envconfig:"KHALTI_TIMEOUT" default:"0s"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type RateLimitConfig struct {
	PerMinute int `envconfig:"RATE_LIMIT_PER_MINUTE" default:"30"`
	Burst     int `envconfig:"RATE_LIMIT_BURST" default:"5"`
}

func (c *RedisConfig) String() string {
	return fmt.Sprintf("redis://%s/%d", c.Addr, c.DB)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Content-Type"},
			MaxAge:       time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Kathmandu",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 20700,
		},
		Checkout: CheckoutConfig{
			ExchangeRate:      decimal.RequireFromString("137.10"),
			MinimumMinorUnits: 1000,
			RoomPriceShare:    decimal.RequireFromString("0.80"),
			BaseCurrency:      "usd",
			SecondaryCurrency: "NPR",
			ConfirmationPath:  "/booking/confirmation",
			TimeZone:          "UTC",
			SessionTTL:        30 * time.Minute,
			SubmitLockTTL:     2 * time.Minute,
		},
		Stripe: StripeConfig{
			SecretKey:  "sk_test_dummy",
			SuccessURL: "http://localhost:3000/booking/confirmation",
			CancelURL:  "http://localhost:3000/checkout",
		},
		Khalti: KhaltiConfig{
			BaseURL:    "http://127.0.0.1:0",
			SecretKey:  "test_secret_key",
			ReturnURL:  "http://localhost:8889/api/checkout/khalti/return",
			WebsiteURL: "http://localhost:3000",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		RateLimit: RateLimitConfig{
			PerMinute: 600,
			Burst:     100,
		},
	}
}
