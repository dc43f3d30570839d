package bootstrap

import (
	"homestay-checkout/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.CheckoutConfig { return cfg.Checkout },
		func(cfg config.Config) config.StripeConfig { return cfg.Stripe },
		func(cfg config.Config) config.KhaltiConfig { return cfg.Khalti },
		func(cfg config.Config) config.RateLimitConfig { return cfg.RateLimit },
	),
)
