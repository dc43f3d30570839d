package bootstrap

import (
	"homestay-checkout/internal/domain/checkout"
	"homestay-checkout/internal/domain/pricing"
	"homestay-checkout/internal/infra/gateway"
	"homestay-checkout/internal/pkg/clock"
	"homestay-checkout/internal/pkg/config"

	"go.uber.org/fx"
)

var PaymentModule = fx.Module("payment",
	fx.Provide(
		NewPriceModel,
		NewBreakdown,
		checkout.NewPurchaseOrderIssuer,
		fx.Annotate(
			NewStripe,
			fx.As(new(gateway.SessionCreator)),
		),
		gateway.NewKhaltiClient,
	),
)

func NewPriceModel(cfg config.CheckoutConfig) (*pricing.PriceModel, error) {
	return pricing.NewPriceModel(cfg.ExchangeRate, cfg.MinimumMinorUnits)
}

func NewBreakdown(cfg config.CheckoutConfig) pricing.Breakdown {
	return pricing.NewBreakdown(cfg.RoomPriceShare)
}

// The Stripe client itself is built on the first card payment.
func NewStripe(cfg config.StripeConfig) *gateway.LazyStripe {
	return gateway.NewLazyStripe(cfg.SecretKey)
}

func NewClock(cfg config.CheckoutConfig) (clock.Clock, error) {
	return clock.NewRealClockIn(cfg.TimeZone)
}
