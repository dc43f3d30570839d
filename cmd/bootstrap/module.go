package bootstrap

import (
	"homestay-checkout/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	CacheModule,
	fx.Provide(NewClock),
	PaymentModule,
	components.StoreModule,
	components.GatewayModule,
	components.UseCaseModule,
	components.HandlerModule,
)
