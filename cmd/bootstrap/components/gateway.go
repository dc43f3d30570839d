package components

import (
	"homestay-checkout/internal/infra/gateway"
	"homestay-checkout/internal/usecase/commands"

	"go.uber.org/fx"
)

const gatewayGroup = `group:"gateways"`

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		gateway.NewKhaltiGateway,
		fx.Annotate(
			gateway.NewCardGateway,
			fx.As(new(commands.PaymentGateway)),
			fx.ResultTags(gatewayGroup),
		),
		fx.Annotate(
			func(k *gateway.KhaltiGateway) commands.PaymentGateway { return k },
			fx.ResultTags(gatewayGroup),
		),
		fx.Annotate(
			gateway.NewEsewaGateway,
			fx.As(new(commands.PaymentGateway)),
			fx.ResultTags(gatewayGroup),
		),
		fx.Annotate(
			gateway.NewPayAtPropertyGateway,
			fx.As(new(commands.PaymentGateway)),
			fx.ResultTags(gatewayGroup),
		),
		func(k *gateway.KhaltiGateway) commands.WalletVerifier { return k },
		fx.Annotate(
			newGateways,
			fx.ParamTags(gatewayGroup),
		),
	),
)

func newGateways(gateways []commands.PaymentGateway) *commands.Gateways {
	return commands.NewGateways(gateways...)
}
