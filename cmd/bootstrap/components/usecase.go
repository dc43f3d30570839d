package components

import (
	"log/slog"

	"homestay-checkout/internal/domain/pricing"
	"homestay-checkout/internal/pkg/clock"
	"homestay-checkout/internal/pkg/config"
	"homestay-checkout/internal/usecase/commands"
	"homestay-checkout/internal/usecase/queries"
	"homestay-checkout/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		func(
			sessions shared.SessionStore,
			lock shared.SubmitLock,
			gateways *commands.Gateways,
			verifier commands.WalletVerifier,
			prices *pricing.PriceModel,
			clk clock.Clock,
			cfg config.CheckoutConfig,
			logger *slog.Logger,
		) commands.CheckoutCommands {
			return commands.NewCheckoutCommands(sessions, lock, gateways, verifier, prices, clk,
				cfg.ConfirmationPath, cfg.SubmitLockTTL, logger)
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		func(
			sessions shared.SessionStore,
			prices *pricing.PriceModel,
			breakdown pricing.Breakdown,
			cfg config.CheckoutConfig,
		) queries.CheckoutQueries {
			return queries.NewCheckoutQueries(sessions, prices, breakdown, cfg.SecondaryCurrency)
		},
	),
)
