package components

import (
	"homestay-checkout/internal/infra/cache"
	"homestay-checkout/internal/usecase/shared"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		fx.Annotate(
			cache.NewSessionStore,
			fx.As(new(shared.SessionStore)),
		),
		fx.Annotate(
			cache.NewSubmitLock,
			fx.As(new(shared.SubmitLock)),
		),
	),
)
