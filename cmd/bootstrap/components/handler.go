package components

import (
	"homestay-checkout/internal/handler"
	"homestay-checkout/internal/handler/api"
	"homestay-checkout/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCheckoutHandler,
		middleware.NewRateLimiter,
	),
	fx.Invoke(handler.NewRouter),
)
