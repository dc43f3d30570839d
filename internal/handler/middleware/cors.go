package middleware

import (
	"log/slog"
	"slices"

	"homestay-checkout/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware lets the checkout page call the API from its own origin.
// A "*" origin opens the API to any site but then drops credentials, which
// browsers refuse to combine with a wildcard.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     appendMissing(cfg.AllowHeaders, RequestIDHeader),
		ExposeHeaders:    appendMissing(cfg.ExposeHeaders, RequestIDHeader),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	if slices.Contains(cfg.AllowOrigins, "*") {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowOrigins
	}

	slog.Info("CORS configured", "origins", cfg.AllowOrigins, "all_origins", corsCfg.AllowAllOrigins)
	return cors.New(corsCfg)
}

func appendMissing(values []string, v string) []string {
	if slices.Contains(values, v) {
		return values
	}
	return append(slices.Clone(values), v)
}
