package handler

import (
	"net/http"

	"homestay-checkout/internal/handler/api"
	"homestay-checkout/internal/handler/middleware"
	"homestay-checkout/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, limiter *middleware.RateLimiter, checkoutHandler *api.CheckoutHandler) {
	// Recovery is outermost so it also covers the other middleware.
	engine.Use(
		middleware.CustomRecovery(),
		middleware.NewCORSMiddleware(cfg.CORS),
		middleware.RequestLog(logger),
		middleware.ErrorHandler(),
	)

	engine.GET("/health", healthCheck)
	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Only the calls that create sessions or reach a payment provider are throttled.
	throttled := []gin.HandlerFunc{limiter.Middleware()}

	register(engine.Group("/api/checkout"), []route{
		{Method: http.MethodPost, Path: "/sessions", Handler: checkoutHandler.OpenSession, Mw: throttled},
		{Method: http.MethodGet, Path: "/sessions/:id", Handler: checkoutHandler.GetSession},
		{Method: http.MethodPost, Path: "/sessions/:id/submit", Handler: checkoutHandler.Submit, Mw: throttled},
		{Method: http.MethodGet, Path: "/confirmation", Handler: checkoutHandler.Confirmation},
		{Method: http.MethodGet, Path: "/khalti/return", Handler: checkoutHandler.KhaltiReturn},
	})
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func register(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		handlers := append(append([]gin.HandlerFunc{}, r.Mw...), r.Handler)
		g.Handle(r.Method, r.Path, handlers...)
	}
}
