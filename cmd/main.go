package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"homestay-checkout/cmd/bootstrap"
	"homestay-checkout/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Never expose debug output because of a missing setting
	gin.SetMode(gin.ReleaseMode)

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
}

// @title           homestay-checkout
// @version         1.0
// @description     Checkout and payment orchestration for homestay bookings.

// @BasePath  /
// @schemes http https
func newHTTPServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, logger *slog.Logger) *http.Server {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("🚀 checkout service listening", "address", srv.Addr, "mode", gin.Mode())
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server stopped unexpectedly", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// In-flight submits finish so their session state is saved.
			logger.Info("🛑 draining checkout requests")
			return srv.Shutdown(ctx)
		},
	})
	return srv
}

func main() {
	app := fx.New(
		bootstrap.Module,
		fx.Provide(
			func() *gin.Engine { return gin.New() },
			newHTTPServer,
		),
		fx.Invoke(func(*http.Server) {}),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("checkout service failed to start", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		slog.Error("checkout service did not stop cleanly", "error", err)
	}
}
