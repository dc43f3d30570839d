//go:build unit

package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"homestay-checkout/internal/pkg/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func testCheckoutConfig() config.CheckoutConfig {
	cfg := config.NewTestConfig().Checkout
	cfg.SessionTTL = 30 * time.Minute
	cfg.SubmitLockTTL = 2 * time.Minute
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pingOrFail(t *testing.T, client *redis.Client) {
	t.Helper()
	require.NoError(t, client.Ping(context.Background()).Err())
}
