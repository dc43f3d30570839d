//go:build unit

package gateway

import (
	"io"
	"log/slog"
	"testing"

	"homestay-checkout/internal/domain/checkout"
	"homestay-checkout/internal/domain/pricing"
	"homestay-checkout/internal/pkg/config"
	"homestay-checkout/tests/common/builder"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPricing(t *testing.T) (*pricing.PriceModel, pricing.Breakdown) {
	t.Helper()
	cfg := config.NewTestConfig().Checkout
	prices, err := pricing.NewPriceModel(cfg.ExchangeRate, cfg.MinimumMinorUnits)
	require.NoError(t, err)
	return prices, pricing.NewBreakdown(cfg.RoomPriceShare)
}

func attemptFor(draft *builder.DraftBuilder, form *builder.FormBuilder) checkout.Attempt {
	return checkout.Attempt{
		SessionID: "8f2c1c52-3a51-4d1e-9d0e-8f6a1d1b2c3d",
		Draft:     draft.BuildDomain(),
		Form:      form.BuildDomain(),
	}
}
