//go:build unit

package pricing_test

import (
	"math"
	"testing"

	"homestay-checkout/internal/domain/pricing"
	"homestay-checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T) *pricing.PriceModel {
	t.Helper()
	m, err := pricing.NewPriceModel(decimal.RequireFromString("137.10"), 1000)
	require.NoError(t, err)
	return m
}

func TestNewPriceModel(t *testing.T) {
	t.Run("rejects non-positive rates", func(t *testing.T) {
		for _, rate := range []string{"0", "-1.5"} {
			_, err := pricing.NewPriceModel(decimal.RequireFromString(rate), 1000)
			assert.ErrorIs(t, err, pricing.ErrInvalidRate, rate)
		}
	})

	t.Run("keeps configured values", func(t *testing.T) {
		m := newModel(t)
		assert.True(t, m.ExchangeRate().Equal(decimal.RequireFromString("137.10")))
		assert.Equal(t, int64(1000), m.MinimumMinor())
	})
}

func TestSecondaryMinorUnits(t *testing.T) {
	m := newModel(t)

	t.Run("18.00 converts to 2467.80 and 246780 paisa", func(t *testing.T) {
		total := decimal.RequireFromString("18.00")

		converted := m.ConvertToSecondaryCurrency(total)
		assert.Equal(t, "2467.80", converted.StringFixed(2))

		minor, err := m.SecondaryMinorUnits(total)
		require.NoError(t, err)
		assert.Equal(t, int64(246780), minor)
	})

	t.Run("0.05 rounds half up to 686 paisa and fails the minimum", func(t *testing.T) {
		total := decimal.RequireFromString("0.05")
		assert.Equal(t, "6.855", m.ConvertToSecondaryCurrency(total).String())

		minor, err := m.SecondaryMinorUnits(total)
		assert.Equal(t, int64(686), minor)
		require.ErrorIs(t, err, pricing.ErrAmountConstraint)
		assert.Equal(t, "Amount must be an integer and at least 1000 paisa (10 NPR)", err.Error())
	})

	t.Run("zero total is below the minimum", func(t *testing.T) {
		_, err := m.SecondaryMinorUnits(decimal.Zero)
		assert.ErrorIs(t, err, pricing.ErrAmountConstraint)
	})

	t.Run("negative total is rejected", func(t *testing.T) {
		_, err := m.SecondaryMinorUnits(decimal.RequireFromString("-1"))
		assert.ErrorIs(t, err, pricing.ErrNegativeAmount)
	})

	t.Run("exact minimum passes", func(t *testing.T) {
		rateOne, err := pricing.NewPriceModel(decimal.NewFromInt(1), 1000)
		require.NoError(t, err)

		minor, err := rateOne.SecondaryMinorUnits(decimal.RequireFromString("10.00"))
		require.NoError(t, err)
		assert.Equal(t, int64(1000), minor)
	})
}

func TestToMinorUnits(t *testing.T) {
	m := newModel(t)

	cases := []struct {
		amount string
		want   int64
	}{
		{"0", 0},
		{"0.004", 0},
		{"0.005", 1},
		{"6.855", 686},
		{"2467.80", 246780},
		{"-3.20", 0},
	}
	for _, tc := range cases {
		t.Run(tc.amount, func(t *testing.T) {
			got, err := m.ToMinorUnits(decimal.RequireFromString(tc.amount))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.GreaterOrEqual(t, got, int64(0))
		})
	}

	t.Run("quantize is idempotent on its own output", func(t *testing.T) {
		for _, tc := range cases {
			once, err := pricing.Quantize(decimal.RequireFromString(tc.amount).Mul(decimal.NewFromInt(100)))
			require.NoError(t, err)
			twice, err := pricing.Quantize(decimal.NewFromInt(once))
			require.NoError(t, err)
			assert.Equal(t, once, twice)
		}
	})
}

func TestBaseMinorUnits(t *testing.T) {
	m := newModel(t)

	for amount, want := range map[string]int64{"18.00": 1800, "12.345": 1235} {
		got, err := m.BaseMinorUnits(decimal.RequireFromString(amount))
		require.NoError(t, err)
		assert.Equal(t, want, got, amount)
	}
}

func TestMinorUnits_OutOfRange(t *testing.T) {
	m := newModel(t)
	huge := decimal.RequireFromString("100000000000000000") // 1e17

	t.Run("base conversion does not wrap around", func(t *testing.T) {
		got, err := m.BaseMinorUnits(huge)
		assert.True(t, errs.Is(err, pricing.ErrAmountOutOfRange))
		assert.Zero(t, got)
	})

	t.Run("secondary conversion fails before validation", func(t *testing.T) {
		got, err := m.SecondaryMinorUnits(huge)
		assert.True(t, errs.Is(err, pricing.ErrAmountOutOfRange))
		assert.False(t, errs.Is(err, pricing.ErrAmountConstraint))
		assert.Zero(t, got)
	})

	t.Run("quantize boundary", func(t *testing.T) {
		got, err := pricing.Quantize(decimal.NewFromInt(math.MaxInt64))
		require.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), got)

		_, err = pricing.Quantize(decimal.NewFromInt(math.MaxInt64).Add(decimal.NewFromInt(1)))
		assert.True(t, errs.Is(err, pricing.ErrAmountOutOfRange))
	})

	t.Run("chargeable check covers both currencies", func(t *testing.T) {
		assert.NoError(t, m.CheckChargeable(decimal.RequireFromString("18.00")))

		// Fits in cents but not once multiplied by the exchange rate.
		onlyBase := decimal.RequireFromString("1000000000000000")
		_, err := m.BaseMinorUnits(onlyBase)
		require.NoError(t, err)
		assert.True(t, errs.Is(m.CheckChargeable(onlyBase), pricing.ErrAmountOutOfRange))
	})
}

func TestValidateMinor(t *testing.T) {
	m := newModel(t)

	assert.NoError(t, m.ValidateMinor(decimal.NewFromInt(1000)))
	assert.ErrorIs(t, m.ValidateMinor(decimal.NewFromInt(999)), pricing.ErrAmountConstraint)
	assert.ErrorIs(t, m.ValidateMinor(decimal.RequireFromString("1500.5")), pricing.ErrAmountConstraint)
}
