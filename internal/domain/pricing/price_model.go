package pricing

import (
	"fmt"
	"math"

	"homestay-checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidRate      = errs.New("exchange rate must be positive")
	ErrNegativeAmount   = errs.New("amount cannot be negative")
	ErrAmountConstraint = errs.New("amount constraint violated")
	ErrAmountOutOfRange = errs.New("amount is too large to charge")
)

var (
	minorUnitsPerMajor = decimal.NewFromInt(100)
	maxMinorUnits      = decimal.NewFromInt(math.MaxInt64)
)

// PriceModel converts base-currency (USD-equivalent) amounts into the secondary
// currency (NPR) and quantizes them to integer minor units (paisa).
// The rate is a point-in-time constant taken from configuration.
type PriceModel struct {
	exchangeRate decimal.Decimal
	minimumMinor int64
}

func NewPriceModel(exchangeRate decimal.Decimal, minimumMinor int64) (*PriceModel, error) {
	if !exchangeRate.IsPositive() {
		return nil, ErrInvalidRate
	}
	if minimumMinor < 0 {
		minimumMinor = 0
	}
	return &PriceModel{
		exchangeRate: exchangeRate,
		minimumMinor: minimumMinor,
	}, nil
}

func (m *PriceModel) ExchangeRate() decimal.Decimal { return m.exchangeRate }
func (m *PriceModel) MinimumMinor() int64           { return m.minimumMinor }

func (m *PriceModel) ConvertToSecondaryCurrency(amountBase decimal.Decimal) decimal.Decimal {
	return amountBase.Mul(m.exchangeRate)
}

// ToMinorUnits turns a secondary-currency amount into paisa.
func (m *PriceModel) ToMinorUnits(amountSecondary decimal.Decimal) (int64, error) {
	return Quantize(amountSecondary.Mul(minorUnitsPerMajor))
}

// BaseMinorUnits is used by providers that charge in the booking's own currency.
func (m *PriceModel) BaseMinorUnits(amountBase decimal.Decimal) (int64, error) {
	return Quantize(amountBase.Mul(minorUnitsPerMajor))
}

// CheckChargeable reports whether every provider could express amountBase
// in its own minor units.
func (m *PriceModel) CheckChargeable(amountBase decimal.Decimal) error {
	if _, err := m.BaseMinorUnits(amountBase); err != nil {
		return err
	}
	_, err := m.ToMinorUnits(m.ConvertToSecondaryCurrency(amountBase))
	return err
}

// SecondaryMinorUnits chains conversion and quantization and checks the
// provider minimum. Nothing may be sent to the provider when it fails.
func (m *PriceModel) SecondaryMinorUnits(amountBase decimal.Decimal) (int64, error) {
	if amountBase.IsNegative() {
		return 0, ErrNegativeAmount
	}
	minor, err := m.ToMinorUnits(m.ConvertToSecondaryCurrency(amountBase))
	if err != nil {
		return 0, err
	}
	if err := m.ValidateMinor(decimal.NewFromInt(minor)); err != nil {
		return minor, err
	}
	return minor, nil
}

func (m *PriceModel) ValidateMinor(minor decimal.Decimal) error {
	if !minor.IsInteger() || minor.LessThan(decimal.NewFromInt(m.minimumMinor)) {
		return &AmountConstraintError{Minor: minor, Minimum: m.minimumMinor}
	}
	return nil
}

// Quantize rounds half away from zero and never returns a negative value.
// Amounts beyond int64 fail with ErrAmountOutOfRange.
func Quantize(amount decimal.Decimal) (int64, error) {
	rounded := amount.Round(0)
	if rounded.IsNegative() {
		return 0, nil
	}
	if rounded.GreaterThan(maxMinorUnits) {
		return 0, errs.Mark(errs.Newf("%s minor units", rounded.String()), ErrAmountOutOfRange)
	}
	return rounded.IntPart(), nil
}

type AmountConstraintError struct {
	Minor   decimal.Decimal
	Minimum int64
}

func (e *AmountConstraintError) Error() string {
	return fmt.Sprintf("Amount must be an integer and at least %d paisa (%s NPR)",
		e.Minimum, decimal.NewFromInt(e.Minimum).Div(minorUnitsPerMajor).String())
}

func (e *AmountConstraintError) Is(target error) bool {
	return target == ErrAmountConstraint
}
