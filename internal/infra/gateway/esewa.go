package gateway

import (
	"context"
	"log/slog"

	"homestay-checkout/internal/domain/checkout"
	"homestay-checkout/internal/domain/pricing"
)

const esewaNotAvailableMessage = "eSewa payments are not available yet. Please choose another payment method."

// EsewaGateway is a placeholder until the eSewa integration exists. It always
// fails, after logging what the charge would have been.
type EsewaGateway struct {
	prices *pricing.PriceModel
	logger *slog.Logger
}

func NewEsewaGateway(prices *pricing.PriceModel, logger *slog.Logger) *EsewaGateway {
	return &EsewaGateway{prices: prices, logger: logger}
}

func (g *EsewaGateway) Method() checkout.PaymentMethod {
	return checkout.MethodEsewa
}

func (g *EsewaGateway) Initiate(_ context.Context, attempt checkout.Attempt) (checkout.Outcome, error) {
	converted := g.prices.ConvertToSecondaryCurrency(attempt.Draft.TotalPrice())
	minor, err := g.prices.ToMinorUnits(converted)
	g.logger.Info("esewa payment requested",
		"session_id", attempt.SessionID,
		"amount", converted.StringFixed(2),
		"minor_units", minor,
		"in_range", err == nil,
	)
	return checkout.Outcome{}, checkout.NewPaymentError(
		checkout.FailureProviderNotImplemented, checkout.MethodEsewa, esewaNotAvailableMessage, nil)
}
