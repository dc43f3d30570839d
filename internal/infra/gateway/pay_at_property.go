package gateway

import (
	"context"

	"homestay-checkout/internal/domain/checkout"
	"homestay-checkout/internal/pkg/config"
)

type PayAtPropertyGateway struct {
	confirmationPath string
}

func NewPayAtPropertyGateway(cfg config.CheckoutConfig) *PayAtPropertyGateway {
	return &PayAtPropertyGateway{confirmationPath: cfg.ConfirmationPath}
}

func (g *PayAtPropertyGateway) Method() checkout.PaymentMethod {
	return checkout.MethodPayAtProperty
}

func (g *PayAtPropertyGateway) Initiate(_ context.Context, attempt checkout.Attempt) (checkout.Outcome, error) {
	return checkout.ImmediateSuccess(checkout.ConfirmationFor(attempt.Draft).Path(g.confirmationPath)), nil
}
