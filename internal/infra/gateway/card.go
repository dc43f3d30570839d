package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"homestay-checkout/internal/domain/checkout"
	"homestay-checkout/internal/domain/pricing"
	"homestay-checkout/internal/pkg/config"
	"homestay-checkout/internal/pkg/errs"

	"github.com/stripe/stripe-go/v76"
)

const (
	cardInitiationFailedMessage = "Failed to initiate card payment. Please try again."
	cardRedirectFailedMessage   = "Card checkout did not return a redirect. Please try again."
	cardNegativeAmountMessage   = "Booking total cannot be negative."
	cardFallbackProductName     = "Homestay booking"

	amountTooLargeMessage = "Booking total is too large to pay online."
)

// CardGateway charges the booking total in the base currency through a
// Stripe Checkout Session. Stripe enforces its own minimums.
type CardGateway struct {
	sessions   SessionCreator
	prices     *pricing.PriceModel
	currency   string
	successURL string
	cancelURL  string
	logger     *slog.Logger
}

func NewCardGateway(
	sessions SessionCreator,
	prices *pricing.PriceModel,
	checkoutCfg config.CheckoutConfig,
	stripeCfg config.StripeConfig,
	logger *slog.Logger,
) *CardGateway {
	return &CardGateway{
		sessions:   sessions,
		prices:     prices,
		currency:   checkoutCfg.BaseCurrency,
		successURL: stripeCfg.SuccessURL,
		cancelURL:  stripeCfg.CancelURL,
		logger:     logger,
	}
}

func (g *CardGateway) Method() checkout.PaymentMethod {
	return checkout.MethodCard
}

func (g *CardGateway) Initiate(ctx context.Context, attempt checkout.Attempt) (checkout.Outcome, error) {
	d := attempt.Draft
	if d.TotalPrice().IsNegative() {
		return checkout.Outcome{}, checkout.NewPaymentError(
			checkout.FailureAmountConstraint, checkout.MethodCard, cardNegativeAmountMessage, nil)
	}
	amount, err := g.prices.BaseMinorUnits(d.TotalPrice())
	if err != nil {
		return checkout.Outcome{}, checkout.NewPaymentError(
			checkout.FailureAmountConstraint, checkout.MethodCard, amountTooLargeMessage, err)
	}

	params := g.sessionParams(attempt, amount)
	params.Context = ctx

	session, err := g.sessions.New(params)
	if err != nil {
		var se *stripe.Error
		if errs.As(err, &se) {
			g.logger.Warn("stripe session creation failed",
				"session_id", attempt.SessionID,
				"code", se.Code,
				"status", se.HTTPStatusCode,
				"message", se.Msg,
			)
		}
		return checkout.Outcome{}, checkout.NewPaymentError(
			checkout.FailureProviderInitiation, checkout.MethodCard, cardInitiationFailedMessage, err)
	}
	if session == nil || session.URL == "" {
		return checkout.Outcome{}, checkout.NewPaymentError(
			checkout.FailureProviderRedirect, checkout.MethodCard, cardRedirectFailedMessage, nil)
	}

	g.logger.Info("stripe session created",
		"session_id", attempt.SessionID,
		"stripe_session", session.ID,
		"amount", amount,
		"currency", g.currency,
	)
	return checkout.Redirect(session.URL).WithReference(session.ID), nil
}

func (g *CardGateway) sessionParams(attempt checkout.Attempt, amount int64) *stripe.CheckoutSessionParams {
	d := attempt.Draft
	name := d.RoomTitle()
	if name == "" {
		name = cardFallbackProductName
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(checkout.ConfirmationFor(d).Path(g.successURL)),
		CancelURL:         stripe.String(g.cancelURL),
		ClientReferenceID: stripe.String(attempt.SessionID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(g.currency),
					UnitAmount: stripe.Int64(amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(name),
						Description: stripe.String(fmt.Sprintf("%s at %s", d.RoomTitle(), d.HomestayName())),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	if attempt.Form.Email != "" {
		params.CustomerEmail = stripe.String(attempt.Form.Email)
	}

	stay := d.Stay()
	params.AddMetadata("room_title", d.RoomTitle())
	params.AddMetadata("homestay_name", d.HomestayName())
	params.AddMetadata("check_in", stay.CheckInString())
	params.AddMetadata("check_out", stay.CheckOutString())
	params.AddMetadata("guests", d.Guests())
	params.AddMetadata("rooms", d.Rooms())
	params.AddMetadata("extra", d.Extra())
	return params
}
