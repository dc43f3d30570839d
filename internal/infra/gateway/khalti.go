package gateway

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"homestay-checkout/internal/domain/checkout"
	"homestay-checkout/internal/domain/pricing"
	"homestay-checkout/internal/infra"
	"homestay-checkout/internal/pkg/config"
	"homestay-checkout/internal/pkg/errs"
	"homestay-checkout/internal/usecase/commands"

	"github.com/go-resty/resty/v2"
)

const (
	khaltiInitiatePath = "/epayment/initiate/"
	khaltiLookupPath   = "/epayment/lookup/"

	khaltiFallbackMessage     = "Failed to initiate Khalti payment. Please try again."
	khaltiNoPaymentURLMessage = "No payment URL received from Khalti"
	khaltiInvalidDetails      = "Invalid payment details"
	khaltiInvalidDetailsUser  = "Invalid payment details. Please check and try again."

	// Sandbox placeholders used when the guest left a field empty.
	placeholderName  = "Test Guest"
	placeholderEmail = "test@khalti.com"
	placeholderPhone = "9800000001"

	sessionQueryKey = "session"
)

type khaltiCustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type khaltiLineItem struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

type khaltiProductDetail struct {
	Identity   string `json:"identity"`
	Name       string `json:"name"`
	TotalPrice int64  `json:"total_price"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
}

type khaltiInitiateRequest struct {
	ReturnURL         string                `json:"return_url"`
	WebsiteURL        string                `json:"website_url"`
	Amount            int64                 `json:"amount"`
	PurchaseOrderID   string                `json:"purchase_order_id"`
	PurchaseOrderName string                `json:"purchase_order_name"`
	CustomerInfo      khaltiCustomerInfo    `json:"customer_info"`
	AmountBreakdown   []khaltiLineItem      `json:"amount_breakdown"`
	ProductDetails    []khaltiProductDetail `json:"product_details"`
}

type khaltiInitiateResponse struct {
	Pidx       string `json:"pidx"`
	PaymentURL string `json:"payment_url"`
	ExpiresAt  string `json:"expires_at"`
}

type khaltiErrorResponse struct {
	Error    string `json:"error"`
	Detail   string `json:"detail"`
	ErrorKey string `json:"error_key"`
}

func (e khaltiErrorResponse) message() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Detail
}

type khaltiLookupRequest struct {
	Pidx string `json:"pidx"`
}

type khaltiLookupResponse struct {
	Pidx          string `json:"pidx"`
	TotalAmount   int64  `json:"total_amount"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
}

func NewKhaltiClient(cfg config.KhaltiConfig) *resty.Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Authorization", "Key "+cfg.SecretKey).
		SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}
	return c
}

// KhaltiGateway charges the converted total in paisa and redirects the guest
// to the Khalti hosted payment page.
type KhaltiGateway struct {
	client     *resty.Client
	prices     *pricing.PriceModel
	breakdown  pricing.Breakdown
	orders     *checkout.PurchaseOrderIssuer
	returnURL  string
	websiteURL string
	logger     *slog.Logger
}

func NewKhaltiGateway(
	client *resty.Client,
	prices *pricing.PriceModel,
	breakdown pricing.Breakdown,
	orders *checkout.PurchaseOrderIssuer,
	cfg config.KhaltiConfig,
	logger *slog.Logger,
) *KhaltiGateway {
	return &KhaltiGateway{
		client:     client,
		prices:     prices,
		breakdown:  breakdown,
		orders:     orders,
		returnURL:  cfg.ReturnURL,
		websiteURL: cfg.WebsiteURL,
		logger:     logger,
	}
}

func (g *KhaltiGateway) Method() checkout.PaymentMethod {
	return checkout.MethodKhalti
}

func (g *KhaltiGateway) Initiate(ctx context.Context, attempt checkout.Attempt) (checkout.Outcome, error) {
	amount, err := g.prices.SecondaryMinorUnits(attempt.Draft.TotalPrice())
	if err != nil {
		msg := err.Error()
		if errs.Is(err, pricing.ErrAmountOutOfRange) {
			msg = amountTooLargeMessage
		}
		return checkout.Outcome{}, checkout.NewPaymentError(
			checkout.FailureAmountConstraint, checkout.MethodKhalti, msg, err)
	}

	order, err := g.orders.Issue()
	if err != nil {
		return checkout.Outcome{}, errs.Wrap(err, "issue purchase order")
	}

	body := g.buildRequest(attempt, amount, order)

	var result khaltiInitiateResponse
	var failure khaltiErrorResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		SetError(&failure).
		ForceContentType("application/json").
		Post(khaltiInitiatePath)
	if err != nil {
		return checkout.Outcome{}, checkout.NewPaymentError(
			checkout.FailureProviderInitiation, checkout.MethodKhalti, khaltiFallbackMessage, err)
	}

	if resp.IsError() {
		g.logger.Warn("khalti initiation rejected",
			"session_id", attempt.SessionID,
			"purchase_order_id", order.ID,
			"status", resp.StatusCode(),
			"error_key", failure.ErrorKey,
		)
		return checkout.Outcome{}, checkout.NewPaymentError(
			checkout.FailureProviderInitiation, checkout.MethodKhalti, userMessage(failure.message()),
			errs.Newf("khalti responded %d", resp.StatusCode()))
	}

	if result.PaymentURL == "" {
		return checkout.Outcome{}, checkout.NewPaymentError(
			checkout.FailureProviderInitiation, checkout.MethodKhalti, khaltiNoPaymentURLMessage, nil)
	}

	g.logger.Info("khalti payment initiated",
		"session_id", attempt.SessionID,
		"purchase_order_id", order.ID,
		"pidx", result.Pidx,
		"amount", amount,
	)
	return checkout.Redirect(result.PaymentURL).WithReference(order.ID), nil
}

func (g *KhaltiGateway) buildRequest(attempt checkout.Attempt, amount int64, order checkout.PurchaseOrder) khaltiInitiateRequest {
	d := attempt.Draft
	form := attempt.Form

	lines := g.breakdown.Split(amount)
	breakdown := make([]khaltiLineItem, 0, len(lines))
	for _, l := range lines {
		breakdown = append(breakdown, khaltiLineItem{Label: l.Label, Amount: l.Amount})
	}

	return khaltiInitiateRequest{
		ReturnURL:         g.returnURLFor(attempt.SessionID),
		WebsiteURL:        g.websiteURL,
		Amount:            amount,
		PurchaseOrderID:   order.ID,
		PurchaseOrderName: d.RoomTitle(),
		CustomerInfo: khaltiCustomerInfo{
			Name:  orDefault(form.FullName(), placeholderName),
			Email: orDefault(strings.TrimSpace(form.Email), placeholderEmail),
			Phone: orDefault(strings.TrimSpace(form.PhoneNumber), placeholderPhone),
		},
		AmountBreakdown: breakdown,
		ProductDetails: []khaltiProductDetail{
			{
				Identity:   order.ID,
				Name:       d.RoomTitle(),
				TotalPrice: amount,
				Quantity:   1,
				UnitPrice:  amount,
			},
		},
	}
}

func (g *KhaltiGateway) returnURLFor(sessionID string) string {
	u, err := url.Parse(g.returnURL)
	if err != nil {
		return g.returnURL
	}
	q := u.Query()
	q.Set(sessionQueryKey, sessionID)
	u.RawQuery = q.Encode()
	return u.String()
}

// Lookup asks Khalti for the state of a payment after the guest returns.
func (g *KhaltiGateway) Lookup(ctx context.Context, pidx string) (*commands.WalletLookup, error) {
	var result khaltiLookupResponse
	var failure khaltiErrorResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(khaltiLookupRequest{Pidx: pidx}).
		SetResult(&result).
		SetError(&failure).
		ForceContentType("application/json").
		Post(khaltiLookupPath)
	if err != nil {
		return nil, infra.WrapAdapterErr(g.logger, infra.KindProviderFailed, "khalti lookup request failed", err)
	}
	if resp.IsError() {
		return nil, infra.WrapAdapterErr(g.logger, infra.KindProviderFailed, "khalti lookup rejected",
			errs.Newf("status %d: %s", resp.StatusCode(), failure.message()))
	}
	return &commands.WalletLookup{
		Pidx:          result.Pidx,
		Status:        result.Status,
		TransactionID: result.TransactionID,
		TotalAmount:   result.TotalAmount,
	}, nil
}

func userMessage(serverMessage string) string {
	switch strings.TrimSpace(serverMessage) {
	case "":
		return khaltiFallbackMessage
	case khaltiInvalidDetails:
		return khaltiInvalidDetailsUser
	default:
		return serverMessage
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
