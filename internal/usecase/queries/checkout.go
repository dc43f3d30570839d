package queries

import (
	"context"
	"net/url"
	"time"

	"homestay-checkout/internal/domain/checkout"
	"homestay-checkout/internal/domain/pricing"
	"homestay-checkout/internal/infra"
	"homestay-checkout/internal/pkg/errs"
	"homestay-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrSessionNotFound     = errs.New("checkout session not found")
	ErrInvalidConfirmation = errs.New("invalid confirmation parameters")
)

type DraftView struct {
	RoomTitle     string
	HomestayName  string
	BedType       string
	ImageURL      string
	CheckIn       string
	CheckOut      string
	Nights        int
	StayLabel     string
	DatesDegraded bool
	Guests        string
	Rooms         string
	Extra         string
	NightlyPrice  decimal.Decimal
	TotalPrice    decimal.Decimal
}

// AmountView is the total as the wallet providers will see it.
type AmountView struct {
	Currency   string
	Amount     decimal.Decimal
	MinorUnits int64
	Breakdown  []pricing.LineItem
}

type SessionView struct {
	ID          uuid.UUID
	Draft       DraftView
	Secondary   AmountView
	Phase       checkout.Phase
	Loading     bool
	Method      checkout.PaymentMethod
	Errors      checkout.FieldErrors
	Message     string
	FailureKind checkout.FailureKind
	Outcome     *checkout.Outcome
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ConfirmationView struct {
	RoomTitle    string
	HomestayName string
	TotalPrice   decimal.Decimal
}

type CheckoutQueries interface {
	GetSession(ctx context.Context, id uuid.UUID) (*SessionView, error)
	Confirmation(params url.Values) (*ConfirmationView, error)
}

type checkoutQueriesImpl struct {
	sessions          shared.SessionStore
	prices            *pricing.PriceModel
	breakdown         pricing.Breakdown
	secondaryCurrency string
}

func NewCheckoutQueries(
	sessions shared.SessionStore,
	prices *pricing.PriceModel,
	breakdown pricing.Breakdown,
	secondaryCurrency string,
) CheckoutQueries {
	return &checkoutQueriesImpl{
		sessions:          sessions,
		prices:            prices,
		breakdown:         breakdown,
		secondaryCurrency: secondaryCurrency,
	}
}

func (q *checkoutQueriesImpl) GetSession(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	session, err := q.sessions.Get(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	d := session.Draft
	stay := d.Stay()
	converted := q.prices.ConvertToSecondaryCurrency(d.TotalPrice())
	minor, err := q.prices.ToMinorUnits(converted)
	if err != nil {
		return nil, errs.Wrap(err, "convert session total")
	}

	fieldErrs := session.State.Errors
	if fieldErrs == nil {
		fieldErrs = checkout.FieldErrors{}
	}

	return &SessionView{
		ID: session.ID,
		Draft: DraftView{
			RoomTitle:     d.RoomTitle(),
			HomestayName:  d.HomestayName(),
			BedType:       d.BedType(),
			ImageURL:      d.ImageURL(),
			CheckIn:       stay.CheckInString(),
			CheckOut:      stay.CheckOutString(),
			Nights:        stay.Nights(),
			StayLabel:     stay.Label(),
			DatesDegraded: stay.Degraded(),
			Guests:        d.Guests(),
			Rooms:         d.Rooms(),
			Extra:         d.Extra(),
			NightlyPrice:  d.NightlyPrice(),
			TotalPrice:    d.TotalPrice(),
		},
		Secondary: AmountView{
			Currency:   q.secondaryCurrency,
			Amount:     converted.Round(2),
			MinorUnits: minor,
			Breakdown:  q.breakdown.Split(minor),
		},
		Phase:       session.State.Phase,
		Loading:     session.State.Loading,
		Method:      session.State.Method,
		Errors:      fieldErrs,
		Message:     session.State.Message,
		FailureKind: session.State.FailureKind,
		Outcome:     session.State.Outcome,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.State.UpdatedAt,
	}, nil
}

func (q *checkoutQueriesImpl) Confirmation(params url.Values) (*ConfirmationView, error) {
	c, err := checkout.ParseConfirmation(params)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidConfirmation)
	}
	return &ConfirmationView{
		RoomTitle:    c.RoomTitle,
		HomestayName: c.HomestayName,
		TotalPrice:   c.TotalPrice,
	}, nil
}
