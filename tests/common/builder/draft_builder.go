//go:build unit || e2e

package builder

import (
	"time"

	"homestay-checkout/internal/domain/booking"
	"homestay-checkout/internal/domain/checkout"
	"homestay-checkout/internal/domain/pricing"
	reqdto "homestay-checkout/internal/handler/dto/request"
	"homestay-checkout/internal/pkg/clock"
	"homestay-checkout/internal/usecase/queries"
	"homestay-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var FixedNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

type DraftBuilder struct {
	RoomTitle     string
	NightlyPrice  string
	TotalPrice    string
	BedType       string
	ImageURL      string
	HomestayName  string
	CheckIn       string
	CheckOut      string
	Guests        string
	Rooms         string
	Extra         string
	PaymentMethod string
}

func NewDraftBuilder() *DraftBuilder {
	return &DraftBuilder{
		RoomTitle:     "Deluxe Mountain View",
		NightlyPrice:  "9.00",
		TotalPrice:    "18.00",
		BedType:       "Queen bed",
		ImageURL:      "https://img.example.com/rooms/deluxe.jpg",
		HomestayName:  "Annapurna Homestay",
		CheckIn:       "2026-11-01",
		CheckOut:      "2026-11-03",
		Guests:        "2 adults",
		Rooms:         "1 room",
		Extra:         "",
		PaymentMethod: "",
	}
}

func (b *DraftBuilder) With(mutate func(*DraftBuilder)) *DraftBuilder {
	mutate(b)
	return b
}

func (b *DraftBuilder) BuildContext() booking.Context {
	return booking.Context{
		RoomTitle:     b.RoomTitle,
		NightlyPrice:  b.NightlyPrice,
		TotalPrice:    b.TotalPrice,
		BedType:       b.BedType,
		ImageURL:      b.ImageURL,
		HomestayName:  b.HomestayName,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		Guests:        b.Guests,
		Rooms:         b.Rooms,
		Extra:         b.Extra,
		PaymentMethod: b.PaymentMethod,
	}
}

// BuildDomain panics on invalid prices; use booking.NewDraft directly to test those.
func (b *DraftBuilder) BuildDomain() *booking.Draft {
	d, err := booking.NewDraft(clock.NewMockClock(FixedNow), b.BuildContext())
	if err != nil {
		panic("DraftBuilder: " + err.Error())
	}
	return d
}

func (b *DraftBuilder) BuildOpenRequestDTO() reqdto.OpenSessionRequest {
	return reqdto.OpenSessionRequest{
		RoomTitle:     b.RoomTitle,
		NightlyPrice:  reqdto.PriceField(b.NightlyPrice),
		TotalPrice:    reqdto.PriceField(b.TotalPrice),
		BedType:       b.BedType,
		ImageURL:      b.ImageURL,
		HomestayName:  b.HomestayName,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		Guests:        b.Guests,
		Rooms:         b.Rooms,
		Extra:         b.Extra,
		PaymentMethod: b.PaymentMethod,
	}
}

// BuildSession returns an idle session holding the draft.
func (b *DraftBuilder) BuildSession(method checkout.PaymentMethod) *shared.Session {
	return &shared.Session{
		ID:    uuid.New(),
		Draft: b.BuildDomain(),
		State: shared.SessionState{
			Phase:     checkout.PhaseIdle,
			Errors:    checkout.FieldErrors{},
			Method:    method,
			UpdatedAt: FixedNow,
		},
		CreatedAt: FixedNow,
	}
}

// BuildSessionView mirrors what the queries side returns for an idle card session.
func (b *DraftBuilder) BuildSessionView(id uuid.UUID) *queries.SessionView {
	d := b.BuildDomain()
	stay := d.Stay()
	return &queries.SessionView{
		ID: id,
		Draft: queries.DraftView{
			RoomTitle:    d.RoomTitle(),
			HomestayName: d.HomestayName(),
			BedType:      d.BedType(),
			ImageURL:     d.ImageURL(),
			CheckIn:      stay.CheckInString(),
			CheckOut:     stay.CheckOutString(),
			Nights:       stay.Nights(),
			StayLabel:    stay.Label(),
			Guests:       d.Guests(),
			Rooms:        d.Rooms(),
			Extra:        d.Extra(),
			NightlyPrice: d.NightlyPrice(),
			TotalPrice:   d.TotalPrice(),
		},
		Secondary: queries.AmountView{
			Currency:   "NPR",
			Amount:     decimal.RequireFromString("2467.80"),
			MinorUnits: 246780,
			Breakdown: []pricing.LineItem{
				{Label: pricing.RoomPriceLabel, Amount: 197424},
				{Label: pricing.TaxesFeesLabel, Amount: 49356},
			},
		},
		Phase:     checkout.PhaseIdle,
		Method:    checkout.MethodCard,
		Errors:    checkout.FieldErrors{},
		CreatedAt: FixedNow,
		UpdatedAt: FixedNow,
	}
}
