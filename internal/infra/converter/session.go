package converter

import (
	"time"

	"homestay-checkout/internal/domain/booking"
	"homestay-checkout/internal/domain/checkout"
	"homestay-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessionRecord is the JSON shape a checkout session is cached as. Card
// fields never reach it; only the draft and the page state are stored.
type SessionRecord struct {
	ID        uuid.UUID   `json:"id"`
	Draft     DraftRecord `json:"draft"`
	State     StateRecord `json:"state"`
	CreatedAt time.Time   `json:"created_at"`
}

type DraftRecord struct {
	RoomTitle     string          `json:"room_title"`
	HomestayName  string          `json:"homestay_name"`
	BedType       string          `json:"bed_type"`
	ImageURL      string          `json:"image_url"`
	CheckIn       time.Time       `json:"check_in"`
	CheckOut      time.Time       `json:"check_out"`
	DatesDegraded bool            `json:"dates_degraded"`
	NightlyPrice  decimal.Decimal `json:"nightly_price"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Guests        string          `json:"guests"`
	Rooms         string          `json:"rooms"`
	Extra         string          `json:"extra"`
}

type StateRecord struct {
	Phase       string            `json:"phase"`
	Loading     bool              `json:"loading"`
	Errors      map[string]string `json:"errors,omitempty"`
	Message     string            `json:"message,omitempty"`
	FailureKind string            `json:"failure_kind,omitempty"`
	Method      string            `json:"method"`
	LastOrderID string            `json:"last_order_id,omitempty"`
	Outcome     *OutcomeRecord    `json:"outcome,omitempty"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type OutcomeRecord struct {
	Kind             string `json:"kind"`
	URL              string `json:"url,omitempty"`
	ConfirmationPath string `json:"confirmation_path,omitempty"`
	Message          string `json:"message,omitempty"`
	FailureKind      string `json:"failure_kind,omitempty"`
	Reference        string `json:"reference,omitempty"`
}

func SessionToRecord(s *shared.Session) SessionRecord {
	d := s.Draft
	stay := d.Stay()
	rec := SessionRecord{
		ID: s.ID,
		Draft: DraftRecord{
			RoomTitle:     d.RoomTitle(),
			HomestayName:  d.HomestayName(),
			BedType:       d.BedType(),
			ImageURL:      d.ImageURL(),
			CheckIn:       stay.CheckIn(),
			CheckOut:      stay.CheckOut(),
			DatesDegraded: stay.Degraded(),
			NightlyPrice:  d.NightlyPrice(),
			TotalPrice:    d.TotalPrice(),
			Guests:        d.Guests(),
			Rooms:         d.Rooms(),
			Extra:         d.Extra(),
		},
		State: StateRecord{
			Phase:       s.State.Phase.String(),
			Loading:     s.State.Loading,
			Errors:      s.State.Errors,
			Message:     s.State.Message,
			FailureKind: string(s.State.FailureKind),
			Method:      s.State.Method.String(),
			LastOrderID: s.State.LastOrderID,
			UpdatedAt:   s.State.UpdatedAt,
		},
		CreatedAt: s.CreatedAt,
	}
	if o := s.State.Outcome; o != nil {
		rec.State.Outcome = &OutcomeRecord{
			Kind:             string(o.Kind),
			URL:              o.URL,
			ConfirmationPath: o.ConfirmationPath,
			Message:          o.Message,
			FailureKind:      string(o.FailureKind),
			Reference:        o.Reference,
		}
	}
	return rec
}

func RecordToSession(rec SessionRecord) *shared.Session {
	d := rec.Draft
	draft := booking.ReconstructDraft(
		d.RoomTitle, d.HomestayName, d.BedType, d.ImageURL,
		booking.ReconstructStayDates(d.CheckIn, d.CheckOut, d.DatesDegraded),
		d.NightlyPrice, d.TotalPrice,
		d.Guests, d.Rooms, d.Extra,
	)

	fieldErrs := checkout.FieldErrors(rec.State.Errors)
	if fieldErrs == nil {
		fieldErrs = checkout.FieldErrors{}
	}

	s := &shared.Session{
		ID:    rec.ID,
		Draft: draft,
		State: shared.SessionState{
			Phase:       checkout.Phase(rec.State.Phase),
			Loading:     rec.State.Loading,
			Errors:      fieldErrs,
			Message:     rec.State.Message,
			FailureKind: checkout.FailureKind(rec.State.FailureKind),
			Method:      checkout.PaymentMethod(rec.State.Method),
			LastOrderID: rec.State.LastOrderID,
			UpdatedAt:   rec.State.UpdatedAt,
		},
		CreatedAt: rec.CreatedAt,
	}
	if o := rec.State.Outcome; o != nil {
		s.State.Outcome = &checkout.Outcome{
			Kind:             checkout.OutcomeKind(o.Kind),
			URL:              o.URL,
			ConfirmationPath: o.ConfirmationPath,
			Message:          o.Message,
			FailureKind:      checkout.FailureKind(o.FailureKind),
			Reference:        o.Reference,
		}
	}
	return s
}
