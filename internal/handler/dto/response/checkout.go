package response

import (
	"homestay-checkout/internal/domain/checkout"
	"homestay-checkout/internal/usecase/commands"
	"homestay-checkout/internal/usecase/queries"
)

type DraftResponse struct {
	RoomTitle     string `json:"roomTitle"`
	HomestayName  string `json:"homestayName"`
	BedType       string `json:"bedType"`
	ImageURL      string `json:"imageUrl"`
	CheckIn       string `json:"checkIn"`
	CheckOut      string `json:"checkOut"`
	Nights        int    `json:"nights"`
	StayLabel     string `json:"stayLabel"`
	DatesDegraded bool   `json:"datesDegraded"`
	Guests        string `json:"guests"`
	Rooms         string `json:"rooms"`
	Extra         string `json:"extra"`
	NightlyPrice  string `json:"nightlyPrice"`
	TotalPrice    string `json:"totalPrice"`
}

type LineItemResponse struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

type AmountResponse struct {
	Currency   string             `json:"currency"`
	Amount     string             `json:"amount"`
	MinorUnits int64              `json:"minorUnits"`
	Breakdown  []LineItemResponse `json:"breakdown"`
}

type OutcomeResponse struct {
	Type             string `json:"type"`
	URL              string `json:"url,omitempty"`
	ConfirmationPath string `json:"confirmationPath,omitempty"`
	Message          string `json:"message,omitempty"`
	Kind             string `json:"kind,omitempty"`
	Reference        string `json:"reference,omitempty"`
}

type StateResponse struct {
	Phase       string            `json:"phase"`
	Loading     bool              `json:"loading"`
	Method      string            `json:"paymentMethod"`
	Errors      map[string]string `json:"errors"`
	Message     string            `json:"message,omitempty"`
	FailureKind string            `json:"failureKind,omitempty"`
	Outcome     *OutcomeResponse  `json:"outcome,omitempty"`
}

type SessionResponse struct {
	ID        string         `json:"id"`
	Draft     DraftResponse  `json:"draft"`
	Secondary AmountResponse `json:"secondaryAmount"`
	State     StateResponse  `json:"state"`
	CreatedAt int64          `json:"createdAt"`
	UpdatedAt int64          `json:"updatedAt"`
}

func FromSessionView(v *queries.SessionView) *SessionResponse {
	lines := make([]LineItemResponse, len(v.Secondary.Breakdown))
	for i, l := range v.Secondary.Breakdown {
		lines[i] = LineItemResponse{Label: l.Label, Amount: l.Amount}
	}

	return &SessionResponse{
		ID: v.ID.String(),
		Draft: DraftResponse{
			RoomTitle:     v.Draft.RoomTitle,
			HomestayName:  v.Draft.HomestayName,
			BedType:       v.Draft.BedType,
			ImageURL:      v.Draft.ImageURL,
			CheckIn:       v.Draft.CheckIn,
			CheckOut:      v.Draft.CheckOut,
			Nights:        v.Draft.Nights,
			StayLabel:     v.Draft.StayLabel,
			DatesDegraded: v.Draft.DatesDegraded,
			Guests:        v.Draft.Guests,
			Rooms:         v.Draft.Rooms,
			Extra:         v.Draft.Extra,
			NightlyPrice:  v.Draft.NightlyPrice.StringFixed(2),
			TotalPrice:    v.Draft.TotalPrice.StringFixed(2),
		},
		Secondary: AmountResponse{
			Currency:   v.Secondary.Currency,
			Amount:     v.Secondary.Amount.StringFixed(2),
			MinorUnits: v.Secondary.MinorUnits,
			Breakdown:  lines,
		},
		State: StateResponse{
			Phase:       v.Phase.String(),
			Loading:     v.Loading,
			Method:      v.Method.String(),
			Errors:      v.Errors,
			Message:     v.Message,
			FailureKind: string(v.FailureKind),
			Outcome:     FromOutcome(v.Outcome),
		},
		CreatedAt: v.CreatedAt.Unix(),
		UpdatedAt: v.UpdatedAt.Unix(),
	}
}

func FromOutcome(o *checkout.Outcome) *OutcomeResponse {
	if o == nil {
		return nil
	}
	return &OutcomeResponse{
		Type:             string(o.Kind),
		URL:              o.URL,
		ConfirmationPath: o.ConfirmationPath,
		Message:          o.Message,
		Kind:             string(o.FailureKind),
		Reference:        o.Reference,
	}
}

type SubmitResponse struct {
	SessionID string           `json:"sessionId"`
	Phase     string           `json:"phase"`
	Outcome   *OutcomeResponse `json:"outcome"`
}

func FromSubmitResult(r *commands.SubmitResult) *SubmitResponse {
	return &SubmitResponse{
		SessionID: r.SessionID.String(),
		Phase:     r.Phase.String(),
		Outcome:   FromOutcome(r.Outcome),
	}
}

type ValidationDetail struct {
	Fields      map[string]string `json:"fields"`
	ScrollToTop bool              `json:"scrollToTop"`
}

type PaymentFailureDetail struct {
	Kind  string `json:"kind"`
	Phase string `json:"phase"`
}

type ConfirmationResponse struct {
	RoomTitle    string `json:"roomTitle"`
	HomestayName string `json:"homestayName"`
	TotalPrice   string `json:"totalPrice"`
}

func FromConfirmationView(v *queries.ConfirmationView) *ConfirmationResponse {
	return &ConfirmationResponse{
		RoomTitle:    v.RoomTitle,
		HomestayName: v.HomestayName,
		TotalPrice:   v.TotalPrice.StringFixed(2),
	}
}
