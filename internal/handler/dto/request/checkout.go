package request

import (
	"bytes"
	"encoding/json"

	"homestay-checkout/internal/domain/booking"
	"homestay-checkout/internal/domain/checkout"
	"homestay-checkout/internal/pkg/errs"

	"github.com/jinzhu/copier"
)

var ErrUnknownPaymentMethod = errs.New("unknown payment method")

// PriceField accepts a price sent either as a JSON string or a JSON number.
type PriceField string

func (p *PriceField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PriceField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = PriceField(n.String())
	return nil
}

type OpenSessionRequest struct {
	RoomTitle     string     `json:"roomTitle"`
	NightlyPrice  PriceField `json:"nightlyPrice"`
	TotalPrice    PriceField `json:"totalPrice"`
	BedType       string     `json:"bedType"`
	ImageURL      string     `json:"imageUrl"`
	HomestayName  string     `json:"homestayName"`
	CheckIn       string     `json:"checkIn"`
	CheckOut      string     `json:"checkOut"`
	Guests        string     `json:"guests"`
	Rooms         string     `json:"rooms"`
	Extra         string     `json:"extra"`
	PaymentMethod string     `json:"paymentMethod"`
}

func (r *OpenSessionRequest) ToDomain() (booking.Context, error) {
	var in booking.Context
	if err := copier.Copy(&in, r); err != nil {
		return booking.Context{}, errs.Wrap(err, "copy booking context")
	}
	return in, nil
}

type SubmitRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	CountryRegion string `json:"countryRegion"`
	PhoneNumber   string `json:"phoneNumber"`

	CardName     string `json:"cardName"`
	CardNumber   string `json:"cardNumber"`
	ExpMonth     string `json:"expMonth"`
	ExpYear      string `json:"expYear"`
	SecurityCode string `json:"securityCode"`
	BillingZip   string `json:"billingZip"`

	PaymentMethod string `json:"paymentMethod"`
}

// ToDomain leaves Method empty when no method was sent; the session's
// current method is used then.
func (r *SubmitRequest) ToDomain() (checkout.FormState, error) {
	var form checkout.FormState
	if err := copier.Copy(&form, r); err != nil {
		return checkout.FormState{}, errs.Wrap(err, "copy checkout form")
	}
	if r.PaymentMethod != "" {
		method, ok := checkout.ParsePaymentMethod(r.PaymentMethod)
		if !ok {
			return checkout.FormState{}, errs.Wrap(ErrUnknownPaymentMethod, r.PaymentMethod)
		}
		form.Method = method
	}
	return form, nil
}
