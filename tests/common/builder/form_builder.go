//go:build unit || e2e

package builder

import (
	"homestay-checkout/internal/domain/checkout"
	reqdto "homestay-checkout/internal/handler/dto/request"
)

type FormBuilder struct {
	FirstName     string
	LastName      string
	Email         string
	CountryRegion string
	PhoneNumber   string
	CardName      string
	CardNumber    string
	ExpMonth      string
	ExpYear       string
	SecurityCode  string
	BillingZip    string
	Method        checkout.PaymentMethod
}

// NewFormBuilder returns a complete card form.
func NewFormBuilder() *FormBuilder {
	return &FormBuilder{
		FirstName:     "Sita",
		LastName:      "Sharma",
		Email:         "sita@example.com",
		CountryRegion: "Nepal",
		PhoneNumber:   "9812345678",
		CardName:      "Sita Sharma",
		CardNumber:    "4242424242424242",
		ExpMonth:      "12",
		ExpYear:       "2030",
		SecurityCode:  "123",
		BillingZip:    "44600",
		Method:        checkout.MethodCard,
	}
}

func (b *FormBuilder) With(mutate func(*FormBuilder)) *FormBuilder {
	mutate(b)
	return b
}

// WithoutCard clears every card field and switches to method.
func (b *FormBuilder) WithoutCard(method checkout.PaymentMethod) *FormBuilder {
	b.CardName = ""
	b.CardNumber = ""
	b.ExpMonth = ""
	b.ExpYear = ""
	b.SecurityCode = ""
	b.BillingZip = ""
	b.Method = method
	return b
}

func (b *FormBuilder) BuildDomain() checkout.FormState {
	return checkout.FormState{
		FirstName:     b.FirstName,
		LastName:      b.LastName,
		Email:         b.Email,
		CountryRegion: b.CountryRegion,
		PhoneNumber:   b.PhoneNumber,
		CardName:      b.CardName,
		CardNumber:    b.CardNumber,
		ExpMonth:      b.ExpMonth,
		ExpYear:       b.ExpYear,
		SecurityCode:  b.SecurityCode,
		BillingZip:    b.BillingZip,
		Method:        b.Method,
	}
}

func (b *FormBuilder) BuildSubmitRequestDTO() reqdto.SubmitRequest {
	return reqdto.SubmitRequest{
		FirstName:     b.FirstName,
		LastName:      b.LastName,
		Email:         b.Email,
		CountryRegion: b.CountryRegion,
		PhoneNumber:   b.PhoneNumber,
		CardName:      b.CardName,
		CardNumber:    b.CardNumber,
		ExpMonth:      b.ExpMonth,
		ExpYear:       b.ExpYear,
		SecurityCode:  b.SecurityCode,
		BillingZip:    b.BillingZip,
		PaymentMethod: string(b.Method),
	}
}
