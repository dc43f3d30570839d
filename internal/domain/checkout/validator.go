package checkout

import "strings"

const (
	FieldFirstName     = "firstName"
	FieldLastName      = "lastName"
	FieldEmail         = "email"
	FieldCountryRegion = "countryRegion"
	FieldPhoneNumber   = "phoneNumber"
	FieldCardName      = "cardName"
	FieldCardNumber    = "cardNumber"
	FieldExpMonth      = "expMonth"
	FieldExpYear       = "expYear"
	FieldSecurityCode  = "securityCode"
	FieldBillingZip    = "billingZip"
)

type requiredField struct {
	key     string
	message string
	value   func(FormState) string
}

var guestFields = []requiredField{
	{FieldFirstName, "First name is required", func(f FormState) string { return f.FirstName }},
	{FieldLastName, "Last name is required", func(f FormState) string { return f.LastName }},
	{FieldEmail, "Email is required", func(f FormState) string { return f.Email }},
	{FieldCountryRegion, "Country/Region is required", func(f FormState) string { return f.CountryRegion }},
	{FieldPhoneNumber, "Phone number is required", func(f FormState) string { return f.PhoneNumber }},
}

var cardFields = []requiredField{
	{FieldCardName, "Name on card is required", func(f FormState) string { return f.CardName }},
	{FieldCardNumber, "Card number is required", func(f FormState) string { return f.CardNumber }},
	{FieldExpMonth, "Expiration month is required", func(f FormState) string { return f.ExpMonth }},
	{FieldExpYear, "Expiration year is required", func(f FormState) string { return f.ExpYear }},
	{FieldSecurityCode, "Security code is required", func(f FormState) string { return f.SecurityCode }},
	{FieldBillingZip, "Billing ZIP code is required", func(f FormState) string { return f.BillingZip }},
}

// Validate checks presence only. Card format and Luhn checks are left to the
// card provider. A non-empty result means the form must not be submitted.
func Validate(form FormState) FieldErrors {
	errs := FieldErrors{}
	collect(errs, guestFields, form)
	if form.Method.RequiresCardDetails() {
		collect(errs, cardFields, form)
	}
	return errs
}

func collect(errs FieldErrors, fields []requiredField, form FormState) {
	for _, f := range fields {
		if strings.TrimSpace(f.value(form)) == "" {
			errs[f.key] = f.message
		}
	}
}
