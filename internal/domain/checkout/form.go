package checkout

// FormState is what the guest typed on the checkout page. It is copied by
// value into a submit attempt, so later edits never reach an in-flight request.
type FormState struct {
	FirstName     string
	LastName      string
	Email         string
	CountryRegion string
	PhoneNumber   string

	CardName     string
	CardNumber   string
	ExpMonth     string
	ExpYear      string
	SecurityCode string
	BillingZip   string

	Method PaymentMethod
}

func (f FormState) FullName() string {
	switch {
	case f.FirstName == "":
		return f.LastName
	case f.LastName == "":
		return f.FirstName
	default:
		return f.FirstName + " " + f.LastName
	}
}

// FieldErrors maps a form field key to a human readable message.
type FieldErrors map[string]string

func (e FieldErrors) Empty() bool { return len(e) == 0 }

func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}
