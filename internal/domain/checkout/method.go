package checkout

import "strings"

type PaymentMethod string

const (
	MethodCard          PaymentMethod = "card"
	MethodKhalti        PaymentMethod = "khalti"
	MethodEsewa         PaymentMethod = "esewa"
	MethodPayAtProperty PaymentMethod = "pay_at_property"
)

var methodAliases = map[string]PaymentMethod{
	"card":            MethodCard,
	"stripe":          MethodCard,
	"khalti":          MethodKhalti,
	"walleta":         MethodKhalti,
	"esewa":           MethodEsewa,
	"walletb":         MethodEsewa,
	"pay_at_property": MethodPayAtProperty,
	"pay-at-property": MethodPayAtProperty,
	"payatproperty":   MethodPayAtProperty,
	"cash":            MethodPayAtProperty,
}

// MethodFromHint resolves the preferred method passed with the booking context.
// Anything unrecognised falls back to card.
func MethodFromHint(hint string) PaymentMethod {
	if m, ok := ParsePaymentMethod(hint); ok {
		return m
	}
	return MethodCard
}

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	m, ok := methodAliases[strings.ToLower(strings.TrimSpace(s))]
	return m, ok
}

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCard, MethodKhalti, MethodEsewa, MethodPayAtProperty:
		return true
	default:
		return false
	}
}

func (m PaymentMethod) RequiresCardDetails() bool {
	return m == MethodCard
}
