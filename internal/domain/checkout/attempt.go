package checkout

import (
	"net/url"
	"strings"

	"homestay-checkout/internal/domain/booking"
	"homestay-checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Attempt is the snapshot handed to a payment adapter for one submit.
type Attempt struct {
	SessionID string
	Draft     *booking.Draft
	Form      FormState
}

var ErrIncompleteConfirmation = errs.New("confirmation requires room title and homestay name")

const (
	confirmationRoomTitle    = "roomTitle"
	confirmationHomestayName = "homestayName"
	confirmationTotalPrice   = "totalPrice"
)

// Confirmation carries what the success page displays.
type Confirmation struct {
	RoomTitle    string
	HomestayName string
	TotalPrice   decimal.Decimal
}

func ConfirmationFor(d *booking.Draft) Confirmation {
	return Confirmation{
		RoomTitle:    d.RoomTitle(),
		HomestayName: d.HomestayName(),
		TotalPrice:   d.TotalPrice(),
	}
}

func (c Confirmation) Query() url.Values {
	q := url.Values{}
	q.Set(confirmationRoomTitle, c.RoomTitle)
	q.Set(confirmationHomestayName, c.HomestayName)
	q.Set(confirmationTotalPrice, c.TotalPrice.StringFixed(2))
	return q
}

// Path appends the confirmation query to base, keeping any query base already has.
func (c Confirmation) Path(base string) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + c.Query().Encode()
}

func ParseConfirmation(q url.Values) (Confirmation, error) {
	c := Confirmation{
		RoomTitle:    strings.TrimSpace(q.Get(confirmationRoomTitle)),
		HomestayName: strings.TrimSpace(q.Get(confirmationHomestayName)),
	}
	if c.RoomTitle == "" || c.HomestayName == "" {
		return Confirmation{}, ErrIncompleteConfirmation
	}
	if raw := strings.TrimSpace(q.Get(confirmationTotalPrice)); raw != "" {
		total, err := decimal.NewFromString(raw)
		if err != nil || total.IsNegative() {
			return Confirmation{}, errs.Mark(errs.Newf("invalid total price %q", raw), ErrIncompleteConfirmation)
		}
		c.TotalPrice = total
	}
	return c, nil
}
