package booking

import (
	"strings"

	"homestay-checkout/internal/pkg/clock"
	"homestay-checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrInvalidPrice = errs.New("price must be a non-negative decimal")

// Context is the set of named parameters the checkout page is opened with.
type Context struct {
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

// Draft is the unconfirmed reservation being checked out. It is read-only once built.
type Draft struct {
	roomTitle    string
	homestayName string
	bedType      string
	imageURL     string
	stay         StayDates
	nightlyPrice decimal.Decimal
	totalPrice   decimal.Decimal
	guests       string
	rooms        string
	extra        string
}

// NewDraft trusts the supplied total; it is not recomputed from nightly x nights.
func NewDraft(clk clock.Clock, in Context) (*Draft, error) {
	nightly, err := parsePrice(in.NightlyPrice)
	if err != nil {
		return nil, errs.Wrap(err, "nightly price")
	}
	total, err := parsePrice(in.TotalPrice)
	if err != nil {
		return nil, errs.Wrap(err, "total price")
	}

	return &Draft{
		roomTitle:    strings.TrimSpace(in.RoomTitle),
		homestayName: strings.TrimSpace(in.HomestayName),
		bedType:      in.BedType,
		imageURL:     in.ImageURL,
		stay:         NewStayDates(in.CheckIn, in.CheckOut, clk.Now()),
		nightlyPrice: nightly,
		totalPrice:   total,
		guests:       in.Guests,
		rooms:        in.Rooms,
		extra:        in.Extra,
	}, nil
}

func ReconstructDraft(
	roomTitle, homestayName, bedType, imageURL string,
	stay StayDates,
	nightlyPrice, totalPrice decimal.Decimal,
	guests, rooms, extra string,
) *Draft {
	return &Draft{
		roomTitle:    roomTitle,
		homestayName: homestayName,
		bedType:      bedType,
		imageURL:     imageURL,
		stay:         stay,
		nightlyPrice: nightlyPrice,
		totalPrice:   totalPrice,
		guests:       guests,
		rooms:        rooms,
		extra:        extra,
	}
}

func (d *Draft) RoomTitle() string             { return d.roomTitle }
func (d *Draft) HomestayName() string          { return d.homestayName }
func (d *Draft) BedType() string               { return d.bedType }
func (d *Draft) ImageURL() string              { return d.imageURL }
func (d *Draft) Stay() StayDates               { return d.stay }
func (d *Draft) NightlyPrice() decimal.Decimal { return d.nightlyPrice }
func (d *Draft) TotalPrice() decimal.Decimal   { return d.totalPrice }
func (d *Draft) Guests() string                { return d.guests }
func (d *Draft) Rooms() string                 { return d.rooms }
func (d *Draft) Extra() string                 { return d.extra }

func parsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errs.Mark(err, ErrInvalidPrice)
	}
	if v.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}
	return v, nil
}
