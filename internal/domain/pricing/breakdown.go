package pricing

import "github.com/shopspring/decimal"

const (
	RoomPriceLabel = "Room Price"
	TaxesFeesLabel = "Taxes & Fees"
)

type LineItem struct {
	Label  string
	Amount int64
}

// Breakdown splits a converted total into the two display line items some
// wallets require. The split is a fixed share, not derived from the stay price.
type Breakdown struct {
	roomShare decimal.Decimal
}

func NewBreakdown(roomShare decimal.Decimal) Breakdown {
	if roomShare.IsNegative() {
		roomShare = decimal.Zero
	}
	if roomShare.GreaterThan(decimal.NewFromInt(1)) {
		roomShare = decimal.NewFromInt(1)
	}
	return Breakdown{roomShare: roomShare}
}

func (b Breakdown) RoomShare() decimal.Decimal { return b.roomShare }

// Split keeps the second line as the remainder so both lines add up to totalMinor.
func (b Breakdown) Split(totalMinor int64) []LineItem {
	// The share is within [0, 1], so room cannot exceed an in-range total.
	room, err := Quantize(decimal.NewFromInt(totalMinor).Mul(b.roomShare))
	if err != nil || room > totalMinor {
		room = totalMinor
	}
	return []LineItem{
		{Label: RoomPriceLabel, Amount: room},
		{Label: TaxesFeesLabel, Amount: totalMinor - room},
	}
}
