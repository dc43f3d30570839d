package checkout

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"homestay-checkout/internal/pkg/clock"
	"homestay-checkout/internal/pkg/errs"
)

// PurchaseOrder correlates one wallet initiation call with its later confirmation.
type PurchaseOrder struct {
	ID string
}

type PurchaseOrderIssuer struct {
	clock  clock.Clock
	random io.Reader
}

func NewPurchaseOrderIssuer(clk clock.Clock) *PurchaseOrderIssuer {
	return &PurchaseOrderIssuer{clock: clk, random: rand.Reader}
}

func NewPurchaseOrderIssuerWithSource(clk clock.Clock, random io.Reader) *PurchaseOrderIssuer {
	return &PurchaseOrderIssuer{clock: clk, random: random}
}

// Issue returns "<unix millis>-<8 hex>". Every call yields a new id; ids are
// never reused across retries.
func (i *PurchaseOrderIssuer) Issue() (PurchaseOrder, error) {
	suffix := make([]byte, 4)
	if _, err := io.ReadFull(i.random, suffix); err != nil {
		return PurchaseOrder{}, errs.Wrap(err, "purchase order suffix")
	}
	return PurchaseOrder{
		ID: fmt.Sprintf("%d-%s", i.clock.Now().UnixMilli(), hex.EncodeToString(suffix)),
	}, nil
}
