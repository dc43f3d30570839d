package commands

import (
	"context"

	"homestay-checkout/internal/domain/checkout"
)

// PaymentGateway is one provider variant. Known failures come back as
// *checkout.PaymentError; anything else is treated as unknown.
type PaymentGateway interface {
	Method() checkout.PaymentMethod
	Initiate(ctx context.Context, attempt checkout.Attempt) (checkout.Outcome, error)
}

// WalletVerifier confirms a wallet payment when the guest lands back from the provider.
type WalletVerifier interface {
	Lookup(ctx context.Context, pidx string) (*WalletLookup, error)
}

type WalletLookup struct {
	Pidx          string
	Status        string
	TransactionID string
	TotalAmount   int64
}

const WalletStatusCompleted = "Completed"

// Gateways dispatches by method, so adding a provider means registering one
// more PaymentGateway rather than editing the orchestrator.
type Gateways struct {
	byMethod map[checkout.PaymentMethod]PaymentGateway
}

func NewGateways(gateways ...PaymentGateway) *Gateways {
	byMethod := make(map[checkout.PaymentMethod]PaymentGateway, len(gateways))
	for _, g := range gateways {
		byMethod[g.Method()] = g
	}
	return &Gateways{byMethod: byMethod}
}

func (g *Gateways) Lookup(method checkout.PaymentMethod) (PaymentGateway, bool) {
	gw, ok := g.byMethod[method]
	return gw, ok
}
