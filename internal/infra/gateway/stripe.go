package gateway

import (
	"sync"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// SessionCreator creates Stripe Checkout Sessions.
type SessionCreator interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// LazyStripe builds the Stripe client on first use and reuses it afterwards.
type LazyStripe struct {
	key  string
	once sync.Once
	api  *client.API
}

func NewLazyStripe(secretKey string) *LazyStripe {
	return &LazyStripe{key: secretKey}
}

func (l *LazyStripe) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	l.once.Do(func() {
		l.api = client.New(l.key, nil)
	})
	return l.api.CheckoutSessions.New(params)
}
