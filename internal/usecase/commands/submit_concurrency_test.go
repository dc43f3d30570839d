//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"homestay-checkout/internal/domain/checkout"
	"homestay-checkout/internal/infra/cache"
	"homestay-checkout/internal/pkg/clock"
	"homestay-checkout/internal/pkg/config"
	"homestay-checkout/internal/usecase/commands"
	"homestay-checkout/tests/common/builder"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowWallet parks every Initiate call until released.
type slowWallet struct {
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (w *slowWallet) Method() checkout.PaymentMethod { return checkout.MethodKhalti }

func (w *slowWallet) Initiate(_ context.Context, _ checkout.Attempt) (checkout.Outcome, error) {
	w.calls.Add(1)
	w.entered <- struct{}{}
	<-w.release
	return checkout.Redirect("https://test-pay.khalti.com/?pidx=slow").WithReference("1792402200000-0a0b0c0d"), nil
}

func TestSubmit_SlowProviderKeepsSessionLocked(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := config.NewTestConfig().Checkout
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	wallet := &slowWallet{entered: make(chan struct{}, 2), release: make(chan struct{})}
	uc := commands.NewCheckoutCommands(
		cache.NewSessionStore(client, cfg, logger),
		cache.NewSubmitLock(client, cfg, logger),
		commands.NewGateways(wallet),
		nil,
		newPriceModel(t),
		clock.NewMockClock(builder.FixedNow),
		confirmationPath,
		cfg.SubmitLockTTL,
		logger,
	)

	session, err := uc.StartCheckout(ctx, builder.NewDraftBuilder().BuildContext())
	require.NoError(t, err)
	form := builder.NewFormBuilder().WithoutCard(checkout.MethodKhalti).BuildDomain()

	type submitted struct {
		result *commands.SubmitResult
		err    error
	}
	first := make(chan submitted, 1)
	go func() {
		result, err := uc.Submit(ctx, session.ID, form)
		first <- submitted{result, err}
	}()

	select {
	case <-wallet.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first submit never reached the provider")
	}

	// The lock's TTL runs out in Redis while the provider call is still open.
	mr.FastForward(cfg.SubmitLockTTL + time.Minute)

	_, err = uc.Submit(ctx, session.ID, form)
	assert.ErrorIs(t, err, commands.ErrSubmissionInProgress)
	assert.Equal(t, int32(1), wallet.calls.Load())

	close(wallet.release)
	done := <-first
	require.NoError(t, done.err)
	assert.Equal(t, checkout.PhaseRedirected, done.result.Phase)
	assert.Equal(t, int32(1), wallet.calls.Load())
}
