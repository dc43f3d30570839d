//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"testing"
	"time"

	"homestay-checkout/internal/domain/checkout"
	"homestay-checkout/internal/domain/pricing"
	"homestay-checkout/internal/infra"
	"homestay-checkout/internal/infra/gateway"
	"homestay-checkout/internal/pkg/clock"
	"homestay-checkout/internal/pkg/config"
	"homestay-checkout/internal/pkg/errs"
	"homestay-checkout/internal/usecase/commands"
	"homestay-checkout/internal/usecase/shared"
	"homestay-checkout/tests/common/builder"
	commandsmock "homestay-checkout/tests/mock/commands"
	sharedmock "homestay-checkout/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	confirmationPath = "/booking/confirmation"
	submitLockTTL    = 2 * time.Minute
)

func newPriceModel(t *testing.T) *pricing.PriceModel {
	t.Helper()
	cfg := config.NewTestConfig().Checkout
	prices, err := pricing.NewPriceModel(cfg.ExchangeRate, cfg.MinimumMinorUnits)
	if err != nil {
		t.Fatal(err)
	}
	return prices
}

type CheckoutCommandsTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	sessions *sharedmock.MockSessionStore
	lock     *sharedmock.MockSubmitLock
	card     *commandsmock.MockPaymentGateway
	khalti   *commandsmock.MockPaymentGateway
	verifier *commandsmock.MockWalletVerifier
	logger   *slog.Logger
	uc       commands.CheckoutCommands

	released int
	saved    []shared.SessionState
}

func (s *CheckoutCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.sessions = sharedmock.NewMockSessionStore(s.ctrl)
	s.lock = sharedmock.NewMockSubmitLock(s.ctrl)
	s.card = commandsmock.NewMockPaymentGateway(s.ctrl)
	s.khalti = commandsmock.NewMockPaymentGateway(s.ctrl)
	s.verifier = commandsmock.NewMockWalletVerifier(s.ctrl)
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.released = 0
	s.saved = nil

	s.card.EXPECT().Method().Return(checkout.MethodCard).AnyTimes()
	s.khalti.EXPECT().Method().Return(checkout.MethodKhalti).AnyTimes()
	payAtProperty := gateway.NewPayAtPropertyGateway(config.NewTestConfig().Checkout)
	gateways := commands.NewGateways(s.card, s.khalti, payAtProperty)

	s.uc = commands.NewCheckoutCommands(s.sessions, s.lock, gateways, s.verifier, newPriceModel(s.T()),
		clock.NewMockClock(builder.FixedNow), confirmationPath, submitLockTTL, s.logger)
}

func (s *CheckoutCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestCheckoutCommandsSuite(t *testing.T) {
	suite.Run(t, new(CheckoutCommandsTestSuite))
}

func (s *CheckoutCommandsTestSuite) expectLock(id uuid.UUID) {
	s.lock.EXPECT().Acquire(gomock.Any(), id).
		Return(func(context.Context) error { s.released++; return nil }, nil).Times(1)
}

func (s *CheckoutCommandsTestSuite) expectLoad(session *shared.Session) {
	s.sessions.EXPECT().Get(gomock.Any(), session.ID).Return(session, nil).Times(1)
}

func (s *CheckoutCommandsTestSuite) recordSaves() {
	s.sessions.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, session *shared.Session) error {
			s.saved = append(s.saved, session.State)
			return nil
		}).AnyTimes()
}

func (s *CheckoutCommandsTestSuite) lastSaved() shared.SessionState {
	s.Require().NotEmpty(s.saved)
	return s.saved[len(s.saved)-1]
}

// ================================================================================
// StartCheckout
// ================================================================================

func (s *CheckoutCommandsTestSuite) TestStartCheckout() {
	s.Run("success: opens an idle session with the hinted method", func() {
		s.recordSaves()
		in := builder.NewDraftBuilder().With(func(b *builder.DraftBuilder) { b.PaymentMethod = "walletA" }).BuildContext()

		session, err := s.uc.StartCheckout(context.Background(), in)
		s.Require().NoError(err)
		s.NotEqual(uuid.Nil, session.ID)
		s.Equal(checkout.PhaseIdle, session.State.Phase)
		s.Equal(checkout.MethodKhalti, session.State.Method)
		s.False(session.State.Loading)
		s.Equal("Deluxe Mountain View", session.Draft.RoomTitle())
		s.Equal(builder.FixedNow, session.CreatedAt)
	})

	s.Run("error: unparsable price", func() {
		in := builder.NewDraftBuilder().With(func(b *builder.DraftBuilder) { b.TotalPrice = "abc" }).BuildContext()

		_, err := s.uc.StartCheckout(context.Background(), in)
		s.True(errs.Is(err, commands.ErrInvalidBookingContext))
	})
}

func (s *CheckoutCommandsTestSuite) TestStartCheckout_TotalTooLargeToCharge() {
	// 1e15 fits in cents but overflows paisa once converted.
	in := builder.NewDraftBuilder().With(func(b *builder.DraftBuilder) { b.TotalPrice = "1000000000000000" }).BuildContext()

	_, err := s.uc.StartCheckout(context.Background(), in)
	s.True(errs.Is(err, commands.ErrInvalidBookingContext))
	s.True(errs.Is(err, pricing.ErrAmountOutOfRange))
}

func (s *CheckoutCommandsTestSuite) TestStartCheckout_StoreFailure() {
	s.sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("redis down")).Times(1)

	_, err := s.uc.StartCheckout(context.Background(), builder.NewDraftBuilder().BuildContext())
	s.True(errs.Is(err, commands.ErrSessionStoreFailed))
}

// ================================================================================
// Submit
// ================================================================================

func (s *CheckoutCommandsTestSuite) TestSubmit_LockHeld() {
	id := uuid.New()
	held := infra.WrapAdapterErr(s.logger, infra.KindLockHeld, "submit lock held", nil)
	s.lock.EXPECT().Acquire(gomock.Any(), id).Return(nil, held).Times(1)

	_, err := s.uc.Submit(context.Background(), id, builder.NewFormBuilder().BuildDomain())
	s.ErrorIs(err, commands.ErrSubmissionInProgress)
}

func (s *CheckoutCommandsTestSuite) TestSubmit_SessionNotFound() {
	id := uuid.New()
	s.expectLock(id)
	s.sessions.EXPECT().Get(gomock.Any(), id).
		Return(nil, infra.WrapAdapterErr(s.logger, infra.KindNotFound, "checkout session not found", nil)).Times(1)

	_, err := s.uc.Submit(context.Background(), id, builder.NewFormBuilder().BuildDomain())
	s.ErrorIs(err, commands.ErrSessionNotFound)
	s.Equal(1, s.released)
}

func (s *CheckoutCommandsTestSuite) TestSubmit_ClosedSession() {
	for _, phase := range []checkout.Phase{checkout.PhaseRedirected, checkout.PhaseSucceeded} {
		s.Run(string(phase), func() {
			session := builder.NewDraftBuilder().BuildSession(checkout.MethodCard)
			session.State.Phase = phase
			s.expectLock(session.ID)
			s.expectLoad(session)

			_, err := s.uc.Submit(context.Background(), session.ID, builder.NewFormBuilder().BuildDomain())
			s.ErrorIs(err, commands.ErrSessionClosed)
		})
	}
}

func (s *CheckoutCommandsTestSuite) TestSubmit_InvalidForm() {
	session := builder.NewDraftBuilder().BuildSession(checkout.MethodCard)
	s.expectLock(session.ID)
	s.expectLoad(session)
	s.recordSaves()

	form := builder.NewFormBuilder().With(func(b *builder.FormBuilder) { b.CardNumber = "" }).BuildDomain()
	result, err := s.uc.Submit(context.Background(), session.ID, form)
	s.Require().NoError(err)

	s.Equal(checkout.PhaseInvalid, result.Phase)
	s.True(result.ScrollToTop)
	s.Nil(result.Outcome)
	s.Equal(checkout.FieldErrors{checkout.FieldCardNumber: "Card number is required"}, result.Errors)

	state := s.lastSaved()
	s.Equal(checkout.PhaseIdle, state.Phase)
	s.False(state.Loading)
	s.True(state.Errors.Has(checkout.FieldCardNumber))
	s.Equal(1, s.released)
}

func (s *CheckoutCommandsTestSuite) TestSubmit_Redirect() {
	session := builder.NewDraftBuilder().BuildSession(checkout.MethodCard)
	s.expectLock(session.ID)
	s.expectLoad(session)
	s.recordSaves()

	form := builder.NewFormBuilder().BuildDomain()
	s.card.EXPECT().Initiate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, attempt checkout.Attempt) (checkout.Outcome, error) {
			s.Equal(session.ID.String(), attempt.SessionID)
			s.Equal(form, attempt.Form)
			s.Same(session.Draft, attempt.Draft)

			inFlight := s.lastSaved()
			s.Equal(checkout.PhaseSubmitting, inFlight.Phase)
			s.True(inFlight.Loading)
			return checkout.Redirect("https://checkout.stripe.com/c/pay/cs_1").WithReference("cs_1"), nil
		}).Times(1)

	result, err := s.uc.Submit(context.Background(), session.ID, form)
	s.Require().NoError(err)
	s.Equal(checkout.PhaseRedirected, result.Phase)
	s.Equal("https://checkout.stripe.com/c/pay/cs_1", result.Outcome.URL)

	state := s.lastSaved()
	s.Equal(checkout.PhaseRedirected, state.Phase)
	s.True(state.Loading)
	s.Equal("cs_1", state.LastOrderID)
	s.Equal(1, s.released)
}

func (s *CheckoutCommandsTestSuite) TestSubmit_ImmediateSuccess() {
	session := builder.NewDraftBuilder().BuildSession(checkout.MethodCard)
	s.expectLock(session.ID)
	s.expectLoad(session)
	s.recordSaves()

	path := checkout.ConfirmationFor(session.Draft).Path(confirmationPath)
	s.khalti.EXPECT().Initiate(gomock.Any(), gomock.Any()).Return(checkout.ImmediateSuccess(path), nil).Times(1)

	form := builder.NewFormBuilder().WithoutCard(checkout.MethodKhalti).BuildDomain()
	result, err := s.uc.Submit(context.Background(), session.ID, form)
	s.Require().NoError(err)
	s.Equal(checkout.PhaseSucceeded, result.Phase)

	state := s.lastSaved()
	s.Equal(checkout.PhaseSucceeded, state.Phase)
	s.False(state.Loading)
	s.Equal(checkout.MethodKhalti, state.Method)
}

func (s *CheckoutCommandsTestSuite) TestSubmit_PaymentFailureReturnsToIdle() {
	session := builder.NewDraftBuilder().BuildSession(checkout.MethodKhalti)
	s.expectLock(session.ID)
	s.expectLoad(session)
	s.recordSaves()

	msg := "Invalid payment details. Please check and try again."
	s.khalti.EXPECT().Initiate(gomock.Any(), gomock.Any()).
		Return(checkout.Outcome{}, checkout.NewPaymentError(checkout.FailureProviderInitiation, checkout.MethodKhalti, msg, nil)).Times(1)

	form := builder.NewFormBuilder().WithoutCard(checkout.MethodKhalti).BuildDomain()
	result, err := s.uc.Submit(context.Background(), session.ID, form)
	s.Require().NoError(err)
	s.Equal(checkout.PhaseFailed, result.Phase)
	s.True(result.Outcome.IsFailure())
	s.Equal(msg, result.Outcome.Message)

	state := s.lastSaved()
	s.Equal(checkout.PhaseIdle, state.Phase)
	s.False(state.Loading)
	s.Equal(msg, state.Message)
	s.Equal(checkout.FailureProviderInitiation, state.FailureKind)
	s.Equal(1, s.released)
}

func (s *CheckoutCommandsTestSuite) TestSubmit_UnknownFailures() {
	form := builder.NewFormBuilder().BuildDomain()

	cases := []struct {
		name     string
		method   checkout.PaymentMethod
		initiate func() *gomock.Call
	}{
		{
			name:   "untyped error",
			method: checkout.MethodCard,
			initiate: func() *gomock.Call {
				return s.card.EXPECT().Initiate(gomock.Any(), gomock.Any()).Return(checkout.Outcome{}, errors.New("boom"))
			},
		},
		{
			name:   "adapter panic",
			method: checkout.MethodCard,
			initiate: func() *gomock.Call {
				return s.card.EXPECT().Initiate(gomock.Any(), gomock.Any()).
					DoAndReturn(func(context.Context, checkout.Attempt) (checkout.Outcome, error) { panic("nil map") })
			},
		},
		{
			name:   "redirect without url",
			method: checkout.MethodCard,
			initiate: func() *gomock.Call {
				return s.card.EXPECT().Initiate(gomock.Any(), gomock.Any()).Return(checkout.Redirect(""), nil)
			},
		},
		{
			name:     "no gateway registered",
			method:   checkout.MethodEsewa,
			initiate: func() *gomock.Call { return nil },
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.saved = nil
			session := builder.NewDraftBuilder().BuildSession(tc.method)
			s.expectLock(session.ID)
			s.expectLoad(session)
			s.recordSaves()
			if call := tc.initiate(); call != nil {
				call.Times(1)
			}

			f := form
			if tc.method != checkout.MethodCard {
				f = builder.NewFormBuilder().WithoutCard(tc.method).BuildDomain()
			}
			result, err := s.uc.Submit(context.Background(), session.ID, f)
			s.Require().NoError(err)
			s.Equal(checkout.PhaseFailed, result.Phase)
			s.Equal(checkout.FailureUnknown, result.Outcome.FailureKind)
			s.Equal(checkout.UnknownFailureMessage, result.Outcome.Message)

			state := s.lastSaved()
			s.Equal(checkout.PhaseIdle, state.Phase)
			s.False(state.Loading)
		})
	}
}

func (s *CheckoutCommandsTestSuite) TestSubmit_FallsBackToSessionMethod() {
	session := builder.NewDraftBuilder().BuildSession(checkout.MethodKhalti)
	s.expectLock(session.ID)
	s.expectLoad(session)
	s.recordSaves()

	s.khalti.EXPECT().Initiate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, attempt checkout.Attempt) (checkout.Outcome, error) {
			s.Equal(checkout.MethodKhalti, attempt.Form.Method)
			return checkout.Redirect("https://test-pay.khalti.com/?pidx=abc"), nil
		}).Times(1)

	form := builder.NewFormBuilder().WithoutCard("").BuildDomain()
	result, err := s.uc.Submit(context.Background(), session.ID, form)
	s.Require().NoError(err)
	s.Equal(checkout.PhaseRedirected, result.Phase)
}

func (s *CheckoutCommandsTestSuite) TestSubmit_ResetsStalePhase() {
	session := builder.NewDraftBuilder().BuildSession(checkout.MethodCard)
	session.State.Phase = checkout.PhaseSubmitting
	session.State.Loading = true
	session.State.UpdatedAt = builder.FixedNow.Add(-submitLockTTL - time.Second)
	s.expectLock(session.ID)
	s.expectLoad(session)
	s.recordSaves()

	s.card.EXPECT().Initiate(gomock.Any(), gomock.Any()).
		Return(checkout.Redirect("https://checkout.stripe.com/c/pay/cs_2"), nil).Times(1)

	result, err := s.uc.Submit(context.Background(), session.ID, builder.NewFormBuilder().BuildDomain())
	s.Require().NoError(err)
	s.Equal(checkout.PhaseRedirected, result.Phase)
}

func (s *CheckoutCommandsTestSuite) TestSubmit_RecentInFlightPhaseIsNotReset() {
	session := builder.NewDraftBuilder().BuildSession(checkout.MethodCard)
	session.State.Phase = checkout.PhaseSubmitting
	session.State.Loading = true
	session.State.UpdatedAt = builder.FixedNow.Add(-30 * time.Second)
	s.expectLock(session.ID)
	s.expectLoad(session)

	_, err := s.uc.Submit(context.Background(), session.ID, builder.NewFormBuilder().BuildDomain())
	s.ErrorIs(err, commands.ErrSubmissionInProgress)
	s.Equal(1, s.released)
}

func (s *CheckoutCommandsTestSuite) TestSubmit_PayAtProperty() {
	session := builder.NewDraftBuilder().BuildSession(checkout.MethodPayAtProperty)
	s.expectLock(session.ID)
	s.expectLoad(session)
	s.recordSaves()

	form := builder.NewFormBuilder().WithoutCard(checkout.MethodPayAtProperty).BuildDomain()
	result, err := s.uc.Submit(context.Background(), session.ID, form)
	s.Require().NoError(err)

	s.Equal(checkout.PhaseSucceeded, result.Phase)
	s.Require().Equal(checkout.OutcomeImmediateSuccess, result.Outcome.Kind)
	u, err := url.Parse(result.Outcome.ConfirmationPath)
	s.Require().NoError(err)
	s.Equal(confirmationPath, u.Path)
	s.Equal("Deluxe Mountain View", u.Query().Get("roomTitle"))
	s.Equal("Annapurna Homestay", u.Query().Get("homestayName"))
	s.Equal("18.00", u.Query().Get("totalPrice"))

	s.Require().Len(s.saved, 2)
	s.Equal(checkout.PhaseSubmitting, s.saved[0].Phase)
	state := s.lastSaved()
	s.Equal(checkout.PhaseSucceeded, state.Phase)
	s.False(state.Loading)
	s.Equal(checkout.MethodPayAtProperty, state.Method)
	s.Equal(1, s.released)
}

func (s *CheckoutCommandsTestSuite) TestSubmit_RetryAfterFailure() {
	session := builder.NewDraftBuilder().BuildSession(checkout.MethodCard)
	s.lock.EXPECT().Acquire(gomock.Any(), session.ID).
		Return(func(context.Context) error { s.released++; return nil }, nil).Times(2)
	s.sessions.EXPECT().Get(gomock.Any(), session.ID).Return(session, nil).Times(2)
	s.recordSaves()

	gomock.InOrder(
		s.card.EXPECT().Initiate(gomock.Any(), gomock.Any()).
			Return(checkout.Outcome{}, checkout.NewPaymentError(checkout.FailureProviderInitiation, checkout.MethodCard, "declined", nil)),
		s.card.EXPECT().Initiate(gomock.Any(), gomock.Any()).
			Return(checkout.Redirect("https://checkout.stripe.com/c/pay/cs_3"), nil),
	)

	form := builder.NewFormBuilder().BuildDomain()
	first, err := s.uc.Submit(context.Background(), session.ID, form)
	s.Require().NoError(err)
	s.Equal(checkout.PhaseFailed, first.Phase)

	second, err := s.uc.Submit(context.Background(), session.ID, form)
	s.Require().NoError(err)
	s.Equal(checkout.PhaseRedirected, second.Phase)
	s.Empty(s.lastSaved().Message)
	s.Equal(2, s.released)
}

// ================================================================================
// ConfirmWalletReturn
// ================================================================================

func redirectedToKhalti() *shared.Session {
	session := builder.NewDraftBuilder().BuildSession(checkout.MethodKhalti)
	session.State.Phase = checkout.PhaseRedirected
	session.State.Loading = true
	return session
}

func (s *CheckoutCommandsTestSuite) TestConfirmWalletReturn() {
	s.Run("success: completed payment yields the confirmation path", func() {
		session := redirectedToKhalti()
		s.expectLoad(session)
		s.verifier.EXPECT().Lookup(gomock.Any(), "pidx-1").
			Return(&commands.WalletLookup{Pidx: "pidx-1", Status: commands.WalletStatusCompleted, TotalAmount: 246780}, nil).Times(1)

		path, err := s.uc.ConfirmWalletReturn(context.Background(), session.ID, "pidx-1")
		s.Require().NoError(err)

		u, err := url.Parse(path)
		s.Require().NoError(err)
		s.Equal(confirmationPath, u.Path)
		s.Equal("Annapurna Homestay", u.Query().Get("homestayName"))
	})

	s.Run("error: payment still pending", func() {
		session := redirectedToKhalti()
		s.expectLoad(session)
		s.verifier.EXPECT().Lookup(gomock.Any(), "pidx-2").
			Return(&commands.WalletLookup{Pidx: "pidx-2", Status: "Pending"}, nil).Times(1)

		_, err := s.uc.ConfirmWalletReturn(context.Background(), session.ID, "pidx-2")
		s.True(errs.Is(err, commands.ErrPaymentNotCompleted))
	})

	s.Run("error: completed for a different amount", func() {
		session := redirectedToKhalti()
		s.expectLoad(session)
		s.verifier.EXPECT().Lookup(gomock.Any(), "pidx-5").
			Return(&commands.WalletLookup{Pidx: "pidx-5", Status: commands.WalletStatusCompleted, TotalAmount: 1000}, nil).Times(1)

		_, err := s.uc.ConfirmWalletReturn(context.Background(), session.ID, "pidx-5")
		s.True(errs.Is(err, commands.ErrPaymentNotCompleted))
	})

	s.Run("error: lookup failed", func() {
		session := redirectedToKhalti()
		s.expectLoad(session)
		s.verifier.EXPECT().Lookup(gomock.Any(), "pidx-3").Return(nil, errors.New("timeout")).Times(1)

		_, err := s.uc.ConfirmWalletReturn(context.Background(), session.ID, "pidx-3")
		s.True(errs.Is(err, commands.ErrWalletLookupFailed))
	})

	s.Run("error: session never went to khalti", func() {
		idle := builder.NewDraftBuilder().BuildSession(checkout.MethodKhalti)
		card := builder.NewDraftBuilder().BuildSession(checkout.MethodCard)
		card.State.Phase = checkout.PhaseRedirected

		for _, session := range []*shared.Session{idle, card} {
			s.expectLoad(session)

			_, err := s.uc.ConfirmWalletReturn(context.Background(), session.ID, "pidx-6")
			s.ErrorIs(err, commands.ErrNotAwaitingWallet)
		}
	})

	s.Run("error: unknown session", func() {
		id := uuid.New()
		s.sessions.EXPECT().Get(gomock.Any(), id).
			Return(nil, infra.WrapAdapterErr(s.logger, infra.KindNotFound, "checkout session not found", nil)).Times(1)

		_, err := s.uc.ConfirmWalletReturn(context.Background(), id, "pidx-4")
		s.ErrorIs(err, commands.ErrSessionNotFound)
	})
}
