package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"homestay-checkout/internal/domain/booking"
	"homestay-checkout/internal/domain/checkout"
	"homestay-checkout/internal/domain/pricing"
	"homestay-checkout/internal/infra"
	"homestay-checkout/internal/pkg/clock"
	"homestay-checkout/internal/pkg/errs"
	"homestay-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound       = errs.New("checkout session not found")
	ErrSubmissionInProgress  = errs.New("checkout submission in progress")
	ErrSessionClosed         = errs.New("checkout session already completed")
	ErrInvalidBookingContext = errs.New("invalid booking context")
	ErrSessionStoreFailed    = errs.New("checkout session store failed")
	ErrPaymentNotCompleted   = errs.New("wallet payment not completed")
	ErrWalletLookupFailed    = errs.New("wallet lookup failed")
	ErrNotAwaitingWallet     = errs.New("checkout session is not awaiting a wallet payment")
)

type SubmitResult struct {
	SessionID   uuid.UUID
	Phase       checkout.Phase
	Outcome     *checkout.Outcome
	Errors      checkout.FieldErrors
	ScrollToTop bool
}

type CheckoutCommands interface {
	StartCheckout(ctx context.Context, in booking.Context) (*shared.Session, error)
	Submit(ctx context.Context, sessionID uuid.UUID, form checkout.FormState) (*SubmitResult, error)
	ConfirmWalletReturn(ctx context.Context, sessionID uuid.UUID, pidx string) (string, error)
}

type checkoutUseCaseImpl struct {
	sessions         shared.SessionStore
	lock             shared.SubmitLock
	gateways         *Gateways
	verifier         WalletVerifier
	prices           *pricing.PriceModel
	clock            clock.Clock
	confirmationPath string
	staleAfter       time.Duration
	logger           *slog.Logger
}

func NewCheckoutCommands(
	sessions shared.SessionStore,
	lock shared.SubmitLock,
	gateways *Gateways,
	verifier WalletVerifier,
	prices *pricing.PriceModel,
	clk clock.Clock,
	confirmationPath string,
	staleAfter time.Duration,
	logger *slog.Logger,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		sessions:         sessions,
		lock:             lock,
		gateways:         gateways,
		verifier:         verifier,
		prices:           prices,
		clock:            clk,
		confirmationPath: confirmationPath,
		staleAfter:       staleAfter,
		logger:           logger,
	}
}

func (uc *checkoutUseCaseImpl) StartCheckout(ctx context.Context, in booking.Context) (*shared.Session, error) {
	draft, err := booking.NewDraft(uc.clock, in)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingContext)
	}
	if err := uc.prices.CheckChargeable(draft.TotalPrice()); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "total price"), ErrInvalidBookingContext)
	}

	now := uc.clock.Now()
	session := &shared.Session{
		ID:    uuid.New(),
		Draft: draft,
		State: shared.SessionState{
			Phase:     checkout.PhaseIdle,
			Errors:    checkout.FieldErrors{},
			Method:    checkout.MethodFromHint(in.PaymentMethod),
			UpdatedAt: now,
		},
		CreatedAt: now,
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, errs.Mark(err, ErrSessionStoreFailed)
	}

	uc.logger.Info("checkout session opened",
		"session_id", session.ID,
		"method", session.State.Method,
		"stay", draft.Stay().Label(),
		"dates_degraded", draft.Stay().Degraded(),
	)
	return session, nil
}

func (uc *checkoutUseCaseImpl) Submit(ctx context.Context, sessionID uuid.UUID, form checkout.FormState) (*SubmitResult, error) {
	release, err := uc.lock.Acquire(ctx, sessionID)
	if err != nil {
		if infra.IsKind(err, infra.KindLockHeld) {
			return nil, ErrSubmissionInProgress
		}
		return nil, errs.Mark(err, ErrSessionStoreFailed)
	}
	defer func() {
		if rerr := release(context.WithoutCancel(ctx)); rerr != nil {
			uc.logger.Warn("failed to release submit lock", "session_id", sessionID, "error", rerr)
		}
	}()

	session, err := uc.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	state := &session.State
	if state.Phase.IsTerminal() {
		return nil, ErrSessionClosed
	}
	if state.Phase != checkout.PhaseIdle {
		// A recent mid-flight phase means another submit may still be talking to
		// the provider even though we got the lock.
		if age := uc.clock.Now().Sub(state.UpdatedAt); age < uc.staleAfter {
			uc.logger.Warn("checkout submit still in flight", "session_id", sessionID, "phase", state.Phase, "age", age)
			return nil, ErrSubmissionInProgress
		}
		uc.logger.Warn("resetting stale checkout phase", "session_id", sessionID, "phase", state.Phase)
		state.Phase = checkout.PhaseIdle
		state.Loading = false
	}

	// The adapter sees this copy only; later edits to the page do not reach it.
	snapshot := form
	if !snapshot.Method.IsValid() {
		snapshot.Method = state.Method
	}

	if err := uc.transition(state, checkout.PhaseValidating); err != nil {
		return nil, err
	}
	state.Errors = checkout.FieldErrors{}
	state.Message = ""
	state.FailureKind = ""
	state.Outcome = nil

	if fieldErrs := checkout.Validate(snapshot); !fieldErrs.Empty() {
		return uc.rejectInvalid(ctx, session, fieldErrs)
	}

	if err := uc.transition(state, checkout.PhaseSubmitting); err != nil {
		return nil, err
	}
	state.Loading = true
	state.Method = snapshot.Method
	if err := uc.save(ctx, session); err != nil {
		return nil, err
	}

	outcome := uc.dispatch(ctx, checkout.Attempt{
		SessionID: sessionID.String(),
		Draft:     session.Draft,
		Form:      snapshot,
	})
	return uc.settle(ctx, session, outcome)
}

func (uc *checkoutUseCaseImpl) rejectInvalid(ctx context.Context, session *shared.Session, fieldErrs checkout.FieldErrors) (*SubmitResult, error) {
	state := &session.State
	if err := uc.transition(state, checkout.PhaseInvalid); err != nil {
		return nil, err
	}
	state.Errors = fieldErrs
	uc.logger.Info("checkout form rejected", "session_id", session.ID, "fields", len(fieldErrs))

	if err := uc.transition(state, checkout.PhaseIdle); err != nil {
		return nil, err
	}
	if err := uc.save(ctx, session); err != nil {
		return nil, err
	}
	return &SubmitResult{
		SessionID:   session.ID,
		Phase:       checkout.PhaseInvalid,
		Errors:      fieldErrs,
		ScrollToTop: true,
	}, nil
}

func (uc *checkoutUseCaseImpl) settle(ctx context.Context, session *shared.Session, outcome checkout.Outcome) (*SubmitResult, error) {
	state := &session.State
	state.Outcome = &outcome
	state.LastOrderID = outcome.Reference

	var next checkout.Phase
	switch outcome.Kind {
	case checkout.OutcomeRedirect:
		// The page unloads; the loading modal stays up until it does.
		next = checkout.PhaseRedirected
	case checkout.OutcomeImmediateSuccess:
		next = checkout.PhaseSucceeded
		state.Loading = false
	default:
		next = checkout.PhaseFailed
	}
	if err := uc.transition(state, next); err != nil {
		return nil, err
	}

	uc.logger.Info("checkout submit settled",
		"session_id", session.ID,
		"method", state.Method,
		"phase", next,
		"reference", outcome.Reference,
	)

	if next == checkout.PhaseFailed {
		state.Message = outcome.Message
		state.FailureKind = outcome.FailureKind
		state.Loading = false
		if err := uc.transition(state, checkout.PhaseIdle); err != nil {
			return nil, err
		}
	}

	// Persist even if the caller went away so a reload shows the real state.
	if err := uc.save(context.WithoutCancel(ctx), session); err != nil {
		return nil, err
	}
	return &SubmitResult{
		SessionID: session.ID,
		Phase:     next,
		Outcome:   &outcome,
		Errors:    checkout.FieldErrors{},
	}, nil
}

func (uc *checkoutUseCaseImpl) dispatch(ctx context.Context, attempt checkout.Attempt) (outcome checkout.Outcome) {
	method := attempt.Form.Method
	defer func() {
		if r := recover(); r != nil {
			uc.logger.Error("payment adapter panicked", "method", method, "panic", fmt.Sprint(r))
			outcome = checkout.Failure(checkout.FailureUnknown, checkout.UnknownFailureMessage)
		}
	}()

	gw, ok := uc.gateways.Lookup(method)
	if !ok {
		uc.logger.Error("no payment gateway registered", "method", method)
		return checkout.Failure(checkout.FailureUnknown, checkout.UnknownFailureMessage)
	}

	out, err := gw.Initiate(ctx, attempt)
	if err != nil {
		if pe, ok := checkout.AsPaymentError(err); ok {
			uc.logger.Warn("payment initiation failed",
				"session_id", attempt.SessionID,
				"method", method,
				"kind", pe.Kind,
				"error", err.Error(),
			)
			return pe.Outcome()
		}
		uc.logger.Error("unexpected payment error",
			"session_id", attempt.SessionID,
			"method", method,
			"error", err.Error(),
			"stack", errs.ExtractStackLines(err, 10),
		)
		return checkout.Failure(checkout.FailureUnknown, checkout.UnknownFailureMessage)
	}
	if !out.IsValid() {
		uc.logger.Error("payment adapter returned an invalid outcome", "method", method, "kind", out.Kind)
		return checkout.Failure(checkout.FailureUnknown, checkout.UnknownFailureMessage)
	}
	return out
}

// ConfirmWalletReturn handles the guest landing back from the wallet and
// returns the confirmation path once the provider reports the payment complete.
func (uc *checkoutUseCaseImpl) ConfirmWalletReturn(ctx context.Context, sessionID uuid.UUID, pidx string) (string, error) {
	session, err := uc.loadSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if session.State.Phase != checkout.PhaseRedirected || session.State.Method != checkout.MethodKhalti {
		uc.logger.Warn("unexpected wallet return",
			"session_id", sessionID,
			"phase", session.State.Phase,
			"method", session.State.Method,
		)
		return "", ErrNotAwaitingWallet
	}

	lookup, err := uc.verifier.Lookup(ctx, pidx)
	if err != nil {
		return "", errs.Mark(err, ErrWalletLookupFailed)
	}
	if lookup.Status != WalletStatusCompleted {
		uc.logger.Info("wallet payment not completed", "session_id", sessionID, "pidx", pidx, "status", lookup.Status)
		return "", errs.Mark(errs.Newf("wallet status %q", lookup.Status), ErrPaymentNotCompleted)
	}
	expected, err := uc.prices.SecondaryMinorUnits(session.Draft.TotalPrice())
	if err != nil || lookup.TotalAmount != expected {
		uc.logger.Error("wallet payment amount mismatch",
			"session_id", sessionID,
			"pidx", pidx,
			"paid", lookup.TotalAmount,
			"expected", expected,
		)
		return "", errs.Mark(errs.Newf("paid %d, expected %d", lookup.TotalAmount, expected), ErrPaymentNotCompleted)
	}

	uc.logger.Info("wallet payment completed",
		"session_id", sessionID,
		"pidx", pidx,
		"transaction_id", lookup.TransactionID,
	)
	return checkout.ConfirmationFor(session.Draft).Path(uc.confirmationPath), nil
}

func (uc *checkoutUseCaseImpl) transition(state *shared.SessionState, next checkout.Phase) error {
	if !state.Phase.CanTransitionTo(next) {
		return errs.Wrap(checkout.ErrIllegalTransition, fmt.Sprintf("%s -> %s", state.Phase, next))
	}
	state.Phase = next
	state.UpdatedAt = uc.clock.Now()
	return nil
}

func (uc *checkoutUseCaseImpl) loadSession(ctx context.Context, id uuid.UUID) (*shared.Session, error) {
	session, err := uc.sessions.Get(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, errs.Mark(err, ErrSessionStoreFailed)
	}
	return session, nil
}

func (uc *checkoutUseCaseImpl) save(ctx context.Context, session *shared.Session) error {
	if err := uc.sessions.Save(ctx, session); err != nil {
		return errs.Mark(err, ErrSessionStoreFailed)
	}
	return nil
}
