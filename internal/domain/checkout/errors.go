package checkout

import (
	"homestay-checkout/internal/pkg/errs"
)

type FailureKind string

const (
	FailureValidation             FailureKind = "validation"
	FailureAmountConstraint       FailureKind = "amount_constraint"
	FailureProviderInitiation     FailureKind = "provider_initiation"
	FailureProviderRedirect       FailureKind = "provider_redirect"
	FailureProviderNotImplemented FailureKind = "provider_not_implemented"
	FailureUnknown                FailureKind = "unknown"

	// FailurePaymentNotCompleted is reported when the guest comes back from a
	// wallet whose payment was started but not finished.
	FailurePaymentNotCompleted FailureKind = "payment_not_completed"
)

const UnknownFailureMessage = "Something went wrong. Please try again."

var ErrIllegalTransition = errs.New("illegal checkout phase transition")

// PaymentError is a failure the guest should see. Message is user facing;
// the wrapped cause is for logs only.
type PaymentError struct {
	Kind     FailureKind
	Provider PaymentMethod
	Message  string
	cause    error
}

func NewPaymentError(kind FailureKind, provider PaymentMethod, message string, cause error) *PaymentError {
	return &PaymentError{Kind: kind, Provider: provider, Message: message, cause: cause}
}

func (e *PaymentError) Error() string {
	msg := string(e.Provider) + " " + string(e.Kind) + ": " + e.Message
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *PaymentError) Unwrap() error {
	return e.cause
}

func (e *PaymentError) Outcome() Outcome {
	return Failure(e.Kind, e.Message)
}

func AsPaymentError(err error) (*PaymentError, bool) {
	var pe *PaymentError
	if errs.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
