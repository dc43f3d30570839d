package shared

import (
	"context"
	"time"

	"homestay-checkout/internal/domain/booking"
	"homestay-checkout/internal/domain/checkout"

	"github.com/google/uuid"
)

// SessionState is the mutable half of a checkout page: phase, loading flag,
// field errors and the last user-visible message.
type SessionState struct {
	Phase       checkout.Phase
	Loading     bool
	Errors      checkout.FieldErrors
	Message     string
	FailureKind checkout.FailureKind
	Method      checkout.PaymentMethod
	LastOrderID string
	Outcome     *checkout.Outcome
	UpdatedAt   time.Time
}

type Session struct {
	ID        uuid.UUID
	Draft     *booking.Draft
	State     SessionState
	CreatedAt time.Time
}

type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
}

// SubmitLock serializes submits of one session. Acquire fails with an infra
// KindLockHeld error while another submit holds the lock.
type SubmitLock interface {
	Acquire(ctx context.Context, sessionID uuid.UUID) (release func(context.Context) error, err error)
}
