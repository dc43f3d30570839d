package infra

import (
	"context"
	"errors"
	"log/slog"

	"homestay-checkout/internal/pkg/errs"
)

// ErrorKind classifies failures raised by the Redis and payment provider adapters.
type ErrorKind string

const (
	KindNotFound       ErrorKind = "NOT_FOUND"
	KindCacheFailure   ErrorKind = "CACHE_FAILURE"
	KindDecodeFailure  ErrorKind = "DECODE_FAILURE"
	KindLockHeld       ErrorKind = "LOCK_HELD"
	KindProviderFailed ErrorKind = "PROVIDER_FAILED"
)

type AdapterError struct {
	Kind  ErrorKind
	msg   string
	cause error
}

func (e AdapterError) Error() string {
	if e.cause == nil {
		return string(e.Kind) + ": " + e.msg
	}
	return string(e.Kind) + ": " + e.msg + ": " + e.cause.Error()
}

func (e AdapterError) Unwrap() error {
	return e.cause
}

// WrapAdapterErr logs the failure and returns it classified as kind.
// Misses and lock contention are routine for callers and only logged at debug.
func WrapAdapterErr(logger *slog.Logger, kind ErrorKind, msg string, cause error) error {
	attrs := []slog.Attr{slog.String("kind", string(kind))}
	if cause != nil {
		attrs = append(attrs, slog.String("error", cause.Error()))
		cause = errs.Wrap(cause, msg)
	}

	level := slog.LevelError
	switch kind {
	case KindNotFound, KindLockHeld:
		level = slog.LevelDebug
	}
	logger.LogAttrs(context.Background(), level, "adapter error: "+msg, attrs...)

	return AdapterError{Kind: kind, msg: msg, cause: cause}
}

func IsKind(err error, kind ErrorKind) bool {
	var e AdapterError
	return errors.As(err, &e) && e.Kind == kind
}
