// Package apperr defines the error taxonomy shared by the stores, the
// normalizer and the comparison orchestrator. Every error carries a Kind so
// the delivery layers (HTTP, Telegram) can map failures to user-visible
// responses without string matching.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation - malformed input, the caller's fault.
	KindValidation
	// KindNotFound - missing entity or an entity not owned by the caller.
	KindNotFound
	// KindConflict - a membership invariant would be violated.
	KindConflict
	// KindMalformedData - the normalizer received an unusable raw payload.
	KindMalformedData
	// KindExternalFetch - the external product-data client failed.
	KindExternalFetch
	// KindInsufficientData - every metric dimension is unknown. Never
	// constructed: the calculator reports this as a degraded success
	// (InsufficientData flag plus a warning), not as an error. The kind
	// completes the taxonomy for delivery layers that map all kinds.
	KindInsufficientData
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindMalformedData:
		return "malformed_data"
	case KindExternalFetch:
		return "external_fetch"
	case KindInsufficientData:
		return "insufficient_data"
	default:
		return "unknown"
	}
}

// Error is a kinded error. The zero value is not useful; construct instances
// through the helpers below.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying cause.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return New(KindConflict, format, args...)
}

func MalformedData(format string, args ...any) *Error {
	return New(KindMalformedData, format, args...)
}

// KindOf extracts the kind of err, or KindUnknown if err carries none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
