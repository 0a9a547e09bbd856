// Package errors defines the gateway error taxonomy. Every failure that
// reaches a caller is one of the kinds below; raw backend errors are
// converted exactly once, at the client boundary.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a gateway failure.
type Kind int

const (
	// KindConfig is a credential or client initialization failure. Fatal,
	// never retried, surfaced with a generic message.
	KindConfig Kind = iota
	// KindValidation is malformed or out-of-bounds caller input.
	KindValidation
	// KindTransientBackend is a timeout, connection failure, rate limit or
	// backend 5xx. Eligible for retry with backoff.
	KindTransientBackend
	// KindPermanentBackend is a backend 4xx business error. Not retried.
	KindPermanentBackend
	// KindUnknown is anything that could not be classified. Not retried.
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindValidation:
		return "validation"
	case KindTransientBackend:
		return "transient_backend"
	case KindPermanentBackend:
		return "permanent_backend"
	default:
		return "unknown"
	}
}

// Error is a classified gateway error. Detail is safe to surface to callers:
// it never contains credential material or raw backend payloads.
type Error struct {
	Kind   Kind
	Status int    // HTTP status surfaced to the caller
	Detail string // safe, human-readable summary
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.cause }

// Retryable reports whether the error is eligible for retry.
func (e *Error) Retryable() bool { return e.Kind == KindTransientBackend }

// Config returns a configuration error. The detail deliberately stays
// generic; the cause is kept for logs only.
func Config(cause error) *Error {
	return &Error{
		Kind:   KindConfig,
		Status: http.StatusInternalServerError,
		Detail: "service misconfigured",
		cause:  cause,
	}
}

// Validation returns a caller-input error citing the violated constraint.
func Validation(detail string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Detail: detail}
}

// Validationf returns a caller-input error with a formatted constraint.
func Validationf(format string, args ...any) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

// Transient returns a retryable backend error.
func Transient(detail string, cause error) *Error {
	return &Error{
		Kind:   KindTransientBackend,
		Status: http.StatusBadGateway,
		Detail: detail,
		cause:  cause,
	}
}

// Permanent returns a non-retryable backend error keeping the backend's
// status and message.
func Permanent(status int, detail string) *Error {
	if status < 400 || status > 499 {
		status = http.StatusBadRequest
	}
	return &Error{Kind: KindPermanentBackend, Status: status, Detail: detail}
}

// Unknown wraps an unclassifiable failure.
func Unknown(cause error) *Error {
	return &Error{
		Kind:   KindUnknown,
		Status: http.StatusInternalServerError,
		Detail: "internal error",
		cause:  cause,
	}
}

// AsError extracts a taxonomy error, converting plain errors to KindUnknown
// so that callers always see a classified failure.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Unknown(err)
}

// IsRetryable reports whether err is a retry-eligible taxonomy error.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable()
}
