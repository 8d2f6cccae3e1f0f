package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the closed set of error categories surfaced by the API
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// HTTPStatus maps a kind to its response status.
// Conflicts answer 400, the same as validation failures.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "unexpected"
	}
}

type AppError struct {
	Kind    Kind
	Message string
	Details string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Validation(message string) *AppError   { return New(KindValidation, message) }
func Unauthorized(message string) *AppError { return New(KindUnauthorized, message) }
func Forbidden(message string) *AppError    { return New(KindForbidden, message) }
func NotFound(message string) *AppError     { return New(KindNotFound, message) }
func Conflict(message string) *AppError     { return New(KindConflict, message) }

// Unexpected wraps an internal failure; its message is not part of the contract
func Unexpected(message string, err error) *AppError {
	return &AppError{Kind: KindUnexpected, Message: message, Err: err}
}

// WithDetails copies e with extra details. The copy still matches e under errors.Is.
func WithDetails(e *AppError, details string) *AppError {
	return &AppError{Kind: e.Kind, Message: e.Message, Details: details, Err: e}
}

// Invalid builds a validation error whose details carry the underlying cause,
// typically an ozzo-validation error map.
func Invalid(message string, cause error) *AppError {
	ae := &AppError{Kind: KindValidation, Message: message, Err: cause}
	if cause != nil {
		ae.Details = cause.Error()
	}
	return ae
}

// As extracts the first AppError in err's chain
func As(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// KindOf reports the kind of err; anything that is not an AppError is unexpected
func KindOf(err error) Kind {
	if ae, ok := As(err); ok {
		return ae.Kind
	}
	return KindUnexpected
}
