package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into the single taxonomy every transport maps to
// a status code. Legacy behaviors of the old API (200 with a false status for
// missing records) are intentionally not reproduced.
type Kind int

const (
	KindValidation Kind = iota
	KindAuthMissing
	KindAuthInvalid
	KindNotFound
	KindConflict
	KindTransaction
	KindInternal
)

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error kind to an HTTP status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindTransaction:
		return http.StatusBadRequest
	case KindAuthMissing:
		return http.StatusUnauthorized
	case KindAuthInvalid:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func AuthMissing(message string) *Error {
	return &Error{Kind: KindAuthMissing, Message: message}
}

func AuthInvalid(message string, err error) *Error {
	return &Error{Kind: KindAuthInvalid, Message: message, Err: err}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Transaction wraps a store failure that aborted a transactional write. The
// underlying cause is surfaced to the caller.
func Transaction(message string, err error) *Error {
	return &Error{Kind: KindTransaction, Message: message, Err: err}
}

// AsError extracts an *Error from err, or wraps it as internal.
func AsError(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}
