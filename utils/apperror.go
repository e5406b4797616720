package utils

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	writeConflictCode       = 112
	transientTransactionErr = "TransientTransactionError"
)

// ErrorKind classifies an AppError for callers and the HTTP layer.
type ErrorKind string

const (
	KindNotFound       ErrorKind = "not_found"
	KindInvalidRequest ErrorKind = "invalid_request"
	KindForbidden      ErrorKind = "forbidden"
	KindUnauthorized   ErrorKind = "unauthorized"
	KindConflict       ErrorKind = "conflict"
	KindExpired        ErrorKind = "expired"
	KindStorage        ErrorKind = "storage_error"
	KindInternal       ErrorKind = "internal"
)

// AppError is the typed error returned by services and repositories.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewNotFound(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Message: msg}
}

func NewInvalidRequest(msg string) *AppError {
	return &AppError{Kind: KindInvalidRequest, Message: msg}
}

func NewForbidden(msg string) *AppError {
	return &AppError{Kind: KindForbidden, Message: msg}
}

func NewUnauthorized(msg string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: msg}
}

func NewConflict(msg string) *AppError {
	return &AppError{Kind: KindConflict, Message: msg}
}

// NewWriteConflict marks a write that lost a race at the storage layer. The
// cause is kept so callers can tell a retryable conflict from a definitive one.
func NewWriteConflict(msg string, err error) *AppError {
	return &AppError{Kind: KindConflict, Message: msg, Err: err}
}

func NewExpired(msg string) *AppError {
	return &AppError{Kind: KindExpired, Message: msg}
}

// NewStorageError wraps a persistence failure. It is surfaced as-is and never retried.
func NewStorageError(msg string, err error) *AppError {
	return &AppError{Kind: KindStorage, Message: msg, Err: err}
}

func NewInternal(msg string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: msg, Err: err}
}

// IsTransientWrite reports whether err carries a server write conflict that
// can be resolved by running the same writes again.
func IsTransientWrite(err error) bool {
	var se mongo.ServerError
	if !errors.As(err, &se) {
		return false
	}
	return se.HasErrorLabel(transientTransactionErr) || se.HasErrorCode(writeConflictCode)
}

// KindOf returns the kind of the first AppError in err's chain, or KindInternal.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps an error to its response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	case KindExpired:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the message safe to return to clients.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Kind == KindStorage || appErr.Kind == KindInternal {
			return "Internal server error."
		}
		return appErr.Message
	}
	return "Internal server error."
}
