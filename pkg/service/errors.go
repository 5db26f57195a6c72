package service

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindStoreFailure ErrorKind = iota
	KindMissingFields
	KindInvalidInput
	KindNotFound
	KindOutOfStock
	KindInvalidTransition
	KindConflict
	KindUnauthorized
	KindForbidden
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingFields:
		return "MISSING_FIELDS"
	case KindInvalidInput:
		return "INVALID_INPUT"
	case KindNotFound:
		return "NOT_FOUND"
	case KindOutOfStock:
		return "OUT_OF_STOCK"
	case KindInvalidTransition:
		return "INVALID_TRANSITION"
	case KindConflict:
		return "CONFLICT"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindForbidden:
		return "FORBIDDEN"
	default:
		return "STORE_FAILURE"
	}
}

// Error is returned by every service operation that fails for a reason the
// caller can act on. Message is safe to show to clients.
type Error struct {
	Kind    ErrorKind
	Message string
	// Detail carries validation specifics, shown next to Message.
	Detail string
	// MaxQuantity is the largest satisfiable quantity, set for OutOfStock.
	MaxQuantity int
	Err         error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewMissingFields(message string) *Error {
	return &Error{Kind: KindMissingFields, Message: message}
}

func NewInvalidInput(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

func NewInvalidInputf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func NewValidationFailed(message, detail string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message, Detail: detail}
}

func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewOutOfStock(message string, max int) *Error {
	return &Error{Kind: KindOutOfStock, Message: message, MaxQuantity: max}
}

func NewInvalidTransition(message string) *Error {
	return &Error{Kind: KindInvalidTransition, Message: message}
}

func NewConflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NewUnauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func NewForbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NewStoreFailure wraps a persistence error. The cause is kept for logs and
// never shown to clients.
func NewStoreFailure(message string, err error) *Error {
	return &Error{Kind: KindStoreFailure, Message: message, Err: err}
}

// KindOf returns the kind of err, KindStoreFailure for anything that is not
// an *Error.
func KindOf(err error) ErrorKind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindStoreFailure
}
