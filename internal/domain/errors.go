package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain failure so the transport layer can map it to
// an HTTP status without parsing messages.
type ErrorKind string

const (
	KindNotFound           ErrorKind = "NOT_FOUND"
	KindPolicyViolation    ErrorKind = "POLICY_VIOLATION"
	KindIntegrityViolation ErrorKind = "INTEGRITY_VIOLATION"
	KindUnauthorized       ErrorKind = "UNAUTHORIZED"
	KindInternal           ErrorKind = "INTERNAL"
)

// Error is the single error type returned by services. Earlier portal
// versions mixed raised exceptions with error strings returned as success
// values; everything here is a typed error instead.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func WrapError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func ErrNotFound(message string) *Error {
	return NewError(KindNotFound, message)
}

func ErrPolicy(message string) *Error {
	return NewError(KindPolicyViolation, message)
}

func ErrIntegrity(message string, cause error) *Error {
	return WrapError(KindIntegrityViolation, message, cause)
}

func ErrUnauthorized(message string) *Error {
	return NewError(KindUnauthorized, message)
}

// KindOf returns the kind of err if it is (or wraps) a domain Error,
// KindInternal otherwise.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
