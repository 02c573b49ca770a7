package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers that branch on failure class rather
// than individual codes.
type Kind string

const (
	KindAuth         Kind = "auth"
	KindPrecondition Kind = "precondition"
	KindValidation   Kind = "validation"
	KindStock        Kind = "stock"
	KindNetwork      Kind = "network"
	KindNotFound     Kind = "not_found"
)

// Error is the failure type surfaced by every gateway call and service
// operation. Message is human-readable; Code is one of the constants in
// codes.go.
type Error struct {
	Kind    Kind
	Code    string
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

// Is matches two *Error values by Kind, so callers can write
// errors.Is(err, &Error{Kind: KindStock}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	if t.Code != "" && t.Code != e.Code {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Wrap(kind Kind, code, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

// Constructors for the taxonomy.

func Auth(code, message string) *Error {
	return New(KindAuth, code, message)
}

func Precondition(code, message string) *Error {
	return New(KindPrecondition, code, message)
}

func Validation(code, message string) *Error {
	return New(KindValidation, code, message)
}

func Stock(message string) *Error {
	return New(KindStock, StockExceeded, message)
}

func Network(code, message string, err error) *Error {
	return Wrap(KindNetwork, code, message, err)
}

func NotFound(message string) *Error {
	return New(KindNotFound, ResourceNotFound, message)
}

// Kind predicates used at the CLI boundary to pick a recovery hint.

func IsAuth(err error) bool         { return isKind(err, KindAuth) }
func IsPrecondition(err error) bool { return isKind(err, KindPrecondition) }
func IsValidation(err error) bool   { return isKind(err, KindValidation) }
func IsStock(err error) bool        { return isKind(err, KindStock) }
func IsNetwork(err error) bool      { return isKind(err, KindNetwork) }
func IsNotFound(err error) bool     { return isKind(err, KindNotFound) }

func isKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// CodeOf returns the machine code carried by err, or "" when err is not an
// *Error.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
