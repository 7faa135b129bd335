// Package apperr defines the error kinds returned by the service layer.
// Every error carries a stable Kind plus a human-readable message; the HTTP
// layer maps kinds to status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindForbidden         Kind = "forbidden"
	KindUnauthorized      Kind = "unauthorized"
	KindDuplicateEmail    Kind = "duplicate_email"
	KindAlreadyMember     Kind = "already_member"
	KindInvalidTitle      Kind = "invalid_title"
	KindInvalidColor      Kind = "invalid_color"
	KindInvalidInput      Kind = "invalid_input"
	KindTransactionFailed Kind = "transaction_failed"
)

type Error struct {
	Kind    Kind
	Message string
	// Details carries per-field validation messages, if any.
	Details map[string]string
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

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works
// regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrNotFound          = &Error{Kind: KindNotFound, Message: "not found"}
	ErrForbidden         = &Error{Kind: KindForbidden, Message: "forbidden"}
	ErrUnauthorized      = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
	ErrDuplicateEmail    = &Error{Kind: KindDuplicateEmail, Message: "email already exists"}
	ErrAlreadyMember     = &Error{Kind: KindAlreadyMember, Message: "user is already a member of this board"}
	ErrInvalidTitle      = &Error{Kind: KindInvalidTitle, Message: "title must not be empty"}
	ErrInvalidColor      = &Error{Kind: KindInvalidColor, Message: "invalid card color"}
	ErrInvalidInput      = &Error{Kind: KindInvalidInput, Message: "invalid input"}
	ErrTransactionFailed = &Error{Kind: KindTransactionFailed, Message: "transaction failed"}
)

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFound(what string) *Error {
	return New(KindNotFound, what+" not found")
}

// KindOf returns the kind of err, or KindTransactionFailed for errors that
// did not originate in this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindTransactionFailed
}

var statusByKind = map[Kind]int{
	KindNotFound:          http.StatusNotFound,
	KindForbidden:         http.StatusForbidden,
	KindUnauthorized:      http.StatusUnauthorized,
	KindDuplicateEmail:    http.StatusConflict,
	KindAlreadyMember:     http.StatusConflict,
	KindInvalidTitle:      http.StatusBadRequest,
	KindInvalidColor:      http.StatusBadRequest,
	KindInvalidInput:      http.StatusBadRequest,
	KindTransactionFailed: http.StatusInternalServerError,
}

// HTTPStatus maps a kind to its response status; unknown kinds are 500.
func HTTPStatus(kind Kind) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}
