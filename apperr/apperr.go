// Package apperr classifies the failures the POS surfaces to callers:
// bad input, missing entities, upstream store/provider trouble, and queue
// claim conflicts. Handlers translate the class to an HTTP status.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	Validation Kind = iota
	NotFound
	Upstream
	Conflict
)

type Error struct {
	Kind  Kind
	Field string // offending field for validation errors, may be empty
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func NewValidation(field, msg string) *Error {
	return &Error{Kind: Validation, Field: field, Msg: msg}
}

func NewNotFound(msg string) *Error {
	return &Error{Kind: NotFound, Msg: msg}
}

func NewUpstream(msg string, err error) *Error {
	return &Error{Kind: Upstream, Msg: msg, Err: err}
}

func NewConflict(msg string) *Error {
	return &Error{Kind: Conflict, Msg: msg}
}

func KindOf(err error) (Kind, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return 0, false
}

func IsValidation(err error) bool { k, ok := KindOf(err); return ok && k == Validation }
func IsNotFound(err error) bool   { k, ok := KindOf(err); return ok && k == NotFound }

// Status maps an error to the HTTP status code handlers respond with.
// Unclassified errors are treated as upstream failures.
func Status(err error) int {
	switch k, ok := KindOf(err); {
	case !ok:
		return http.StatusInternalServerError
	case k == Validation:
		return http.StatusBadRequest
	case k == NotFound:
		return http.StatusNotFound
	case k == Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the caller-safe message. Upstream detail stays in logs.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		if ae.Kind == Upstream {
			return ae.Msg
		}
		return ae.Error()
	}
	return "Internal server error"
}
