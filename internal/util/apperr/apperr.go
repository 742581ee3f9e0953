package apperr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindNotFound     Kind = "NOT_FOUND"
	KindConflict     Kind = "CONFLICT"
	KindInvalidToken Kind = "INVALID_TOKEN"
	KindTokenExpired Kind = "TOKEN_EXPIRED"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindBadRequest   Kind = "BAD_REQUEST"
)

// Error is a domain failure surfaced to the caller. Two errors match under
// errors.Is when they are the same value, or when the target is a bare kind
// sentinel (no message) of the same kind.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}

	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Message == "" && t.Kind == e.Kind
}

var (
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrConflict     = &Error{Kind: KindConflict}
	ErrInvalidToken = &Error{Kind: KindInvalidToken}
	ErrTokenExpired = &Error{Kind: KindTokenExpired}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrBadRequest   = &Error{Kind: KindBadRequest}
)

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func InvalidToken(message string) *Error {
	return &Error{Kind: KindInvalidToken, Message: message}
}

func TokenExpired(message string) *Error {
	return &Error{Kind: KindTokenExpired, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// KindOf returns the kind of the first *Error in the chain, or "" when the
// error is not a domain error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}

	return ""
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInvalidToken, KindBadRequest:
		return http.StatusBadRequest
	case KindTokenExpired:
		return http.StatusGone
	case KindUnauthorized:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage hides infrastructure failures from API clients.
func PublicMessage(err error) string {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return "internal server error"
	}

	return appErr.Error()
}
