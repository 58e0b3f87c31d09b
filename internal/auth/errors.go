package auth

import "errors"

// ErrorKind classifies a domain failure so the transport layer can map it
// to a status code without parsing messages.
type ErrorKind int

const (
	KindUnauthorized ErrorKind = iota + 1
	KindConflict
	KindNotFound
)

// Error is a domain failure surfaced directly to the caller. Store and
// crypto failures are returned as plain errors and are not an Error.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewUnauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func NewConflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// KindOf returns the domain kind of err, or 0 when err is not a domain error.
func KindOf(err error) ErrorKind {
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr.Kind
	}
	return 0
}
