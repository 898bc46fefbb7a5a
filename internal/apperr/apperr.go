// Package apperr defines the error taxonomy shared by the service layer and
// the HTTP handlers. Every request-terminal failure is one of three kinds;
// anything else is treated as an internal error by the caller.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a request failure.
type Kind int

const (
	// KindInternal is the zero value: an unclassified failure.
	KindInternal Kind = iota
	// KindBadRequest marks malformed or missing input, or a cross-boundary
	// invariant violation (e.g. reassigning a project across companies).
	KindBadRequest
	// KindNotFound marks a referenced entity id that does not resolve.
	KindNotFound
	// KindNotAuthorized marks a credential mismatch, an insufficient role,
	// or the wrong company scope.
	KindNotAuthorized
)

// Error is a classified, human-readable request failure.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// BadRequest returns a KindBadRequest error with a formatted message.
func BadRequest(format string, args ...any) error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a KindNotFound error with a formatted message.
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// NotAuthorized returns a KindNotAuthorized error with a formatted message.
func NotAuthorized(format string, args ...any) error {
	return &Error{Kind: KindNotAuthorized, Message: fmt.Sprintf(format, args...)}
}

// KindOf unwraps err and returns its Kind, or KindInternal for errors that
// did not originate from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
