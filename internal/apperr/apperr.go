// Package apperr defines the error kinds surfaced by the service and the
// helpers used to build and inspect them. The HTTP layer maps each Kind to a
// status code; everything below it only deals in kinds.
package apperr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an error for the boundary layer.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnsupportedMediaType
	KindMethodNotAllowed
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION_FAILED"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	case KindUnsupportedMediaType:
		return "UNSUPPORTED_MEDIA_TYPE"
	case KindMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		return "INTERNAL_ERROR"
	}
}

// Violation is a single constraint failure on a payload field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the application error carried from services to the HTTP boundary.
// Message is safe to show to callers; the wrapped cause is not.
type Error struct {
	Kind       Kind
	Message    string
	Violations []Violation
	Allowed    []string
	cause      error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// NotFound reports a missing document or parent document.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports an id collision on create.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Validation reports a payload that fails its constraints.
func Validation(message string, violations ...Violation) *Error {
	return &Error{Kind: KindValidation, Message: message, Violations: violations}
}

// UnsupportedMediaType reports a request body that is not JSON.
func UnsupportedMediaType(contentType string) *Error {
	if contentType == "" {
		return &Error{Kind: KindUnsupportedMediaType, Message: "content type is required, expected application/json"}
	}
	return &Error{
		Kind:    KindUnsupportedMediaType,
		Message: fmt.Sprintf("content type %q is not supported, expected application/json", contentType),
	}
}

// MethodNotAllowed reports a verb the endpoint does not serve.
func MethodNotAllowed(method string, allowed ...string) *Error {
	return &Error{
		Kind:    KindMethodNotAllowed,
		Message: fmt.Sprintf("method %s is not allowed", method),
		Allowed: allowed,
	}
}

// Internal wraps an unexpected failure, recording a stack trace at the call site.
func Internal(err error, message string) *Error {
	return &Error{Kind: KindInternal, Message: message, cause: errors.WithStack(err)}
}

// Wrap attaches a cause to an application error and returns it.
func (e *Error) Wrap(err error) *Error {
	e.cause = err
	return e
}

// KindOf returns the kind of the first *Error in err's tree, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

// Internals returns every member of err's tree that needs logging: each
// *Error of KindInternal and each unclassified error. Errors of other kinds
// are answered to the caller and are not descended into.
func Internals(err error) []error {
	if err == nil {
		return nil
	}
	var out []error
	if !collectInternals(err, &out) {
		out = append(out, err)
	}
	return out
}

// collectInternals reports whether err's tree holds any *Error.
func collectInternals(err error, out *[]error) bool {
	switch e := err.(type) {
	case *Error:
		if e.Kind == KindInternal {
			*out = append(*out, e)
		}
		return true
	case interface{ Unwrap() []error }:
		for _, member := range e.Unwrap() {
			if member != nil && !collectInternals(member, out) {
				*out = append(*out, member)
			}
		}
		return true
	case interface{ Unwrap() error }:
		if inner := e.Unwrap(); inner != nil {
			return collectInternals(inner, out)
		}
	}
	return false
}
