// Package errors defines the error values reported while parsing and
// resolving COLLADA documents.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies a parse or resolution failure.
type ErrorCode string

const (
	// ErrSyntax indicates malformed XML reported by the underlying reader.
	ErrSyntax ErrorCode = "syntax-error"
	// ErrUnexpectedRoot indicates the document root is not <COLLADA>.
	ErrUnexpectedRoot ErrorCode = "unexpected-root"
	// ErrUnsupportedVersion indicates an unknown COLLADA version string.
	ErrUnsupportedVersion ErrorCode = "unsupported-version"

	// ErrMissingAttribute indicates a required attribute is absent.
	ErrMissingAttribute ErrorCode = "missing-attribute"
	// ErrUnexpectedAttribute indicates an attribute not allowed by the schema.
	ErrUnexpectedAttribute ErrorCode = "unexpected-attribute"
	// ErrInvalidAttribute indicates an attribute value failed to decode.
	ErrInvalidAttribute ErrorCode = "invalid-attribute"

	// ErrMissingChild indicates a required child element never appeared.
	ErrMissingChild ErrorCode = "missing-child"
	// ErrUnexpectedChild indicates a child element that is not allowed,
	// appeared out of order, or exceeded its permitted cardinality.
	ErrUnexpectedChild ErrorCode = "unexpected-child"
	// ErrUnexpectedText indicates character data inside an element-only element.
	ErrUnexpectedText ErrorCode = "unexpected-text"
	// ErrMissingValue indicates an element is missing required text content.
	ErrMissingValue ErrorCode = "missing-value"
	// ErrInvalidValue indicates element text content failed to decode.
	ErrInvalidValue ErrorCode = "invalid-value"

	// ErrDuplicateID indicates a document-global identifier was declared twice.
	ErrDuplicateID ErrorCode = "duplicate-id"
	// ErrDuplicateSID indicates a scoped identifier was declared twice in one scope.
	ErrDuplicateSID ErrorCode = "duplicate-sid"

	// ErrUnresolvedReference indicates a reference target was not found.
	ErrUnresolvedReference ErrorCode = "unresolved-reference"
	// ErrReferenceKindMismatch indicates a reference resolved to an element
	// of an unexpected kind.
	ErrReferenceKindMismatch ErrorCode = "reference-kind-mismatch"
)

// Error describes a parse or resolution failure with the element it occurred
// in and optional line/column context.
type Error struct {
	Code     ErrorCode
	Message  string
	Element  string
	Expected []string
	Actual   string
	Line     int
	Column   int
}

// Error formats the error for display, including code, message, and context.
func (e *Error) Error() string {
	if e == nil {
		return "collada <nil>"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))
	if e.Element != "" {
		b.WriteString(fmt.Sprintf(" in <%s>", e.Element))
	}
	if e.Line > 0 && e.Column > 0 {
		b.WriteString(fmt.Sprintf(" at line %d, column %d", e.Line, e.Column))
	}
	if len(e.Expected) > 0 {
		b.WriteString(fmt.Sprintf(" (expected: %s)", strings.Join(e.Expected, ", ")))
	}
	if e.Actual != "" {
		b.WriteString(fmt.Sprintf(" (actual: %s)", e.Actual))
	}
	return b.String()
}

// New builds an Error with a code, element context, and message.
func New(code ErrorCode, element, msg string) *Error {
	return &Error{Code: code, Message: msg, Element: element}
}

// Newf formats a message and builds an Error.
func Newf(code ErrorCode, element, format string, args ...any) *Error {
	return New(code, element, fmt.Sprintf(format, args...))
}

// List is an error that wraps zero or more resolution errors.
type List []*Error

// Error returns a compact summary of the list.
func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", l[0].Error(), len(l)-1)
	}
}

// AsError extracts an *Error from err, unwrapping as needed.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// AsList extracts a List from err, unwrapping as needed.
func AsList(err error) (List, bool) {
	if err == nil {
		return nil, false
	}
	var l List
	if errors.As(err, &l) {
		return l, true
	}
	return nil, false
}
