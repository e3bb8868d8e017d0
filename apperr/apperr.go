// Package apperr provides structured errors shared by the config, capture,
// input and detection layers.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error by the layer that produced it.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfig
	KindCapture
	KindInput
	KindDetect
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindCapture:
		return "capture"
	case KindInput:
		return "input"
	case KindDetect:
		return "detect"
	default:
		return "unknown"
	}
}

// Error is the base error type with a kind, the failed operation and metadata.
type Error struct {
	Kind     Kind
	Op       string
	Message  string
	Metadata map[string]string
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	s := fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	if e.Op != "" {
		s = fmt.Sprintf("[%s] %s: %s", e.Kind, e.Op, e.Message)
	}
	if len(e.Metadata) > 0 {
		s += fmt.Sprintf(" %v", e.Metadata)
	}
	if e.Cause != nil {
		s += fmt.Sprintf(" caused by: %v", e.Cause)
	}
	return s
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error { return e.Cause }

// New creates an Error for op with the given message.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Message: msg}
}

// Newf creates an Error with a formatted message.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps err as the cause of a new Error.
func Wrap(err error, kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Message: msg, Cause: err}
}

// Wrapf wraps err with a formatted message.
func Wrapf(err error, kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...), Cause: err}
}

// WithMetadata adds a key/value pair and returns e for chaining.
func (e *Error) WithMetadata(key, value string) *Error {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
	return e
}

// IsKind reports whether any error in err's chain is an *Error of kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// ErrUnsupported is returned by platform layers that have no implementation
// for the running OS.
var ErrUnsupported = errors.New("unsupported platform")
