// Package errors provides structured error types for the snarl
// decomposition core.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the manager, finder driver, and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The taxonomy follows the error-handling design: preconditions are caller
// bugs, unsupported operations are a property of the net-graph's structural
// view, not-found errors are propagated from the backing graph, and internal
// errors are invariant violations that should be impossible given
// well-nested input.
//
// # Usage
//
//	err := errors.New(errors.ErrCodePrecondition, "iterate_from: snarl does not bound this chain")
//	if errors.Is(err, errors.ErrCodePrecondition) {
//	    // Handle precondition violation
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNotFound, origErr, "handle %d not in backing graph", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the decomposition core's error taxonomy.
const (
	// ErrCodePrecondition marks a caller bug: iterate_from named a
	// non-bounding snarl, a chain iterator walked off either end, or
	// manage was called on a snarl the manager does not own.
	ErrCodePrecondition Code = "PRECONDITION"

	// ErrCodeUnsupported marks an operation the structural view of a net
	// graph cannot answer, such as GetSequence or GetLength.
	ErrCodeUnsupported Code = "UNSUPPORTED"

	// ErrCodeNotFound marks a requested handle or node absent from the
	// backing graph. This wraps whatever the Graph implementation
	// returns.
	ErrCodeNotFound Code = "NOT_FOUND"

	// ErrCodeInternal marks an invariant violation surfaced
	// defensively - a state that well-nested input should never
	// produce, such as a boundary_into collision during Finish.
	ErrCodeInternal Code = "INTERNAL"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
