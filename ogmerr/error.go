// Package ogmerr provides the structured error type for construction and
// precondition failures.
//
// Errors produced here are always raised before any statement reaches the
// database. Failures coming back from the database are never wrapped in an
// ogmerr.Error: they are returned to the caller exactly as the session
// provider produced them.
package ogmerr

import (
	"errors"
	"fmt"
	"strings"
)

// Standard error codes. Each validation path keeps its own code, so callers
// can tell "not a batch" apart from "batch with a foreign element" even where
// the checks look alike.
const (
	// CodeInvalidKind indicates an operation kind other than READ or WRITE
	CodeInvalidKind = "INVALID_KIND"

	// CodeInvalidStatement indicates an operation without statement text
	CodeInvalidStatement = "INVALID_STATEMENT"

	// CodeInvalidOperation indicates a nil operation was handed to the executer
	CodeInvalidOperation = "INVALID_OPERATION"

	// CodeInvalidBatch indicates the batch itself is missing
	CodeInvalidBatch = "INVALID_BATCH"

	// CodeInvalidBatchElement indicates a batch containing a nil operation
	CodeInvalidBatchElement = "INVALID_BATCH_ELEMENT"

	// CodeBatchKindMismatch indicates a batch mixing read and write operations
	CodeBatchKindMismatch = "BATCH_KIND_MISMATCH"

	// CodeSessionRequired indicates a missing caller-supplied session
	CodeSessionRequired = "SESSION_REQUIRED"

	// CodeInvalidArgument indicates a precondition failure in a service call
	CodeInvalidArgument = "INVALID_ARGUMENT"
)

// Error is a structured error for operations rejected before execution.
type Error struct {
	// Op is the call that rejected its input (e.g. "Executer.ExecuteBatch")
	Op string

	// Code is one of the Code* constants
	Code string

	// Message is the human-readable description. Callers may match on it.
	Message string

	// Cause is the underlying error, if any
	Cause error
}

// New creates a new structured error.
//
// Example:
//
//	err := ogmerr.New("Executer.Read", ogmerr.CodeSessionRequired, "you must provide a session object")
func New(op, code, message string) *Error {
	return &Error{
		Op:      op,
		Code:    code,
		Message: message,
	}
}

// Newf creates a new structured error with a formatted message.
func Newf(op, code, format string, args ...any) *Error {
	return New(op, code, fmt.Sprintf(format, args...))
}

// WithCause adds an underlying error and returns the same instance.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// Error formats the error as "op [code]: message: cause".
func (e *Error) Error() string {
	var parts []string

	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("%s [%s]", e.Op, e.Code))
	} else {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying cause error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code. An empty Op on
// the target matches any operation, so the exported sentinels below work with
// errors.Is regardless of which call produced the error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Code != e.Code {
		return false
	}
	return t.Op == "" || t.Op == e.Op
}

// Sentinels for errors.Is matching by code.
var (
	ErrInvalidKind         = &Error{Code: CodeInvalidKind}
	ErrInvalidStatement    = &Error{Code: CodeInvalidStatement}
	ErrInvalidOperation    = &Error{Code: CodeInvalidOperation}
	ErrInvalidBatch        = &Error{Code: CodeInvalidBatch}
	ErrInvalidBatchElement = &Error{Code: CodeInvalidBatchElement}
	ErrBatchKindMismatch   = &Error{Code: CodeBatchKindMismatch}
	ErrSessionRequired     = &Error{Code: CodeSessionRequired}
	ErrInvalidArgument     = &Error{Code: CodeInvalidArgument}
)

// InvalidArgument is a shorthand for precondition failures in services.
func InvalidArgument(op, message string) *Error {
	return New(op, CodeInvalidArgument, message)
}

// HasCode reports whether err is, or wraps, an *Error carrying code.
func HasCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
