// Package derrors provides coded domain errors. Services attach a Code when
// translating store sentinels or rejecting input; the HTTP layer maps codes to
// statuses and the workflow audit trail records them verbatim.
package derrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for callers and for the audit trail.
type Code string

const (
	CodeValidation        Code = "validation_error"
	CodeInvalidTransition Code = "invalid_transition"
	CodeUnauthorized      Code = "unauthorized"
	CodeForbidden         Code = "forbidden"
	CodeGuardFailed       Code = "guard_failed"
	CodeConflict          Code = "conflict"
	CodeNotFound          Code = "not_found"
	CodeUnauthenticated   Code = "unauthenticated"
	CodeTimeout           Code = "timeout"
	CodeInternal          Code = "internal"

	// CodeInvariantViolation marks a model-level invariant breach. Services
	// usually translate it into CodeValidation or CodeConflict before it
	// reaches a caller.
	CodeInvariantViolation Code = "invariant_violation"
)

// Error is a domain error with a machine-readable code. The wrapped cause, if
// any, participates in errors.Is/As chains.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.cause
		if err == nil {
			return false
		}
	}
	return false
}

// CodeOf returns the code of the outermost domain error in the chain, or
// CodeInternal when the error carries no code.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
