package errors

import (
	"errors"
	"fmt"
)

// Error represents a typed domain error with an associated process exit code.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Exit    int    `json:"exit"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, exit int, message string) *Error {
	return &Error{Code: code, Exit: exit, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, exit int, message string) *Error {
	return &Error{Code: code, Exit: exit, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrSheetNotFound    = New("SHEET_NOT_FOUND", 2, "required sheet not found")
	ErrColumnNotFound   = New("COLUMN_NOT_FOUND", 2, "required column not found")
	ErrDuplicateTeacher = New("DUPLICATE_TEACHER", 3, "duplicate teacher short code")
	ErrWorkbook         = New("WORKBOOK_ERROR", 2, "workbook read/write failed")
	ErrValidation       = New("VALIDATION_ERROR", 2, "validation failed")
	ErrInternal         = New("INTERNAL_ERROR", 1, "internal error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Exit, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// ExitCode reports the process exit status for err. Nil maps to 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return FromError(err).Exit
}
