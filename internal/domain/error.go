package domain

import (
	"errors"
	"fmt"
)

// Application error codes.
// These map to HTTP status codes and determine user-facing messages.
const (
	EINVALID     = "invalid"     // 400 - Validation error (bad input)
	ENOTFOUND    = "not_found"   // 404 - Resource not found
	EUNAVAILABLE = "unavailable" // 503 - Upstream dependency unreachable
	EINTERNAL    = "internal"    // 500 - Internal server error (hide details)
)

// Error represents an application error with a code and message.
// It implements the error interface and supports error wrapping.
type Error struct {
	// Code is a machine-readable error code (e.g., EINVALID, ENOTFOUND).
	Code string

	// Message is a human-readable error message safe to show to users.
	Message string

	// Op is the operation where the error occurred (e.g., "gateway.create").
	// Used for debugging and logging, not shown to users.
	Op string

	// Err is the underlying error, if any. Used for error wrapping.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		if e.Op != "" {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode extracts the error code from an error.
// Returns EINTERNAL for non-domain errors.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return EINTERNAL
}

// ErrorMessage extracts a user-facing message from an error.
// For internal errors, returns a generic message to avoid leaking details.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		if e.Code == EINTERNAL {
			return "Erro interno do servidor"
		}
		return e.Message
	}

	return "Erro interno do servidor"
}

// IsCode returns true if err has the given error code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}

// Errorf creates a new domain error with formatted message.
// Example: domain.Errorf(domain.EINVALID, "gateway.create", "quantidade inválida: %d", qty)
func Errorf(code, op, format string, args ...interface{}) error {
	return &Error{
		Code:    code,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError wraps an existing error with a domain error code and operation.
// Preserves the underlying error for logging while providing structure.
// Returns nil if err is nil.
func WrapError(err error, code, op, message string) error {
	if err == nil {
		return nil
	}

	return &Error{
		Code:    code,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// Invalid creates a validation error for a single issue.
func Invalid(op, message string) error {
	return &Error{
		Code:    EINVALID,
		Op:      op,
		Message: message,
	}
}

// NotFound creates a not found error.
func NotFound(op, message string) error {
	return &Error{
		Code:    ENOTFOUND,
		Op:      op,
		Message: message,
	}
}

// Unavailable creates an unavailable error (wraps underlying transport error).
func Unavailable(err error, op, message string) error {
	return &Error{
		Code:    EUNAVAILABLE,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// Internal creates an internal error (wraps underlying error).
// The message shown to users will be generic; the underlying error is for logging.
func Internal(err error, op, message string) error {
	return &Error{
		Code:    EINTERNAL,
		Op:      op,
		Message: message,
		Err:     err,
	}
}
