package chainmate

import (
	"errors"
	"fmt"
)

// ErrorCode defines error classification codes for structured error handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeUpstreamFetch ErrorCode = "UPSTREAM_FETCH_ERROR"
	ErrCodeModelConfig   ErrorCode = "MODEL_CONFIG_ERROR"
	ErrCodeModelQuota    ErrorCode = "MODEL_QUOTA_ERROR"
	ErrCodeModelTimeout  ErrorCode = "MODEL_TIMEOUT_ERROR"
	// ErrCodeNotImplemented is reserved for capabilities that reject instead
	// of answering. Nothing produces it today: the whale tool replies with a
	// structured "coming soon" payload rather than an error.
	ErrCodeNotImplemented ErrorCode = "NOT_IMPLEMENTED"
	ErrCodeInternal       ErrorCode = "INTERNAL_ERROR"
)

// Error represents a structured error with classification code.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with classification code and additional context.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// IsErrorCode checks if an error matches a specific error code.
func IsErrorCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// ErrorMessage returns the human-readable message of a structured error,
// or err.Error() for plain errors. Used where error text is shown to users
// or fed back to the model without the code prefix.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
