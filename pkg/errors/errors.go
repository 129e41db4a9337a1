package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrAlreadyExists  ErrorCode = "ALREADY_EXISTS"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"

	// Command line errors
	ErrFlagParse       ErrorCode = "FLAG_PARSE"
	ErrCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"
	ErrHelp            ErrorCode = "HELP"
	ErrVersion         ErrorCode = "VERSION"

	// User errors
	ErrUserNotFound    ErrorCode = "USER_NOT_FOUND"
	ErrUserHomeMissing ErrorCode = "USER_HOME_MISSING"

	// Operation errors
	ErrOperationConflict ErrorCode = "OPERATION_CONFLICT"
	ErrOperationExecute  ErrorCode = "OPERATION_EXECUTE"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
)

// HausError represents a structured error with code and details
type HausError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *HausError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *HausError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *HausError) Is(target error) bool {
	var targetErr *HausError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new HausError with the given code and message
func New(code ErrorCode, message string) *HausError {
	return &HausError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new HausError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *HausError {
	return &HausError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a HausError
func Wrap(err error, code ErrorCode, message string) *HausError {
	if err == nil {
		return nil
	}
	return &HausError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *HausError {
	if err == nil {
		return nil
	}
	return &HausError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *HausError) WithDetail(key string, value interface{}) *HausError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// UserMessage returns the message meant for the terminal: the message
// without the code prefix, followed by the wrapped cause if any.
func UserMessage(err error) string {
	var hausErr *HausError
	if !errors.As(err, &hausErr) {
		return err.Error()
	}
	if hausErr.Wrapped != nil {
		return fmt.Sprintf("%s: %s", hausErr.Message, UserMessage(hausErr.Wrapped))
	}
	return hausErr.Message
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var hausErr *HausError
	if errors.As(err, &hausErr) {
		return hausErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a HausError
func GetErrorCode(err error) ErrorCode {
	var hausErr *HausError
	if errors.As(err, &hausErr) {
		return hausErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a HausError
func GetErrorDetails(err error) map[string]interface{} {
	var hausErr *HausError
	if errors.As(err, &hausErr) {
		return hausErr.Details
	}
	return nil
}
