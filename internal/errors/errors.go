package errors

import "fmt"

// ErrorCode represents an L-ZIP error code.
type ErrorCode string

const (
	ErrUnknownOperator      ErrorCode = "UNKNOWN_OPERATOR"      // 404
	ErrEmptyInput           ErrorCode = "EMPTY_INPUT"           // 400
	ErrInvalidRequest       ErrorCode = "INVALID_REQUEST"       // 400
	ErrInputTooLarge        ErrorCode = "INPUT_TOO_LARGE"       // 413
	ErrNotFound             ErrorCode = "NOT_FOUND"             // 404
	ErrClipboardUnavailable ErrorCode = "CLIPBOARD_UNAVAILABLE" // 503
	ErrInternal             ErrorCode = "INTERNAL"              // 500
)

// LZIPError represents a structured error with code, status, and details.
type LZIPError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *LZIPError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewUnknownOperator creates a 404 error for an operator token or tag
// that has no dictionary entry.
func NewUnknownOperator(identifier string) *LZIPError {
	return &LZIPError{
		Code:    ErrUnknownOperator,
		Status:  404,
		Message: fmt.Sprintf("unknown operator: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewEmptyInput creates a 400 error for surfaces that reject empty input.
// The engine itself treats empty input as a valid zero-savings case.
func NewEmptyInput() *LZIPError {
	return &LZIPError{
		Code:    ErrEmptyInput,
		Status:  400,
		Message: "input text is empty",
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *LZIPError {
	return &LZIPError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewInputTooLarge creates a 413 error when input exceeds the configured cap.
func NewInputTooLarge(max, actual int) *LZIPError {
	return &LZIPError{
		Code:    ErrInputTooLarge,
		Status:  413,
		Message: fmt.Sprintf("input exceeds maximum size: %d chars (max %d)", actual, max),
		Details: map[string]any{"max_chars": max, "actual_chars": actual},
	}
}

// NewNotFound creates a 404 error for a missing history entry or template.
func NewNotFound(identifier string) *LZIPError {
	return &LZIPError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewClipboardUnavailable creates a 503 error when the system clipboard
// cannot be reached. Callers treat this as non-fatal.
func NewClipboardUnavailable(err error) *LZIPError {
	msg := "clipboard unavailable"
	if err != nil {
		msg = fmt.Sprintf("clipboard unavailable: %v", err)
	}
	return &LZIPError{
		Code:    ErrClipboardUnavailable,
		Status:  503,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *LZIPError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &LZIPError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is an LZIPError with the given code.
func Is(err error, code ErrorCode) bool {
	if lErr, ok := err.(*LZIPError); ok {
		return lErr.Code == code
	}
	return false
}
