package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	CodeMissingField      ErrorCode = "MISSING_FIELD"
	CodeUsernameTooShort  ErrorCode = "USERNAME_TOO_SHORT"
	CodePasswordTooShort  ErrorCode = "PASSWORD_TOO_SHORT"
	CodeUserExists        ErrorCode = "USER_EXISTS"
	CodeInvalidCredential ErrorCode = "INVALID_CREDENTIALS"
	CodeTokenRequired     ErrorCode = "TOKEN_REQUIRED"
	CodeTokenMalformed    ErrorCode = "TOKEN_MALFORMED"
	CodeTokenSignature    ErrorCode = "TOKEN_SIGNATURE_INVALID"
	CodeTokenExpired      ErrorCode = "TOKEN_EXPIRED"
	CodeInvalidID         ErrorCode = "INVALID_ID"
	CodeInvalidReview     ErrorCode = "INVALID_REVIEW"
	CodeBookNotFound      ErrorCode = "BOOK_NOT_FOUND"
	CodeReviewNotFound    ErrorCode = "REVIEW_NOT_FOUND"
	CodeBadRequest        ErrorCode = "BAD_REQUEST"
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeInternalError     ErrorCode = "INTERNAL_ERROR"
)

// HTTPStatusMap maps error codes to HTTP status codes
var HTTPStatusMap = map[ErrorCode]int{
	CodeMissingField:      http.StatusBadRequest,
	CodeUsernameTooShort:  http.StatusBadRequest,
	CodePasswordTooShort:  http.StatusBadRequest,
	CodeUserExists:        http.StatusConflict,
	CodeInvalidCredential: http.StatusUnauthorized,
	CodeTokenRequired:     http.StatusUnauthorized,
	CodeTokenMalformed:    http.StatusUnauthorized,
	CodeTokenSignature:    http.StatusUnauthorized,
	CodeTokenExpired:      http.StatusUnauthorized,
	CodeInvalidID:         http.StatusBadRequest,
	CodeInvalidReview:     http.StatusBadRequest,
	CodeBookNotFound:      http.StatusNotFound,
	CodeReviewNotFound:    http.StatusNotFound,
	CodeBadRequest:        http.StatusBadRequest,
	CodeNotFound:          http.StatusNotFound,
	CodeInternalError:     http.StatusInternalServerError,
}

// AppError represents an application error with code and message
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError
func NewAppError(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewAppErrorf creates a new AppError with formatted message
func NewAppErrorf(code ErrorCode, cause error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// HTTPStatus returns the HTTP status code for this error
func (e *AppError) HTTPStatus() int {
	if status, exists := HTTPStatusMap[e.Code]; exists {
		return status
	}
	return http.StatusInternalServerError
}

// AsAppError unwraps err into an *AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given error code
func HasCode(err error, code ErrorCode) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return NewAppError(appErr.Code, message, err)
	}
	return NewAppError(CodeInternalError, message, err)
}
