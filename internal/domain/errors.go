package domain

import (
	"errors"
	"fmt"
)

// Domain-specific errors for better error handling and user feedback
var (
	// ErrLinkNotFound is returned when a short code doesn't exist
	ErrLinkNotFound = errors.New("URL not found")

	// ErrEmptyURL is returned when the create request carries no original URL
	ErrEmptyURL = errors.New("original URL is required")

	// ErrDuplicateCode is returned when a freshly generated short code
	// collides with an existing one
	ErrDuplicateCode = errors.New("short code already exists")

	// ErrDuplicateURL is returned when an insert loses the race against a
	// concurrent create for the same original URL
	ErrDuplicateURL = errors.New("original URL already shortened")

	// ErrCodeGenExhausted is returned when collision retries run out
	ErrCodeGenExhausted = errors.New("could not allocate a unique short code")

	// ErrStoreUnavailable is returned for database connectivity issues
	ErrStoreUnavailable = errors.New("link store unavailable")
)

// AppError wraps errors with additional context for better debugging
type AppError struct {
	Err        error  // Original error
	Message    string // User-friendly message
	StatusCode int    // HTTP status code
	Internal   bool   // Whether to log as internal error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error for errors.Is and errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a 404 error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Err:        ErrLinkNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: 404,
		Internal:   false,
	}
}

// NewValidationError creates a 400 validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Err:        ErrEmptyURL,
		Message:    message,
		StatusCode: 400,
		Internal:   false,
	}
}

// NewInternalError creates a 500 internal server error
func NewInternalError(err error) *AppError {
	return &AppError{
		Err:        err,
		Message:    "Internal server error occurred",
		StatusCode: 500,
		Internal:   true, // Log this error
	}
}
