package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a machine-readable error code
type ErrorCode string

const (
	// Payment Method Errors (PM_*)
	ErrorCodePMNotFound      ErrorCode = "PM_NOT_FOUND"
	ErrorCodePMLastRemaining ErrorCode = "PM_LAST_REMAINING"

	// Validation Errors (VALIDATION_*)
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Remote store Errors (STORE_*)
	ErrorCodeStoreError       ErrorCode = "STORE_ERROR"
	ErrorCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
)

// DomainError represents a structured domain error with error code and context
type DomainError struct {
	Err     error
	Details map[string]interface{}
	Code    ErrorCode
	Message string
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches another DomainError by code so that wrapped copies of the
// sentinel values below still satisfy errors.Is.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if errors.As(target, &other) {
		return other.Code == e.Code
	}
	return false
}

// WithDetail adds a detail field to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with a domain error code
func WrapError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Err:     err,
	}
}

// IsDomainError checks if an error is a DomainError with the given code
func IsDomainError(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error, returns empty string if not a DomainError
func GetErrorCode(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsStoreError checks if an error came from the remote payment-method store
func IsStoreError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeStoreError || code == ErrorCodeStoreUnavailable
}

// UserMessage returns the text shown to the user for err. Domain errors use
// their message; anything else collapses to a generic store failure.
func UserMessage(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return ErrStoreError.Message
}

var (
	ErrPMNotFound        = NewDomainError(ErrorCodePMNotFound, "payment method not found")
	ErrLastPaymentMethod = NewDomainError(ErrorCodePMLastRemaining, "You need to have at least one payment method.")

	ErrValidationFailed = NewDomainError(ErrorCodeValidationFailed, "validation failed")

	ErrStoreError       = NewDomainError(ErrorCodeStoreError, "payment method store request failed")
	ErrStoreUnavailable = NewDomainError(ErrorCodeStoreUnavailable, "payment method store is unavailable")
)
