package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Error(t *testing.T) {
	err := NewDomainError(ErrorCodePMNotFound, "payment method not found")
	assert.Equal(t, "PM_NOT_FOUND: payment method not found", err.Error())

	wrapped := WrapError(ErrorCodeStoreError, "list failed", errors.New("HTTP 500: boom"))
	assert.Equal(t, "STORE_ERROR: list failed: HTTP 500: boom", wrapped.Error())
}

func TestDomainError_IsMatchesByCode(t *testing.T) {
	wrapped := WrapError(ErrorCodeStoreError, "update failed", errors.New("timeout"))

	assert.True(t, errors.Is(wrapped, ErrStoreError))
	assert.False(t, errors.Is(wrapped, ErrPMNotFound))
	assert.True(t, errors.Is(fmt.Errorf("outer: %w", ErrLastPaymentMethod), ErrLastPaymentMethod))
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapError(ErrorCodeStoreUnavailable, "store down", cause)

	assert.True(t, errors.Is(err, cause))
}

func TestDomainError_WithDetail(t *testing.T) {
	err := NewDomainError(ErrorCodePMNotFound, "payment method not found").WithDetail("id", "42")
	assert.Equal(t, "42", err.Details["id"])

	empty := &DomainError{Code: ErrorCodePMNotFound}
	empty.WithDetail("id", "7")
	assert.Equal(t, "7", empty.Details["id"])
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{name: "domain error", err: ErrLastPaymentMethod, want: ErrorCodePMLastRemaining},
		{name: "wrapped domain error", err: fmt.Errorf("delete: %w", ErrPMNotFound), want: ErrorCodePMNotFound},
		{name: "plain error", err: errors.New("x"), want: ""},
		{name: "nil", err: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetErrorCode(tt.err))
		})
	}
}

func TestIsStoreError(t *testing.T) {
	assert.True(t, IsStoreError(WrapError(ErrorCodeStoreError, "x", nil)))
	assert.True(t, IsStoreError(ErrStoreUnavailable))
	assert.False(t, IsStoreError(ErrValidationFailed))
	assert.True(t, IsDomainError(ErrValidationFailed, ErrorCodeValidationFailed))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "You need to have at least one payment method.", UserMessage(ErrLastPaymentMethod))
	assert.Equal(t, ErrStoreError.Message, UserMessage(errors.New("raw")))
}
