package ports

import (
	"context"

	"github.com/kevin07696/card-wallet/internal/validation"
)

// CardDraft holds the add-card inputs exactly as typed
type CardDraft struct {
	CardDetails string
	ExpiryDate  string
	CVV         string
	Issuer      string
}

// CardFormSnapshot is a render-ready copy of the form state
type CardFormSnapshot struct {
	Draft   CardDraft
	Visible bool
	Errors  validation.FieldErrors
}

// FieldResult is the outcome of a single keystroke
type FieldResult struct {
	Field  validation.Field `json:"field"`
	Value  string           `json:"value"`
	Error  string           `json:"error"`
	Issuer string           `json:"issuer"`
}

// CardFormService defines the port for the add-card form controller
type CardFormService interface {
	// Change stores value for field and re-validates that field only
	Change(field validation.Field, value string) (FieldResult, error)

	// Submit validates every field and hands a valid record to the submit callback
	Submit(ctx context.Context) error

	// Open expands the form
	Open()

	// Cancel collapses the form and keeps the typed values
	Cancel()

	// Snapshot returns a copy of the current state
	Snapshot() CardFormSnapshot
}
