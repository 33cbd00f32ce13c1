package ports

import (
	"context"

	"github.com/kevin07696/card-wallet/internal/domain"
)

// PaymentMethodState is what the list view renders
type PaymentMethodState struct {
	Methods []domain.PaymentMethod // active first
	Loaded  bool
	Notice  string // user-facing refusal, e.g. deleting the last card
	Err     string // last remote failure
}

// PaymentMethodService defines the port for the payment method list controller
type PaymentMethodService interface {
	// Refresh reloads the collection from the store
	Refresh(ctx context.Context) error

	// EnsureLoaded refreshes only if nothing has been loaded yet
	EnsureLoaded(ctx context.Context) error

	// SubmitNew creates a record and reloads; a failed reload after a stored
	// create is recorded in State.Err, not returned
	SubmitNew(ctx context.Context, pm domain.PaymentMethod) error

	// SetActive marks id active, clears every other record and reloads
	SetActive(ctx context.Context, id string) error

	// Delete removes id unless it is the last record, then reloads
	Delete(ctx context.Context, id string) error

	// Methods returns the collection ordered active first
	Methods() []domain.PaymentMethod

	// State returns a copy of the view state
	State() PaymentMethodState

	// ClearMessages drops the notice and error once they have been shown
	ClearMessages()
}
