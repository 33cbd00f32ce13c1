package ports

import (
	"context"

	"github.com/kevin07696/card-wallet/internal/domain"
)

// PaymentMethodStore is the remote collection of a user's stored cards.
// Every mutation replies with a MutationResult; callers reload the
// collection afterwards rather than trusting local copies.
type PaymentMethodStore interface {
	// List returns every stored payment method
	List(ctx context.Context) ([]domain.PaymentMethod, error)

	// Create stores a new record; the store assigns its id
	Create(ctx context.Context, pm domain.PaymentMethod) (*domain.MutationResult, error)

	// Update replaces the record identified by id with pm
	Update(ctx context.Context, id string, pm domain.PaymentMethod) (*domain.MutationResult, error)

	// Delete removes the record identified by id
	Delete(ctx context.Context, id string) (*domain.MutationResult, error)
}

// ActiveSetter is implemented by stores that can mark a single record
// active and clear every other flag in one step.
type ActiveSetter interface {
	SetActive(ctx context.Context, id string) (*domain.MutationResult, error)
}
