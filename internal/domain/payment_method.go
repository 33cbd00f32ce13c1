package domain

import (
	"sort"
	"strconv"
)

// IssuerUnknown is reported when no card scheme matches the card number
const IssuerUnknown = "Unknown"

// PaymentMethod represents a stored payment card.
// JSON names follow the remote store's wire format.
type PaymentMethod struct {
	// Identity, assigned by the store (empty for an unsubmitted draft)
	ID string `json:"id,omitempty"`

	// Card number digits with whitespace removed
	CardDetails uint64 `json:"cardDetails"`

	// Literal MM/YY
	ExpiryDate string `json:"expiryDate"`

	CVV    string `json:"CVV"`
	Issuer string `json:"issuer"` // "Visa", "Mastercard", ... or "Unknown"

	// At most one record in a collection is active
	Active bool `json:"active"`
}

// MutationResult is the store's reply to create, update and delete
type MutationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// IsDraft returns true if the store has not assigned an identity yet
func (pm *PaymentMethod) IsDraft() bool {
	return pm.ID == ""
}

// LastFour returns the last four digits of the card number
func (pm *PaymentMethod) LastFour() string {
	digits := strconv.FormatUint(pm.CardDetails, 10)
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

// Masked returns the card number as shown in the list, e.g. "•••• 1111"
func (pm *PaymentMethod) Masked() string {
	return "•••• " + pm.LastFour()
}

// GetDisplayName returns a human-readable display name for the payment method
func (pm *PaymentMethod) GetDisplayName() string {
	issuer := pm.Issuer
	if issuer == "" {
		issuer = IssuerUnknown
	}
	return issuer + " " + pm.Masked()
}

// SortActiveFirst returns a copy of methods with the active record first.
// The sort is stable: inactive records keep the order the store returned.
func SortActiveFirst(methods []PaymentMethod) []PaymentMethod {
	sorted := make([]PaymentMethod, len(methods))
	copy(sorted, methods)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Active && !sorted[j].Active
	})
	return sorted
}

// WithOnlyActive returns a copy of methods where exactly the record with the
// given id is active and every other record is inactive.
func WithOnlyActive(methods []PaymentMethod, id string) []PaymentMethod {
	updated := make([]PaymentMethod, len(methods))
	for i, pm := range methods {
		pm.Active = pm.ID == id
		updated[i] = pm
	}
	return updated
}

// FindByID returns the index of the record with the given id, or -1
func FindByID(methods []PaymentMethod, id string) int {
	for i := range methods {
		if methods[i].ID == id {
			return i
		}
	}
	return -1
}

// CountActive returns how many records are flagged active
func CountActive(methods []PaymentMethod) int {
	n := 0
	for i := range methods {
		if methods[i].Active {
			n++
		}
	}
	return n
}
