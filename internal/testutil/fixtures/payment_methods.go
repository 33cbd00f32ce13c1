// Package fixtures provides test data builders and helpers.
package fixtures

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/kevin07696/card-wallet/internal/domain"
)

// PaymentMethodBuilder provides fluent API for building test payment methods.
type PaymentMethodBuilder struct {
	paymentMethod domain.PaymentMethod
}

// NewPaymentMethod creates a builder for a stored, inactive Visa card.
func NewPaymentMethod() *PaymentMethodBuilder {
	return &PaymentMethodBuilder{
		paymentMethod: domain.PaymentMethod{
			ID:          uuid.NewString(),
			CardDetails: 4111111111111111,
			ExpiryDate:  "07/27",
			CVV:         "123",
			Issuer:      "Visa",
			Active:      false,
		},
	}
}

// NewDraft creates a builder for a record that has not been stored yet.
func NewDraft() *PaymentMethodBuilder {
	return NewPaymentMethod().WithID("")
}

func (b *PaymentMethodBuilder) WithID(id string) *PaymentMethodBuilder {
	b.paymentMethod.ID = id
	return b
}

func (b *PaymentMethodBuilder) WithCardDetails(number uint64) *PaymentMethodBuilder {
	b.paymentMethod.CardDetails = number
	return b
}

func (b *PaymentMethodBuilder) WithExpiry(expiry string) *PaymentMethodBuilder {
	b.paymentMethod.ExpiryDate = expiry
	return b
}

func (b *PaymentMethodBuilder) WithCVV(cvv string) *PaymentMethodBuilder {
	b.paymentMethod.CVV = cvv
	return b
}

func (b *PaymentMethodBuilder) WithIssuer(issuer string) *PaymentMethodBuilder {
	b.paymentMethod.Issuer = issuer
	return b
}

// Mastercard switches the card to a Mastercard test number
func (b *PaymentMethodBuilder) Mastercard() *PaymentMethodBuilder {
	b.paymentMethod.CardDetails = 5555555555554444
	b.paymentMethod.Issuer = "Mastercard"
	return b
}

// Amex switches the card to an American Express test number
func (b *PaymentMethodBuilder) Amex() *PaymentMethodBuilder {
	b.paymentMethod.CardDetails = 378282246310005
	b.paymentMethod.Issuer = "American Express"
	b.paymentMethod.CVV = "1234"
	return b
}

func (b *PaymentMethodBuilder) Active() *PaymentMethodBuilder {
	b.paymentMethod.Active = true
	return b
}

func (b *PaymentMethodBuilder) Inactive() *PaymentMethodBuilder {
	b.paymentMethod.Active = false
	return b
}

func (b *PaymentMethodBuilder) Build() domain.PaymentMethod {
	return b.paymentMethod
}

// Collection builds n stored Visa cards with ids "1".."n"; active marks
// which one (by 1-based position) is active, 0 for none.
func Collection(n, active int) []domain.PaymentMethod {
	methods := make([]domain.PaymentMethod, n)
	for i := range methods {
		b := NewPaymentMethod().WithID(strconv.Itoa(i + 1))
		if i+1 == active {
			b.Active()
		}
		methods[i] = b.Build()
	}
	return methods
}
