// Package validation checks candidate card data typed into the add-card form.
//
// The checks sit behind the Strategy interface so that the scheme table can be
// swapped or extended (new issuers) without touching the form controller.
package validation

import (
	"time"

	"github.com/kevin07696/card-wallet/internal/domain"
	"github.com/kevin07696/card-wallet/pkg/timeutil"
)

// DefaultCVVSize applies when the card number matches no scheme
const DefaultCVVSize = 3

// Field names a form input; values match the JSON field names of the record
type Field string

const (
	FieldCardDetails Field = "cardDetails"
	FieldExpiryDate  Field = "expiryDate"
	FieldCVV         Field = "CVV"
)

// Fixed per-field messages. Message identity is the error kind.
const (
	MsgInvalidCardNumber = "Invalid card number"
	MsgInvalidExpiryDate = "Invalid expiry date"
	MsgInvalidCVV        = "Invalid CVV/CVC"
)

// CardCheck is the verdict for a card number
type CardCheck struct {
	Valid   bool
	Issuer  string // domain.IssuerUnknown when no scheme matched
	CVVSize int    // expected CVV length for the matched scheme
}

// Strategy validates card number, expiry and CVV
type Strategy interface {
	CheckCardNumber(candidate string) CardCheck
	CheckExpiry(candidate string) bool
	CheckCVV(candidate string, expectedLength int) bool
}

// Option configures the default strategy
type Option func(*Default)

// WithClock overrides the time source used for expiry checks
func WithClock(now func() time.Time) Option {
	return func(d *Default) {
		if now != nil {
			d.now = now
		}
	}
}

// WithSchemes replaces the scheme table
func WithSchemes(schemes []Scheme) Option {
	return func(d *Default) {
		d.schemes = schemes
	}
}

// WithExtraSchemes appends schemes to the built-in table
func WithExtraSchemes(schemes ...Scheme) Option {
	return func(d *Default) {
		d.schemes = append(append([]Scheme{}, d.schemes...), schemes...)
	}
}

// WithMaxElapsedYears sets how far in the future an expiry year may be
func WithMaxElapsedYears(years int) Option {
	return func(d *Default) {
		d.maxElapsedYears = years
	}
}

// Default is the table-driven Strategy
type Default struct {
	schemes         []Scheme
	now             func() time.Time
	maxElapsedYears int
}

var _ Strategy = (*Default)(nil)

// NewDefault creates the default strategy with the built-in scheme table
func NewDefault(opts ...Option) *Default {
	d := &Default{
		schemes:         BuiltinSchemes(),
		now:             timeutil.Now,
		maxElapsedYears: 19,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// FieldErrors holds one message per field; an empty message means the field is valid
type FieldErrors map[Field]string

// NewFieldErrors returns an error map with every field cleared
func NewFieldErrors() FieldErrors {
	return FieldErrors{
		FieldCardDetails: "",
		FieldExpiryDate:  "",
		FieldCVV:         "",
	}
}

// HasErrors reports whether any field carries a message
func (fe FieldErrors) HasErrors() bool {
	for _, msg := range fe {
		if msg != "" {
			return true
		}
	}
	return false
}

// ValidateAll runs all three checks over a draft. The CVV length is taken
// from the scheme matched by cardNumber.
func ValidateAll(s Strategy, cardNumber, expiry, cvv string) FieldErrors {
	errs := NewFieldErrors()

	card := s.CheckCardNumber(cardNumber)
	if !card.Valid {
		errs[FieldCardDetails] = MsgInvalidCardNumber
	}
	if !s.CheckExpiry(expiry) {
		errs[FieldExpiryDate] = MsgInvalidExpiryDate
	}
	if !s.CheckCVV(cvv, ExpectedCVVSize(card)) {
		errs[FieldCVV] = MsgInvalidCVV
	}
	return errs
}

// ExpectedCVVSize returns the CVV length implied by a card check
func ExpectedCVVSize(card CardCheck) int {
	if card.CVVSize > 0 {
		return card.CVVSize
	}
	return DefaultCVVSize
}

// IssuerOf returns the issuer label, falling back to "Unknown"
func IssuerOf(card CardCheck) string {
	if card.Issuer == "" {
		return domain.IssuerUnknown
	}
	return card.Issuer
}
