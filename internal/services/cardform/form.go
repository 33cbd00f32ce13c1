// Package cardform is the add-card form controller: draft values, per-field
// messages and visibility.
package cardform

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/kevin07696/card-wallet/internal/domain"
	"github.com/kevin07696/card-wallet/internal/services/ports"
	"github.com/kevin07696/card-wallet/internal/validation"
	"github.com/kevin07696/card-wallet/pkg/observability"
)

// ErrInvalidDraft is returned by Submit when any field fails validation
var ErrInvalidDraft = fmt.Errorf("card draft has invalid fields: %w", domain.ErrValidationFailed)

// ErrSubmitInProgress is returned when Submit is called while a previous
// submit is still waiting on its callback
var ErrSubmitInProgress = errors.New("card submit already in progress")

// SubmitFunc receives a validated record
type SubmitFunc func(ctx context.Context, pm domain.PaymentMethod) error

// Form implements ports.CardFormService
type Form struct {
	mu       sync.Mutex
	strategy validation.Strategy
	submit   SubmitFunc
	logger   *zap.Logger

	draft      ports.CardDraft
	visible    bool
	errors     validation.FieldErrors
	submitting bool
}

var _ ports.CardFormService = (*Form)(nil)

// New creates a collapsed, empty form
func New(strategy validation.Strategy, submit SubmitFunc, logger *zap.Logger) *Form {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &Form{
		strategy: strategy,
		submit:   submit,
		logger:   logger,
	}
	f.reset()
	return f
}

func (f *Form) reset() {
	f.draft = ports.CardDraft{Issuer: domain.IssuerUnknown}
	f.errors = validation.NewFieldErrors()
	f.visible = false
}

// Change stores value and re-validates only that field. Editing the card
// number also updates the inferred issuer; the CVV length follows the card
// number currently in the draft.
func (f *Form) Change(field validation.Field, value string) (ports.FieldResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := ports.FieldResult{Field: field, Value: value}

	switch field {
	case validation.FieldCardDetails:
		f.draft.CardDetails = value
		check := f.strategy.CheckCardNumber(value)
		f.errors[field] = messageIf(!check.Valid, validation.MsgInvalidCardNumber)
		f.draft.Issuer = validation.IssuerOf(check)

	case validation.FieldExpiryDate:
		f.draft.ExpiryDate = value
		f.errors[field] = messageIf(!f.strategy.CheckExpiry(value), validation.MsgInvalidExpiryDate)

	case validation.FieldCVV:
		f.draft.CVV = value
		expected := validation.ExpectedCVVSize(f.strategy.CheckCardNumber(f.draft.CardDetails))
		f.errors[field] = messageIf(!f.strategy.CheckCVV(value, expected), validation.MsgInvalidCVV)

	default:
		return result, fmt.Errorf("unknown form field %q", field)
	}

	result.Error = f.errors[field]
	result.Issuer = f.draft.Issuer
	return result, nil
}

// Submit validates all fields. On failure every message is shown and the
// callback is not invoked. On success the record is handed to the callback
// without holding the form lock; the form resets only if the callback
// succeeds. A second Submit while one is running returns ErrSubmitInProgress.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitInProgress
	}

	errs := validation.ValidateAll(f.strategy, f.draft.CardDetails, f.draft.ExpiryDate, f.draft.CVV)
	if errs.HasErrors() {
		f.errors = errs
		f.mu.Unlock()
		observability.RecordCardFormSubmission("invalid")
		f.logger.Debug("Card form rejected",
			zap.String("card_error", errs[validation.FieldCardDetails]),
			zap.String("expiry_error", errs[validation.FieldExpiryDate]),
			zap.String("cvv_error", errs[validation.FieldCVV]),
		)
		return ErrInvalidDraft
	}

	pm, err := f.record()
	if err != nil {
		f.errors[validation.FieldCardDetails] = validation.MsgInvalidCardNumber
		f.mu.Unlock()
		observability.RecordCardFormSubmission("invalid")
		return fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}
	f.submitting = true
	f.mu.Unlock()

	err = f.submit(ctx, pm)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false

	if err != nil {
		observability.RecordCardFormSubmission("failed")
		f.logger.Warn("Card form submit callback failed", zap.Error(err))
		return err
	}

	observability.RecordCardFormSubmission("stored")
	f.logger.Info("Card added",
		zap.String("issuer", pm.Issuer),
		zap.String("last_four", pm.LastFour()),
	)
	f.reset()
	return nil
}

// record converts the draft into a storable, inactive payment method
func (f *Form) record() (domain.PaymentMethod, error) {
	digits := validation.NormalizeCardNumber(f.draft.CardDetails)
	number, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return domain.PaymentMethod{}, fmt.Errorf("card number: %w", err)
	}

	return domain.PaymentMethod{
		CardDetails: number,
		ExpiryDate:  strings.TrimSpace(f.draft.ExpiryDate),
		CVV:         f.draft.CVV,
		Issuer:      validation.IssuerOf(f.strategy.CheckCardNumber(digits)),
		Active:      false,
	}, nil
}

// Open expands the form
func (f *Form) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visible = true
}

// Cancel collapses the form. Typed values and messages are kept.
func (f *Form) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visible = false
}

// Snapshot returns a copy of the form state
func (f *Form) Snapshot() ports.CardFormSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := make(validation.FieldErrors, len(f.errors))
	for k, v := range f.errors {
		errs[k] = v
	}
	return ports.CardFormSnapshot{
		Draft:   f.draft,
		Visible: f.visible,
		Errors:  errs,
	}
}

func messageIf(failed bool, msg string) string {
	if failed {
		return msg
	}
	return ""
}
