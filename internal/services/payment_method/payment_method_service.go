package payment_method

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	adapterports "github.com/kevin07696/card-wallet/internal/adapters/ports"
	"github.com/kevin07696/card-wallet/internal/domain"
	"github.com/kevin07696/card-wallet/internal/services/ports"
	"github.com/kevin07696/card-wallet/pkg/observability"
)

// paymentMethodService implements the PaymentMethodService port.
//
// opMu serializes mutations end to end (remote call plus reload) so that
// overlapping activate/delete/create requests cannot interleave. stateMu only
// guards the view state and is never held across a remote call.
type paymentMethodService struct {
	store  adapterports.PaymentMethodStore
	logger *zap.Logger

	opMu sync.Mutex

	stateMu sync.RWMutex
	state   ports.PaymentMethodState
}

// NewPaymentMethodService creates a new payment method service
func NewPaymentMethodService(store adapterports.PaymentMethodStore, logger *zap.Logger) ports.PaymentMethodService {
	return &paymentMethodService{
		store:  store,
		logger: logger,
		state:  ports.PaymentMethodState{Methods: []domain.PaymentMethod{}},
	}
}

// Refresh reloads the collection from the store
func (s *paymentMethodService) Refresh(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.refresh(ctx)
}

// EnsureLoaded refreshes only if the collection has never been loaded
func (s *paymentMethodService) EnsureLoaded(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.ensureLoaded(ctx)
}

// ensureLoaded loads the collection if nothing has been loaded yet; caller holds opMu
func (s *paymentMethodService) ensureLoaded(ctx context.Context) error {
	s.stateMu.RLock()
	loaded := s.state.Loaded
	s.stateMu.RUnlock()
	if loaded {
		return nil
	}
	return s.refresh(ctx)
}

func (s *paymentMethodService) refresh(ctx context.Context) error {
	methods, err := s.store.List(ctx)
	if err != nil {
		observability.RecordPaymentMethodOperation("refresh", "failed")
		return s.remoteFailure("refresh", "load payment methods", err)
	}
	if methods == nil {
		methods = []domain.PaymentMethod{}
	}

	if n := domain.CountActive(methods); n > 1 {
		s.logger.Warn("Store returned more than one active payment method",
			zap.Int("active_count", n),
		)
	}

	s.stateMu.Lock()
	s.state.Methods = methods
	s.state.Loaded = true
	s.stateMu.Unlock()

	observability.RecordPaymentMethodOperation("refresh", "success")
	s.logger.Debug("Payment methods loaded", zap.Int("count", len(methods)))
	return nil
}

// SubmitNew creates a record and reloads the collection. Only a failed
// create is returned as an error.
func (s *paymentMethodService) SubmitNew(ctx context.Context, pm domain.PaymentMethod) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	s.clearMessages()

	s.logger.Info("Adding payment method",
		zap.String("issuer", pm.Issuer),
		zap.String("last_four", pm.LastFour()),
	)

	if _, err := s.store.Create(ctx, pm); err != nil {
		observability.RecordPaymentMethodOperation("create", "failed")
		return s.remoteFailure("create", "add payment method", err)
	}
	observability.RecordPaymentMethodOperation("create", "success")

	// The record is stored; a failed reload is shown in State.Err but does not
	// fail the submit, so the caller does not resend the same card.
	if err := s.refresh(ctx); err != nil {
		s.logger.Warn("Payment method added but reload failed", zap.Error(err))
	}
	return nil
}

// SetActive marks id as the only active record. Stores that implement
// ActiveSetter get one batched call. Otherwise every record is written back
// with one Update each, strictly one after another; a failure stops the
// sequence and earlier writes are not rolled back.
func (s *paymentMethodService) SetActive(ctx context.Context, id string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	s.clearMessages()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	s.stateMu.RLock()
	current := make([]domain.PaymentMethod, len(s.state.Methods))
	copy(current, s.state.Methods)
	s.stateMu.RUnlock()

	if domain.FindByID(current, id) < 0 {
		observability.RecordPaymentMethodOperation("set_active", "refused")
		return fmt.Errorf("activate %q: %w", id, domain.ErrPMNotFound)
	}

	s.logger.Info("Activating payment method", zap.String("payment_method_id", id))

	if setter, ok := s.store.(adapterports.ActiveSetter); ok {
		if _, err := setter.SetActive(ctx, id); err != nil {
			observability.RecordPaymentMethodOperation("set_active", "failed")
			return s.remoteFailure("set_active", "activate payment method", err)
		}
	} else {
		for i, pm := range domain.WithOnlyActive(current, id) {
			if _, err := s.store.Update(ctx, pm.ID, pm); err != nil {
				observability.RecordPaymentMethodOperation("set_active", "failed")
				s.logger.Error("Activation stopped partway; store may hold mixed active flags",
					zap.String("payment_method_id", id),
					zap.String("failed_id", pm.ID),
					zap.Int("updated", i),
					zap.Int("total", len(current)),
				)
				return s.remoteFailure("set_active", "activate payment method", err)
			}
		}
	}
	observability.RecordPaymentMethodOperation("set_active", "success")

	return s.refresh(ctx)
}

// Delete removes id. Deleting the only remaining record is refused without
// a remote delete. An unloaded collection is loaded first.
func (s *paymentMethodService) Delete(ctx context.Context, id string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	s.clearMessages()

	// The last-record rule needs the real count, not an empty unloaded state
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	s.stateMu.Lock()
	remaining := len(s.state.Methods)
	if remaining == 1 {
		s.state.Notice = domain.ErrLastPaymentMethod.Message
	}
	s.stateMu.Unlock()

	if remaining == 1 {
		observability.RecordPaymentMethodOperation("delete", "refused")
		s.logger.Info("Refused to delete last payment method", zap.String("payment_method_id", id))
		return domain.ErrLastPaymentMethod
	}

	s.logger.Info("Deleting payment method", zap.String("payment_method_id", id))

	if _, err := s.store.Delete(ctx, id); err != nil {
		observability.RecordPaymentMethodOperation("delete", "failed")
		return s.remoteFailure("delete", "delete payment method", err)
	}
	observability.RecordPaymentMethodOperation("delete", "success")

	return s.refresh(ctx)
}

// Methods returns the collection with the active record first
func (s *paymentMethodService) Methods() []domain.PaymentMethod {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return domain.SortActiveFirst(s.state.Methods)
}

// State returns a copy of the view state with methods ordered active first
func (s *paymentMethodService) State() ports.PaymentMethodState {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	st := s.state
	st.Methods = domain.SortActiveFirst(s.state.Methods)
	return st
}

// ClearMessages drops the notice and error
func (s *paymentMethodService) ClearMessages() {
	s.clearMessages()
}

func (s *paymentMethodService) clearMessages() {
	s.stateMu.Lock()
	s.state.Notice = ""
	s.state.Err = ""
	s.stateMu.Unlock()
}

// remoteFailure records a store failure for display and wraps it
func (s *paymentMethodService) remoteFailure(operation, action string, err error) error {
	s.logger.Error("Payment method store call failed",
		zap.String("operation", operation),
		zap.Error(err),
	)

	code := domain.ErrorCodeStoreError
	if errors.Is(err, context.DeadlineExceeded) {
		code = domain.ErrorCodeStoreUnavailable
	}
	wrapped := domain.WrapError(code, "failed to "+action, err)

	s.stateMu.Lock()
	s.state.Err = wrapped.Message + ": " + err.Error()
	s.stateMu.Unlock()

	return wrapped
}
