// Package memstore is an in-memory payment-method store. It backs the stub
// store binary and round-trip tests.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kevin07696/card-wallet/internal/adapters/ports"
	"github.com/kevin07696/card-wallet/internal/domain"
)

// Store keeps records in insertion order
type Store struct {
	mu      sync.RWMutex
	records []domain.PaymentMethod
	logger  *zap.Logger
	newID   func() string
}

var (
	_ ports.PaymentMethodStore = (*Store)(nil)
	_ ports.ActiveSetter       = (*Store)(nil)
)

// Option configures a Store
type Option func(*Store)

// WithIDGenerator overrides uuid-based id assignment
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// WithSeed preloads records; records without an id get one
func WithSeed(methods ...domain.PaymentMethod) Option {
	return func(s *Store) {
		s.records = append(s.records, methods...)
	}
}

// New creates an empty store
func New(logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		logger: logger,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	for i := range s.records {
		if s.records[i].ID == "" {
			s.records[i].ID = s.newID()
		}
	}
	return s
}

// DemoSeed returns two sample cards, the first one active
func DemoSeed() []domain.PaymentMethod {
	return []domain.PaymentMethod{
		{CardDetails: 4111111111111111, ExpiryDate: "07/27", CVV: "123", Issuer: "Visa", Active: true},
		{CardDetails: 5555555555554444, ExpiryDate: "12/28", CVV: "456", Issuer: "Mastercard"},
	}
}

// List returns a copy of all records
func (s *Store) List(ctx context.Context) ([]domain.PaymentMethod, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.PaymentMethod, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Create stores pm under a fresh id
func (s *Store) Create(ctx context.Context, pm domain.PaymentMethod) (*domain.MutationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	pm.ID = s.newID()
	s.records = append(s.records, pm)

	s.logger.Debug("Payment method created",
		zap.String("id", pm.ID),
		zap.String("issuer", pm.Issuer),
	)
	return &domain.MutationResult{Success: true, Message: "Payment method added"}, nil
}

// Update replaces the record with the given id. The stored id always wins
// over any id carried in pm.
func (s *Store) Update(ctx context.Context, id string, pm domain.PaymentMethod) (*domain.MutationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := domain.FindByID(s.records, id)
	if idx < 0 {
		return nil, notFound(id)
	}
	pm.ID = id
	s.records[idx] = pm

	s.logger.Debug("Payment method updated",
		zap.String("id", id),
		zap.Bool("active", pm.Active),
	)
	return &domain.MutationResult{Success: true, Message: "Payment method updated"}, nil
}

// Delete removes the record with the given id
func (s *Store) Delete(ctx context.Context, id string) (*domain.MutationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := domain.FindByID(s.records, id)
	if idx < 0 {
		return nil, notFound(id)
	}
	s.records = append(s.records[:idx], s.records[idx+1:]...)

	s.logger.Debug("Payment method deleted", zap.String("id", id))
	return &domain.MutationResult{Success: true, Message: "Payment method deleted"}, nil
}

// SetActive marks id active and clears every other flag under one lock
func (s *Store) SetActive(ctx context.Context, id string) (*domain.MutationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if domain.FindByID(s.records, id) < 0 {
		return nil, notFound(id)
	}
	s.records = domain.WithOnlyActive(s.records, id)

	s.logger.Debug("Payment method activated", zap.String("id", id))
	return &domain.MutationResult{Success: true, Message: "Payment method activated"}, nil
}

func notFound(id string) error {
	return fmt.Errorf("payment method %q: %w", id, domain.ErrPMNotFound)
}
