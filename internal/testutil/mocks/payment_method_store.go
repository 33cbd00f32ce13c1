// Package mocks provides shared mock implementations for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kevin07696/card-wallet/internal/adapters/ports"
	"github.com/kevin07696/card-wallet/internal/domain"
)

// MockPaymentMethodStore is a testify mock of ports.PaymentMethodStore
type MockPaymentMethodStore struct {
	mock.Mock
}

var _ ports.PaymentMethodStore = (*MockPaymentMethodStore)(nil)

func (m *MockPaymentMethodStore) List(ctx context.Context) ([]domain.PaymentMethod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodStore) Create(ctx context.Context, pm domain.PaymentMethod) (*domain.MutationResult, error) {
	args := m.Called(ctx, pm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MutationResult), args.Error(1)
}

func (m *MockPaymentMethodStore) Update(ctx context.Context, id string, pm domain.PaymentMethod) (*domain.MutationResult, error) {
	args := m.Called(ctx, id, pm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MutationResult), args.Error(1)
}

func (m *MockPaymentMethodStore) Delete(ctx context.Context, id string) (*domain.MutationResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MutationResult), args.Error(1)
}

// MockActiveStore adds the batched ActiveSetter capability
type MockActiveStore struct {
	MockPaymentMethodStore
}

var _ ports.ActiveSetter = (*MockActiveStore)(nil)

func (m *MockActiveStore) SetActive(ctx context.Context, id string) (*domain.MutationResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MutationResult), args.Error(1)
}

// OK is the success reply used by store mocks
func OK() *domain.MutationResult {
	return &domain.MutationResult{Success: true, Message: "ok"}
}
