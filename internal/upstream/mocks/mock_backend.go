package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"retailadmin/internal/model"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Invoices(ctx context.Context) ([]model.Invoice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Invoice), args.Error(1)
}

func (m *MockBackend) Suppliers(ctx context.Context) ([]model.Supplier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Supplier), args.Error(1)
}

func (m *MockBackend) UpdateProduct(ctx context.Context, p model.ProductUpdate) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}
