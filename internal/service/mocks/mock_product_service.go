package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"retailadmin/internal/model"
	"retailadmin/internal/service"
)

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Suppliers(ctx context.Context) ([]model.Supplier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Supplier), args.Error(1)
}

func (m *MockProductService) Categories() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockProductService) Update(ctx context.Context, form service.ProductForm) (*service.UpdateOutcome, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UpdateOutcome), args.Error(1)
}
