package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"retailadmin/internal/invoice"
	"retailadmin/internal/service"
)

type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) List(ctx context.Context, p invoice.Params) (*service.InvoiceListResult, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InvoiceListResult), args.Error(1)
}

func (m *MockInvoiceService) Export(ctx context.Context, p invoice.Params) (*service.ExportResult, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}
