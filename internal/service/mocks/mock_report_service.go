package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"retailadmin/internal/model"
	"retailadmin/internal/report"
	"retailadmin/internal/service"
)

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Archive(ctx context.Context, doc *report.Document) (*model.Report, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportService) List(ctx context.Context, limit, offset int) (*service.ReportListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReportListResult), args.Error(1)
}

func (m *MockReportService) Get(ctx context.Context, id string) (*service.ReportDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReportDetail), args.Error(1)
}

func (m *MockReportService) Open(ctx context.Context, id string) (io.ReadCloser, *model.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(*model.Report), args.Error(2)
}

func (m *MockReportService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
