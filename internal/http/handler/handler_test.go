package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"retailadmin/internal/invoice"
	"retailadmin/internal/model"
	"retailadmin/internal/report"
	"retailadmin/internal/service"
	serviceMocks "retailadmin/internal/service/mocks"
	"retailadmin/internal/upstream"
)

func decodeError(t *testing.T, resp *http.Response) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListInvoices(t *testing.T) {
	mockSvc := new(serviceMocks.MockInvoiceService)
	app := fiber.New()
	app.Get("/api/invoices", ListInvoices(mockSvc))

	t.Run("success", func(t *testing.T) {
		params := invoice.Params{Search: "alice", Date: "2024-01-02", Order: invoice.Descending}
		mockSvc.On("List", mock.Anything, params).Return(&service.InvoiceListResult{
			Items:     []model.Invoice{{ID: "1", InvoiceNumber: "INV-1", CustomerName: "Alice"}},
			Total:     1,
			Filters:   params,
			Available: true,
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/invoices?search=alice&date=2024-01-02&sort=desc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.InvoiceListResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Len(t, result.Items, 1)
		assert.Equal(t, "INV-1", result.Items[0].InvoiceNumber)
		assert.True(t, result.Available)
		assert.Equal(t, invoice.Descending, result.Filters.Order)
		mockSvc.AssertExpectations(t)
	})

	t.Run("defaults to ascending", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, invoice.Params{Order: invoice.Ascending}).
			Return(&service.InvoiceListResult{Items: []model.Invoice{}, Available: false, Message: invoice.EmptyMessage}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/invoices", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, false, result["available"])
		assert.Equal(t, "No invoices available.", result["message"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid date", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/invoices?date=01/02/2024", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_DATE", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid sort", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/invoices?sort=sideways", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_SORT", decodeError(t, resp).Error.Code)
	})
}

func TestExportInvoices(t *testing.T) {
	mockSvc := new(serviceMocks.MockInvoiceService)
	app := fiber.New()
	app.Get("/api/invoices/export", ExportInvoices(mockSvc))

	t.Run("success", func(t *testing.T) {
		doc := &report.Document{
			FileName:    "invoices_2024-01-02.pdf",
			ContentType: report.ContentType,
			Rows:        1,
			Data:        []byte("%PDF-1.3 fake"),
		}
		mockSvc.On("Export", mock.Anything, invoice.Params{Date: "2024-01-02", Order: invoice.Ascending}).
			Return(&service.ExportResult{Document: doc, Report: &model.Report{ID: "rep-1"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/invoices/export?date=2024-01-02", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, `attachment; filename="invoices_2024-01-02.pdf"`, resp.Header.Get("Content-Disposition"))
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		assert.Equal(t, "rep-1", resp.Header.Get(HeaderReportID))
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, doc.Data, body)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not archived", func(t *testing.T) {
		doc := &report.Document{FileName: "invoices_all.pdf", ContentType: report.ContentType, Data: []byte("%PDF")}
		mockSvc.On("Export", mock.Anything, invoice.Params{Order: invoice.Ascending}).
			Return(&service.ExportResult{Document: doc}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/invoices/export", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, resp.Header.Get(HeaderReportID))
		mockSvc.AssertExpectations(t)
	})

	t.Run("upstream failure", func(t *testing.T) {
		mockSvc.On("Export", mock.Anything, invoice.Params{Order: invoice.Descending}).
			Return(nil, fmt.Errorf("fetch invoices: %w", upstream.ErrUnavailable)).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/invoices/export?sort=desc", nil))

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Equal(t, "UPSTREAM_UNAVAILABLE", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("render failure", func(t *testing.T) {
		mockSvc.On("Export", mock.Anything, invoice.Params{Search: "x", Order: invoice.Ascending}).
			Return(nil, fmt.Errorf("%w: font missing", report.ErrRender)).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/invoices/export?search=x", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "REPORT_RENDER_FAILED", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestListSuppliers(t *testing.T) {
	mockSvc := new(serviceMocks.MockProductService)
	app := fiber.New()
	app.Get("/api/suppliers", ListSuppliers(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Suppliers", mock.Anything).Return([]model.Supplier{{ID: "s1", Name: "Acme"}}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/suppliers", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var sup []model.Supplier
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&sup))
		assert.Equal(t, "Acme", sup[0].Name)
	})

	t.Run("upstream failure", func(t *testing.T) {
		mockSvc.On("Suppliers", mock.Anything).Return(nil, upstream.ErrUnavailable).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/suppliers", nil))

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Equal(t, "UPSTREAM_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})
	mockSvc.AssertExpectations(t)
}

func TestListCategories(t *testing.T) {
	mockSvc := new(serviceMocks.MockProductService)
	mockSvc.On("Categories").Return(model.Categories)
	app := fiber.New()
	app.Get("/api/products/categories", ListCategories(mockSvc))

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/products/categories", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var cats []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cats))
	assert.Equal(t, model.Categories, cats)
}

func TestUpdateProduct(t *testing.T) {
	mockSvc := new(serviceMocks.MockProductService)
	app := fiber.New()
	app.Post("/api/product/update", UpdateProduct(mockSvc))

	post := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/api/product/update", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		return resp
	}
	const body = `{"id":"p-1","name":"Hammer","wholesalePrice":8.5,"retailPrice":12,"quantity":3,"category":"Tools","supplierName":"Acme","date":"2024-03-01"}`
	formMatches := mock.MatchedBy(func(f service.ProductForm) bool {
		return f.ID == "p-1" && f.Quantity != nil && *f.Quantity == 3 && f.Date == "2024-03-01"
	})

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, formMatches).
			Return(&service.UpdateOutcome{Success: true, Title: "Success", Message: "Product updated successfully!"}, nil).Once()

		resp := post(body)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var out service.UpdateOutcome
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.True(t, out.Success)
		assert.Equal(t, "Product updated successfully!", out.Message)
	})

	t.Run("rejected", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, formMatches).
			Return(&service.UpdateOutcome{Title: "Error", Message: "Error updating product. Please try again."}, service.ErrUpdateRejected).Once()

		resp := post(body)

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		res := decodeError(t, resp)
		assert.Equal(t, "PRODUCT_UPDATE_REJECTED", res.Error.Code)
		assert.Equal(t, "Error", res.Error.Title)
		assert.Equal(t, "Error updating product. Please try again.", res.Error.Message)
	})

	t.Run("network failure", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, formMatches).
			Return(&service.UpdateOutcome{Title: "Network Error", Message: "Error updating product due to network issues."},
				fmt.Errorf("%w: dial tcp", upstream.ErrUnavailable)).Once()

		resp := post(body)

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		res := decodeError(t, resp)
		assert.Equal(t, "UPSTREAM_UNAVAILABLE", res.Error.Code)
		assert.Equal(t, "Network Error", res.Error.Title)
	})

	t.Run("validation failure", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, mock.Anything).
			Return(nil, &service.ValidationError{Field: "name", Reason: "is required"}).Once()

		resp := post(`{"id":"p-1"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		res := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_FAILED", res.Error.Code)
		assert.Equal(t, "name", res.Error.Field)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp := post(`{"id":`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Error.Code)
	})
	mockSvc.AssertExpectations(t)
}

func TestListReports(t *testing.T) {
	mockSvc := new(serviceMocks.MockReportService)
	app := fiber.New()
	app.Get("/api/reports", ListReports(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 10, 0).Return(&service.ReportListResult{
			Items: []model.Report{{ID: uuid.New().String(), Filename: "invoices_all.pdf"}},
			Total: 1,
		}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/reports?limit=10&offset=0", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result service.ReportListResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
	})

	t.Run("invalid limit", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/reports?limit=abc", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_LIMIT", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid offset", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/reports?offset=x", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_OFFSET", decodeError(t, resp).Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 10, 0).Return(nil, errors.New("service error")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/reports", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
	mockSvc.AssertExpectations(t)
}

func TestGetReport(t *testing.T) {
	mockSvc := new(serviceMocks.MockReportService)
	app := fiber.New()
	app.Get("/api/reports/:id", GetReport(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(&service.ReportDetail{
			Report:      model.Report{ID: id, Filename: "invoices_all.pdf"},
			DownloadURL: "http://minio/signed",
		}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/reports/"+id, nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, id, result["id"])
		assert.Equal(t, "http://minio/signed", result["download_url"])
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(nil, service.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/reports/"+id, nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/reports/invalid-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(nil, errors.New("db error")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/reports/"+id, nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
	mockSvc.AssertExpectations(t)
}

func TestDownloadReport(t *testing.T) {
	mockSvc := new(serviceMocks.MockReportService)
	app := fiber.New()
	app.Get("/api/reports/:id/download", DownloadReport(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		rec := &model.Report{ID: id, Filename: "invoices_all.pdf", ContentType: report.ContentType, Size: 4}
		mockSvc.On("Open", mock.Anything, id).Return(io.NopCloser(bytes.NewReader([]byte("%PDF"))), rec, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/reports/"+id+"/download", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, `attachment; filename="invoices_all.pdf"`, resp.Header.Get("Content-Disposition"))
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "%PDF", string(body))
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Open", mock.Anything, id).Return(nil, nil, service.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/reports/"+id+"/download", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
	mockSvc.AssertExpectations(t)
}

func TestDeleteReport(t *testing.T) {
	mockSvc := new(serviceMocks.MockReportService)
	app := fiber.New()
	app.Delete("/api/reports/:id", DeleteReport(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/api/reports/"+id, nil))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(service.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/api/reports/"+id, nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(errors.New("delete error")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/api/reports/"+id, nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
	mockSvc.AssertExpectations(t)
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	RegisterRoutes(app, nil, Services{
		Invoices: new(serviceMocks.MockInvoiceService),
		Reports:  new(serviceMocks.MockReportService),
		Products: new(serviceMocks.MockProductService),
	})

	t.Run("not found route", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/non-existent", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/health", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})

	t.Run("api responses are not cached", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/invoices?sort=bad", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	})
}
