package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"retailadmin/internal/model"
	"retailadmin/internal/upstream"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrUpdateRejected = errors.New("product update rejected")
)

// upstreamDateLayout matches JavaScript's Date.toISOString output.
const upstreamDateLayout = "2006-01-02T15:04:05.000Z"

// Fixed outcome messages shown to the operator after a product update.
const (
	UpdateSuccessTitle   = "Success"
	UpdateSuccessMessage = "Product updated successfully!"
	UpdateErrorTitle     = "Error"
	UpdateErrorMessage   = "Error updating product. Please try again."
	UpdateNetworkTitle   = "Network Error"
	UpdateNetworkMessage = "Error updating product due to network issues."
)

// ValidationError names the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ProductForm is the product edit form as submitted by the dashboard.
// Numeric fields are pointers so a missing value can be told apart from zero.
type ProductForm struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	WholesalePrice *float64 `json:"wholesalePrice"`
	RetailPrice    *float64 `json:"retailPrice"`
	Quantity       *int     `json:"quantity"`
	Category       string   `json:"category"`
	SupplierName   string   `json:"supplierName"`
	// Date is a calendar day (2006-01-02) or a full RFC 3339 timestamp.
	Date string `json:"date"`
}

// UpdateOutcome is the fixed dialog content for a product update attempt.
type UpdateOutcome struct {
	Success bool   `json:"success"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// ProductService covers the product edit flow.
type ProductService interface {
	// Suppliers lists the suppliers a product can be assigned to.
	Suppliers(ctx context.Context) ([]model.Supplier, error)

	// Categories returns the fixed product categories.
	Categories() []string

	// Update validates the form and forwards it upstream. The outcome is set for every
	// non-validation result; the error is nil, ErrUpdateRejected or upstream.ErrUnavailable.
	Update(ctx context.Context, form ProductForm) (*UpdateOutcome, error)
}

type productService struct {
	backend upstream.Backend
	metrics *Metrics
	log     *slog.Logger
}

// NewProductService constructs a new ProductService.
func NewProductService(backend upstream.Backend, metrics *Metrics, log *slog.Logger) ProductService {
	if log == nil {
		log = slog.Default()
	}
	return &productService{backend: backend, metrics: metrics, log: log}
}

func (s *productService) Suppliers(ctx context.Context) ([]model.Supplier, error) {
	sup, err := s.backend.Suppliers(ctx)
	if err != nil {
		s.metrics.upstreamFailed("suppliers")
		s.log.ErrorContext(ctx, "product.suppliers_failed", "error", err)
		return nil, err
	}
	return sup, nil
}

func (s *productService) Categories() []string {
	return slices.Clone(model.Categories)
}

func (s *productService) Update(ctx context.Context, form ProductForm) (*UpdateOutcome, error) {
	upd, err := form.toUpdate()
	if err != nil {
		return nil, err
	}

	ok, err := s.backend.UpdateProduct(ctx, upd)
	if err != nil {
		s.metrics.upstreamFailed("product_update")
		s.log.ErrorContext(ctx, "product.update_failed", "product_id", upd.ID, "error", err)
		return &UpdateOutcome{Title: UpdateNetworkTitle, Message: UpdateNetworkMessage}, err
	}
	if !ok {
		s.log.WarnContext(ctx, "product.update_rejected", "product_id", upd.ID)
		return &UpdateOutcome{Title: UpdateErrorTitle, Message: UpdateErrorMessage}, ErrUpdateRejected
	}

	s.log.InfoContext(ctx, "product.updated", "product_id", upd.ID)
	return &UpdateOutcome{Success: true, Title: UpdateSuccessTitle, Message: UpdateSuccessMessage}, nil
}

func (f ProductForm) toUpdate() (model.ProductUpdate, error) {
	required := []struct{ field, value string }{
		{"id", f.ID},
		{"name", f.Name},
		{"category", f.Category},
		{"supplierName", f.SupplierName},
		{"date", f.Date},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return model.ProductUpdate{}, &ValidationError{Field: r.field, Reason: "is required"}
		}
	}

	switch {
	case f.WholesalePrice == nil:
		return model.ProductUpdate{}, &ValidationError{Field: "wholesalePrice", Reason: "is required"}
	case *f.WholesalePrice < 0:
		return model.ProductUpdate{}, &ValidationError{Field: "wholesalePrice", Reason: "must not be negative"}
	case f.RetailPrice == nil:
		return model.ProductUpdate{}, &ValidationError{Field: "retailPrice", Reason: "is required"}
	case *f.RetailPrice < 0:
		return model.ProductUpdate{}, &ValidationError{Field: "retailPrice", Reason: "must not be negative"}
	case f.Quantity == nil:
		return model.ProductUpdate{}, &ValidationError{Field: "quantity", Reason: "is required"}
	case *f.Quantity < 0:
		return model.ProductUpdate{}, &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}

	if !slices.Contains(model.Categories, f.Category) {
		return model.ProductUpdate{}, &ValidationError{Field: "category", Reason: "is not a known category"}
	}

	date, err := normalizeDate(f.Date)
	if err != nil {
		return model.ProductUpdate{}, &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}

	return model.ProductUpdate{
		ID:             strings.TrimSpace(f.ID),
		Name:           strings.TrimSpace(f.Name),
		Description:    f.Description,
		WholesalePrice: *f.WholesalePrice,
		RetailPrice:    *f.RetailPrice,
		Quantity:       *f.Quantity,
		Category:       f.Category,
		SupplierName:   f.SupplierName,
		Date:           date,
	}, nil
}

// normalizeDate turns a form date into the upstream's ISO form, reading a bare day as UTC midnight.
func normalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return "", err
		}
	}
	return t.UTC().Format(upstreamDateLayout), nil
}
