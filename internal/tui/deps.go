package tui

import (
	"context"
	"log/slog"
	"time"

	"retailadmin/internal/invoice"
	"retailadmin/internal/model"
	"retailadmin/internal/report"
)

// InvoiceSource loads the invoice snapshot shown by the browser.
type InvoiceSource interface {
	Invoices(ctx context.Context) ([]model.Invoice, error)
}

type Deps struct {
	Source   InvoiceSource
	Exporter *report.Exporter
	Match    invoice.DateMatcher
	Location *time.Location
	// OutDir receives exported reports. Empty means the working directory.
	OutDir string

	Logger *slog.Logger
}
