package service

import (
	"context"
	"fmt"
	"log/slog"

	"retailadmin/internal/invoice"
	"retailadmin/internal/model"
	"retailadmin/internal/report"
	"retailadmin/internal/upstream"
)

// InvoiceListResult is the service-level DTO for the filtered, sorted invoice view.
type InvoiceListResult struct {
	Items   []model.Invoice `json:"data"`
	Total   int             `json:"total"`
	Filters invoice.Params  `json:"filters"`
	// Available is false when the upstream could not be reached; Items is then empty.
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
}

// ExportResult is a rendered report plus its archive record, if archiving succeeded.
type ExportResult struct {
	Document *report.Document
	Report   *model.Report
}

// InvoiceService defines the invoice list use cases.
type InvoiceService interface {
	// List fetches a fresh snapshot and returns its filtered, sorted view.
	// An upstream failure is logged and yields an empty, unavailable view rather than an error.
	List(ctx context.Context, p invoice.Params) (*InvoiceListResult, error)

	// Export renders the same view as List into a PDF report and archives it.
	// Archive failures are logged; the report is still returned.
	Export(ctx context.Context, p invoice.Params) (*ExportResult, error)
}

type invoiceService struct {
	source   upstream.Backend
	exporter *report.Exporter
	archive  ReportService
	match    invoice.DateMatcher
	metrics  *Metrics
	log      *slog.Logger
}

// InvoiceServiceOption configures the invoice service.
type InvoiceServiceOption func(*invoiceService)

// WithArchive stores every export through the given report service.
func WithArchive(rs ReportService) InvoiceServiceOption {
	return func(s *invoiceService) { s.archive = rs }
}

// WithDateMatcher overrides the default prefix date matching.
func WithDateMatcher(m invoice.DateMatcher) InvoiceServiceOption {
	return func(s *invoiceService) { s.match = m }
}

// WithMetrics records domain counters.
func WithMetrics(m *Metrics) InvoiceServiceOption {
	return func(s *invoiceService) { s.metrics = m }
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) InvoiceServiceOption {
	return func(s *invoiceService) { s.log = l }
}

// NewInvoiceService constructs a new InvoiceService.
func NewInvoiceService(source upstream.Backend, exporter *report.Exporter, opts ...InvoiceServiceOption) InvoiceService {
	s := &invoiceService{
		source:   source,
		exporter: exporter,
		match:    invoice.PrefixMatch,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *invoiceService) snapshot(ctx context.Context) ([]model.Invoice, error) {
	invs, err := s.source.Invoices(ctx)
	if err != nil {
		s.metrics.upstreamFailed("invoices")
		return nil, err
	}
	return invs, nil
}

func (s *invoiceService) List(ctx context.Context, p invoice.Params) (*InvoiceListResult, error) {
	res := &InvoiceListResult{Filters: p, Available: true}

	invs, err := s.snapshot(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "invoice.fetch_failed", "error", err)
		res.Available = false
		invs = nil
	}

	res.Items = invoice.View(invs, p, s.match)
	res.Total = len(res.Items)
	if res.Total == 0 {
		res.Message = invoice.EmptyMessage
	}
	return res, nil
}

func (s *invoiceService) Export(ctx context.Context, p invoice.Params) (*ExportResult, error) {
	invs, err := s.snapshot(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "invoice.export_fetch_failed", "error", err)
		return nil, fmt.Errorf("fetch invoices: %w", err)
	}

	doc, err := s.exporter.Render(invoice.View(invs, p, s.match), p.Date)
	if err != nil {
		s.log.ErrorContext(ctx, "invoice.export_render_failed", "error", err)
		return nil, err
	}

	if doc.Substituted > 0 {
		s.log.WarnContext(ctx, "invoice.export_characters_substituted",
			"file", doc.FileName,
			"count", doc.Substituted,
			"hint", "set REPORT_FONT_FILE to a TrueType font that covers them",
		)
	}

	out := &ExportResult{Document: doc}
	if s.archive != nil {
		rep, err := s.archive.Archive(ctx, doc)
		if err != nil {
			s.log.ErrorContext(ctx, "invoice.export_archive_failed", "file", doc.FileName, "error", err)
		} else {
			out.Report = rep
		}
	}
	s.metrics.reportGenerated(out.Report != nil)

	s.log.InfoContext(ctx, "invoice.exported",
		"file", doc.FileName,
		"rows", doc.Rows,
		"pages", doc.Pages,
		"bytes", len(doc.Data),
		"archived", out.Report != nil,
	)
	return out, nil
}
