package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"retailadmin/internal/http/middleware"
	"retailadmin/internal/service"
)

// Services are the use cases exposed over HTTP.
type Services struct {
	Invoices service.InvoiceService
	Reports  service.ReportService
	Products service.ProductService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api", middleware.NoStore())

	api.Get("/invoices", ListInvoices(svc.Invoices))
	api.Get("/invoices/export", ExportInvoices(svc.Invoices))

	api.Get("/suppliers", ListSuppliers(svc.Products))
	api.Get("/products/categories", ListCategories(svc.Products))
	api.Post("/product/update", UpdateProduct(svc.Products))

	api.Get("/reports", ListReports(svc.Reports))
	api.Get("/reports/:id", GetReport(svc.Reports))
	api.Get("/reports/:id/download", DownloadReport(svc.Reports))
	api.Delete("/reports/:id", DeleteReport(svc.Reports))
}
