package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"retailadmin/internal/config"
	"retailadmin/internal/database"
	"retailadmin/internal/database/migration"
	handlers "retailadmin/internal/http/handler"
	"retailadmin/internal/http/middleware"
	"retailadmin/internal/invoice"
	"retailadmin/internal/logger"
	"retailadmin/internal/otel"
	"retailadmin/internal/report"
	"retailadmin/internal/repository/postgres"
	"retailadmin/internal/service"
	"retailadmin/internal/storage"
	"retailadmin/internal/upstream"
)

// @title			Retail Admin API
// @version		1.0
// @description	Invoice listing, PDF export, report archive and product edit endpoints.
// @BasePath		/
func main() {
	cfg := config.Load()
	loc := cfg.Location()
	slogger := logger.New(os.Stdout, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, "retailadmin", loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	backend, err := upstream.New(cfg.Upstream)
	if err != nil {
		log.Fatalf("failed to configure upstream client: %v", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register http metrics: %v", err)
	}
	metrics, err := service.NewMetrics(reg)
	if err != nil {
		log.Fatalf("failed to register service metrics: %v", err)
	}

	exporter := report.NewExporter(loc)
	if cfg.Report.FontFile != "" {
		if err := exporter.UseFontFile(cfg.Report.FontFile); err != nil {
			log.Fatalf("failed to load report font: %v", err)
		}
	}

	reportSvc := service.NewReportService(objStore, postgres.NewReportPostgres(db), cfg.Report.PresignExpiry)
	invoiceOpts := []service.InvoiceServiceOption{
		service.WithDateMatcher(invoice.MatcherFor(cfg.Invoice.DateMatch, loc)),
		service.WithMetrics(metrics),
		service.WithLogger(slogger),
	}
	if cfg.Report.Archive {
		invoiceOpts = append(invoiceOpts, service.WithArchive(reportSvc))
	}
	services := handlers.Services{
		Invoices: service.NewInvoiceService(backend, exporter, invoiceOpts...),
		Reports:  reportSvc,
		Products: service.NewProductService(backend, metrics, slogger),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.LoggerWithWriter(os.Stdout, loc))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	handlers.RegisterRoutes(app, db, services)

	handlers.RegisterSwagger(app, "")

	go func() {
		<-ctx.Done()
		slogger.Info("server.shutting_down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			slogger.Error("server.shutdown_failed", "error", err)
		}
	}()

	addr := ":" + cfg.Port
	slogger.Info("server.listening",
		"addr", addr,
		"upstream", cfg.Upstream.BaseURL,
		"date_match", cfg.Invoice.DateMatch,
		"archive", cfg.Report.Archive,
	)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
