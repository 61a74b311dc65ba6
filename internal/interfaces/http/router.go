package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/jhoicas/invoice-tracker/internal/application/analytics"
	"github.com/jhoicas/invoice-tracker/internal/application/dto"
	"github.com/jhoicas/invoice-tracker/internal/application/ledger"
	"github.com/jhoicas/invoice-tracker/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger    *ledger.Service
	Dashboard *analytics.DashboardUseCase
	ReportPDF *analytics.ReportPDFUseCase
	Messages  *Messages
	Metrics   *metrics.Metrics
	Logger    zerolog.Logger
	StoreName string
}

// NewApp crea la aplicación Fiber con la configuración común (servidor y tests).
func NewApp(appName string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		// Los números con dígitos persas llegan codificados en la ruta.
		UnescapePath: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(dto.ErrorResponse{Code: "ERROR", Message: err.Error()})
		},
	})
	app.Use(recover.New())
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Store: deps.StoreName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api", LocaleMiddleware(deps.Messages))

	var served reportRecorder
	if deps.Metrics != nil {
		served = deps.Metrics
		deps.Metrics.TrackEntered(deps.Ledger.CountEntered)
	}

	invoiceHandler := NewInvoiceHandler(deps.Ledger, deps.Messages, deps.Logger)
	invoices := api.Group("/invoices")
	invoices.Post("/", invoiceHandler.Register)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/count", invoiceHandler.Count)
	invoices.Get("/:number", invoiceHandler.Lookup)
	invoices.Delete("/:number", invoiceHandler.Delete)
	invoices.Post("/:number/exit", invoiceHandler.RecordExit)
	api.Post("/scan", invoiceHandler.Scan)

	reportHandler := NewReportHandler(deps.Ledger, deps.Dashboard, deps.ReportPDF, deps.Logger, served)
	reports := api.Group("/reports")
	reports.Get("/weekly", reportHandler.Weekly)
	reports.Get("/monthly", reportHandler.Monthly)
	reports.Get("/weekly.pdf", reportHandler.WeeklyPDF)
	reports.Get("/monthly.pdf", reportHandler.MonthlyPDF)
	api.Get("/dashboard/summary", reportHandler.Dashboard)
}
