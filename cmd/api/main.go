// @title        Invoice Tracker API
// @version      1.0
// @description  Registro de entradas y salidas de facturas físicas con reportes semanal y mensual.
// @BasePath     /
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/juju/clock"

	"github.com/jhoicas/invoice-tracker/docs"
	"github.com/jhoicas/invoice-tracker/internal/application/analytics"
	"github.com/jhoicas/invoice-tracker/internal/application/ledger"
	"github.com/jhoicas/invoice-tracker/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/invoice-tracker/internal/infrastructure/pdf"
	"github.com/jhoicas/invoice-tracker/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/invoice-tracker/internal/interfaces/http"
	"github.com/jhoicas/invoice-tracker/pkg/calendar"
	"github.com/jhoicas/invoice-tracker/pkg/config"
	"github.com/jhoicas/invoice-tracker/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Str("calendar", cfg.Calendar.System).
		Msg("iniciando aplicación")

	system, err := calendar.SystemByName(cfg.Calendar.System)
	if err != nil {
		log.Fatal().Err(err).Msg("calendario")
	}
	loc, err := cfg.Calendar.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}
	cal := calendar.New(clock.WallClock, system, loc)

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.Store, cfg.DB, cal)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("abrir almacenamiento")
	}
	defer store.Close()

	m := metrics.New()
	ledgerSvc := ledger.NewService(store.Repo, store.Tx, log.Component("ledger"), m)
	dashboardUC := analytics.NewDashboardUseCase(store.Repo, cal)
	reportPDFUC := analytics.NewReportPDFUseCase(dashboardUC, cal, infrapdf.NewMarotoReportGenerator(cfg.App.Name))

	msgs, err := httpRouter.NewMessages(cfg.App.Locale)
	if err != nil {
		log.Fatal().Err(err).Msg("mensajes")
	}

	app := httpRouter.NewApp(cfg.App.Name)

	// Swagger UI en local: http://localhost:<port>/docs
	specPath, err := writeSwaggerSpec()
	if err != nil {
		log.Warn().Err(err).Msg("swagger deshabilitado")
	} else {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: specPath,
			Path:     "docs",
			Title:    docs.SwaggerInfo.Title,
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:    ledgerSvc,
		Dashboard: dashboardUC,
		ReportPDF: reportPDFUC,
		Messages:  msgs,
		Metrics:   m,
		Logger:    log.Component("http"),
		StoreName: store.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// writeSwaggerSpec vuelca el documento registrado por swag a un archivo
// temporal; el middleware de swagger solo lee desde disco.
func writeSwaggerSpec() (string, error) {
	path := filepath.Join(os.TempDir(), "invoice-tracker-swagger.json")
	if err := os.WriteFile(path, []byte(docs.SwaggerInfo.ReadDoc()), 0o600); err != nil {
		return "", err
	}
	return path, nil
}
