package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/invoice-tracker/internal/application/analytics"
	"github.com/jhoicas/invoice-tracker/internal/application/dto"
	"github.com/jhoicas/invoice-tracker/internal/application/ledger"
)

// reportRecorder cuenta reportes entregados.
type reportRecorder interface {
	ReportServed(report string)
}

// ReportHandler resúmenes semanal/mensual, sus PDF y el tablero.
type ReportHandler struct {
	svc       *ledger.Service
	dashboard *analytics.DashboardUseCase
	pdf       *analytics.ReportPDFUseCase
	log       zerolog.Logger
	served    reportRecorder
}

// NewReportHandler construye el handler.
func NewReportHandler(
	svc *ledger.Service,
	dashboard *analytics.DashboardUseCase,
	pdf *analytics.ReportPDFUseCase,
	log zerolog.Logger,
	served reportRecorder,
) *ReportHandler {
	return &ReportHandler{svc: svc, dashboard: dashboard, pdf: pdf, log: log, served: served}
}

// Weekly godoc
// @Summary      Resumen semanal por fecha de entrada (ventana hoy-7 … hoy)
// @Tags         reports
// @Produce      json
// @Success      200  {array}   dto.WeeklySummaryRowDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/weekly [get]
func (h *ReportHandler) Weekly(c *fiber.Ctx) error {
	rows, err := h.svc.WeeklySummary(c.UserContext())
	if err != nil {
		return internalError(c, h.log, err)
	}
	out := make([]dto.WeeklySummaryRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.WeeklySummaryRowDTO{Date: r.Date, EnterCount: r.EnterCount, ExitCount: r.ExitCount})
	}
	h.record("weekly")
	return c.JSON(out)
}

// Monthly godoc
// @Summary      Resumen del mes en curso, fecha ascendente
// @Tags         reports
// @Produce      json
// @Success      200  {array}   dto.MonthlySummaryRowDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/monthly [get]
func (h *ReportHandler) Monthly(c *fiber.Ctx) error {
	rows, err := h.svc.MonthlySummary(c.UserContext())
	if err != nil {
		return internalError(c, h.log, err)
	}
	out := make([]dto.MonthlySummaryRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MonthlySummaryRowDTO{Date: r.Date, Count: r.Count})
	}
	h.record("monthly")
	return c.JSON(out)
}

// WeeklyPDF godoc
// @Summary      Reporte semanal en PDF
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/weekly.pdf [get]
func (h *ReportHandler) WeeklyPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.pdf.WeeklyReport(c.UserContext())
	if err != nil {
		return internalError(c, h.log, err)
	}
	h.record("weekly.pdf")
	return sendPDF(c, pdf, filename)
}

// MonthlyPDF godoc
// @Summary      Reporte mensual en PDF
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/monthly.pdf [get]
func (h *ReportHandler) MonthlyPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.pdf.MonthlyReport(c.UserContext())
	if err != nil {
		return internalError(c, h.log, err)
	}
	h.record("monthly.pdf")
	return sendPDF(c, pdf, filename)
}

// Dashboard godoc
// @Summary      Tablero: contador, semana completa con tasa de salida y grilla del mes
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	summary, err := h.dashboard.GetSummary(c.UserContext())
	if err != nil {
		return internalError(c, h.log, err)
	}
	h.record("dashboard")
	return c.JSON(summary)
}

func (h *ReportHandler) record(report string) {
	if h.served != nil {
		h.served.ReportServed(report)
	}
}

func sendPDF(c *fiber.Ctx, pdf []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
