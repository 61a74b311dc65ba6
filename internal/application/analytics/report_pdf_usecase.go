package analytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/invoice-tracker/internal/application/ports"
)

// ReportPDFUseCase genera los reportes semanal y mensual en PDF.
type ReportPDFUseCase struct {
	dashboard *DashboardUseCase
	cal       ports.ReportCalendar
	generator ports.ReportPDFGenerator
}

// NewReportPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewReportPDFUseCase(
	dashboard *DashboardUseCase,
	cal ports.ReportCalendar,
	generator ports.ReportPDFGenerator,
) *ReportPDFUseCase {
	return &ReportPDFUseCase{dashboard: dashboard, cal: cal, generator: generator}
}

// WeeklyReport devuelve (pdfBytes, filename, nil).
func (uc *ReportPDFUseCase) WeeklyReport(ctx context.Context) ([]byte, string, error) {
	view, err := uc.dashboard.WeekView(ctx)
	if err != nil {
		return nil, "", err
	}
	now := uc.cal.Now()
	pdf, err := uc.generator.GenerateWeeklyReport(*view, now)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: reporte semanal: %w", err)
	}
	return pdf, "weekly-" + fileSafe(now.Date) + ".pdf", nil
}

// MonthlyReport devuelve (pdfBytes, filename, nil).
func (uc *ReportPDFUseCase) MonthlyReport(ctx context.Context) ([]byte, string, error) {
	view, err := uc.dashboard.MonthView(ctx)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateMonthlyReport(*view, uc.cal.Now())
	if err != nil {
		return nil, "", fmt.Errorf("pdf: reporte mensual: %w", err)
	}
	return pdf, "monthly-" + fileSafe(view.Prefix) + ".pdf", nil
}

func fileSafe(date string) string {
	return strings.ReplaceAll(date, "/", "-")
}
