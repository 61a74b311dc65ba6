package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-tracker/internal/application/dto"
	"github.com/jhoicas/invoice-tracker/pkg/calendar"
)

// ReportPDFGenerator puerto de salida para renderizar reportes en PDF.
type ReportPDFGenerator interface {
	GenerateWeeklyReport(view dto.WeekViewDTO, generatedAt calendar.Stamp) ([]byte, error)
	GenerateMonthlyReport(view dto.MonthViewDTO, generatedAt calendar.Stamp) ([]byte, error)
}

// ReportCalendar lo que la analítica necesita del calendario local.
type ReportCalendar interface {
	calendar.Calendar
	MonthLabel() string
	DaysInCurrentMonth() int
}

// ExitRateReader lo implementan los almacenes que calculan en la base la tasa de
// salida de la ventana semanal (porcentaje, 2 decimales, 0 sin entradas).
type ExitRateReader interface {
	WeeklyExitRate(ctx context.Context) (decimal.Decimal, error)
}
