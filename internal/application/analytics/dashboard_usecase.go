// Package analytics arma las vistas de tablero y reportes a partir de los
// resúmenes del ledger: semana completa con ceros, grilla del mes y tasa de salida.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/invoice-tracker/internal/application/dto"
	"github.com/jhoicas/invoice-tracker/internal/application/ports"
	"github.com/jhoicas/invoice-tracker/internal/domain/repository"
)

// DashboardUseCase genera el resumen para el tablero del operador.
//
// Fuente de datos: InvoiceRepository (sólo lecturas).
type DashboardUseCase struct {
	repo repository.InvoiceRepository
	cal  ports.ReportCalendar
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.InvoiceRepository, cal ports.ReportCalendar) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, cal: cal}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Tres lecturas en paralelo:
//  1. CountEntered   → EnteredCount
//  2. WeeklySummary  → Week
//  3. MonthlySummary → Month
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	var out dto.DashboardSummaryDTO
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := uc.repo.CountEntered(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: conteo: %w", err)
		}
		out.EnteredCount = n
		return nil
	})
	g.Go(func() error {
		week, err := uc.WeekView(gctx)
		if err != nil {
			return err
		}
		out.Week = *week
		return nil
	})
	g.Go(func() error {
		month, err := uc.MonthView(gctx)
		if err != nil {
			return err
		}
		out.Month = *month
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// WeekView ventana [hoy-7, hoy] con una fila por día, hoy primero. Las salidas se
// cuentan sobre el día de entrada, igual que el resumen del repositorio. Si el
// almacén calcula la tasa de salida, se usa la suya.
func (uc *DashboardUseCase) WeekView(ctx context.Context) (*dto.WeekViewDTO, error) {
	rows, err := uc.repo.WeeklySummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: resumen semanal: %w", err)
	}
	byDate := make(map[string]dto.WeekDayDTO, len(rows))
	for _, r := range rows {
		byDate[r.Date] = dto.WeekDayDTO{Date: r.Date, EnterCount: r.EnterCount, ExitCount: r.ExitCount}
	}

	today := uc.cal.Today()
	view := &dto.WeekViewDTO{Days: make([]dto.WeekDayDTO, 0, repository.WeeklyWindowDays+1)}
	for i := 0; i <= repository.WeeklyWindowDays; i++ {
		date, err := uc.cal.DaysBefore(today, i)
		if err != nil {
			return nil, fmt.Errorf("dashboard: ventana semanal: %w", err)
		}
		day, ok := byDate[date]
		if !ok {
			day = dto.WeekDayDTO{Date: date}
		}
		switch i {
		case 0:
			day.Label = dto.DayLabelToday
		case 1:
			day.Label = dto.DayLabelYesterday
		}
		view.TotalEntered += day.EnterCount
		view.TotalExited += day.ExitCount
		view.Days = append(view.Days, day)
	}
	view.ExitRate = ExitRate(view.TotalExited, view.TotalEntered)
	if reader, ok := uc.repo.(ports.ExitRateReader); ok {
		rate, err := reader.WeeklyExitRate(ctx)
		if err != nil {
			return nil, fmt.Errorf("dashboard: tasa de salida: %w", err)
		}
		view.ExitRate = rate
	}
	return view, nil
}

// MonthView grilla del mes en curso: un casillero por día, en cero si no hubo entradas.
func (uc *DashboardUseCase) MonthView(ctx context.Context) (*dto.MonthViewDTO, error) {
	rows, err := uc.repo.MonthlySummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: resumen mensual: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Date] = r.Count
	}

	prefix := uc.cal.MonthPrefix()
	days := uc.cal.DaysInCurrentMonth()
	view := &dto.MonthViewDTO{
		Label:  uc.cal.MonthLabel(),
		Prefix: prefix,
		Days:   make([]dto.MonthDayDTO, 0, days),
	}
	for d := 1; d <= days; d++ {
		date := fmt.Sprintf("%s/%02d", prefix, d)
		view.Days = append(view.Days, dto.MonthDayDTO{Day: d, Date: date, Count: counts[date]})
		view.Total += counts[date]
	}
	return view, nil
}

// ExitRate porcentaje de salidas sobre entradas con 2 decimales; 0 sin entradas.
func ExitRate(exited, entered int) decimal.Decimal {
	if entered == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(exited)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(entered))).
		Round(2)
}
