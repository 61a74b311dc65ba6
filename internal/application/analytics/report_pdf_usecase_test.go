package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-tracker/internal/application/analytics"
	"github.com/jhoicas/invoice-tracker/internal/application/dto"
	"github.com/jhoicas/invoice-tracker/pkg/calendar"
)

type fakeGenerator struct {
	week  *dto.WeekViewDTO
	month *dto.MonthViewDTO
	at    calendar.Stamp
	err   error
}

func (g *fakeGenerator) GenerateWeeklyReport(view dto.WeekViewDTO, at calendar.Stamp) ([]byte, error) {
	g.week, g.at = &view, at
	return []byte("%PDF-week"), g.err
}

func (g *fakeGenerator) GenerateMonthlyReport(view dto.MonthViewDTO, at calendar.Stamp) ([]byte, error) {
	g.month, g.at = &view, at
	return []byte("%PDF-month"), g.err
}

func TestReportPDF_Semanal(t *testing.T) {
	repo, cal := seed(t)
	gen := &fakeGenerator{}
	uc := analytics.NewReportPDFUseCase(analytics.NewDashboardUseCase(repo, cal), cal, gen)

	pdf, name, err := uc.WeeklyReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-week"), pdf)
	assert.Equal(t, "weekly-2026-10-19.pdf", name)
	require.NotNil(t, gen.week)
	assert.Len(t, gen.week.Days, 8)
	assert.Equal(t, "2026/10/19", gen.at.Date)
}

func TestReportPDF_Mensual(t *testing.T) {
	repo, cal := seed(t)
	gen := &fakeGenerator{}
	uc := analytics.NewReportPDFUseCase(analytics.NewDashboardUseCase(repo, cal), cal, gen)

	_, name, err := uc.MonthlyReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "monthly-2026-10.pdf", name)
	require.NotNil(t, gen.month)
	assert.Equal(t, 4, gen.month.Total)
}

func TestReportPDF_ErrorDelGenerador(t *testing.T) {
	repo, cal := seed(t)
	boom := errors.New("font missing")
	uc := analytics.NewReportPDFUseCase(analytics.NewDashboardUseCase(repo, cal), cal, &fakeGenerator{err: boom})

	_, _, err := uc.MonthlyReport(context.Background())
	assert.ErrorIs(t, err, boom)
}
