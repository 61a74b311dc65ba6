package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jhoicas/invoice-tracker/internal/application/analytics"
	"github.com/jhoicas/invoice-tracker/internal/application/dto"
	"github.com/jhoicas/invoice-tracker/internal/domain/repository/mocks"
	"github.com/jhoicas/invoice-tracker/internal/domain/repository/repositorytest"
	"github.com/jhoicas/invoice-tracker/internal/infrastructure/memory"
	"github.com/jhoicas/invoice-tracker/pkg/calendar"
)

// seed deja: 10/11 (fuera de la semana), 10/12 con salida, 10/19 x2 con una salida.
func seed(t *testing.T) (*memory.InvoiceRepo, *calendar.Service) {
	t.Helper()
	ctx := context.Background()
	clk, cal := repositorytest.NewCalendar(repositorytest.Today.AddDate(0, 0, -8))
	repo := memory.NewInvoiceRepository(cal)

	require.NoError(t, repo.Create(ctx, "800"))
	clk.Advance(24 * time.Hour)
	require.NoError(t, repo.Create(ctx, "700"))
	_, err := repo.MarkExited(ctx, "700")
	require.NoError(t, err)
	clk.Advance(7 * 24 * time.Hour)
	require.NoError(t, repo.Create(ctx, "1"))
	require.NoError(t, repo.Create(ctx, "2"))
	_, err = repo.MarkExited(ctx, "2")
	require.NoError(t, err)
	return repo, cal
}

func TestWeekView_OchoFilasHoyPrimeroConCeros(t *testing.T) {
	repo, cal := seed(t)
	uc := analytics.NewDashboardUseCase(repo, cal)

	week, err := uc.WeekView(context.Background())
	require.NoError(t, err)

	require.Len(t, week.Days, 8)
	assert.Equal(t, dto.WeekDayDTO{Date: "2026/10/19", Label: dto.DayLabelToday, EnterCount: 2, ExitCount: 1}, week.Days[0])
	assert.Equal(t, dto.WeekDayDTO{Date: "2026/10/18", Label: dto.DayLabelYesterday}, week.Days[1])
	assert.Equal(t, dto.WeekDayDTO{Date: "2026/10/12", EnterCount: 1, ExitCount: 1}, week.Days[7])
	for _, d := range week.Days[2:7] {
		assert.Zero(t, d.EnterCount, d.Date)
		assert.Empty(t, d.Label)
	}
	assert.Equal(t, 3, week.TotalEntered)
	assert.Equal(t, 2, week.TotalExited)
	assert.True(t, decimal.RequireFromString("66.67").Equal(week.ExitRate), week.ExitRate.String())
}

// rateRepo almacén que además calcula la tasa de salida por su cuenta.
type rateRepo struct {
	*memory.InvoiceRepo
	rate decimal.Decimal
	err  error
}

func (r rateRepo) WeeklyExitRate(context.Context) (decimal.Decimal, error) {
	return r.rate, r.err
}

func TestWeekView_UsaTasaDelAlmacen(t *testing.T) {
	repo, cal := seed(t)
	uc := analytics.NewDashboardUseCase(rateRepo{InvoiceRepo: repo, rate: decimal.RequireFromString("12.5")}, cal)

	week, err := uc.WeekView(context.Background())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.5").Equal(week.ExitRate), week.ExitRate.String())
	assert.Equal(t, 3, week.TotalEntered)
}

func TestWeekView_ErrorDeTasaSePropaga(t *testing.T) {
	repo, cal := seed(t)
	boom := errors.New("numeric overflow")
	uc := analytics.NewDashboardUseCase(rateRepo{InvoiceRepo: repo, err: boom}, cal)

	_, err := uc.WeekView(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestMonthView_GrillaDelMes(t *testing.T) {
	repo, cal := seed(t)
	uc := analytics.NewDashboardUseCase(repo, cal)

	month, err := uc.MonthView(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2026/10", month.Prefix)
	assert.Equal(t, "Octubre 2026", month.Label)
	require.Len(t, month.Days, 31)
	assert.Equal(t, dto.MonthDayDTO{Day: 11, Date: "2026/10/11", Count: 1}, month.Days[10])
	assert.Equal(t, dto.MonthDayDTO{Day: 19, Date: "2026/10/19", Count: 2}, month.Days[18])
	assert.Equal(t, 0, month.Days[0].Count)
	assert.Equal(t, 4, month.Total)
}

func TestGetSummary(t *testing.T) {
	repo, cal := seed(t)
	uc := analytics.NewDashboardUseCase(repo, cal)

	sum, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.EnteredCount, "800 y 1 siguen dentro")
	assert.Len(t, sum.Week.Days, 8)
	assert.Equal(t, 4, sum.Month.Total)
}

func TestGetSummary_ErrorDeLecturaSePropaga(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockInvoiceRepository(ctrl)
	_, cal := repositorytest.NewCalendar(repositorytest.Today)

	boom := errors.New("connection reset")
	repo.EXPECT().CountEntered(gomock.Any()).Return(0, boom)
	repo.EXPECT().WeeklySummary(gomock.Any()).Return(nil, nil).AnyTimes()
	repo.EXPECT().MonthlySummary(gomock.Any()).Return(nil, nil).AnyTimes()

	_, err := analytics.NewDashboardUseCase(repo, cal).GetSummary(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestExitRate(t *testing.T) {
	cases := []struct {
		exited, entered int
		want            string
	}{
		{0, 0, "0"},
		{0, 5, "0"},
		{1, 3, "33.33"},
		{2, 3, "66.67"},
		{4, 4, "100"},
	}
	for _, tc := range cases {
		got := analytics.ExitRate(tc.exited, tc.entered)
		assert.True(t, decimal.RequireFromString(tc.want).Equal(got), "%d/%d = %s", tc.exited, tc.entered, got)
	}
}
