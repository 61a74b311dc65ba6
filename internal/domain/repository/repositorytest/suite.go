// Package repositorytest contiene la batería de pruebas compartida que toda
// implementación de repository.InvoiceRepository debe pasar (memoria, SQLite, PostgreSQL).
package repositorytest

import (
	"context"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-tracker/internal/domain/entity"
	"github.com/jhoicas/invoice-tracker/internal/domain/repository"
	"github.com/jhoicas/invoice-tracker/pkg/calendar"
)

// Factory construye un repositorio vacío que sella tiempos con cal.
type Factory func(t *testing.T, cal calendar.Calendar) repository.InvoiceRepository

// Today fecha de referencia de la batería (calendario gregoriano, UTC).
var Today = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

// NewCalendar calendario gregoriano en UTC sobre un reloj de prueba fijado en start.
func NewCalendar(start time.Time) (*testclock.Clock, *calendar.Service) {
	clk := testclock.NewClock(start)
	return clk, calendar.New(clk, calendar.Gregorian{}, time.UTC)
}

// Run ejecuta todos los casos contra el repositorio que produce newRepo.
func Run(t *testing.T, newRepo Factory) {
	t.Helper()
	cases := []struct {
		name string
		fn   func(t *testing.T, newRepo Factory)
	}{
		{"CreateEsIdempotente", testCreateIdempotent},
		{"CreateSellaConElCalendario", testCreateStamps},
		{"GetStatusInexistente", testGetStatusMissing},
		{"MarkExitedUnaSolaVez", testMarkExitedSingleFire},
		{"MarkExitedInexistente", testMarkExitedMissing},
		{"DeleteAntesDeSalir", testDeleteBeforeExit},
		{"DeleteDespuesDeSalir", testDeleteAfterExit},
		{"DeleteInexistente", testDeleteMissing},
		{"CountEntered", testCountEntered},
		{"ListAllMasRecientePrimero", testListAllOrder},
		{"ListAllMismoSegundo", testListAllSameSecond},
		{"WeeklySummaryVentana", testWeeklyWindow},
		{"MonthlySummaryMesEnCurso", testMonthlyCurrentMonth},
		{"ResumenesVacios", testEmptySummaries},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) { tc.fn(t, newRepo) })
	}
}

func testCreateIdempotent(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	clk, cal := NewCalendar(Today)
	repo := newRepo(t, cal)

	require.NoError(t, repo.Create(ctx, "100"))
	first, err := repo.GetStatus(ctx, "100")
	require.NoError(t, err)
	require.NotNil(t, first)

	clk.Advance(time.Hour)
	require.NoError(t, repo.Create(ctx, "100"))

	second, err := repo.GetStatus(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, first, second, "la segunda creación no debe tocar el registro")

	n, err := repo.CountEntered(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "debe existir un único registro por número")
}

func testCreateStamps(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	_, cal := NewCalendar(Today)
	repo := newRepo(t, cal)

	exists, err := repo.Exists(ctx, "42")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Create(ctx, "42"))

	exists, err = repo.Exists(ctx, "42")
	require.NoError(t, err)
	assert.True(t, exists)

	inv, err := repo.GetStatus(ctx, "42")
	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.NotEmpty(t, inv.ID)
	assert.Equal(t, "42", inv.Number)
	assert.Equal(t, "2026/10/19", inv.EnteredDate)
	assert.Equal(t, "10:00:00", inv.EnteredTime)
	assert.Equal(t, entity.StatusEntered, inv.EntryStatus)
	assert.Nil(t, inv.ExitedDate)
	assert.Nil(t, inv.ExitedTime)
	assert.Nil(t, inv.ExitStatus)
	assert.False(t, inv.HasExited())
	assert.Equal(t, entity.StatusEntered, inv.LatestStatus())

	exists, err = repo.Exists(ctx, "042")
	require.NoError(t, err)
	assert.False(t, exists, "la comparación es exacta sobre la cadena normalizada")
}

func testGetStatusMissing(t *testing.T, newRepo Factory) {
	_, cal := NewCalendar(Today)
	repo := newRepo(t, cal)

	inv, err := repo.GetStatus(context.Background(), "999")
	require.NoError(t, err)
	assert.Nil(t, inv)
}

func testMarkExitedSingleFire(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	clk, cal := NewCalendar(Today)
	repo := newRepo(t, cal)

	require.NoError(t, repo.Create(ctx, "7"))
	clk.Advance(90 * time.Minute)

	fired, err := repo.MarkExited(ctx, "7")
	require.NoError(t, err)
	assert.True(t, fired)

	inv, err := repo.GetStatus(ctx, "7")
	require.NoError(t, err)
	require.NotNil(t, inv)
	require.True(t, inv.HasExited())
	assert.Equal(t, entity.StatusExited, *inv.ExitStatus)
	assert.Equal(t, "2026/10/19", *inv.ExitedDate)
	assert.Equal(t, "11:30:00", *inv.ExitedTime)
	assert.Equal(t, "10:00:00", inv.EnteredTime, "la entrada es inmutable")

	clk.Advance(time.Hour)
	fired, err = repo.MarkExited(ctx, "7")
	require.NoError(t, err)
	assert.False(t, fired, "la salida solo se dispara una vez")

	again, err := repo.GetStatus(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, inv, again, "el sello de salida no se reasigna")
}

func testMarkExitedMissing(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	_, cal := NewCalendar(Today)
	repo := newRepo(t, cal)

	fired, err := repo.MarkExited(ctx, "404")
	require.NoError(t, err)
	assert.False(t, fired)

	exists, err := repo.Exists(ctx, "404")
	require.NoError(t, err)
	assert.False(t, exists, "MarkExited no crea registros")
}

func testDeleteBeforeExit(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	_, cal := NewCalendar(Today)
	repo := newRepo(t, cal)

	require.NoError(t, repo.Create(ctx, "300"))
	ok, err := repo.Delete(ctx, "300")
	require.NoError(t, err)
	assert.True(t, ok)

	inv, err := repo.GetStatus(ctx, "300")
	require.NoError(t, err)
	assert.Nil(t, inv)

	// El número queda libre para registrarse de nuevo.
	require.NoError(t, repo.Create(ctx, "300"))
	exists, err := repo.Exists(ctx, "300")
	require.NoError(t, err)
	assert.True(t, exists)
}

func testDeleteAfterExit(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	_, cal := NewCalendar(Today)
	repo := newRepo(t, cal)

	require.NoError(t, repo.Create(ctx, "301"))
	_, err := repo.MarkExited(ctx, "301")
	require.NoError(t, err)

	ok, err := repo.Delete(ctx, "301")
	require.NoError(t, err)
	assert.False(t, ok)

	exists, err := repo.Exists(ctx, "301")
	require.NoError(t, err)
	assert.True(t, exists, "una factura que salió no se borra")
}

func testDeleteMissing(t *testing.T, newRepo Factory) {
	_, cal := NewCalendar(Today)
	repo := newRepo(t, cal)

	ok, err := repo.Delete(context.Background(), "12345")
	require.NoError(t, err)
	assert.True(t, ok, "ninguna condición bloqueó el borrado")
}

func testCountEntered(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	_, cal := NewCalendar(Today)
	repo := newRepo(t, cal)

	n, err := repo.CountEntered(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	for _, num := range []string{"1", "2", "3", "4"} {
		require.NoError(t, repo.Create(ctx, num))
	}
	_, err = repo.MarkExited(ctx, "2")
	require.NoError(t, err)
	_, err = repo.MarkExited(ctx, "4")
	require.NoError(t, err)
	_, err = repo.MarkExited(ctx, "4")
	require.NoError(t, err)

	n, err = repo.CountEntered(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func testListAllOrder(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	clk, cal := NewCalendar(Today.AddDate(0, 0, -1))
	repo := newRepo(t, cal)

	require.NoError(t, repo.Create(ctx, "100"))
	clk.Advance(24 * time.Hour)
	require.NoError(t, repo.Create(ctx, "101"))
	clk.Advance(time.Second)
	require.NoError(t, repo.Create(ctx, "102"))
	clk.Advance(time.Minute)
	_, err := repo.MarkExited(ctx, "101")
	require.NoError(t, err)

	n, err := repo.CountEntered(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rows, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"102", "101", "100"}, numbers(rows))
	assert.Equal(t, entity.StatusEntered, rows[0].LatestStatus)
	assert.Equal(t, entity.StatusExited, rows[1].LatestStatus)
	assert.Equal(t, entity.StatusEntered, rows[2].LatestStatus)

	assert.Equal(t, "2026/10/19", rows[0].EnteredDate)
	assert.Equal(t, "10:00:01", rows[0].EnteredTime)
	assert.Equal(t, "2026/10/18", rows[2].EnteredDate)
	require.NotNil(t, rows[1].ExitedDate)
	assert.Equal(t, "2026/10/19", *rows[1].ExitedDate)
	assert.Nil(t, rows[0].ExitedDate)
}

func testListAllSameSecond(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	_, cal := NewCalendar(Today)
	repo := newRepo(t, cal)

	for _, num := range []string{"5", "6", "7"} {
		require.NoError(t, repo.Create(ctx, num))
	}
	rows, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"7", "6", "5"}, numbers(rows), "empates: última inserción primero")
}

// seedWindow crea facturas a lo largo de varios días alrededor de Today:
//
//	2026/09/30 "930"         (mes anterior)
//	2026/10/11 "800"         (hace 8 días: fuera de la ventana)
//	2026/10/12 "700"         (hace 7 días: dentro), sale el 2026/10/19
//	2026/10/19 "1", "2"      (hoy), "2" sale hoy
func seedWindow(t *testing.T, newRepo Factory) repository.InvoiceRepository {
	t.Helper()
	ctx := context.Background()
	clk, cal := NewCalendar(time.Date(2026, 9, 30, 18, 0, 0, 0, time.UTC))
	repo := newRepo(t, cal)

	require.NoError(t, repo.Create(ctx, "930"))
	clk.Advance(Today.Add(-8 * 24 * time.Hour).Sub(clk.Now()))
	require.NoError(t, repo.Create(ctx, "800"))
	clk.Advance(24 * time.Hour)
	require.NoError(t, repo.Create(ctx, "700"))
	clk.Advance(Today.Sub(clk.Now()))
	require.NoError(t, repo.Create(ctx, "1"))
	require.NoError(t, repo.Create(ctx, "2"))
	clk.Advance(time.Hour)
	for _, num := range []string{"700", "2"} {
		fired, err := repo.MarkExited(ctx, num)
		require.NoError(t, err)
		require.True(t, fired)
	}
	return repo
}

func testWeeklyWindow(t *testing.T, newRepo Factory) {
	repo := seedWindow(t, newRepo)

	rows, err := repo.WeeklySummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.WeeklyRow{
		{Date: "2026/10/19", EnterCount: 2, ExitCount: 1},
		{Date: "2026/10/12", EnterCount: 1, ExitCount: 1}, // la salida se atribuye a la fecha de entrada
	}, rows)
}

func testMonthlyCurrentMonth(t *testing.T, newRepo Factory) {
	repo := seedWindow(t, newRepo)

	rows, err := repo.MonthlySummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.MonthlyRow{
		{Date: "2026/10/11", Count: 1},
		{Date: "2026/10/12", Count: 1},
		{Date: "2026/10/19", Count: 2},
	}, rows)
}

func testEmptySummaries(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	_, cal := NewCalendar(Today)
	repo := newRepo(t, cal)

	rows, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	weekly, err := repo.WeeklySummary(ctx)
	require.NoError(t, err)
	assert.Empty(t, weekly)

	monthly, err := repo.MonthlySummary(ctx)
	require.NoError(t, err)
	assert.Empty(t, monthly)
}

func numbers(rows []entity.InvoiceListRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Number)
	}
	return out
}
