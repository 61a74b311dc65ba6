package calendar_test

import (
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-tracker/pkg/calendar"
)

func tehran(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tehran")
	if err != nil {
		// Sin base de datos de zonas: offset fijo de Irán.
		return time.FixedZone("IRST", 3*3600+1800)
	}
	return loc
}

// ──────────────────────────────────────────────────────────────────────────────
// Conversiones jalali conocidas (Nowruz)
// ──────────────────────────────────────────────────────────────────────────────

func TestJalali_FromTime_FechasConocidas(t *testing.T) {
	cases := []struct {
		gregorian time.Time
		want      string
	}{
		{time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC), "1403/01/01"},
		{time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC), "1403/12/30"},
		{time.Date(2025, 3, 21, 12, 0, 0, 0, time.UTC), "1404/01/01"},
		{time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC), "1404/12/29"},
		{time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC), "1405/07/27"},
		{time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC), "1403/10/11"},
	}
	for _, tc := range cases {
		got := calendar.Jalali{}.FromTime(tc.gregorian).String()
		assert.Equal(t, tc.want, got, "conversión de %s", tc.gregorian.Format("2006-01-02"))
	}
}

func TestJalali_ToTime_IdaYVuelta(t *testing.T) {
	j := calendar.Jalali{}
	d := calendar.Date{Year: 1403, Month: 12, Day: 30}
	got, err := j.ToTime(d, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-20", got.Format("2006-01-02"))
	assert.Equal(t, d, j.FromTime(got))
}

func TestJalali_ToTime_DiaInexistente(t *testing.T) {
	// 1404 no es bisiesto: Esfand tiene 29 días.
	_, err := calendar.Jalali{}.ToTime(calendar.Date{Year: 1404, Month: 12, Day: 30}, time.UTC)
	assert.ErrorIs(t, err, calendar.ErrInvalidDate)
}

func TestJalali_DaysInMonth(t *testing.T) {
	j := calendar.Jalali{}
	assert.Equal(t, 31, j.DaysInMonth(1405, 1))
	assert.Equal(t, 30, j.DaysInMonth(1405, 7))
	assert.Equal(t, 30, j.DaysInMonth(1403, 12))
	assert.Equal(t, 29, j.DaysInMonth(1404, 12))
	assert.True(t, calendar.IsJalaliLeap(1399))
	assert.False(t, calendar.IsJalaliLeap(1400))
}

// ──────────────────────────────────────────────────────────────────────────────
// Servicio
// ──────────────────────────────────────────────────────────────────────────────

func TestService_NowYToday(t *testing.T) {
	loc := tehran(t)
	clk := testclock.NewClock(time.Date(2026, 10, 19, 9, 30, 15, 0, loc))
	svc := calendar.New(clk, calendar.Jalali{}, loc)

	stamp := svc.Now()
	assert.Equal(t, "1405/07/27", stamp.Date)
	assert.Equal(t, "09:30:15", stamp.Time)
	assert.Equal(t, "1405/07/27", svc.Today())
	assert.Equal(t, "1405/07", svc.MonthPrefix())
	assert.Equal(t, "مهر 1405", svc.MonthLabel())
	assert.Equal(t, 30, svc.DaysInCurrentMonth())

	clk.Advance(24 * time.Hour)
	assert.Equal(t, "1405/07/28", svc.Today())
}

func TestService_DaysBefore_CruzaMesYAnio(t *testing.T) {
	svc := calendar.New(testclock.NewClock(time.Now()), calendar.Jalali{}, time.UTC)

	got, err := svc.DaysBefore("1405/07/03", 7)
	require.NoError(t, err)
	assert.Equal(t, "1405/06/27", got)

	got, err = svc.DaysBefore("1404/01/03", 7)
	require.NoError(t, err)
	assert.Equal(t, "1403/12/26", got, "1403 es bisiesto: Esfand llega a 30")

	_, err = svc.DaysBefore("1404-01-03", 7)
	assert.ErrorIs(t, err, calendar.ErrInvalidDate)
}

func TestService_Gregoriano(t *testing.T) {
	clk := testclock.NewClock(time.Date(2026, 3, 2, 23, 59, 59, 0, time.UTC))
	svc := calendar.New(clk, calendar.Gregorian{}, time.UTC)

	assert.Equal(t, calendar.Stamp{Date: "2026/03/02", Time: "23:59:59"}, svc.Now())
	got, err := svc.DaysBefore(svc.Today(), 7)
	require.NoError(t, err)
	assert.Equal(t, "2026/02/23", got)
	assert.Equal(t, "Marzo 2026", svc.MonthLabel())
	assert.Equal(t, 31, svc.DaysInCurrentMonth())
}

func TestParseDate(t *testing.T) {
	d, err := calendar.ParseDate("1405/07/27")
	require.NoError(t, err)
	assert.Equal(t, calendar.Date{Year: 1405, Month: 7, Day: 27}, d)

	for _, bad := range []string{"", "1405/7/27", "1405/13/01", "abcd/01/01", "1405/07/27/1"} {
		_, err := calendar.ParseDate(bad)
		assert.ErrorIs(t, err, calendar.ErrInvalidDate, bad)
	}
}

func TestSystemByName(t *testing.T) {
	s, err := calendar.SystemByName("Jalali")
	require.NoError(t, err)
	assert.Equal(t, "jalali", s.Name())

	s, err = calendar.SystemByName("gregorian")
	require.NoError(t, err)
	assert.Equal(t, "gregorian", s.Name())

	_, err = calendar.SystemByName("lunar")
	assert.Error(t, err)
}
