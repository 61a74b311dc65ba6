package calendar

import (
	"fmt"
	"time"
)

var gregorianMonths = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// Gregorian el calendario local coincide con el universal.
type Gregorian struct{}

func (Gregorian) Name() string { return "gregorian" }

func (Gregorian) FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

func (g Gregorian) ToTime(d Date, loc *time.Location) (time.Time, error) {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > g.DaysInMonth(d.Year, d.Month) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDate, d)
	}
	return time.Date(d.Year, time.Month(d.Month), d.Day, 12, 0, 0, 0, loc), nil
}

func (Gregorian) DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (Gregorian) MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return gregorianMonths[month-1]
}
