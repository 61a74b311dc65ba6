// Package calendar provee el servicio de reloj + calendario local que usan los
// almacenes de facturas para sellar fechas y calcular ventanas de reporte.
//
// Las fechas se representan como cadenas "YYYY/MM/DD" y las horas como "HH:MM:SS":
// ambas se ordenan lexicográficamente y permiten filtrar un mes por prefijo ("YYYY/MM").
// El sistema de calendario (jalali o gregoriano) queda oculto detrás de System.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/juju/clock"
)

// TimeLayout formato de la hora local.
const TimeLayout = "15:04:05"

// ErrInvalidDate la cadena no tiene la forma YYYY/MM/DD o no existe en el calendario.
var ErrInvalidDate = errors.New("fecha inválida")

// Stamp par (fecha, hora) normalizado.
type Stamp struct {
	Date string
	Time string
}

// Date fecha en el calendario local (año, mes 1-12, día).
type Date struct {
	Year  int
	Month int
	Day   int
}

// String devuelve la fecha como "YYYY/MM/DD".
func (d Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// MonthPrefix devuelve "YYYY/MM".
func (d Date) MonthPrefix() string {
	return fmt.Sprintf("%04d/%02d", d.Year, d.Month)
}

// ParseDate interpreta una cadena "YYYY/MM/DD". No valida contra un calendario concreto.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		nums[i] = n
	}
	d := Date{Year: nums[0], Month: nums[1], Day: nums[2]}
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 31 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// System convierte entre el calendario local (para mostrar) y el universal (para aritmética).
type System interface {
	Name() string
	// FromTime convierte un instante al día local correspondiente.
	FromTime(t time.Time) Date
	// ToTime devuelve el mediodía del día local d en loc.
	ToTime(d Date, loc *time.Location) (time.Time, error)
	DaysInMonth(year, month int) int
	MonthName(month int) string
}

// Calendar es el contrato que consumen los almacenes y los reportes.
type Calendar interface {
	Now() Stamp
	Today() string
	DaysBefore(date string, n int) (string, error)
	MonthPrefix() string
}

// Service implementa Calendar sobre un juju/clock y un System.
type Service struct {
	clock  clock.Clock
	system System
	loc    *time.Location
}

var _ Calendar = (*Service)(nil)

// New construye el servicio. clk nil usa el reloj de pared; loc nil usa time.Local.
func New(clk clock.Clock, system System, loc *time.Location) *Service {
	if clk == nil {
		clk = clock.WallClock
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{clock: clk, system: system, loc: loc}
}

// Now devuelve fecha y hora locales actuales, tomadas de una única lectura del reloj.
func (s *Service) Now() Stamp {
	t := s.clock.Now().In(s.loc)
	return Stamp{
		Date: s.system.FromTime(t).String(),
		Time: t.Format(TimeLayout),
	}
}

// Today devuelve la fecha local actual.
func (s *Service) Today() string {
	return s.TodayDate().String()
}

// TodayDate devuelve la fecha local actual como Date.
func (s *Service) TodayDate() Date {
	return s.system.FromTime(s.clock.Now().In(s.loc))
}

// DaysBefore devuelve la fecha local n días antes de date. La aritmética se hace en el
// calendario universal y el resultado vuelve al calendario local.
func (s *Service) DaysBefore(date string, n int) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	t, err := s.system.ToTime(d, s.loc)
	if err != nil {
		return "", err
	}
	return s.system.FromTime(t.AddDate(0, 0, -n)).String(), nil
}

// MonthPrefix devuelve "YYYY/MM" del mes local en curso.
func (s *Service) MonthPrefix() string {
	return s.TodayDate().MonthPrefix()
}

// MonthLabel etiqueta legible del mes en curso, ej: "مهر 1405" o "Octubre 2026".
func (s *Service) MonthLabel() string {
	d := s.TodayDate()
	return fmt.Sprintf("%s %d", s.system.MonthName(d.Month), d.Year)
}

// DaysInCurrentMonth cantidad de días del mes local en curso.
func (s *Service) DaysInCurrentMonth() int {
	d := s.TodayDate()
	return s.system.DaysInMonth(d.Year, d.Month)
}

// SystemByName resuelve "jalali" o "gregorian".
func SystemByName(name string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "jalali", "persian", "shamsi":
		return Jalali{}, nil
	case "gregorian", "":
		return Gregorian{}, nil
	default:
		return nil, fmt.Errorf("sistema de calendario desconocido: %q", name)
	}
}
