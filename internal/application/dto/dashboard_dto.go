package dto

import "github.com/shopspring/decimal"

// Etiquetas de las dos primeras filas de la semana.
const (
	DayLabelToday     = "today"
	DayLabelYesterday = "yesterday"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	EnteredCount int          `json:"entered_count"` // facturas dentro (sin salida)
	Week         WeekViewDTO  `json:"week"`
	Month        MonthViewDTO `json:"month"`
}

// WeekViewDTO ventana semanal completa: una fila por día, hoy primero, días sin movimiento en cero.
type WeekViewDTO struct {
	Days         []WeekDayDTO    `json:"days"`
	TotalEntered int             `json:"total_entered"`
	TotalExited  int             `json:"total_exited"`
	ExitRate     decimal.Decimal `json:"exit_rate"` // % salidas / entradas, 2 decimales
}

// WeekDayDTO un día de la ventana semanal.
type WeekDayDTO struct {
	Date       string `json:"date"`
	Label      string `json:"label,omitempty"` // today | yesterday
	EnterCount int    `json:"enter_count"`
	ExitCount  int    `json:"exit_count"`
}

// MonthViewDTO grilla del mes en curso.
type MonthViewDTO struct {
	Label  string        `json:"label"`  // ej: "مهر 1405"
	Prefix string        `json:"prefix"` // ej: "1405/07"
	Days   []MonthDayDTO `json:"days"`
	Total  int           `json:"total"`
}

// MonthDayDTO un día del mes con su conteo de entradas.
type MonthDayDTO struct {
	Day   int    `json:"day"`
	Date  string `json:"date"`
	Count int    `json:"count"`
}
