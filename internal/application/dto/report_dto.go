package dto

// WeeklySummaryRowDTO fila cruda del resumen semanal (por fecha de entrada).
type WeeklySummaryRowDTO struct {
	Date       string `json:"date"`
	EnterCount int    `json:"enter_count"`
	ExitCount  int    `json:"exit_count"`
}

// MonthlySummaryRowDTO fila cruda del resumen mensual.
type MonthlySummaryRowDTO struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
