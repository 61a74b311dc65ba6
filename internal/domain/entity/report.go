package entity

// InvoiceListRow fila del listado general (más reciente primero).
type InvoiceListRow struct {
	Number       string
	EnteredDate  string
	EnteredTime  string
	LatestStatus string
	ExitedDate   *string // presente solo si la factura salió
}

// WeeklyRow conteo por fecha de entrada dentro de la ventana semanal.
// ExitCount cuenta las facturas que entraron ese día y ya salieron.
type WeeklyRow struct {
	Date       string
	EnterCount int
	ExitCount  int
}

// MonthlyRow conteo de entradas por día del mes en curso.
type MonthlyRow struct {
	Date  string
	Count int
}
