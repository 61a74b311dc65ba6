package dto

// RegisterInvoiceRequest cuerpo de POST /api/invoices.
type RegisterInvoiceRequest struct {
	Number string `json:"number"`
}

// ScanRequest cuerpo de POST /api/scan. Mode: "entry" | "exit".
type ScanRequest struct {
	Mode   string `json:"mode"`
	Number string `json:"number"`
}

// SnapshotDTO estado más reciente de una factura.
type SnapshotDTO struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Status string `json:"status"`
}

// OutcomeResponse resultado de una operación del ledger, listo para mostrar al operador.
type OutcomeResponse struct {
	Kind     string       `json:"kind"`
	Number   string       `json:"number"`
	Severity string       `json:"severity"` // success | notice | error
	Message  string       `json:"message"`
	Snapshot *SnapshotDTO `json:"snapshot,omitempty"`
}

// InvoiceListItemDTO fila del listado completo.
type InvoiceListItemDTO struct {
	Number       string  `json:"number"`
	EnteredDate  string  `json:"entered_date"`
	EnteredTime  string  `json:"entered_time"`
	LatestStatus string  `json:"latest_status"`
	StatusLabel  string  `json:"status_label"`
	ExitedDate   *string `json:"exited_date,omitempty"`
}

// InvoiceListResponse respuesta de GET /api/invoices.
type InvoiceListResponse struct {
	Items []InvoiceListItemDTO `json:"items"`
	Total int                  `json:"total"`
}

// CountResponse respuesta de GET /api/invoices/count.
type CountResponse struct {
	Entered int `json:"entered"`
}
