package entity

// Estados del ciclo de vida de una factura física.
const (
	StatusEntered = "entered" // fijado al crear, nunca cambia
	StatusExited  = "exited"  // terminal; una vez fijado no se borra ni se reasigna
)

// Invoice registro de una factura física que entra y (opcionalmente) sale.
// Fechas "YYYY/MM/DD" y horas "HH:MM:SS" en el calendario local.
type Invoice struct {
	ID          string
	Number      string
	EnteredDate string
	EnteredTime string
	EntryStatus string
	ExitedDate  *string
	ExitedTime  *string
	ExitStatus  *string
}

// HasExited indica si la transición de salida ya ocurrió.
func (i *Invoice) HasExited() bool {
	return i.ExitStatus != nil
}

// LatestStatus estado más reciente: el de salida si existe, si no el de entrada.
func (i *Invoice) LatestStatus() string {
	if i.ExitStatus != nil {
		return *i.ExitStatus
	}
	return i.EntryStatus
}
