package ledger

import (
	"github.com/jhoicas/invoice-tracker/internal/domain"
	"github.com/jhoicas/invoice-tracker/internal/domain/entity"
)

// OutcomeKind tipo de resultado de una operación del ledger.
type OutcomeKind string

const (
	KindRegistered    OutcomeKind = "REGISTERED"
	KindAlreadyKnown  OutcomeKind = "ALREADY_KNOWN"
	KindExited        OutcomeKind = "EXITED"
	KindDeleted       OutcomeKind = "DELETED"
	KindFound         OutcomeKind = "FOUND"
	KindInvalidNumber OutcomeKind = "INVALID_NUMBER"
	KindNotFound      OutcomeKind = "NOT_FOUND"
	KindCannotDelete  OutcomeKind = "CANNOT_DELETE"
	KindUnknownStatus OutcomeKind = "UNKNOWN_STATUS"
)

// Severity cómo debe presentarse el resultado (verde, amarillo, rojo).
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityNotice  Severity = "notice"
	SeverityError   Severity = "error"
)

// Snapshot estado más reciente de una factura: la salida si existe, si no la entrada.
type Snapshot struct {
	Date   string
	Time   string
	Status string
}

// SnapshotOf aplica la regla del estado más reciente. nil si inv es nil.
func SnapshotOf(inv *entity.Invoice) *Snapshot {
	if inv == nil {
		return nil
	}
	if inv.HasExited() {
		s := &Snapshot{Status: *inv.ExitStatus}
		if inv.ExitedDate != nil {
			s.Date = *inv.ExitedDate
		}
		if inv.ExitedTime != nil {
			s.Time = *inv.ExitedTime
		}
		return s
	}
	return &Snapshot{Date: inv.EnteredDate, Time: inv.EnteredTime, Status: inv.EntryStatus}
}

// Outcome resultado etiquetado de Register, RecordExit, Delete, Lookup y Scan.
// Number es el número ya normalizado.
type Outcome struct {
	Kind     OutcomeKind
	Number   string
	Snapshot *Snapshot
}

// Severity clasifica el resultado para la capa de presentación.
func (o Outcome) Severity() Severity {
	switch o.Kind {
	case KindRegistered, KindExited, KindDeleted:
		return SeveritySuccess
	case KindAlreadyKnown, KindFound:
		return SeverityNotice
	default:
		return SeverityError
	}
}

// Err traduce el resultado a los errores centinela del dominio; nil en los exitosos.
func (o Outcome) Err() error {
	switch o.Kind {
	case KindInvalidNumber:
		return domain.ErrInvalidInput
	case KindNotFound:
		return domain.ErrNotFound
	case KindAlreadyKnown:
		return domain.ErrConflict
	case KindCannotDelete:
		return domain.ErrInvalidTransition
	case KindUnknownStatus:
		return domain.ErrUnknownStatus
	default:
		return nil
	}
}
