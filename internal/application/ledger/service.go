// Package ledger aplica la política del ciclo de vida de las facturas (entrada, salida,
// borrado) sobre el repositorio y devuelve resultados etiquetados en lugar de errores.
package ledger

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/invoice-tracker/internal/application/ports"
	"github.com/jhoicas/invoice-tracker/internal/domain"
	"github.com/jhoicas/invoice-tracker/internal/domain/entity"
	"github.com/jhoicas/invoice-tracker/internal/domain/invoice"
	"github.com/jhoicas/invoice-tracker/internal/domain/repository"
)

// Operaciones reportadas al observador y al log.
const (
	OpRegister = "register"
	OpExit     = "exit"
	OpDelete   = "delete"
	OpLookup   = "lookup"
)

// Modos de escaneo.
const (
	ModeEntry = "entry"
	ModeExit  = "exit"
)

// ValidMode indica si mode es un modo de escaneo conocido.
func ValidMode(mode string) bool {
	return mode == ModeEntry || mode == ModeExit
}

// Service caso de uso del ledger. Se construye una vez y se comparte.
type Service struct {
	repo     repository.InvoiceRepository
	tx       ports.TxRunner
	log      zerolog.Logger
	observer ports.OutcomeObserver
}

// NewService construye el servicio. tx y observer pueden ser nil: sin tx las secuencias
// se ejecutan directamente sobre repo.
func NewService(
	repo repository.InvoiceRepository,
	tx ports.TxRunner,
	log zerolog.Logger,
	observer ports.OutcomeObserver,
) *Service {
	return &Service{repo: repo, tx: tx, log: log, observer: observer}
}

// Normalize forma canónica del número ingresado.
func (s *Service) Normalize(input string) string { return invoice.Normalize(input) }

// Validate indica si number (ya normalizado) es aceptable.
func (s *Service) Validate(number string) bool { return invoice.Validate(number) }

// Register da entrada a una factura. Repetir el número devuelve AlreadyKnown con su estado.
func (s *Service) Register(ctx context.Context, input string) (Outcome, error) {
	number := s.Normalize(input)
	if !s.Validate(number) {
		return s.done(OpRegister, Outcome{Kind: KindInvalidNumber, Number: number}), nil
	}

	var out Outcome
	err := s.run(ctx, func(repo repository.InvoiceRepository) error {
		inv, err := repo.GetStatus(ctx, number)
		if err != nil {
			return err
		}
		if inv != nil {
			out = Outcome{Kind: KindAlreadyKnown, Number: number, Snapshot: SnapshotOf(inv)}
			return nil
		}
		if err := repo.Create(ctx, number); err != nil {
			return err
		}
		created, err := repo.GetStatus(ctx, number)
		if err != nil {
			return err
		}
		out = Outcome{Kind: KindRegistered, Number: number, Snapshot: SnapshotOf(created)}
		return nil
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("register %s: %w", number, err)
	}
	return s.done(OpRegister, out), nil
}

// RecordExit registra la salida de una factura que está dentro.
func (s *Service) RecordExit(ctx context.Context, input string) (Outcome, error) {
	number := s.Normalize(input)
	if !s.Validate(number) {
		return s.done(OpExit, Outcome{Kind: KindInvalidNumber, Number: number}), nil
	}

	var out Outcome
	err := s.run(ctx, func(repo repository.InvoiceRepository) error {
		inv, err := repo.GetStatus(ctx, number)
		if err != nil {
			return err
		}
		switch {
		case inv == nil:
			out = Outcome{Kind: KindNotFound, Number: number}
			return nil
		case inv.HasExited():
			out = Outcome{Kind: KindAlreadyKnown, Number: number, Snapshot: SnapshotOf(inv)}
			return nil
		case inv.EntryStatus != entity.StatusEntered:
			out = Outcome{Kind: KindUnknownStatus, Number: number, Snapshot: SnapshotOf(inv)}
			return nil
		}

		fired, err := repo.MarkExited(ctx, number)
		if err != nil {
			return err
		}
		// Tanto si disparó como si otro escritor se adelantó, se informa lo que quedó guardado.
		after, err := repo.GetStatus(ctx, number)
		if err != nil {
			return err
		}
		switch {
		case fired:
			out = Outcome{Kind: KindExited, Number: number, Snapshot: SnapshotOf(after)}
		case after == nil:
			out = Outcome{Kind: KindNotFound, Number: number}
		default:
			out = Outcome{Kind: KindAlreadyKnown, Number: number, Snapshot: SnapshotOf(after)}
		}
		return nil
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("record exit %s: %w", number, err)
	}
	return s.done(OpExit, out), nil
}

// Delete borra una factura que todavía no salió.
func (s *Service) Delete(ctx context.Context, input string) (Outcome, error) {
	number := s.Normalize(input)
	if !s.Validate(number) {
		return s.done(OpDelete, Outcome{Kind: KindInvalidNumber, Number: number}), nil
	}

	var out Outcome
	err := s.run(ctx, func(repo repository.InvoiceRepository) error {
		inv, err := repo.GetStatus(ctx, number)
		if err != nil {
			return err
		}
		if inv == nil {
			out = Outcome{Kind: KindNotFound, Number: number}
			return nil
		}
		if inv.HasExited() {
			out = Outcome{Kind: KindCannotDelete, Number: number, Snapshot: SnapshotOf(inv)}
			return nil
		}
		ok, err := repo.Delete(ctx, number)
		if err != nil {
			return err
		}
		if !ok {
			out = Outcome{Kind: KindCannotDelete, Number: number}
			return nil
		}
		out = Outcome{Kind: KindDeleted, Number: number}
		return nil
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("delete %s: %w", number, err)
	}
	return s.done(OpDelete, out), nil
}

// Lookup busca una factura y devuelve su estado más reciente.
func (s *Service) Lookup(ctx context.Context, input string) (Outcome, error) {
	number := s.Normalize(input)
	if !s.Validate(number) {
		return s.done(OpLookup, Outcome{Kind: KindInvalidNumber, Number: number}), nil
	}
	inv, err := s.repo.GetStatus(ctx, number)
	if err != nil {
		return Outcome{}, fmt.Errorf("lookup %s: %w", number, err)
	}
	if inv == nil {
		return s.done(OpLookup, Outcome{Kind: KindNotFound, Number: number}), nil
	}
	return s.done(OpLookup, Outcome{Kind: KindFound, Number: number, Snapshot: SnapshotOf(inv)}), nil
}

// Scan entrada del lector de códigos: "entry" registra, "exit" registra la salida.
func (s *Service) Scan(ctx context.Context, mode, input string) (Outcome, error) {
	if !ValidMode(mode) {
		return Outcome{}, fmt.Errorf("%w: modo de escaneo %q", domain.ErrInvalidInput, mode)
	}
	if mode == ModeExit {
		return s.RecordExit(ctx, input)
	}
	return s.Register(ctx, input)
}

func (s *Service) CountEntered(ctx context.Context) (int, error) {
	return s.repo.CountEntered(ctx)
}

func (s *Service) ListAll(ctx context.Context) ([]entity.InvoiceListRow, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) WeeklySummary(ctx context.Context) ([]entity.WeeklyRow, error) {
	return s.repo.WeeklySummary(ctx)
}

func (s *Service) MonthlySummary(ctx context.Context) ([]entity.MonthlyRow, error) {
	return s.repo.MonthlySummary(ctx)
}

func (s *Service) run(ctx context.Context, fn func(repo repository.InvoiceRepository) error) error {
	if s.tx == nil {
		return fn(s.repo)
	}
	return s.tx.Run(ctx, fn)
}

// done registra el resultado en el log y en el observador.
func (s *Service) done(op string, out Outcome) Outcome {
	var ev *zerolog.Event
	switch out.Kind {
	case KindRegistered, KindExited, KindDeleted:
		ev = s.log.Info()
	default:
		ev = s.log.Debug()
	}
	ev.Str("op", op).Str("number", out.Number).Str("outcome", string(out.Kind)).Msg("ledger")
	if s.observer != nil {
		s.observer.ObserveOutcome(op, string(out.Kind))
	}
	return out
}
