package ports

import (
	"context"

	"github.com/jhoicas/invoice-tracker/internal/domain/repository"
)

// TxRunner frontera exclusiva/transaccional para las secuencias leer-modificar-escribir
// del ledger (registrar, registrar salida, borrar). Cada almacén aporta la suya.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.InvoiceRepository) error) error
}

// OutcomeObserver recibe cada resultado producido por el servicio (métricas).
// op es la operación ("register", "exit", ...) y kind el tipo de resultado.
type OutcomeObserver interface {
	ObserveOutcome(op, kind string)
}
