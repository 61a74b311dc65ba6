package memory

import (
	"context"

	"github.com/jhoicas/invoice-tracker/internal/domain/repository"
)

// TxRunner serializa las secuencias leer-modificar-escribir del servicio con un mutex
// de proceso. No hay rollback: cada mutación del almacén es atómica por sí sola.
type TxRunner struct {
	mu   chan struct{}
	repo *InvoiceRepo
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(repo *InvoiceRepo) *TxRunner {
	return &TxRunner{mu: make(chan struct{}, 1), repo: repo}
}

// Run ejecuta fn en exclusión mutua. Respeta la cancelación mientras espera turno.
func (r *TxRunner) Run(ctx context.Context, fn func(repo repository.InvoiceRepository) error) error {
	select {
	case r.mu <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-r.mu }()
	return fn(r.repo)
}
