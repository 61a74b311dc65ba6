package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/invoice-tracker/internal/domain/repository"
	"github.com/jhoicas/invoice-tracker/pkg/calendar"
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
	cal  calendar.Calendar
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, cal calendar.Calendar) *TxRunner {
	return &TxRunner{pool: pool, cal: cal}
}

// Run inicia una transacción, ejecuta fn con el repo atado a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repo repository.InvoiceRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInvoiceRepository(tx, r.cal)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
