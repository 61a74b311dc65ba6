package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/invoice-tracker/internal/domain/repository"
	"github.com/jhoicas/invoice-tracker/pkg/calendar"
)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db  *sql.DB
	cal calendar.Calendar
}

// NewTxRunner construye el runner con la base y el calendario de los sellos.
func NewTxRunner(db *sql.DB, cal calendar.Calendar) *TxRunner {
	return &TxRunner{db: db, cal: cal}
}

// Run inicia una transacción, ejecuta fn con un repositorio atado a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repo repository.InvoiceRepository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewInvoiceRepository(tx, r.cal)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
