package postgres

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS invoices (
    seq          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    id           UUID NOT NULL UNIQUE,
    number       TEXT NOT NULL UNIQUE,
    entered_date TEXT NOT NULL,
    entered_time TEXT NOT NULL,
    entry_status TEXT NOT NULL,
    exited_date  TEXT,
    exited_time  TEXT,
    exit_status  TEXT
);
CREATE INDEX IF NOT EXISTS idx_invoices_entered_date ON invoices (entered_date);
`

// Migrate crea la tabla e índices si no existen. Idempotente.
func Migrate(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrar postgres: %w", err)
	}
	return nil
}
