// Package sqlite implementa el ledger de facturas sobre un archivo SQLite
// (driver puro Go modernc.org/sqlite). Es el almacén por defecto.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // registra el driver "sqlite"
)

// Querier abstrae *sql.DB y *sql.Tx para que el repositorio funcione dentro o fuera de una tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const schema = `
CREATE TABLE IF NOT EXISTS invoices (
    seq          INTEGER PRIMARY KEY AUTOINCREMENT,
    id           TEXT NOT NULL UNIQUE,
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

// Open abre la base (path ":memory:" para una base efímera) y crea el esquema.
// Se usa una única conexión: el modelo es de un solo escritor y una base ":memory:"
// es distinta por conexión.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate crea la tabla e índices si no existen.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrar sqlite: %w", err)
	}
	return nil
}

func dsn(path string) string {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return path
	}
	return "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}
