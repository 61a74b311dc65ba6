// Package storage abre el almacén configurado (sqlite, postgres o memoria) y
// entrega el repositorio junto con su TxRunner.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/invoice-tracker/internal/application/ports"
	"github.com/jhoicas/invoice-tracker/internal/domain/repository"
	"github.com/jhoicas/invoice-tracker/internal/infrastructure/memory"
	"github.com/jhoicas/invoice-tracker/internal/infrastructure/postgres"
	"github.com/jhoicas/invoice-tracker/internal/infrastructure/sqlite"
	"github.com/jhoicas/invoice-tracker/pkg/calendar"
	"github.com/jhoicas/invoice-tracker/pkg/config"
)

// Store almacén abierto. Close libera conexiones.
type Store struct {
	Name  string
	Repo  repository.InvoiceRepository
	Tx    ports.TxRunner
	close func()
}

// Close libera los recursos del almacén.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open abre y migra el almacén según cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig, db config.DBConfig, cal calendar.Calendar) (*Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		repo := memory.NewInvoiceRepository(cal)
		return &Store{Name: cfg.Driver, Repo: repo, Tx: memory.NewTxRunner(repo)}, nil

	case config.DriverSQLite:
		conn, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{
			Name:  cfg.Driver,
			Repo:  sqlite.NewInvoiceRepository(conn, cal),
			Tx:    sqlite.NewTxRunner(conn, cal),
			close: func() { _ = conn.Close() },
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, db)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Store{
			Name:  cfg.Driver,
			Repo:  postgres.NewInvoiceRepository(pool, cal),
			Tx:    postgres.NewTxRunner(pool, cal),
			close: pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("driver de almacenamiento desconocido: %q", cfg.Driver)
	}
}
