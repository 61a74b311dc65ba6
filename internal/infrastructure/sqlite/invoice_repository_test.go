package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-tracker/internal/domain/repository"
	"github.com/jhoicas/invoice-tracker/internal/domain/repository/repositorytest"
	"github.com/jhoicas/invoice-tracker/internal/infrastructure/sqlite"
	"github.com/jhoicas/invoice-tracker/pkg/calendar"
)

func TestInvoiceRepo_Conformidad(t *testing.T) {
	repositorytest.Run(t, func(t *testing.T, cal calendar.Calendar) repository.InvoiceRepository {
		db, err := sqlite.Open(context.Background(), ":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		return sqlite.NewInvoiceRepository(db, cal)
	})
}

func TestOpen_ArchivoPersisteEntreAperturas(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "invoices.db")
	_, cal := repositorytest.NewCalendar(repositorytest.Today)

	db, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, sqlite.NewInvoiceRepository(db, cal).Create(ctx, "555"))
	require.NoError(t, db.Close())

	db, err = sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	inv, err := sqlite.NewInvoiceRepository(db, cal).GetStatus(ctx, "555")
	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.Equal(t, "2026/10/19", inv.EnteredDate)
}

func TestTxRunner_RollbackAnteError(t *testing.T) {
	ctx := context.Background()
	_, cal := repositorytest.NewCalendar(repositorytest.Today)
	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("boom")
	err = sqlite.NewTxRunner(db, cal).Run(ctx, func(repo repository.InvoiceRepository) error {
		require.NoError(t, repo.Create(ctx, "77"))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	exists, err := sqlite.NewInvoiceRepository(db, cal).Exists(ctx, "77")
	require.NoError(t, err)
	assert.False(t, exists, "la creación se deshace con la transacción")
}

func TestTxRunner_Commit(t *testing.T) {
	ctx := context.Background()
	_, cal := repositorytest.NewCalendar(repositorytest.Today)
	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	err = sqlite.NewTxRunner(db, cal).Run(ctx, func(repo repository.InvoiceRepository) error {
		if err := repo.Create(ctx, "78"); err != nil {
			return err
		}
		_, err := repo.MarkExited(ctx, "78")
		return err
	})
	require.NoError(t, err)

	inv, err := sqlite.NewInvoiceRepository(db, cal).GetStatus(ctx, "78")
	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.True(t, inv.HasExited())
}
