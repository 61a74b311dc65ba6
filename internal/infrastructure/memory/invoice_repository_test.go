package memory_test

import (
	"testing"

	"github.com/jhoicas/invoice-tracker/internal/domain/repository"
	"github.com/jhoicas/invoice-tracker/internal/domain/repository/repositorytest"
	"github.com/jhoicas/invoice-tracker/internal/infrastructure/memory"
	"github.com/jhoicas/invoice-tracker/pkg/calendar"
)

func TestInvoiceRepo_Conformidad(t *testing.T) {
	repositorytest.Run(t, func(t *testing.T, cal calendar.Calendar) repository.InvoiceRepository {
		return memory.NewInvoiceRepository(cal)
	})
}
