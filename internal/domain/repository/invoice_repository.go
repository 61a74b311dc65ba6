package repository

import (
	"context"

	"github.com/jhoicas/invoice-tracker/internal/domain/entity"
)

//go:generate mockgen -source=invoice_repository.go -destination=mocks/invoice_repository_mock.go -package=mocks

// InvoiceRepository puerto de persistencia del ledger de facturas.
// Es la única autoridad sobre identidad y sellos de tiempo: los (fecha, hora) se toman del
// calendario del propio almacén, nunca del llamador.
type InvoiceRepository interface {
	Exists(ctx context.Context, number string) (bool, error)
	// Create inserta la factura en estado "entered". Si el número ya existe no hace nada.
	Create(ctx context.Context, number string) error
	// GetStatus devuelve el registro completo o (nil, nil) si no existe.
	GetStatus(ctx context.Context, number string) (*entity.Invoice, error)
	// MarkExited fija la salida con una única actualización condicionada a que no exista
	// salida previa. Devuelve false si el registro no existe o ya había salido.
	MarkExited(ctx context.Context, number string) (bool, error)
	// Delete borra la factura salvo que exista y ya haya salido (en ese caso false).
	// Borrar un número inexistente devuelve true.
	Delete(ctx context.Context, number string) (bool, error)
	// CountEntered cuenta las facturas que todavía no salieron.
	CountEntered(ctx context.Context) (int, error)
	// ListAll ordena por fecha y hora de entrada descendente.
	ListAll(ctx context.Context) ([]entity.InvoiceListRow, error)
	// WeeklySummary agrupa por fecha de entrada en [hoy-7 días, hoy], fecha descendente.
	WeeklySummary(ctx context.Context) ([]entity.WeeklyRow, error)
	// MonthlySummary agrupa por fecha de entrada dentro del mes en curso, fecha ascendente.
	MonthlySummary(ctx context.Context) ([]entity.MonthlyRow, error)
}

// WeeklyWindowDays amplitud de la ventana semanal (inclusiva en ambos extremos).
const WeeklyWindowDays = 7
