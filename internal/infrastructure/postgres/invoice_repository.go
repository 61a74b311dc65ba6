package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-tracker/internal/application/ports"
	"github.com/jhoicas/invoice-tracker/internal/domain/entity"
	"github.com/jhoicas/invoice-tracker/internal/domain/repository"
	"github.com/jhoicas/invoice-tracker/pkg/calendar"
)

var (
	_ repository.InvoiceRepository = (*InvoiceRepo)(nil)
	_ ports.ExitRateReader         = (*InvoiceRepo)(nil)
)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q   Querier
	cal calendar.Calendar
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier, cal calendar.Calendar) *InvoiceRepo {
	return &InvoiceRepo{q: q, cal: cal}
}

func (r *InvoiceRepo) Exists(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM invoices WHERE number = $1)`, number).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists invoice: %w", err)
	}
	return exists, nil
}

// Create persiste la factura con el sello actual; repetir el número no hace nada.
func (r *InvoiceRepo) Create(ctx context.Context, number string) error {
	now := r.cal.Now()
	query := `
		INSERT INTO invoices (id, number, entered_date, entered_time, entry_status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (number) DO NOTHING`
	_, err := r.q.Exec(ctx, query, uuid.New(), number, now.Date, now.Time, entity.StatusEntered)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetStatus devuelve la factura o (nil, nil) si no existe.
func (r *InvoiceRepo) GetStatus(ctx context.Context, number string) (*entity.Invoice, error) {
	query := `
		SELECT id::text, number, entered_date, entered_time, entry_status,
		       exited_date, exited_time, exit_status
		FROM invoices WHERE number = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(ctx, query, number).Scan(
		&inv.ID, &inv.Number, &inv.EnteredDate, &inv.EnteredTime, &inv.EntryStatus,
		&inv.ExitedDate, &inv.ExitedTime, &inv.ExitStatus,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

func (r *InvoiceRepo) MarkExited(ctx context.Context, number string) (bool, error) {
	now := r.cal.Now()
	query := `
		UPDATE invoices
		SET exited_date = $2, exited_time = $3, exit_status = $4
		WHERE number = $1 AND exit_status IS NULL`
	tag, err := r.q.Exec(ctx, query, number, now.Date, now.Time, entity.StatusExited)
	if err != nil {
		return false, fmt.Errorf("update invoice exit: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Delete borra sólo si no salió. false = existe con salida registrada.
func (r *InvoiceRepo) Delete(ctx context.Context, number string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE number = $1 AND exit_status IS NULL`, number)
	if err != nil {
		return false, fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}
	var exited bool
	err = r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM invoices WHERE number = $1 AND exit_status IS NOT NULL)`, number,
	).Scan(&exited)
	if err != nil {
		return false, fmt.Errorf("delete invoice: %w", err)
	}
	return !exited, nil
}

func (r *InvoiceRepo) CountEntered(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM invoices WHERE exit_status IS NULL`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count entered invoices: %w", err)
	}
	return n, nil
}

func (r *InvoiceRepo) ListAll(ctx context.Context) ([]entity.InvoiceListRow, error) {
	query := `
		SELECT number, entered_date, entered_time,
		       COALESCE(exit_status, entry_status),
		       exited_date
		FROM invoices
		ORDER BY entered_date DESC, entered_time DESC, seq DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	list := make([]entity.InvoiceListRow, 0)
	for rows.Next() {
		var row entity.InvoiceListRow
		if err := rows.Scan(&row.Number, &row.EnteredDate, &row.EnteredTime, &row.LatestStatus, &row.ExitedDate); err != nil {
			return nil, fmt.Errorf("scan invoice row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

func (r *InvoiceRepo) WeeklySummary(ctx context.Context) ([]entity.WeeklyRow, error) {
	today := r.cal.Today()
	from, err := r.cal.DaysBefore(today, repository.WeeklyWindowDays)
	if err != nil {
		return nil, fmt.Errorf("weekly window: %w", err)
	}
	query := `
		SELECT entered_date,
		       COUNT(*),
		       COUNT(*) FILTER (WHERE exit_status IS NOT NULL)
		FROM invoices
		WHERE entered_date BETWEEN $1 AND $2
		GROUP BY entered_date
		ORDER BY entered_date DESC`
	rows, err := r.q.Query(ctx, query, from, today)
	if err != nil {
		return nil, fmt.Errorf("weekly summary: %w", err)
	}
	defer rows.Close()

	list := make([]entity.WeeklyRow, 0)
	for rows.Next() {
		var row entity.WeeklyRow
		if err := rows.Scan(&row.Date, &row.EnterCount, &row.ExitCount); err != nil {
			return nil, fmt.Errorf("weekly summary scan: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// WeeklyExitRate tasa de salida de la ventana semanal calculada como NUMERIC;
// el codec de shopspring registrado en el pool la escanea a decimal.Decimal.
func (r *InvoiceRepo) WeeklyExitRate(ctx context.Context) (decimal.Decimal, error) {
	today := r.cal.Today()
	from, err := r.cal.DaysBefore(today, repository.WeeklyWindowDays)
	if err != nil {
		return decimal.Zero, fmt.Errorf("weekly window: %w", err)
	}
	query := `
		SELECT COALESCE(
		         ROUND(100.0 * COUNT(*) FILTER (WHERE exit_status IS NOT NULL)
		               / NULLIF(COUNT(*), 0), 2),
		         0)::numeric
		FROM invoices
		WHERE entered_date BETWEEN $1 AND $2`
	var rate decimal.Decimal
	if err := r.q.QueryRow(ctx, query, from, today).Scan(&rate); err != nil {
		return decimal.Zero, fmt.Errorf("weekly exit rate: %w", err)
	}
	return rate, nil
}

func (r *InvoiceRepo) MonthlySummary(ctx context.Context) ([]entity.MonthlyRow, error) {
	query := `
		SELECT entered_date, COUNT(*)
		FROM invoices
		WHERE entered_date LIKE $1
		GROUP BY entered_date
		ORDER BY entered_date ASC`
	rows, err := r.q.Query(ctx, query, r.cal.MonthPrefix()+"%")
	if err != nil {
		return nil, fmt.Errorf("monthly summary: %w", err)
	}
	defer rows.Close()

	list := make([]entity.MonthlyRow, 0)
	for rows.Next() {
		var row entity.MonthlyRow
		if err := rows.Scan(&row.Date, &row.Count); err != nil {
			return nil, fmt.Errorf("monthly summary scan: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
