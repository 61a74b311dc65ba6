package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/invoice-tracker/internal/domain/entity"
	"github.com/jhoicas/invoice-tracker/internal/domain/repository"
	"github.com/jhoicas/invoice-tracker/pkg/calendar"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con *sql.DB o *sql.Tx).
type InvoiceRepo struct {
	q   Querier
	cal calendar.Calendar
}

// NewInvoiceRepository construye el adaptador. Pasar db o tx (Querier).
func NewInvoiceRepository(q Querier, cal calendar.Calendar) *InvoiceRepo {
	return &InvoiceRepo{q: q, cal: cal}
}

func (r *InvoiceRepo) Exists(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM invoices WHERE number = ?)`, number,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists invoice: %w", err)
	}
	return exists, nil
}

// Create inserta la factura; ON CONFLICT la vuelve idempotente sin lectura previa.
func (r *InvoiceRepo) Create(ctx context.Context, number string) error {
	now := r.cal.Now()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO invoices (id, number, entered_date, entered_time, entry_status)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (number) DO NOTHING`,
		uuid.New().String(), number, now.Date, now.Time, entity.StatusEntered,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) GetStatus(ctx context.Context, number string) (*entity.Invoice, error) {
	const query = `
		SELECT id, number, entered_date, entered_time, entry_status,
		       exited_date, exited_time, exit_status
		FROM invoices WHERE number = ?`
	var inv entity.Invoice
	var exitedDate, exitedTime, exitStatus sql.NullString
	err := r.q.QueryRowContext(ctx, query, number).Scan(
		&inv.ID, &inv.Number, &inv.EnteredDate, &inv.EnteredTime, &inv.EntryStatus,
		&exitedDate, &exitedTime, &exitStatus,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	inv.ExitedDate = nullToPtr(exitedDate)
	inv.ExitedTime = nullToPtr(exitedTime)
	inv.ExitStatus = nullToPtr(exitStatus)
	return &inv, nil
}

// MarkExited una sola sentencia condicionada; las filas afectadas indican si se disparó.
func (r *InvoiceRepo) MarkExited(ctx context.Context, number string) (bool, error) {
	now := r.cal.Now()
	res, err := r.q.ExecContext(ctx, `
		UPDATE invoices
		SET exited_date = ?, exited_time = ?, exit_status = ?
		WHERE number = ? AND exit_status IS NULL`,
		now.Date, now.Time, entity.StatusExited, number,
	)
	if err != nil {
		return false, fmt.Errorf("update invoice exit: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update invoice exit: %w", err)
	}
	return n == 1, nil
}

func (r *InvoiceRepo) Delete(ctx context.Context, number string) (bool, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM invoices WHERE number = ? AND exit_status IS NULL`, number,
	)
	if err != nil {
		return false, fmt.Errorf("delete invoice: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete invoice: %w", err)
	}
	if n > 0 {
		return true, nil
	}
	// Nada borrado: o no existía (true) o ya salió (false).
	var exited bool
	err = r.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM invoices WHERE number = ? AND exit_status IS NOT NULL)`, number,
	).Scan(&exited)
	if err != nil {
		return false, fmt.Errorf("delete invoice: %w", err)
	}
	return !exited, nil
}

func (r *InvoiceRepo) CountEntered(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM invoices WHERE exit_status IS NULL`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count entered invoices: %w", err)
	}
	return n, nil
}

func (r *InvoiceRepo) ListAll(ctx context.Context) ([]entity.InvoiceListRow, error) {
	const query = `
		SELECT number, entered_date, entered_time,
		       COALESCE(exit_status, entry_status) AS status,
		       exited_date
		FROM invoices
		ORDER BY entered_date DESC, entered_time DESC, seq DESC`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	list := make([]entity.InvoiceListRow, 0)
	for rows.Next() {
		var row entity.InvoiceListRow
		var exitedDate sql.NullString
		if err := rows.Scan(&row.Number, &row.EnteredDate, &row.EnteredTime, &row.LatestStatus, &exitedDate); err != nil {
			return nil, fmt.Errorf("scan invoice row: %w", err)
		}
		row.ExitedDate = nullToPtr(exitedDate)
		list = append(list, row)
	}
	return list, rows.Err()
}

// WeeklySummary las salidas se cuentan sobre el grupo de la fecha de entrada.
func (r *InvoiceRepo) WeeklySummary(ctx context.Context) ([]entity.WeeklyRow, error) {
	today := r.cal.Today()
	from, err := r.cal.DaysBefore(today, repository.WeeklyWindowDays)
	if err != nil {
		return nil, fmt.Errorf("weekly window: %w", err)
	}
	const query = `
		SELECT entered_date,
		       COUNT(*) AS enter_count,
		       SUM(CASE WHEN exit_status IS NOT NULL THEN 1 ELSE 0 END) AS exit_count
		FROM invoices
		WHERE entered_date BETWEEN ? AND ?
		GROUP BY entered_date
		ORDER BY entered_date DESC`
	rows, err := r.q.QueryContext(ctx, query, from, today)
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

func (r *InvoiceRepo) MonthlySummary(ctx context.Context) ([]entity.MonthlyRow, error) {
	const query = `
		SELECT entered_date, COUNT(*) AS enter_count
		FROM invoices
		WHERE entered_date LIKE ?
		GROUP BY entered_date
		ORDER BY entered_date ASC`
	rows, err := r.q.QueryContext(ctx, query, r.cal.MonthPrefix()+"%")
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

func nullToPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
