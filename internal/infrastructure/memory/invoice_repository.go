// Package memory implementa el ledger de facturas en memoria del proceso.
// Pensado para pruebas y para ejecutar la API sin base de datos (STORE_DRIVER=memory).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/invoice-tracker/internal/domain/entity"
	"github.com/jhoicas/invoice-tracker/internal/domain/repository"
	"github.com/jhoicas/invoice-tracker/pkg/calendar"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

type record struct {
	inv entity.Invoice
	seq int64 // orden de inserción, desempata ListAll
}

// InvoiceRepo almacén en memoria protegido por un RWMutex.
type InvoiceRepo struct {
	mu       sync.RWMutex
	cal      calendar.Calendar
	byNumber map[string]*record
	seq      int64
}

// NewInvoiceRepository construye el almacén vacío.
func NewInvoiceRepository(cal calendar.Calendar) *InvoiceRepo {
	return &InvoiceRepo{
		cal:      cal,
		byNumber: make(map[string]*record),
	}
}

func (r *InvoiceRepo) Exists(ctx context.Context, number string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byNumber[number]
	return ok, nil
}

func (r *InvoiceRepo) Create(ctx context.Context, number string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byNumber[number]; ok {
		return nil
	}
	now := r.cal.Now()
	r.seq++
	r.byNumber[number] = &record{
		seq: r.seq,
		inv: entity.Invoice{
			ID:          uuid.New().String(),
			Number:      number,
			EnteredDate: now.Date,
			EnteredTime: now.Time,
			EntryStatus: entity.StatusEntered,
		},
	}
	return nil
}

func (r *InvoiceRepo) GetStatus(ctx context.Context, number string) (*entity.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byNumber[number]
	if !ok {
		return nil, nil
	}
	return cloneInvoice(rec.inv), nil
}

func (r *InvoiceRepo) MarkExited(ctx context.Context, number string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byNumber[number]
	if !ok || rec.inv.ExitStatus != nil {
		return false, nil
	}
	now := r.cal.Now()
	status := entity.StatusExited
	rec.inv.ExitedDate = &now.Date
	rec.inv.ExitedTime = &now.Time
	rec.inv.ExitStatus = &status
	return true, nil
}

func (r *InvoiceRepo) Delete(ctx context.Context, number string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.byNumber[number]; ok && rec.inv.ExitStatus != nil {
		return false, nil
	}
	delete(r.byNumber, number)
	return true, nil
}

func (r *InvoiceRepo) CountEntered(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, rec := range r.byNumber {
		if rec.inv.ExitStatus == nil {
			n++
		}
	}
	return n, nil
}

func (r *InvoiceRepo) ListAll(ctx context.Context) ([]entity.InvoiceListRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	recs := make([]*record, 0, len(r.byNumber))
	for _, rec := range r.byNumber {
		recs = append(recs, rec)
	}
	r.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.inv.EnteredDate != b.inv.EnteredDate {
			return a.inv.EnteredDate > b.inv.EnteredDate
		}
		if a.inv.EnteredTime != b.inv.EnteredTime {
			return a.inv.EnteredTime > b.inv.EnteredTime
		}
		return a.seq > b.seq
	})

	rows := make([]entity.InvoiceListRow, 0, len(recs))
	for _, rec := range recs {
		inv := cloneInvoice(rec.inv)
		rows = append(rows, entity.InvoiceListRow{
			Number:       inv.Number,
			EnteredDate:  inv.EnteredDate,
			EnteredTime:  inv.EnteredTime,
			LatestStatus: inv.LatestStatus(),
			ExitedDate:   inv.ExitedDate,
		})
	}
	return rows, nil
}

func (r *InvoiceRepo) WeeklySummary(ctx context.Context) ([]entity.WeeklyRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	today := r.cal.Today()
	from, err := r.cal.DaysBefore(today, repository.WeeklyWindowDays)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	groups := make(map[string]*entity.WeeklyRow)
	for _, rec := range r.byNumber {
		d := rec.inv.EnteredDate
		if d < from || d > today {
			continue
		}
		g, ok := groups[d]
		if !ok {
			g = &entity.WeeklyRow{Date: d}
			groups[d] = g
		}
		g.EnterCount++
		if rec.inv.ExitStatus != nil {
			g.ExitCount++
		}
	}
	r.mu.RUnlock()

	rows := make([]entity.WeeklyRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, *g)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date > rows[j].Date })
	return rows, nil
}

func (r *InvoiceRepo) MonthlySummary(ctx context.Context) ([]entity.MonthlyRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prefix := r.cal.MonthPrefix()

	r.mu.RLock()
	counts := make(map[string]int)
	for _, rec := range r.byNumber {
		if strings.HasPrefix(rec.inv.EnteredDate, prefix) {
			counts[rec.inv.EnteredDate]++
		}
	}
	r.mu.RUnlock()

	rows := make([]entity.MonthlyRow, 0, len(counts))
	for d, n := range counts {
		rows = append(rows, entity.MonthlyRow{Date: d, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows, nil
}

// cloneInvoice copia profunda para que el llamador no comparta punteros con el almacén.
func cloneInvoice(in entity.Invoice) *entity.Invoice {
	out := in
	out.ExitedDate = cloneString(in.ExitedDate)
	out.ExitedTime = cloneString(in.ExitedTime)
	out.ExitStatus = cloneString(in.ExitStatus)
	return &out
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	s := *p
	return &s
}
