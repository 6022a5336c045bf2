package postgres

import (
	"context"

	"erp_invoicing/internal/domain/entities"
	"erp_invoicing/internal/domain/invoicing"
	"erp_invoicing/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const timeEntryColumns = `id, order_id, customer_id, description, date, duration_minutes, billed, COALESCE(invoice_id, '')`

// TimeEntryRepository is the PostgreSQL time-entry ledger. MarkBilled locks the rows
// it claims so two invoices can never bill the same entry.
type TimeEntryRepository struct {
	pool *pgxpool.Pool
}

var _ interfaces.ITimeEntryLedger = (*TimeEntryRepository)(nil)

func NewTimeEntryRepository(pool *pgxpool.Pool) *TimeEntryRepository {
	return &TimeEntryRepository{pool: pool}
}

func (r *TimeEntryRepository) ListUnbilled(ctx context.Context, orderID string) ([]entities.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE NOT billed`
	var args []any
	if orderID != "" {
		query += ` AND order_id = $1`
		args = append(args, orderID)
	}
	query += ` ORDER BY date, id`
	return r.query(ctx, query, args...)
}

func (r *TimeEntryRepository) GetByIDs(ctx context.Context, ids []string) ([]entities.TimeEntry, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.query(ctx, `SELECT `+timeEntryColumns+` FROM time_entries WHERE id = ANY($1)`, ids)
}

func (r *TimeEntryRepository) query(ctx context.Context, query string, args ...any) ([]entities.TimeEntry, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanTimeEntry)
}

func (r *TimeEntryRepository) MarkBilled(ctx context.Context, ids []string, invoiceID string) error {
	if len(ids) == 0 {
		return nil
	}
	return WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT `+timeEntryColumns+` FROM time_entries WHERE id = ANY($1) FOR UPDATE`, ids)
		if err != nil {
			return err
		}
		locked, err := pgx.CollectRows(rows, scanTimeEntry)
		if err != nil {
			return err
		}

		byID := make(map[string]entities.TimeEntry, len(locked))
		for _, e := range locked {
			byID[e.ID] = e
		}
		for _, id := range ids {
			e, ok := byID[id]
			if !ok || (e.Billed && e.InvoiceID != invoiceID) {
				return invoicing.NewConflictError("time entry", id, "missing or already billed on another invoice")
			}
		}

		_, err = tx.Exec(ctx, `UPDATE time_entries SET billed = TRUE, invoice_id = $2 WHERE id = ANY($1)`, ids, invoiceID)
		return err
	})
}

func (r *TimeEntryRepository) MarkUnbilled(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, `UPDATE time_entries SET billed = FALSE, invoice_id = NULL WHERE id = ANY($1)`, ids)
	return err
}

func (r *TimeEntryRepository) Save(ctx context.Context, e entities.TimeEntry) (entities.TimeEntry, error) {
	var invoiceID *string
	if e.InvoiceID != "" {
		invoiceID = &e.InvoiceID
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO time_entries (id, order_id, customer_id, description, date, duration_minutes, billed, invoice_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			order_id = EXCLUDED.order_id, customer_id = EXCLUDED.customer_id,
			description = EXCLUDED.description, date = EXCLUDED.date,
			duration_minutes = EXCLUDED.duration_minutes, billed = EXCLUDED.billed,
			invoice_id = EXCLUDED.invoice_id`,
		e.ID, e.OrderID, e.CustomerID, e.Description, e.Date, e.DurationMinutes, e.Billed, invoiceID,
	)
	if err != nil {
		return entities.TimeEntry{}, err
	}
	return e, nil
}

func scanTimeEntry(row pgx.CollectableRow) (entities.TimeEntry, error) {
	var e entities.TimeEntry
	err := row.Scan(&e.ID, &e.OrderID, &e.CustomerID, &e.Description, &e.Date, &e.DurationMinutes, &e.Billed, &e.InvoiceID)
	e.Date = e.Date.UTC()
	return e, err
}
