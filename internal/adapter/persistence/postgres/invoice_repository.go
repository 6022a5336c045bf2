package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"erp_invoicing/internal/domain/entities"
	"erp_invoicing/internal/domain/invoicing"
	"erp_invoicing/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Money columns are NUMERIC; they travel as text both ways so no precision is lost
// between decimal.Decimal and the database.
const invoiceColumns = `id, invoice_number, customer_id, order_id, items,
	tax_rate_percent::text, subtotal::text, tax_amount::text, total_amount::text,
	payment_schedule, installments, status, issue_date, due_date, sent_at,
	time_entry_ids, notes, version, created_at, updated_at`

// InvoiceRepository stores invoices in PostgreSQL. Line items and installments are
// JSONB documents; invoice_number is UNIQUE.
type InvoiceRepository struct {
	pool *pgxpool.Pool
}

var _ interfaces.IInvoiceRepository = (*InvoiceRepository)(nil)

func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	items, installments, err := marshalInvoiceDocs(inv)
	if err != nil {
		return entities.Invoice{}, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO invoices (id, invoice_number, customer_id, order_id, items,
			tax_rate_percent, subtotal, tax_amount, total_amount,
			payment_schedule, installments, status, issue_date, due_date, sent_at,
			time_entry_ids, notes, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING `+invoiceColumns,
		inv.ID, inv.InvoiceNumber, inv.CustomerID, inv.OrderID, items,
		inv.TaxRatePercent.String(), inv.Subtotal.String(), inv.TaxAmount.String(), inv.TotalAmount.String(),
		string(inv.PaymentSchedule), installments, string(inv.Status), inv.IssueDate, inv.DueDate, inv.SentAt,
		nonNilStrings(inv.TimeEntryIDs), inv.Notes, inv.Version, inv.CreatedAt, inv.UpdatedAt,
	)
	created, err := scanInvoice(row)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.Invoice{}, invoicing.NewConflictError("invoice", inv.InvoiceNumber, "invoice id or number already exists")
		}
		return entities.Invoice{}, err
	}
	return created, nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
}

func (r *InvoiceRepository) GetByNumber(ctx context.Context, number string) (entities.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_number = $1`, number)
}

func (r *InvoiceRepository) getOne(ctx context.Context, query string, arg string) (entities.Invoice, error) {
	inv, err := scanInvoice(r.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Invoice{}, nil
	}
	return inv, err
}

func (r *InvoiceRepository) List(ctx context.Context, filter interfaces.InvoiceFilter) ([]entities.Invoice, error) {
	var (
		where []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		where = append(where, fmt.Sprintf("customer_id = $%d", len(args)))
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY issue_date DESC, invoice_number DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := []entities.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// Update writes every mutable column when the stored version still matches and bumps
// it by one.
func (r *InvoiceRepository) Update(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	items, installments, err := marshalInvoiceDocs(inv)
	if err != nil {
		return entities.Invoice{}, err
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE invoices SET
			items = $3, tax_rate_percent = $4, subtotal = $5, tax_amount = $6, total_amount = $7,
			installments = $8, status = $9, due_date = $10, sent_at = $11,
			time_entry_ids = $12, notes = $13, updated_at = $14, version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING `+invoiceColumns,
		inv.ID, inv.Version,
		items, inv.TaxRatePercent.String(), inv.Subtotal.String(), inv.TaxAmount.String(), inv.TotalAmount.String(),
		installments, string(inv.Status), inv.DueDate, inv.SentAt,
		nonNilStrings(inv.TimeEntryIDs), inv.Notes, inv.UpdatedAt,
	)
	updated, err := scanInvoice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Invoice{}, invoicing.NewConflictError("invoice", inv.ID, "modified concurrently, reload and retry")
	}
	return updated, err
}

func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	return err
}

func (r *InvoiceRepository) NextInvoiceNumber(ctx context.Context, year int) (string, error) {
	var seq int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO invoice_counters (year, seq) VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET seq = invoice_counters.seq + 1
		RETURNING seq`, year).Scan(&seq)
	if err != nil {
		return "", err
	}
	return invoicing.FormatInvoiceNumber(year, seq), nil
}

func marshalInvoiceDocs(inv entities.Invoice) (items string, installments string, err error) {
	itemsJSON, err := json.Marshal(nonNilItems(inv.Items))
	if err != nil {
		return "", "", err
	}
	plan := inv.Installments
	if plan == nil {
		plan = []entities.Installment{}
	}
	installmentsJSON, err := json.Marshal(plan)
	if err != nil {
		return "", "", err
	}
	return string(itemsJSON), string(installmentsJSON), nil
}

func scanInvoice(row pgx.Row) (entities.Invoice, error) {
	var (
		inv                                    entities.Invoice
		items, installments                    []byte
		taxRate, subtotal, taxAmount, total    string
		schedule, status                       string
		issueDate, dueDate, createdAt, updated time.Time
	)
	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.CustomerID, &inv.OrderID, &items,
		&taxRate, &subtotal, &taxAmount, &total,
		&schedule, &installments, &status, &issueDate, &dueDate, &inv.SentAt,
		&inv.TimeEntryIDs, &inv.Notes, &inv.Version, &createdAt, &updated,
	)
	if err != nil {
		return entities.Invoice{}, err
	}

	if err := json.Unmarshal(items, &inv.Items); err != nil {
		return entities.Invoice{}, fmt.Errorf("decode invoice items: %w", err)
	}
	if err := json.Unmarshal(installments, &inv.Installments); err != nil {
		return entities.Invoice{}, fmt.Errorf("decode installments: %w", err)
	}
	if len(inv.Installments) == 0 {
		inv.Installments = nil
	}
	if len(inv.TimeEntryIDs) == 0 {
		inv.TimeEntryIDs = nil
	}

	inv.TaxRatePercent = parseNumeric(taxRate)
	inv.Subtotal = parseNumeric(subtotal)
	inv.TaxAmount = parseNumeric(taxAmount)
	inv.TotalAmount = parseNumeric(total)
	inv.PaymentSchedule = entities.PaymentSchedule(schedule)
	inv.Status = entities.InvoiceStatus(status)
	inv.IssueDate = issueDate.UTC()
	inv.DueDate = dueDate.UTC()
	inv.CreatedAt = createdAt.UTC()
	inv.UpdatedAt = updated.UTC()
	if inv.SentAt != nil {
		t := inv.SentAt.UTC()
		inv.SentAt = &t
	}
	return inv, nil
}

func parseNumeric(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilItems(items []entities.LineItem) []entities.LineItem {
	if items == nil {
		return []entities.LineItem{}
	}
	return items
}
