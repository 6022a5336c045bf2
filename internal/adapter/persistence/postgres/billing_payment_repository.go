package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"erp_invoicing/internal/domain/entities"
	"erp_invoicing/internal/domain/invoicing"
	"erp_invoicing/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentColumns = `id, invoice_id, installment_index, amount::text, date, status, provider_payload_raw`

// BillingPaymentRepository stores installment payments. Payment rows outlive their
// invoice so the provider trail survives a delete.
type BillingPaymentRepository struct {
	pool *pgxpool.Pool
}

var _ interfaces.IBillingPaymentRepository = (*BillingPaymentRepository)(nil)

func NewBillingPaymentRepository(pool *pgxpool.Pool) *BillingPaymentRepository {
	return &BillingPaymentRepository{pool: pool}
}

func (r *BillingPaymentRepository) Create(ctx context.Context, p entities.BillingPayment) (entities.BillingPayment, error) {
	var raw *string
	if len(p.ProviderPayloadRaw) > 0 && json.Valid(p.ProviderPayloadRaw) {
		s := string(p.ProviderPayloadRaw)
		raw = &s
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO payments (id, invoice_id, installment_index, amount, date, status, provider_payload_raw)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.InvoiceID, p.InstallmentIndex, p.Amount.StringFixed(2), p.Date, string(p.Status), raw,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.BillingPayment{}, invoicing.NewConflictError("payment", p.ID, "already recorded")
		}
		return entities.BillingPayment{}, err
	}
	return p, nil
}

func (r *BillingPaymentRepository) GetByID(ctx context.Context, id string) (entities.BillingPayment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
	if err != nil {
		return entities.BillingPayment{}, err
	}
	p, err := pgx.CollectOneRow(rows, scanPayment)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.BillingPayment{}, nil
	}
	return p, err
}

func (r *BillingPaymentRepository) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.BillingPayment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE invoice_id = $1 ORDER BY date, id`, invoiceID)
	if err != nil {
		return nil, err
	}
	payments, err := pgx.CollectRows(rows, scanPayment)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []entities.BillingPayment{}
	}
	return payments, nil
}

func scanPayment(row pgx.CollectableRow) (entities.BillingPayment, error) {
	var (
		p      entities.BillingPayment
		amount string
		status string
		raw    []byte
	)
	if err := row.Scan(&p.ID, &p.InvoiceID, &p.InstallmentIndex, &amount, &p.Date, &status, &raw); err != nil {
		return entities.BillingPayment{}, err
	}
	p.Amount = parseNumeric(amount)
	p.Date = p.Date.UTC()
	p.Status = entities.PaymentStatus(status)
	if len(raw) > 0 {
		p.ProviderPayloadRaw = raw
		_ = json.Unmarshal(raw, &p.ProviderPayload)
	}
	return p, nil
}
