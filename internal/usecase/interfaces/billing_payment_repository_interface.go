package interfaces

import (
	"context"

	"erp_invoicing/internal/domain/entities"
)

// IBillingPaymentRepository abstracts persistence for installment payments.

type IBillingPaymentRepository interface {
	Create(ctx context.Context, p entities.BillingPayment) (entities.BillingPayment, error)
	GetByID(ctx context.Context, id string) (entities.BillingPayment, error)
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.BillingPayment, error)
}
