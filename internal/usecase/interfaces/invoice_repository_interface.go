package interfaces

import (
	"context"

	"erp_invoicing/internal/domain/entities"
)

// InvoiceFilter narrows List. Empty fields match everything.
type InvoiceFilter struct {
	Status     entities.InvoiceStatus
	CustomerID string
}

// IInvoiceRepository abstracts persistence for Invoice.
//
// Contract shared by the DynamoDB and PostgreSQL adapters:
//   - GetByID/GetByNumber return a zero Invoice (empty ID) when nothing matches.
//   - Create fails with a ConflictError when the id or invoice number is taken.
//   - Update only succeeds when inv.Version equals the stored version and returns the
//     invoice with the bumped version; a mismatch (or a missing row) is a ConflictError.
//   - NextInvoiceNumber hands out INV-<year>-<seq> from a per-year counter.
type IInvoiceRepository interface {
	Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	GetByNumber(ctx context.Context, number string) (entities.Invoice, error)
	List(ctx context.Context, filter InvoiceFilter) ([]entities.Invoice, error)
	Update(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
	Delete(ctx context.Context, id string) error
	NextInvoiceNumber(ctx context.Context, year int) (string, error)
}
