package interfaces

import (
	"context"

	"erp_invoicing/internal/domain/entities"
)

// ICustomerDirectory looks up customers. Get returns a zero Customer when absent.
type ICustomerDirectory interface {
	Get(ctx context.Context, id string) (entities.Customer, error)
	Save(ctx context.Context, c entities.Customer) (entities.Customer, error)
}

// IOrderCatalog looks up orders. Get returns a zero Order when absent.
type IOrderCatalog interface {
	Get(ctx context.Context, id string) (entities.Order, error)
	Save(ctx context.Context, o entities.Order) (entities.Order, error)
}

// ITimeEntryLedger owns the billed flag of time entries.
//
//   - GetByIDs silently skips ids that do not exist.
//   - MarkBilled is all-or-nothing: when any entry is billed on another invoice nothing
//     changes and a ConflictError is returned. Re-marking entries already billed on the
//     same invoice is a no-op.
type ITimeEntryLedger interface {
	ListUnbilled(ctx context.Context, orderID string) ([]entities.TimeEntry, error)
	GetByIDs(ctx context.Context, ids []string) ([]entities.TimeEntry, error)
	MarkBilled(ctx context.Context, ids []string, invoiceID string) error
	MarkUnbilled(ctx context.Context, ids []string) error
	Save(ctx context.Context, e entities.TimeEntry) (entities.TimeEntry, error)
}

// ISettingsStore keeps the billing defaults. GetBillingDefaults falls back to
// entities.DefaultBillingDefaults when nothing was saved yet.
type ISettingsStore interface {
	GetBillingDefaults(ctx context.Context) (entities.BillingDefaults, error)
	SaveBillingDefaults(ctx context.Context, d entities.BillingDefaults) (entities.BillingDefaults, error)
}
