package usecase

import (
	"context"
	"strings"
	"time"

	"erp_invoicing/internal/domain/entities"
	"erp_invoicing/internal/domain/invoicing"
	"erp_invoicing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateInvoiceInput is everything a caller may supply when drafting an invoice.
// Zero values fall back to the stored billing defaults.
type CreateInvoiceInput struct {
	InvoiceNumber     string
	CustomerID        string
	OrderID           string
	IncludeOrderItems bool
	Items             []entities.LineItem
	TimeEntryIDs      []string
	TaxRatePercent    *decimal.Decimal
	PaymentSchedule   entities.PaymentSchedule
	Installments      []invoicing.PlanEntry
	IssueDate         time.Time
	DueDate           time.Time
	Notes             string
}

// IInvoiceUseCase exposes the invoice operations.
//
// Items may come from three composable sources: ad-hoc items, the items of an order
// (IncludeOrderItems) and unbilled time entries. Installment invoices carry their
// schedule; their paid/partially_paid status is derived from it.

type IInvoiceUseCase interface {
	Create(ctx context.Context, in CreateInvoiceInput) (entities.Invoice, error)
	Preview(ctx context.Context, in CreateInvoiceInput) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	List(ctx context.Context, filter interfaces.InvoiceFilter) ([]entities.Invoice, error)
	UpdateItems(ctx context.Context, id string, items []entities.LineItem) (entities.Invoice, error)
	SetStatus(ctx context.Context, id string, status entities.InvoiceStatus) (entities.Invoice, error)
	MarkInstallmentPaid(ctx context.Context, id string, index int, isPaid bool) (entities.Invoice, error)
	Delete(ctx context.Context, id string) error
	ListUnbilledTimeEntries(ctx context.Context, orderID string) ([]entities.TimeEntry, error)
	GetBillingDefaults(ctx context.Context) (entities.BillingDefaults, error)
	UpdateBillingDefaults(ctx context.Context, d entities.BillingDefaults) (entities.BillingDefaults, error)
}

type InvoiceUseCase struct {
	repo      interfaces.IInvoiceRepository
	customers interfaces.ICustomerDirectory
	orders    interfaces.IOrderCatalog
	ledger    interfaces.ITimeEntryLedger
	settings  interfaces.ISettingsStore
	log       *zap.Logger
	now       func() time.Time
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(
	repo interfaces.IInvoiceRepository,
	customers interfaces.ICustomerDirectory,
	orders interfaces.IOrderCatalog,
	ledger interfaces.ITimeEntryLedger,
	settings interfaces.ISettingsStore,
	log *zap.Logger,
) *InvoiceUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &InvoiceUseCase{
		repo:      repo,
		customers: customers,
		orders:    orders,
		ledger:    ledger,
		settings:  settings,
		log:       log.Named("invoice"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (u *InvoiceUseCase) Create(ctx context.Context, in CreateInvoiceInput) (entities.Invoice, error) {
	inv, err := u.draft(ctx, in)
	if err != nil {
		return entities.Invoice{}, err
	}

	number := strings.TrimSpace(in.InvoiceNumber)
	if number != "" {
		existing, err := u.repo.GetByNumber(ctx, number)
		if err != nil {
			return entities.Invoice{}, err
		}
		if existing.ID != "" {
			return entities.Invoice{}, invoicing.NewConflictError("invoice", number, "invoice number already in use")
		}
	} else {
		number, err = u.repo.NextInvoiceNumber(ctx, inv.IssueDate.Year())
		if err != nil {
			return entities.Invoice{}, err
		}
	}

	now := u.now()
	inv.ID = uuid.NewString()
	inv.InvoiceNumber = number
	inv.Version = 1
	inv.CreatedAt = now
	inv.UpdatedAt = now

	if len(inv.TimeEntryIDs) > 0 {
		if err := u.ledger.MarkBilled(ctx, inv.TimeEntryIDs, inv.ID); err != nil {
			u.log.Warn("time entries could not be billed", zap.String("invoice_id", inv.ID), zap.Error(err))
			return entities.Invoice{}, err
		}
	}

	created, err := u.repo.Create(ctx, inv)
	if err != nil {
		u.log.Error("invoice create failed", zap.String("invoice_id", inv.ID), zap.Error(err))
		if len(inv.TimeEntryIDs) > 0 {
			if uerr := u.ledger.MarkUnbilled(ctx, inv.TimeEntryIDs); uerr != nil {
				u.log.Error("releasing time entries failed", zap.String("invoice_id", inv.ID), zap.Strings("time_entry_ids", inv.TimeEntryIDs), zap.Error(uerr))
			}
		}
		return entities.Invoice{}, err
	}

	u.log.Info("invoice created",
		zap.String("invoice_id", created.ID),
		zap.String("invoice_number", created.InvoiceNumber),
		zap.String("total_amount", created.TotalAmount.StringFixed(2)),
		zap.String("payment_schedule", string(created.PaymentSchedule)),
	)
	return created, nil
}

// Preview runs the same drafting as Create without reserving a number or billing
// time entries.
func (u *InvoiceUseCase) Preview(ctx context.Context, in CreateInvoiceInput) (entities.Invoice, error) {
	inv, err := u.draft(ctx, in)
	if err != nil {
		return entities.Invoice{}, err
	}
	inv.InvoiceNumber = strings.TrimSpace(in.InvoiceNumber)
	return inv, nil
}

func (u *InvoiceUseCase) draft(ctx context.Context, in CreateInvoiceInput) (entities.Invoice, error) {
	customerID := strings.TrimSpace(in.CustomerID)
	if customerID == "" {
		return entities.Invoice{}, invoicing.NewValidationError("customer_id", "is required")
	}

	defaults, err := u.settings.GetBillingDefaults(ctx)
	if err != nil {
		return entities.Invoice{}, err
	}

	customer, err := u.customers.Get(ctx, customerID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if customer.ID == "" {
		return entities.Invoice{}, invoicing.NewNotFoundError("customer", customerID)
	}

	items := append([]entities.LineItem(nil), in.Items...)

	orderID := strings.TrimSpace(in.OrderID)
	if orderID != "" {
		order, err := u.orders.Get(ctx, orderID)
		if err != nil {
			return entities.Invoice{}, err
		}
		if order.ID == "" {
			return entities.Invoice{}, invoicing.NewNotFoundError("order", orderID)
		}
		if order.CustomerID != "" && order.CustomerID != customerID {
			return entities.Invoice{}, invoicing.NewValidationError("order_id", "order belongs to another customer")
		}
		if in.IncludeOrderItems {
			items = append(items, order.Items...)
		}
	} else if in.IncludeOrderItems {
		return entities.Invoice{}, invoicing.NewValidationError("order_id", "is required to include order items")
	}

	if len(in.TimeEntryIDs) > 0 {
		if err := invoicing.ValidateTimeEntryClaim(in.TimeEntryIDs); err != nil {
			return entities.Invoice{}, err
		}
		snapshot, err := u.ledger.GetByIDs(ctx, in.TimeEntryIDs)
		if err != nil {
			return entities.Invoice{}, err
		}
		if err := invoicing.CheckTimeEntriesBillable("", in.TimeEntryIDs, snapshot); err != nil {
			return entities.Invoice{}, err
		}
		timeItems, err := invoicing.LineItemsFromTimeEntries(inRequestOrder(in.TimeEntryIDs, snapshot), defaults.HourlyRate, defaults.BillingIntervalMinutes)
		if err != nil {
			return entities.Invoice{}, err
		}
		items = append(items, timeItems...)
	}

	taxRate := defaults.TaxRatePercent
	if in.TaxRatePercent != nil {
		taxRate = *in.TaxRatePercent
	}
	schedule := in.PaymentSchedule
	if schedule == "" {
		schedule = defaults.DefaultPaymentSchedule
	}
	issueDate := in.IssueDate
	if issueDate.IsZero() {
		n := u.now()
		issueDate = time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	}
	dueDate := in.DueDate
	if dueDate.IsZero() {
		dueDate = issueDate.AddDate(0, 0, defaults.PaymentTermsDays)
	}

	var plan []invoicing.PlanEntry
	if schedule == entities.PaymentScheduleInstallments {
		if len(in.Installments) == 0 {
			plan = invoicing.DefaultPlan(defaults.InstallmentPlan.Percentages(), issueDate, dueDate)
		} else {
			plan = invoicing.FillPlanDefaults(in.Installments, issueDate, dueDate)
		}
	} else {
		plan = in.Installments
	}

	return invoicing.Prepare(entities.Invoice{
		CustomerID:      customerID,
		OrderID:         orderID,
		Items:           items,
		TaxRatePercent:  taxRate,
		PaymentSchedule: schedule,
		IssueDate:       issueDate,
		DueDate:         dueDate,
		TimeEntryIDs:    append([]string(nil), in.TimeEntryIDs...),
		Notes:           in.Notes,
	}, plan)
}

func inRequestOrder(ids []string, snapshot []entities.TimeEntry) []entities.TimeEntry {
	byID := make(map[string]entities.TimeEntry, len(snapshot))
	for _, e := range snapshot {
		byID[e.ID] = e
	}
	out := make([]entities.TimeEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, byID[id])
	}
	return out
}

func (u *InvoiceUseCase) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Invoice{}, invoicing.NewValidationError("id", "is required")
	}

	inv, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, invoicing.NewNotFoundError("invoice", id)
	}
	return inv, nil
}

func (u *InvoiceUseCase) List(ctx context.Context, filter interfaces.InvoiceFilter) ([]entities.Invoice, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, invoicing.NewValidationError("status", "unknown invoice status")
	}
	filter.CustomerID = strings.TrimSpace(filter.CustomerID)
	return u.repo.List(ctx, filter)
}

func (u *InvoiceUseCase) UpdateItems(ctx context.Context, id string, items []entities.LineItem) (entities.Invoice, error) {
	return u.mutate(ctx, id, "items updated", func(inv entities.Invoice) (entities.Invoice, error) {
		return invoicing.UpdateItems(inv, items)
	})
}

func (u *InvoiceUseCase) SetStatus(ctx context.Context, id string, status entities.InvoiceStatus) (entities.Invoice, error) {
	return u.mutate(ctx, id, "status changed", func(inv entities.Invoice) (entities.Invoice, error) {
		return invoicing.SetStatus(inv, status, u.now())
	})
}

func (u *InvoiceUseCase) MarkInstallmentPaid(ctx context.Context, id string, index int, isPaid bool) (entities.Invoice, error) {
	return u.mutate(ctx, id, "installment toggled", func(inv entities.Invoice) (entities.Invoice, error) {
		return invoicing.MarkInstallmentPaid(inv, index, isPaid, u.now())
	})
}

// mutate loads the invoice, applies a core transition and stores the result with the
// version read at load time.
func (u *InvoiceUseCase) mutate(ctx context.Context, id, event string, apply func(entities.Invoice) (entities.Invoice, error)) (entities.Invoice, error) {
	inv, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	next, err := apply(inv)
	if err != nil {
		return entities.Invoice{}, err
	}
	next.UpdatedAt = u.now()

	updated, err := u.repo.Update(ctx, next)
	if err != nil {
		u.log.Warn("invoice update failed", zap.String("invoice_id", inv.ID), zap.String("event", event), zap.Error(err))
		return entities.Invoice{}, err
	}
	u.log.Info("invoice "+event, zap.String("invoice_id", updated.ID), zap.String("status", string(updated.Status)), zap.Int64("version", updated.Version))
	return updated, nil
}

// Delete removes the invoice and releases its time entries so they can be billed again.
func (u *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	inv, err := u.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if len(inv.TimeEntryIDs) > 0 {
		if err := u.ledger.MarkUnbilled(ctx, inv.TimeEntryIDs); err != nil {
			return err
		}
	}
	if err := u.repo.Delete(ctx, inv.ID); err != nil {
		u.log.Error("invoice delete failed", zap.String("invoice_id", inv.ID), zap.Error(err))
		if len(inv.TimeEntryIDs) > 0 {
			if berr := u.ledger.MarkBilled(ctx, inv.TimeEntryIDs, inv.ID); berr != nil {
				u.log.Error("re-billing time entries failed", zap.String("invoice_id", inv.ID), zap.Strings("time_entry_ids", inv.TimeEntryIDs), zap.Error(berr))
			}
		}
		return err
	}
	u.log.Info("invoice deleted", zap.String("invoice_id", inv.ID), zap.Int("released_time_entries", len(inv.TimeEntryIDs)))
	return nil
}

func (u *InvoiceUseCase) ListUnbilledTimeEntries(ctx context.Context, orderID string) ([]entities.TimeEntry, error) {
	return u.ledger.ListUnbilled(ctx, strings.TrimSpace(orderID))
}

func (u *InvoiceUseCase) GetBillingDefaults(ctx context.Context) (entities.BillingDefaults, error) {
	return u.settings.GetBillingDefaults(ctx)
}

func (u *InvoiceUseCase) UpdateBillingDefaults(ctx context.Context, d entities.BillingDefaults) (entities.BillingDefaults, error) {
	if err := invoicing.ValidateBillingDefaults(d); err != nil {
		return entities.BillingDefaults{}, err
	}
	saved, err := u.settings.SaveBillingDefaults(ctx, d)
	if err != nil {
		return entities.BillingDefaults{}, err
	}
	u.log.Info("billing defaults updated", zap.String("tax_rate_percent", saved.TaxRatePercent.String()), zap.Int("payment_terms_days", saved.PaymentTermsDays))
	return saved, nil
}
