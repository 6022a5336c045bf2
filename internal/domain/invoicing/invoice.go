package invoicing

import (
	"fmt"
	"strings"

	"erp_invoicing/internal/domain/entities"
)

// Prepare validates a new invoice and fills in every derived field: totals, the
// installment schedule (from plan, installments invoices only) and the initial status.
func Prepare(inv entities.Invoice, plan []PlanEntry) (entities.Invoice, error) {
	if strings.TrimSpace(inv.CustomerID) == "" {
		return entities.Invoice{}, NewValidationError("customer_id", "is required")
	}
	if !inv.PaymentSchedule.Valid() {
		return entities.Invoice{}, NewValidationError("payment_schedule", "must be full or installments")
	}
	if inv.IssueDate.IsZero() || inv.DueDate.IsZero() {
		return entities.Invoice{}, NewValidationError("due_date", "issue and due dates are required")
	}
	if inv.DueDate.Before(inv.IssueDate) {
		return entities.Invoice{}, NewValidationError("due_date", "must not be before issue date")
	}
	if err := ValidateTimeEntryClaim(inv.TimeEntryIDs); err != nil {
		return entities.Invoice{}, err
	}
	if inv.PaymentSchedule == entities.PaymentScheduleFull && len(plan) > 0 {
		return entities.Invoice{}, NewValidationError("installments", "only allowed with the installments payment schedule")
	}

	totals, err := ComputeTotals(inv.Items, inv.TaxRatePercent)
	if err != nil {
		return entities.Invoice{}, err
	}

	out := ApplyTotals(inv.Clone(), totals)
	out.Installments = nil
	if out.PaymentSchedule == entities.PaymentScheduleInstallments {
		installments, err := GenerateInstallments(totals.TotalAmount, plan)
		if err != nil {
			return entities.Invoice{}, err
		}
		out.Installments = installments
	}
	out.Status = entities.InvoiceStatusCreated
	out.SentAt = nil
	return out, nil
}

// UpdateItems replaces the line items of an unpaid invoice and recomputes the totals.
// An installment schedule keeps its percentages, descriptions and due dates; only the
// amounts are regenerated.
func UpdateItems(inv entities.Invoice, items []entities.LineItem) (entities.Invoice, error) {
	switch inv.Status {
	case entities.InvoiceStatusCancelled:
		return entities.Invoice{}, NewValidationError("items", "a cancelled invoice cannot be edited")
	case entities.InvoiceStatusPaid, entities.InvoiceStatusPartiallyPaid:
		return entities.Invoice{}, NewValidationError("items", "items cannot be edited after a payment was recorded")
	}
	for _, in := range inv.Installments {
		if in.IsPaid {
			return entities.Invoice{}, NewValidationError("items", "items cannot be edited after a payment was recorded")
		}
	}

	totals, err := ComputeTotals(items, inv.TaxRatePercent)
	if err != nil {
		return entities.Invoice{}, err
	}

	out := inv.Clone()
	out.Items = append([]entities.LineItem(nil), items...)
	out = ApplyTotals(out, totals)
	if out.PaymentSchedule == entities.PaymentScheduleInstallments {
		installments, err := GenerateInstallments(totals.TotalAmount, PlanFromInstallments(inv.Installments))
		if err != nil {
			return entities.Invoice{}, err
		}
		out.Installments = installments
	}
	return out, nil
}

// FormatInvoiceNumber renders the sequential number handed out by a per-year counter.
func FormatInvoiceNumber(year int, seq int64) string {
	return fmt.Sprintf("INV-%d-%04d", year, seq)
}
