package invoicing

import (
	"strconv"
	"time"

	"erp_invoicing/internal/domain/entities"
)

// RollupStatus derives the status of an installment invoice from its installments.
// It only governs the paid axis: with nothing paid the invoice goes back to sent if it
// was ever sent, otherwise to created.
func RollupStatus(inv entities.Invoice) entities.InvoiceStatus {
	paid := 0
	for _, in := range inv.Installments {
		if in.IsPaid {
			paid++
		}
	}
	switch {
	case len(inv.Installments) > 0 && paid == len(inv.Installments):
		return entities.InvoiceStatusPaid
	case paid > 0:
		return entities.InvoiceStatusPartiallyPaid
	case wasSent(inv):
		return entities.InvoiceStatusSent
	default:
		return entities.InvoiceStatusCreated
	}
}

func wasSent(inv entities.Invoice) bool {
	return inv.SentAt != nil || inv.Status == entities.InvoiceStatusSent
}

// MarkInstallmentPaid toggles one installment and recomputes the invoice status.
//
// The input is never modified; the updated copy is returned only on success.
// Marking an already paid installment as paid keeps its original paid date, so
// repeating the call is a no-op.
func MarkInstallmentPaid(inv entities.Invoice, index int, isPaid bool, now time.Time) (entities.Invoice, error) {
	if inv.Status == entities.InvoiceStatusCancelled {
		return entities.Invoice{}, NewInvalidTransitionError(inv.Status, attemptedRollup(inv, index, isPaid), "invoice is cancelled")
	}
	if index < 0 || index >= len(inv.Installments) {
		return entities.Invoice{}, NewNotFoundError("installment", strconv.Itoa(index))
	}

	out := inv.Clone()
	toggleInstallment(&out.Installments[index], isPaid, now)
	out.Status = RollupStatus(out)
	return out, nil
}

func toggleInstallment(in *entities.Installment, isPaid bool, now time.Time) {
	if !isPaid {
		in.IsPaid = false
		in.PaidDate = nil
		return
	}
	if in.IsPaid && in.PaidDate != nil {
		return
	}
	paidAt := now
	in.IsPaid = true
	in.PaidDate = &paidAt
}

// attemptedRollup reports the status a toggle would have produced, for diagnostics.
func attemptedRollup(inv entities.Invoice, index int, isPaid bool) entities.InvoiceStatus {
	if index < 0 || index >= len(inv.Installments) {
		if isPaid {
			return entities.InvoiceStatusPaid
		}
		return entities.InvoiceStatusSent
	}
	probe := inv.Clone()
	toggleInstallment(&probe.Installments[index], isPaid, time.Time{})
	probe.Status = entities.InvoiceStatusCreated
	return RollupStatus(probe)
}

// SetStatus applies a direct status change.
//
//   - cancelled invoices accept nothing
//   - sent only from created, once
//   - cancelled from any other status
//   - paid / partially_paid only for full-payment invoices
//   - created is never a target
func SetStatus(inv entities.Invoice, target entities.InvoiceStatus, now time.Time) (entities.Invoice, error) {
	if !target.Valid() {
		return entities.Invoice{}, NewValidationError("status", "unknown status "+strconv.Quote(string(target)))
	}
	if inv.Status == entities.InvoiceStatusCancelled {
		return entities.Invoice{}, NewInvalidTransitionError(inv.Status, target, "invoice is cancelled")
	}

	switch target {
	case entities.InvoiceStatusCancelled:
	case entities.InvoiceStatusSent:
		if inv.Status != entities.InvoiceStatusCreated {
			return entities.Invoice{}, NewInvalidTransitionError(inv.Status, target, "invoice can only be sent once, from created")
		}
	case entities.InvoiceStatusPaid, entities.InvoiceStatusPartiallyPaid:
		if inv.PaymentSchedule == entities.PaymentScheduleInstallments {
			return entities.Invoice{}, NewInvalidTransitionError(inv.Status, target, "status of installment invoices follows installment payments")
		}
	case entities.InvoiceStatusCreated:
		if inv.Status != entities.InvoiceStatusCreated {
			return entities.Invoice{}, NewInvalidTransitionError(inv.Status, target, "invoice cannot return to created")
		}
	}

	out := inv.Clone()
	if target == entities.InvoiceStatusSent {
		sentAt := now
		out.SentAt = &sentAt
	}
	out.Status = target
	return out, nil
}

// Send is SetStatus(inv, sent, now).
func Send(inv entities.Invoice, now time.Time) (entities.Invoice, error) {
	return SetStatus(inv, entities.InvoiceStatusSent, now)
}

// Cancel is SetStatus(inv, cancelled, now).
func Cancel(inv entities.Invoice, now time.Time) (entities.Invoice, error) {
	return SetStatus(inv, entities.InvoiceStatusCancelled, now)
}
