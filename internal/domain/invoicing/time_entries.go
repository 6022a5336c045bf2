package invoicing

import (
	"fmt"
	"strings"

	"erp_invoicing/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// hourPlaces keeps the hour quantity precise enough that round2(quantity * rate)
// matches round2(minutes * rate / 60).
const hourPlaces = 16

var minutesPerHour = decimal.NewFromInt(60)

// ValidateTimeEntryClaim rejects blank or repeated ids in the set an invoice wants to bill.
func ValidateTimeEntryClaim(ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for i, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return NewValidationError(fmt.Sprintf("time_entry_ids[%d]", i), "must not be empty")
		}
		if _, dup := seen[id]; dup {
			return NewValidationError("time_entry_ids", fmt.Sprintf("time entry %q listed more than once", id))
		}
		seen[id] = struct{}{}
	}
	return nil
}

// CheckTimeEntriesBillable verifies every claimed id exists in the snapshot and is not
// billed on a different invoice.
func CheckTimeEntriesBillable(invoiceID string, ids []string, snapshot []entities.TimeEntry) error {
	byID := make(map[string]entities.TimeEntry, len(snapshot))
	for _, te := range snapshot {
		byID[te.ID] = te
	}
	for _, id := range ids {
		te, ok := byID[id]
		if !ok {
			return NewNotFoundError("time entry", id)
		}
		if te.Billed && te.InvoiceID != invoiceID {
			return NewConflictError("time entry", id, fmt.Sprintf("already billed on invoice %s", te.InvoiceID))
		}
	}
	return nil
}

// BilledMinutes rounds a duration up to the next billing interval.
func BilledMinutes(durationMinutes, intervalMinutes int) int {
	if intervalMinutes <= 1 || durationMinutes <= 0 {
		return durationMinutes
	}
	blocks := (durationMinutes + intervalMinutes - 1) / intervalMinutes
	return blocks * intervalMinutes
}

// LineItemsFromTimeEntries turns time entries into hour-based line items priced at
// the hourly rate.
func LineItemsFromTimeEntries(entries []entities.TimeEntry, hourlyRate decimal.Decimal, intervalMinutes int) ([]entities.LineItem, error) {
	if hourlyRate.IsNegative() {
		return nil, NewValidationError("hourly_rate", "must not be negative")
	}
	items := make([]entities.LineItem, 0, len(entries))
	for _, te := range entries {
		if te.DurationMinutes <= 0 {
			return nil, NewValidationError("time_entry_ids", fmt.Sprintf("time entry %q has no duration", te.ID))
		}
		minutes := BilledMinutes(te.DurationMinutes, intervalMinutes)
		hours := decimal.NewFromInt(int64(minutes)).DivRound(minutesPerHour, hourPlaces)

		desc := strings.TrimSpace(te.Description)
		if desc == "" {
			desc = "Time entry"
		}
		if !te.Date.IsZero() {
			desc = fmt.Sprintf("%s (%s)", desc, te.Date.Format("2006-01-02"))
		}
		items = append(items, entities.LineItem{
			Description: desc,
			Quantity:    hours,
			UnitPrice:   hourlyRate,
		})
	}
	return items, nil
}
