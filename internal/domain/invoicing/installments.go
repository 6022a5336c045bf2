package invoicing

import (
	"fmt"
	"time"

	"erp_invoicing/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// PercentageTolerance is the allowed distance of a plan's sum from 100.
var PercentageTolerance = decimal.RequireFromString("0.01")

// PlanEntry is one slot of a payment plan. Description and due date are schedule
// policy decided by the caller.
type PlanEntry struct {
	Description string
	Percentage  decimal.Decimal
	DueDate     time.Time
}

// ValidatePercentages rejects empty plans, out-of-range entries and sums outside 100 +/- 0.01.
func ValidatePercentages(percentages []decimal.Decimal) error {
	if len(percentages) == 0 {
		return NewValidationError("installments", "at least one installment is required")
	}
	sum := decimal.Zero
	for i, p := range percentages {
		if p.IsNegative() || p.GreaterThan(hundred) {
			return NewValidationError(fmt.Sprintf("installments[%d].percentage", i), "must be between 0 and 100")
		}
		sum = sum.Add(p)
	}
	if sum.Sub(hundred).Abs().GreaterThan(PercentageTolerance) {
		return NewValidationError("installments", "installment percentages must sum to 100")
	}
	return nil
}

// GenerateInstallments splits totalAmount over the plan.
//
// Each amount is round2(total * pct / 100) except the last one, which absorbs the
// rounding remainder (total - sum of prior amounts) so the amounts always add up to
// the total exactly.
func GenerateInstallments(totalAmount decimal.Decimal, plan []PlanEntry) ([]entities.Installment, error) {
	if totalAmount.IsNegative() {
		return nil, NewValidationError("total_amount", "must not be negative")
	}
	percentages := make([]decimal.Decimal, len(plan))
	for i, e := range plan {
		percentages[i] = e.Percentage
	}
	if err := ValidatePercentages(percentages); err != nil {
		return nil, err
	}

	out := make([]entities.Installment, len(plan))
	allocated := decimal.Zero
	last := len(plan) - 1
	for i, e := range plan {
		amount := Round2(totalAmount.Mul(e.Percentage).Div(hundred))
		if i == last {
			amount = totalAmount.Sub(allocated)
		}
		allocated = allocated.Add(amount)
		out[i] = entities.Installment{
			Description: e.Description,
			Percentage:  e.Percentage,
			Amount:      amount,
			DueDate:     e.DueDate,
		}
	}
	return out, nil
}

// PlanFromInstallments rebuilds the plan of an existing schedule, used when items
// change and amounts must be regenerated against the new total.
func PlanFromInstallments(installments []entities.Installment) []PlanEntry {
	plan := make([]PlanEntry, len(installments))
	for i, in := range installments {
		plan[i] = PlanEntry{Description: in.Description, Percentage: in.Percentage, DueDate: in.DueDate}
	}
	return plan
}

// InstallmentsSum adds up the amounts of a schedule.
func InstallmentsSum(installments []entities.Installment) decimal.Decimal {
	sum := decimal.Zero
	for _, in := range installments {
		sum = sum.Add(in.Amount)
	}
	return sum
}
