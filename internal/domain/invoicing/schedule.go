package invoicing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultPlan lays a list of percentages over the invoice term. The first installment is
// due on the issue date, the final one on the due date and the ones in between are
// spaced evenly (truncated to whole days).
func DefaultPlan(percentages []decimal.Decimal, issueDate, dueDate time.Time) []PlanEntry {
	n := len(percentages)
	plan := make([]PlanEntry, n)
	for i, p := range percentages {
		plan[i] = PlanEntry{
			Description: InstallmentDescription(i, n),
			Percentage:  p,
			DueDate:     spacedDueDate(i, n, issueDate, dueDate),
		}
	}
	return plan
}

// FillPlanDefaults completes caller-supplied entries: blank descriptions and zero due
// dates get the values DefaultPlan would have used.
func FillPlanDefaults(plan []PlanEntry, issueDate, dueDate time.Time) []PlanEntry {
	n := len(plan)
	out := make([]PlanEntry, n)
	for i, e := range plan {
		if e.Description == "" {
			e.Description = InstallmentDescription(i, n)
		}
		if e.DueDate.IsZero() {
			e.DueDate = spacedDueDate(i, n, issueDate, dueDate)
		}
		out[i] = e
	}
	return out
}

func InstallmentDescription(i, n int) string {
	switch {
	case i == n-1:
		return "Final installment"
	case i == 0:
		return "First installment"
	default:
		return fmt.Sprintf("Installment %d", i+1)
	}
}

func spacedDueDate(i, n int, issueDate, dueDate time.Time) time.Time {
	if i == n-1 {
		return dueDate
	}
	if i == 0 {
		return issueDate
	}
	step := dueDate.Sub(issueDate) / time.Duration(n-1)
	return truncateDay(issueDate.Add(step * time.Duration(i)))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
