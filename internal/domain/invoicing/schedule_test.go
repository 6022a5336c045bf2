package invoicing

import (
	"errors"
	"testing"
	"time"

	"erp_invoicing/internal/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPlan(t *testing.T) {
	issueDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	dueDate := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	plan := DefaultPlan([]decimal.Decimal{d("30"), d("30"), d("40")}, issueDate, dueDate)
	require.Len(t, plan, 3)

	assert.Equal(t, "First installment", plan[0].Description)
	assert.Equal(t, "Installment 2", plan[1].Description)
	assert.Equal(t, "Final installment", plan[2].Description)

	assert.Equal(t, issueDate, plan[0].DueDate)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), plan[1].DueDate)
	assert.Equal(t, dueDate, plan[2].DueDate)

	installments, err := GenerateInstallments(d("154.70"), plan)
	require.NoError(t, err)
	assert.Equal(t, "46.41", installments[0].Amount.StringFixed(2))
	assert.Equal(t, "61.88", installments[2].Amount.StringFixed(2))
}

func TestDefaultPlan_SingleInstallment(t *testing.T) {
	issueDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	dueDate := issueDate.AddDate(0, 0, 14)

	plan := DefaultPlan([]decimal.Decimal{d("100")}, issueDate, dueDate)
	require.Len(t, plan, 1)
	assert.Equal(t, "Final installment", plan[0].Description)
	assert.Equal(t, dueDate, plan[0].DueDate)
}

func TestFillPlanDefaults(t *testing.T) {
	issueDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	dueDate := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	custom := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	plan := FillPlanDefaults([]PlanEntry{
		{Description: "Deposit", Percentage: d("50")},
		{Percentage: d("50"), DueDate: custom},
	}, issueDate, dueDate)

	assert.Equal(t, "Deposit", plan[0].Description)
	assert.Equal(t, issueDate, plan[0].DueDate)
	assert.Equal(t, "Final installment", plan[1].Description)
	assert.Equal(t, custom, plan[1].DueDate)
}

func TestValidateBillingDefaults(t *testing.T) {
	assert.NoError(t, ValidateBillingDefaults(entities.DefaultBillingDefaults()))

	tests := []struct {
		name   string
		mutate func(*entities.BillingDefaults)
	}{
		{"negative tax", func(b *entities.BillingDefaults) { b.TaxRatePercent = d("-1") }},
		{"negative terms", func(b *entities.BillingDefaults) { b.PaymentTermsDays = -1 }},
		{"unknown schedule", func(b *entities.BillingDefaults) { b.DefaultPaymentSchedule = "weekly" }},
		{"plan off by one", func(b *entities.BillingDefaults) { b.InstallmentPlan.FinalRate = d("39") }},
		{"negative hourly rate", func(b *entities.BillingDefaults) { b.HourlyRate = d("-5") }},
		{"negative interval", func(b *entities.BillingDefaults) { b.BillingIntervalMinutes = -15 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := entities.DefaultBillingDefaults()
			tt.mutate(&b)
			assert.True(t, errors.Is(ValidateBillingDefaults(b), ErrValidation))
		})
	}
}
