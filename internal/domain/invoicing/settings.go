package invoicing

import "erp_invoicing/internal/domain/entities"

// ValidateBillingDefaults checks settings before they are stored.
func ValidateBillingDefaults(d entities.BillingDefaults) error {
	if d.TaxRatePercent.IsNegative() {
		return NewValidationError("tax_rate_percent", "must not be negative")
	}
	if d.PaymentTermsDays < 0 {
		return NewValidationError("payment_terms_days", "must not be negative")
	}
	if !d.DefaultPaymentSchedule.Valid() {
		return NewValidationError("default_payment_schedule", "must be full or installments")
	}
	if err := ValidatePercentages(d.InstallmentPlan.Percentages()); err != nil {
		return err
	}
	if d.HourlyRate.IsNegative() {
		return NewValidationError("hourly_rate", "must not be negative")
	}
	if d.BillingIntervalMinutes < 0 {
		return NewValidationError("billing_interval_minutes", "must not be negative")
	}
	return nil
}
