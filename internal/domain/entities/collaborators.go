package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

type Order struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customer_id"`
	Title      string     `json:"title"`
	Items      []LineItem `json:"items"`
}

// TimeEntry is a time-tracking record. Once billed it belongs to exactly one invoice.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (order_id-index): order_id
type TimeEntry struct {
	ID              string    `json:"id"`
	OrderID         string    `json:"order_id,omitempty"`
	CustomerID      string    `json:"customer_id,omitempty"`
	Description     string    `json:"description"`
	Date            time.Time `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	Billed          bool      `json:"billed"`
	InvoiceID       string    `json:"invoice_id,omitempty"`
}

// InstallmentPlan holds the system default split (first/second/final percentages).
type InstallmentPlan struct {
	FirstRate  decimal.Decimal `json:"first_rate"`
	SecondRate decimal.Decimal `json:"second_rate"`
	FinalRate  decimal.Decimal `json:"final_rate"`
}

func (p InstallmentPlan) Percentages() []decimal.Decimal {
	return []decimal.Decimal{p.FirstRate, p.SecondRate, p.FinalRate}
}

// BillingDefaults are the system-wide invoicing settings.
type BillingDefaults struct {
	TaxRatePercent         decimal.Decimal `json:"tax_rate_percent"`
	PaymentTermsDays       int             `json:"payment_terms_days"`
	DefaultPaymentSchedule PaymentSchedule `json:"default_payment_schedule"`
	InstallmentPlan        InstallmentPlan `json:"installment_plan"`
	HourlyRate             decimal.Decimal `json:"hourly_rate"`
	BillingIntervalMinutes int             `json:"billing_interval_minutes"`
}

// DefaultBillingDefaults is used when nothing has been stored yet.
func DefaultBillingDefaults() BillingDefaults {
	return BillingDefaults{
		TaxRatePercent:         decimal.NewFromInt(19),
		PaymentTermsDays:       14,
		DefaultPaymentSchedule: PaymentScheduleFull,
		InstallmentPlan: InstallmentPlan{
			FirstRate:  decimal.NewFromInt(30),
			SecondRate: decimal.NewFromInt(30),
			FinalRate:  decimal.NewFromInt(40),
		},
		HourlyRate:             decimal.Zero,
		BillingIntervalMinutes: 15,
	}
}
