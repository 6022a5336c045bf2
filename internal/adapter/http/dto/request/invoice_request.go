package request

import (
	"strings"
	"time"

	"erp_invoicing/internal/domain/entities"
	"erp_invoicing/internal/domain/invoicing"
	"erp_invoicing/internal/usecase"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates (issue, due and installment dates).
const DateLayout = "2006-01-02"

type LineItemRequest struct {
	Description string  `json:"description" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"gt=0"`
	UnitPrice   float64 `json:"unit_price" binding:"gte=0"`
}

type InstallmentRequest struct {
	Description string  `json:"description"`
	Percentage  float64 `json:"percentage" binding:"gte=0,lte=100"`
	DueDate     string  `json:"due_date"`
}

// CreateInvoiceRequest drafts an invoice. Omitted tax rate, schedule and dates fall
// back to the billing defaults.
type CreateInvoiceRequest struct {
	InvoiceNumber     string               `json:"invoice_number"`
	CustomerID        string               `json:"customer_id" binding:"required"`
	OrderID           string               `json:"order_id"`
	IncludeOrderItems bool                 `json:"include_order_items"`
	Items             []LineItemRequest    `json:"items" binding:"dive"`
	TimeEntryIDs      []string             `json:"time_entry_ids"`
	TaxRatePercent    *float64             `json:"tax_rate_percent" binding:"omitempty,gte=0"`
	PaymentSchedule   string               `json:"payment_schedule" binding:"omitempty,oneof=full installments"`
	Installments      []InstallmentRequest `json:"installments" binding:"dive"`
	IssueDate         string               `json:"issue_date"`
	DueDate           string               `json:"due_date"`
	Notes             string               `json:"notes"`
}

func (r CreateInvoiceRequest) ToInput() (usecase.CreateInvoiceInput, error) {
	issue, err := parseDate("issue_date", r.IssueDate)
	if err != nil {
		return usecase.CreateInvoiceInput{}, err
	}
	due, err := parseDate("due_date", r.DueDate)
	if err != nil {
		return usecase.CreateInvoiceInput{}, err
	}

	in := usecase.CreateInvoiceInput{
		InvoiceNumber:     strings.TrimSpace(r.InvoiceNumber),
		CustomerID:        r.CustomerID,
		OrderID:           strings.TrimSpace(r.OrderID),
		IncludeOrderItems: r.IncludeOrderItems,
		Items:             ToLineItems(r.Items),
		TimeEntryIDs:      r.TimeEntryIDs,
		PaymentSchedule:   entities.PaymentSchedule(r.PaymentSchedule),
		IssueDate:         issue,
		DueDate:           due,
		Notes:             r.Notes,
	}
	if r.TaxRatePercent != nil {
		rate := decimal.NewFromFloat(*r.TaxRatePercent)
		in.TaxRatePercent = &rate
	}
	for _, ir := range r.Installments {
		dueDate, err := parseDate("installments.due_date", ir.DueDate)
		if err != nil {
			return usecase.CreateInvoiceInput{}, err
		}
		in.Installments = append(in.Installments, invoicing.PlanEntry{
			Description: ir.Description,
			Percentage:  decimal.NewFromFloat(ir.Percentage),
			DueDate:     dueDate,
		})
	}
	return in, nil
}

type UpdateItemsRequest struct {
	Items []LineItemRequest `json:"items" binding:"required,dive"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=created sent partially_paid paid cancelled"`
}

type MarkInstallmentPaidRequest struct {
	IsPaid *bool `json:"is_paid" binding:"required"`
}

type InstallmentPlanRequest struct {
	FirstRate  float64 `json:"first_rate"`
	SecondRate float64 `json:"second_rate"`
	FinalRate  float64 `json:"final_rate"`
}

type BillingDefaultsRequest struct {
	TaxRatePercent         float64                `json:"tax_rate_percent" binding:"gte=0"`
	PaymentTermsDays       int                    `json:"payment_terms_days" binding:"gte=0"`
	DefaultPaymentSchedule string                 `json:"default_payment_schedule" binding:"required,oneof=full installments"`
	InstallmentPlan        InstallmentPlanRequest `json:"installment_plan"`
	HourlyRate             float64                `json:"hourly_rate" binding:"gte=0"`
	BillingIntervalMinutes int                    `json:"billing_interval_minutes" binding:"gte=0"`
}

func (r BillingDefaultsRequest) ToEntity() entities.BillingDefaults {
	return entities.BillingDefaults{
		TaxRatePercent:         decimal.NewFromFloat(r.TaxRatePercent),
		PaymentTermsDays:       r.PaymentTermsDays,
		DefaultPaymentSchedule: entities.PaymentSchedule(r.DefaultPaymentSchedule),
		InstallmentPlan: entities.InstallmentPlan{
			FirstRate:  decimal.NewFromFloat(r.InstallmentPlan.FirstRate),
			SecondRate: decimal.NewFromFloat(r.InstallmentPlan.SecondRate),
			FinalRate:  decimal.NewFromFloat(r.InstallmentPlan.FinalRate),
		},
		HourlyRate:             decimal.NewFromFloat(r.HourlyRate),
		BillingIntervalMinutes: r.BillingIntervalMinutes,
	}
}

func ToLineItems(items []LineItemRequest) []entities.LineItem {
	out := make([]entities.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, entities.LineItem{
			Description: strings.TrimSpace(it.Description),
			Quantity:    decimal.NewFromFloat(it.Quantity),
			UnitPrice:   decimal.NewFromFloat(it.UnitPrice),
		})
	}
	return out
}

// parseDate accepts an empty string (zero time) or YYYY-MM-DD.
func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, invoicing.NewValidationError(field, "must be a date formatted as YYYY-MM-DD")
	}
	return t, nil
}
