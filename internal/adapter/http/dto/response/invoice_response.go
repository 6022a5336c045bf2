package response

import (
	"time"

	"erp_invoicing/internal/domain/entities"
)

const dateLayout = "2006-01-02"

// LineItemResponse.Total is the line total rounded to cents for display. The invoice
// subtotal is computed from the unrounded line totals, so the displayed lines may not
// add up to it exactly.
type LineItemResponse struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

type InstallmentResponse struct {
	Description string     `json:"description"`
	Percentage  float64    `json:"percentage"`
	Amount      float64    `json:"amount"`
	DueDate     string     `json:"due_date"`
	IsPaid      bool       `json:"is_paid"`
	PaidDate    *time.Time `json:"paid_date"`
}

type InvoiceResponse struct {
	ID              string                `json:"id,omitempty"`
	InvoiceNumber   string                `json:"invoice_number,omitempty"`
	CustomerID      string                `json:"customer_id"`
	OrderID         string                `json:"order_id,omitempty"`
	Items           []LineItemResponse    `json:"items"`
	TaxRatePercent  float64               `json:"tax_rate_percent"`
	Subtotal        float64               `json:"subtotal"`
	TaxAmount       float64               `json:"tax_amount"`
	TotalAmount     float64               `json:"total_amount"`
	PaymentSchedule string                `json:"payment_schedule"`
	Installments    []InstallmentResponse `json:"installments,omitempty"`
	Status          string                `json:"status"`
	IssueDate       string                `json:"issue_date"`
	DueDate         string                `json:"due_date"`
	SentAt          *time.Time            `json:"sent_at,omitempty"`
	TimeEntryIDs    []string              `json:"time_entry_ids,omitempty"`
	Notes           string                `json:"notes,omitempty"`
	Version         int64                 `json:"version,omitempty"`
	CreatedAt       *time.Time            `json:"created_at,omitempty"`
	UpdatedAt       *time.Time            `json:"updated_at,omitempty"`
}

func FromInvoice(inv entities.Invoice) InvoiceResponse {
	res := InvoiceResponse{
		ID:              inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerID:      inv.CustomerID,
		OrderID:         inv.OrderID,
		Items:           make([]LineItemResponse, 0, len(inv.Items)),
		TaxRatePercent:  inv.TaxRatePercent.InexactFloat64(),
		Subtotal:        inv.Subtotal.InexactFloat64(),
		TaxAmount:       inv.TaxAmount.InexactFloat64(),
		TotalAmount:     inv.TotalAmount.InexactFloat64(),
		PaymentSchedule: string(inv.PaymentSchedule),
		Status:          string(inv.Status),
		IssueDate:       formatDate(inv.IssueDate),
		DueDate:         formatDate(inv.DueDate),
		SentAt:          inv.SentAt,
		TimeEntryIDs:    inv.TimeEntryIDs,
		Notes:           inv.Notes,
		Version:         inv.Version,
		CreatedAt:       timePtr(inv.CreatedAt),
		UpdatedAt:       timePtr(inv.UpdatedAt),
	}
	for _, it := range inv.Items {
		res.Items = append(res.Items, LineItemResponse{
			Description: it.Description,
			Quantity:    it.Quantity.InexactFloat64(),
			UnitPrice:   it.UnitPrice.InexactFloat64(),
			Total:       it.Total().Round(2).InexactFloat64(),
		})
	}
	for _, in := range inv.Installments {
		res.Installments = append(res.Installments, InstallmentResponse{
			Description: in.Description,
			Percentage:  in.Percentage.InexactFloat64(),
			Amount:      in.Amount.InexactFloat64(),
			DueDate:     formatDate(in.DueDate),
			IsPaid:      in.IsPaid,
			PaidDate:    in.PaidDate,
		})
	}
	return res
}

func FromInvoices(invoices []entities.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, FromInvoice(inv))
	}
	return out
}

type TimeEntryResponse struct {
	ID              string    `json:"id"`
	OrderID         string    `json:"order_id,omitempty"`
	CustomerID      string    `json:"customer_id,omitempty"`
	Description     string    `json:"description"`
	Date            time.Time `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	Billed          bool      `json:"billed"`
	InvoiceID       string    `json:"invoice_id,omitempty"`
}

func FromTimeEntries(entries []entities.TimeEntry) []TimeEntryResponse {
	out := make([]TimeEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, TimeEntryResponse(e))
	}
	return out
}

type InstallmentPlanResponse struct {
	FirstRate  float64 `json:"first_rate"`
	SecondRate float64 `json:"second_rate"`
	FinalRate  float64 `json:"final_rate"`
}

type BillingDefaultsResponse struct {
	TaxRatePercent         float64                 `json:"tax_rate_percent"`
	PaymentTermsDays       int                     `json:"payment_terms_days"`
	DefaultPaymentSchedule string                  `json:"default_payment_schedule"`
	InstallmentPlan        InstallmentPlanResponse `json:"installment_plan"`
	HourlyRate             float64                 `json:"hourly_rate"`
	BillingIntervalMinutes int                     `json:"billing_interval_minutes"`
}

func FromBillingDefaults(d entities.BillingDefaults) BillingDefaultsResponse {
	return BillingDefaultsResponse{
		TaxRatePercent:         d.TaxRatePercent.InexactFloat64(),
		PaymentTermsDays:       d.PaymentTermsDays,
		DefaultPaymentSchedule: string(d.DefaultPaymentSchedule),
		InstallmentPlan: InstallmentPlanResponse{
			FirstRate:  d.InstallmentPlan.FirstRate.InexactFloat64(),
			SecondRate: d.InstallmentPlan.SecondRate.InexactFloat64(),
			FinalRate:  d.InstallmentPlan.FinalRate.InexactFloat64(),
		},
		HourlyRate:             d.HourlyRate.InexactFloat64(),
		BillingIntervalMinutes: d.BillingIntervalMinutes,
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
