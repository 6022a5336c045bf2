package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle of an invoice.
//
// Domain notes:
//   - created -> sent -> {partially_paid <-> paid}; any non-cancelled -> cancelled.
//   - For installment invoices partially_paid/paid are derived from installment state.
type InvoiceStatus string

const (
	InvoiceStatusCreated       InvoiceStatus = "created"
	InvoiceStatusSent          InvoiceStatus = "sent"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusCancelled     InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusCreated, InvoiceStatusSent, InvoiceStatusPartiallyPaid, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

type PaymentSchedule string

const (
	PaymentScheduleFull         PaymentSchedule = "full"
	PaymentScheduleInstallments PaymentSchedule = "installments"
)

func (s PaymentSchedule) Valid() bool {
	return s == PaymentScheduleFull || s == PaymentScheduleInstallments
}

// Invoice is the billable document issued to a customer.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (invoice_number-index): invoice_number
//
// Monetary representation:
//   - Subtotal, TaxAmount and TotalAmount are derived from Items and TaxRatePercent
//     and are always rewritten together.
//   - Version is bumped on every successful update (optimistic concurrency).
type Invoice struct {
	ID              string          `json:"id"`
	InvoiceNumber   string          `json:"invoice_number"`
	CustomerID      string          `json:"customer_id"`
	OrderID         string          `json:"order_id,omitempty"`
	Items           []LineItem      `json:"items"`
	TaxRatePercent  decimal.Decimal `json:"tax_rate_percent"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaymentSchedule PaymentSchedule `json:"payment_schedule"`
	Installments    []Installment   `json:"installments,omitempty"`
	Status          InvoiceStatus   `json:"status"`
	IssueDate       time.Time       `json:"issue_date"`
	DueDate         time.Time       `json:"due_date"`
	SentAt          *time.Time      `json:"sent_at,omitempty"`
	TimeEntryIDs    []string        `json:"time_entry_ids,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Version         int64           `json:"version"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Clone returns a deep copy so callers can mutate slices without touching the original.
func (inv Invoice) Clone() Invoice {
	out := inv
	out.Items = append([]LineItem(nil), inv.Items...)
	out.TimeEntryIDs = append([]string(nil), inv.TimeEntryIDs...)
	if inv.Installments != nil {
		out.Installments = make([]Installment, len(inv.Installments))
		for i, in := range inv.Installments {
			out.Installments[i] = in.clone()
		}
	}
	if inv.SentAt != nil {
		t := *inv.SentAt
		out.SentAt = &t
	}
	return out
}

// Installment is one scheduled partial payment of an invoice total.
type Installment struct {
	Description string          `json:"description"`
	Percentage  decimal.Decimal `json:"percentage"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"due_date"`
	IsPaid      bool            `json:"is_paid"`
	PaidDate    *time.Time      `json:"paid_date"`
}

func (in Installment) clone() Installment {
	out := in
	if in.PaidDate != nil {
		t := *in.PaidDate
		out.PaidDate = &t
	}
	return out
}
