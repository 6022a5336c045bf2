package response

import (
	"encoding/json"
	"testing"
	"time"

	"erp_invoicing/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestFromInvoice(t *testing.T) {
	issue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	inv := entities.Invoice{
		ID:              "inv-1",
		InvoiceNumber:   "INV-2026-0001",
		CustomerID:      "cus-1",
		Items:           []entities.LineItem{{Description: "Consulting", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50)}},
		TaxRatePercent:  decimal.NewFromInt(19),
		Subtotal:        decimal.RequireFromString("130.00"),
		TaxAmount:       decimal.RequireFromString("24.70"),
		TotalAmount:     decimal.RequireFromString("154.70"),
		PaymentSchedule: entities.PaymentScheduleInstallments,
		Installments: []entities.Installment{
			{Description: "First installment", Percentage: decimal.NewFromInt(30), Amount: decimal.RequireFromString("46.41"), DueDate: issue, IsPaid: true, PaidDate: &issue},
		},
		Status:    entities.InvoiceStatusPartiallyPaid,
		IssueDate: issue,
		DueDate:   issue.AddDate(0, 0, 30),
		Version:   2,
	}

	res := FromInvoice(inv)
	if res.TotalAmount != 154.7 || res.TaxAmount != 24.7 || res.Subtotal != 130 {
		t.Fatalf("unexpected money: %+v", res)
	}
	if res.IssueDate != "2026-03-01" || res.DueDate != "2026-03-31" {
		t.Fatalf("unexpected dates: %s %s", res.IssueDate, res.DueDate)
	}
	if len(res.Items) != 1 || res.Items[0].Total != 100 {
		t.Fatalf("unexpected items: %+v", res.Items)
	}
	if len(res.Installments) != 1 || res.Installments[0].Amount != 46.41 || res.Installments[0].DueDate != "2026-03-01" {
		t.Fatalf("unexpected installments: %+v", res.Installments)
	}
	if res.CreatedAt != nil {
		t.Fatalf("zero timestamps should be omitted")
	}

	b, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var body map[string]any
	_ = json.Unmarshal(b, &body)
	if body["total_amount"] != 154.7 {
		t.Fatalf("money should be a JSON number, got %T", body["total_amount"])
	}
}

func TestFromInvoice_LineTotalsRoundedForDisplayOnly(t *testing.T) {
	third := decimal.RequireFromString("0.3333333333333333")
	inv := entities.Invoice{
		Items: []entities.LineItem{
			{Description: "A", Quantity: third, UnitPrice: decimal.NewFromInt(10)},
			{Description: "B", Quantity: third, UnitPrice: decimal.NewFromInt(10)},
			{Description: "C", Quantity: decimal.RequireFromString("0.35"), UnitPrice: decimal.NewFromInt(10)},
		},
		Subtotal: decimal.RequireFromString("10.17"),
	}

	res := FromInvoice(inv)
	if res.Items[0].Total != 3.33 || res.Items[2].Total != 3.5 {
		t.Fatalf("unexpected line totals: %+v", res.Items)
	}
	// 3.33 + 3.33 + 3.50 = 10.16; the subtotal keeps the exact sum 10.1666...
	if res.Subtotal != 10.17 {
		t.Fatalf("subtotal should not be rebuilt from rounded lines, got %v", res.Subtotal)
	}
}

func TestFromBillingDefaults(t *testing.T) {
	res := FromBillingDefaults(entities.DefaultBillingDefaults())
	if res.TaxRatePercent != 19 || res.PaymentTermsDays != 14 || res.InstallmentPlan.FinalRate != 40 {
		t.Fatalf("unexpected defaults: %+v", res)
	}
}
