package request

import (
	"errors"
	"testing"
	"time"

	"erp_invoicing/internal/domain/entities"
	"erp_invoicing/internal/domain/invoicing"

	"github.com/gin-gonic/gin/binding"
)

func TestCreateInvoiceRequest_ToInput(t *testing.T) {
	rate := 7.5
	r := CreateInvoiceRequest{
		InvoiceNumber:   " INV-X ",
		CustomerID:      "cus-1",
		Items:           []LineItemRequest{{Description: " Consulting ", Quantity: 2, UnitPrice: 50.1}},
		TaxRatePercent:  &rate,
		PaymentSchedule: "installments",
		Installments: []InstallmentRequest{
			{Percentage: 40, DueDate: "2026-03-01"},
			{Description: "Rest", Percentage: 60},
		},
		IssueDate: "2026-03-01",
	}

	in, err := r.ToInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.InvoiceNumber != "INV-X" || in.PaymentSchedule != entities.PaymentScheduleInstallments {
		t.Fatalf("unexpected input: %+v", in)
	}
	if in.Items[0].Description != "Consulting" || in.Items[0].UnitPrice.String() != "50.1" {
		t.Fatalf("unexpected items: %+v", in.Items)
	}
	if in.TaxRatePercent == nil || in.TaxRatePercent.String() != "7.5" {
		t.Fatalf("unexpected tax rate: %v", in.TaxRatePercent)
	}
	if !in.IssueDate.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) || !in.DueDate.IsZero() {
		t.Fatalf("unexpected dates: %v %v", in.IssueDate, in.DueDate)
	}
	if len(in.Installments) != 2 || !in.Installments[1].DueDate.IsZero() || in.Installments[1].Percentage.String() != "60" {
		t.Fatalf("unexpected plan: %+v", in.Installments)
	}
}

func TestCreateInvoiceRequest_ToInputBadDate(t *testing.T) {
	_, err := CreateInvoiceRequest{CustomerID: "cus-1", DueDate: "01/03/2026"}.ToInput()
	if !errors.Is(err, invoicing.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBillingDefaultsRequest_ToEntity(t *testing.T) {
	d := BillingDefaultsRequest{
		TaxRatePercent:         19,
		PaymentTermsDays:       30,
		DefaultPaymentSchedule: "installments",
		InstallmentPlan:        InstallmentPlanRequest{FirstRate: 50, SecondRate: 25, FinalRate: 25},
		HourlyRate:             80,
		BillingIntervalMinutes: 15,
	}.ToEntity()

	if d.PaymentTermsDays != 30 || d.DefaultPaymentSchedule != entities.PaymentScheduleInstallments {
		t.Fatalf("unexpected defaults: %+v", d)
	}
	if d.InstallmentPlan.FirstRate.String() != "50" || d.HourlyRate.String() != "80" {
		t.Fatalf("unexpected rates: %+v", d)
	}
}

func TestInstallmentRequest_PercentageBounds(t *testing.T) {
	tests := []struct {
		pct     float64
		wantErr bool
	}{
		{pct: 0},
		{pct: 33.33},
		{pct: 100},
		{pct: -1, wantErr: true},
		{pct: 100.5, wantErr: true},
	}
	for _, tt := range tests {
		err := binding.Validator.ValidateStruct(InstallmentRequest{Percentage: tt.pct})
		if (err != nil) != tt.wantErr {
			t.Fatalf("percentage %v: wantErr=%v, got %v", tt.pct, tt.wantErr, err)
		}
	}
}
