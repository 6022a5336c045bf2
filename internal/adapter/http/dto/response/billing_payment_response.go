package response

import (
	"time"

	"erp_invoicing/internal/domain/entities"
)

type BillingPaymentResponse struct {
	ID               string    `json:"id"`
	InvoiceID        string    `json:"invoice_id"`
	InstallmentIndex int       `json:"installment_index"`
	Amount           float64   `json:"amount"`
	Date             time.Time `json:"date"`
	Status           string    `json:"status"`

	MPPayloadRaw string                 `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

// PayInstallmentResponse pairs the recorded payment with the invoice as it stands
// afterwards. Invoice is omitted when the charge was not approved.
type PayInstallmentResponse struct {
	Payment BillingPaymentResponse `json:"payment"`
	Invoice *InvoiceResponse       `json:"invoice,omitempty"`
}

func FromBillingPayment(p entities.BillingPayment) BillingPaymentResponse {
	return BillingPaymentResponse{
		ID:               p.ID,
		InvoiceID:        p.InvoiceID,
		InstallmentIndex: p.InstallmentIndex,
		Amount:           p.Amount.InexactFloat64(),
		Date:             p.Date,
		Status:           string(p.Status),
		MPPayloadRaw:     string(p.ProviderPayloadRaw),
		MPPayload:        p.ProviderPayload,
	}
}

func FromBillingPayments(ps []entities.BillingPayment) []BillingPaymentResponse {
	out := make([]BillingPaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromBillingPayment(p))
	}
	return out
}

func FromPayInstallment(p entities.BillingPayment, inv entities.Invoice) PayInstallmentResponse {
	res := PayInstallmentResponse{Payment: FromBillingPayment(p)}
	if inv.ID != "" && p.Status == entities.PaymentStatusApproved {
		ir := FromInvoice(inv)
		res.Invoice = &ir
	}
	return res
}
