package request

import "encoding/json"

// PayInstallmentRequest is the body of the installment payment route.
//
// `mp_payload` is forwarded to Mercado Pago as-is, enriched with the amount and the
// invoice reference. A bare provider body (without the envelope) is accepted too.

type PayInstallmentRequest struct {
	MPPayload json.RawMessage `json:"mp_payload"`
}
