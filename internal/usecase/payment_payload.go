package usecase

import (
	"fmt"
	"strings"
)

// Helpers for the loosely typed Mercado Pago request body.

const sandboxFallbackPayerEmail = "test_user_br@testuser.com"

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func payerOf(m map[string]any) (map[string]any, bool) {
	payer, ok := m["payer"].(map[string]any)
	return payer, ok
}

func hasPayer(m map[string]any) bool {
	payer, ok := payerOf(m)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	return payerID(payer) != ""
}

func payerID(payer map[string]any) string {
	v, ok := payer["id"]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

// ensurePayerDefaults sets payer.type and, in sandbox, a test e-mail when the caller
// sent neither an id nor an e-mail.
func (u *InstallmentPaymentUseCase) ensurePayerDefaults(m map[string]any) {
	payer, ok := payerOf(m)
	if !ok {
		if m["payer"] != nil {
			return
		}
		payer = map[string]any{}
		m["payer"] = payer
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	if hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	switch {
	case u.opts.TestPayerEmail != "":
		payer["email"] = u.opts.TestPayerEmail
	case u.opts.sandbox():
		payer["email"] = sandboxFallbackPayerEmail
	}
}

// normalizeSandboxPayer swaps the configured sandbox user id for its e-mail; the
// sandbox rejects payer ids of test users.
func (u *InstallmentPaymentUseCase) normalizeSandboxPayer(m map[string]any) {
	if !u.opts.sandbox() || u.opts.TestPayerUserID == "" || u.opts.TestPayerEmail == "" {
		return
	}
	payer, ok := payerOf(m)
	if !ok || hasNonEmptyString(payer, "email") {
		return
	}
	if payerID(payer) != u.opts.TestPayerUserID {
		return
	}
	payer["email"] = u.opts.TestPayerEmail
	delete(payer, "id")
	u.log.Debug("mapped sandbox payer user id to e-mail")
}

func classifyGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, `"code":2002`):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, `"code":2034`):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, `"error":"unauthorized"`) || strings.Contains(msg, `"status":401`):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, `"error":"bad_request"`) || strings.Contains(msg, `"status":400`):
		return ErrPaymentGatewayBadRequest
	}
	return err
}
