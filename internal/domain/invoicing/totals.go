package invoicing

import (
	"fmt"
	"strings"

	"erp_invoicing/internal/domain/entities"

	"github.com/shopspring/decimal"
)

const moneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// Totals is the derived money block of an invoice.
type Totals struct {
	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

// Round2 rounds half away from zero to cents. Amounts here are never negative,
// so this is round-half-up.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}

// ValidateItems checks the shape of every line item. An empty list is rejected.
func ValidateItems(items []entities.LineItem) error {
	if len(items) == 0 {
		return NewValidationError("items", "at least one line item is required")
	}
	for i, it := range items {
		field := fmt.Sprintf("items[%d]", i)
		if strings.TrimSpace(it.Description) == "" {
			return NewValidationError(field+".description", "must not be empty")
		}
		if !it.Quantity.IsPositive() {
			return NewValidationError(field+".quantity", "must be greater than zero")
		}
		if it.UnitPrice.IsNegative() {
			return NewValidationError(field+".unit_price", "must not be negative")
		}
	}
	return nil
}

// ComputeTotals sums the line items exactly and applies the tax rate.
//
//	subtotal = round2(sum(quantity * unitPrice))
//	tax      = round2(subtotal * rate / 100)
//	total    = subtotal + tax
func ComputeTotals(items []entities.LineItem, taxRatePercent decimal.Decimal) (Totals, error) {
	if err := ValidateItems(items); err != nil {
		return Totals{}, err
	}
	if taxRatePercent.IsNegative() {
		return Totals{}, NewValidationError("tax_rate_percent", "must not be negative")
	}

	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Total())
	}
	subtotal := Round2(sum)
	tax := Round2(subtotal.Mul(taxRatePercent).Div(hundred))

	return Totals{
		Subtotal:    subtotal,
		TaxAmount:   tax,
		TotalAmount: subtotal.Add(tax),
	}, nil
}

// ApplyTotals writes the derived totals onto a copy of the invoice.
func ApplyTotals(inv entities.Invoice, t Totals) entities.Invoice {
	inv.Subtotal = t.Subtotal
	inv.TaxAmount = t.TaxAmount
	inv.TotalAmount = t.TotalAmount
	return inv
}
