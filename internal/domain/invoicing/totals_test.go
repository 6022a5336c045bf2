package invoicing

import (
	"errors"
	"math/rand"
	"testing"

	"erp_invoicing/internal/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(desc, qty, price string) entities.LineItem {
	return entities.LineItem{Description: desc, Quantity: d(qty), UnitPrice: d(price)}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name         string
		items        []entities.LineItem
		rate         string
		wantSubtotal string
		wantTax      string
		wantTotal    string
	}{
		{
			name:         "two items at 19%",
			items:        []entities.LineItem{item("Consulting", "2", "50.00"), item("Setup", "1", "30.00")},
			rate:         "19",
			wantSubtotal: "130.00",
			wantTax:      "24.70",
			wantTotal:    "154.70",
		},
		{
			name:         "zero tax",
			items:        []entities.LineItem{item("Hosting", "3", "9.99")},
			rate:         "0",
			wantSubtotal: "29.97",
			wantTax:      "0",
			wantTotal:    "29.97",
		},
		{
			name:         "tax rounds half up",
			items:        []entities.LineItem{item("Part", "1", "0.50")},
			rate:         "5",
			wantSubtotal: "0.50",
			wantTax:      "0.03", // 0.025 -> 0.03, banker's rounding would give 0.02
			wantTotal:    "0.53",
		},
		{
			name:         "fractional quantity",
			items:        []entities.LineItem{item("Support hours", "1.25", "80.00")},
			rate:         "7",
			wantSubtotal: "100.00",
			wantTax:      "7.00",
			wantTotal:    "107.00",
		},
		{
			name:         "free item",
			items:        []entities.LineItem{item("Goodwill", "1", "0")},
			rate:         "19",
			wantSubtotal: "0",
			wantTax:      "0",
			wantTotal:    "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeTotals(tt.items, d(tt.rate))
			require.NoError(t, err)
			assert.True(t, got.Subtotal.Equal(d(tt.wantSubtotal)), "subtotal = %s, want %s", got.Subtotal, tt.wantSubtotal)
			assert.True(t, got.TaxAmount.Equal(d(tt.wantTax)), "tax = %s, want %s", got.TaxAmount, tt.wantTax)
			assert.True(t, got.TotalAmount.Equal(d(tt.wantTotal)), "total = %s, want %s", got.TotalAmount, tt.wantTotal)
		})
	}
}

func TestComputeTotals_Validation(t *testing.T) {
	tests := []struct {
		name  string
		items []entities.LineItem
		rate  string
	}{
		{name: "empty items", items: nil, rate: "19"},
		{name: "zero quantity", items: []entities.LineItem{item("A", "0", "1")}, rate: "19"},
		{name: "negative quantity", items: []entities.LineItem{item("A", "-1", "1")}, rate: "19"},
		{name: "negative price", items: []entities.LineItem{item("A", "1", "-0.01")}, rate: "19"},
		{name: "blank description", items: []entities.LineItem{item("  ", "1", "1")}, rate: "19"},
		{name: "negative tax rate", items: []entities.LineItem{item("A", "1", "1")}, rate: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeTotals(tt.items, d(tt.rate))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			var ve *ValidationError
			assert.True(t, errors.As(err, &ve))
		})
	}
}

func TestComputeTotals_NoDriftOverManyItems(t *testing.T) {
	items := make([]entities.LineItem, 0, 1000)
	for i := 0; i < 1000; i++ {
		items = append(items, item("Cent", "1", "0.10"))
	}
	got, err := ComputeTotals(items, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "100", got.Subtotal.String())
}

func TestComputeTotals_SubtotalIsOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for run := 0; run < 50; run++ {
		n := 1 + rng.Intn(20)
		items := make([]entities.LineItem, n)
		want := decimal.Zero
		for i := range items {
			qty := decimal.NewFromInt(int64(1 + rng.Intn(10)))
			price := decimal.New(int64(rng.Intn(100000)), -2)
			items[i] = entities.LineItem{Description: "x", Quantity: qty, UnitPrice: price}
			want = want.Add(qty.Mul(price))
		}

		got, err := ComputeTotals(items, decimal.Zero)
		require.NoError(t, err)
		assert.True(t, got.Subtotal.Equal(want), "subtotal %s != %s", got.Subtotal, want)

		rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
		shuffled, err := ComputeTotals(items, decimal.Zero)
		require.NoError(t, err)
		assert.True(t, shuffled.Subtotal.Equal(got.Subtotal))
	}
}

func TestComputeTotals_TotalMatchesRoundedGross(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for run := 0; run < 200; run++ {
		items := []entities.LineItem{{
			Description: "x",
			Quantity:    decimal.NewFromInt(int64(1 + rng.Intn(5))),
			UnitPrice:   decimal.New(int64(rng.Intn(1000000)), -2),
		}}
		rate := decimal.New(int64(rng.Intn(3000)), -2)

		got, err := ComputeTotals(items, rate)
		require.NoError(t, err)

		want := Round2(got.Subtotal.Add(got.Subtotal.Mul(rate).Div(hundred)))
		assert.True(t, got.TotalAmount.Equal(want), "rate %s: total %s != %s", rate, got.TotalAmount, want)
	}
}
