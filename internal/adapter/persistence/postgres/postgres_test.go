package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"erp_invoicing/internal/domain/entities"
	"erp_invoicing/internal/domain/invoicing"
	"erp_invoicing/internal/infrastructure/database"
	"erp_invoicing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMarshalInvoiceDocs_EmptyCollections(t *testing.T) {
	items, installments, err := marshalInvoiceDocs(entities.Invoice{})
	require.NoError(t, err)
	assert.Equal(t, "[]", items)
	assert.Equal(t, "[]", installments)
}

func TestParseNumeric(t *testing.T) {
	assert.True(t, parseNumeric("46.41").Equal(decimal.RequireFromString("46.41")))
	assert.True(t, parseNumeric("garbage").IsZero())
}

// testPool connects to ERP_TEST_DATABASE_URL and applies the migrations. Tests that
// need a live database are skipped without it.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("ERP_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("ERP_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := database.ConnectPostgres(ctx, dsn, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, database.MigratePostgres(ctx, pool, zap.NewNop()))
	return pool
}

func sampleInvoice(t *testing.T) entities.Invoice {
	t.Helper()
	issue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	due := issue.AddDate(0, 0, 30)
	inv, err := invoicing.Prepare(entities.Invoice{
		CustomerID:      "cus-" + uuid.NewString(),
		Items:           []entities.LineItem{{Description: "Consulting", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50)}},
		TaxRatePercent:  decimal.NewFromInt(19),
		PaymentSchedule: entities.PaymentScheduleInstallments,
		IssueDate:       issue,
		DueDate:         due,
	}, invoicing.DefaultPlan(entities.DefaultBillingDefaults().InstallmentPlan.Percentages(), issue, due))
	require.NoError(t, err)
	now := time.Now().UTC().Truncate(time.Microsecond)
	inv.ID = uuid.NewString()
	inv.InvoiceNumber = "TEST-" + inv.ID
	inv.Version = 1
	inv.CreatedAt = now
	inv.UpdatedAt = now
	return inv
}

func TestInvoiceRepository_RoundTripAndVersionGuard(t *testing.T) {
	pool := testPool(t)
	repo := NewInvoiceRepository(pool)
	ctx := context.Background()

	inv := sampleInvoice(t)
	created, err := repo.Create(ctx, inv)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Delete(ctx, inv.ID) })

	assert.True(t, created.TotalAmount.Equal(inv.TotalAmount))
	require.Len(t, created.Installments, 3)
	assert.True(t, created.Installments[2].Amount.Equal(inv.Installments[2].Amount))

	_, err = repo.Create(ctx, inv)
	assert.True(t, errors.Is(err, invoicing.ErrConflict))

	byNumber, err := repo.GetByNumber(ctx, inv.InvoiceNumber)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, byNumber.ID)

	paid, err := invoicing.MarkInstallmentPaid(created, 0, true, time.Now().UTC())
	require.NoError(t, err)
	updated, err := repo.Update(ctx, paid)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)
	assert.Equal(t, entities.InvoiceStatusPartiallyPaid, updated.Status)

	// The stale copy still carries version 1.
	_, err = repo.Update(ctx, paid)
	assert.True(t, errors.Is(err, invoicing.ErrConflict))

	list, err := repo.List(ctx, interfaces.InvoiceFilter{CustomerID: inv.CustomerID})
	require.NoError(t, err)
	require.Len(t, list, 1)

	missing, err := repo.GetByID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, missing.ID)
}

func TestInvoiceRepository_NextInvoiceNumber(t *testing.T) {
	repo := NewInvoiceRepository(testPool(t))
	ctx := context.Background()

	first, err := repo.NextInvoiceNumber(ctx, 2199)
	require.NoError(t, err)
	second, err := repo.NextInvoiceNumber(ctx, 2199)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Regexp(t, `^INV-2199-\d{4,}$`, second)
}

func TestTimeEntryRepository_MarkBilled(t *testing.T) {
	pool := testPool(t)
	repo := NewTimeEntryRepository(pool)
	ctx := context.Background()

	orderID := "ord-" + uuid.NewString()
	a := entities.TimeEntry{ID: uuid.NewString(), OrderID: orderID, Description: "a", Date: time.Now().UTC(), DurationMinutes: 30}
	b := entities.TimeEntry{ID: uuid.NewString(), OrderID: orderID, Description: "b", Date: time.Now().UTC(), DurationMinutes: 45}
	for _, e := range []entities.TimeEntry{a, b} {
		_, err := repo.Save(ctx, e)
		require.NoError(t, err)
	}

	require.NoError(t, repo.MarkBilled(ctx, []string{a.ID}, "inv-1"))
	// Same invoice again is fine.
	require.NoError(t, repo.MarkBilled(ctx, []string{a.ID}, "inv-1"))

	err := repo.MarkBilled(ctx, []string{b.ID, a.ID}, "inv-2")
	var conflict *invoicing.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, a.ID, conflict.ID)

	// b must still be unbilled after the failed claim.
	open, err := repo.ListUnbilled(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, b.ID, open[0].ID)

	require.NoError(t, repo.MarkUnbilled(ctx, []string{a.ID}))
	open, err = repo.ListUnbilled(ctx, orderID)
	require.NoError(t, err)
	assert.Len(t, open, 2)
}

func TestSettingsRepository_DefaultsAndSave(t *testing.T) {
	pool := testPool(t)
	repo := NewSettingsRepository(pool)
	ctx := context.Background()

	d := entities.DefaultBillingDefaults()
	d.PaymentTermsDays = 21
	_, err := repo.SaveBillingDefaults(ctx, d)
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = pool.Exec(ctx, `DELETE FROM billing_settings`) })

	got, err := repo.GetBillingDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 21, got.PaymentTermsDays)
	assert.True(t, got.InstallmentPlan.FinalRate.Equal(decimal.NewFromInt(40)))
}
