package postgres

import (
	"context"
	"errors"

	"erp_invoicing/internal/domain/entities"
	"erp_invoicing/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const billingDefaultsID = "billing_defaults"

type SettingsRepository struct {
	pool *pgxpool.Pool
}

var _ interfaces.ISettingsStore = (*SettingsRepository)(nil)

func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

func (r *SettingsRepository) GetBillingDefaults(ctx context.Context) (entities.BillingDefaults, error) {
	var (
		d                                     entities.BillingDefaults
		schedule                              string
		taxRate, first, second, final, hourly string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT tax_rate_percent::text, payment_terms_days, default_payment_schedule,
			installment_first_rate::text, installment_second_rate::text, installment_final_rate::text,
			hourly_rate::text, billing_interval_minutes
		FROM billing_settings WHERE id = $1`, billingDefaultsID).
		Scan(&taxRate, &d.PaymentTermsDays, &schedule, &first, &second, &final, &hourly, &d.BillingIntervalMinutes)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.DefaultBillingDefaults(), nil
	}
	if err != nil {
		return entities.BillingDefaults{}, err
	}

	d.TaxRatePercent = parseNumeric(taxRate)
	d.DefaultPaymentSchedule = entities.PaymentSchedule(schedule)
	d.InstallmentPlan = entities.InstallmentPlan{
		FirstRate:  parseNumeric(first),
		SecondRate: parseNumeric(second),
		FinalRate:  parseNumeric(final),
	}
	d.HourlyRate = parseNumeric(hourly)
	return d, nil
}

func (r *SettingsRepository) SaveBillingDefaults(ctx context.Context, d entities.BillingDefaults) (entities.BillingDefaults, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO billing_settings (id, tax_rate_percent, payment_terms_days, default_payment_schedule,
			installment_first_rate, installment_second_rate, installment_final_rate,
			hourly_rate, billing_interval_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			tax_rate_percent = EXCLUDED.tax_rate_percent,
			payment_terms_days = EXCLUDED.payment_terms_days,
			default_payment_schedule = EXCLUDED.default_payment_schedule,
			installment_first_rate = EXCLUDED.installment_first_rate,
			installment_second_rate = EXCLUDED.installment_second_rate,
			installment_final_rate = EXCLUDED.installment_final_rate,
			hourly_rate = EXCLUDED.hourly_rate,
			billing_interval_minutes = EXCLUDED.billing_interval_minutes`,
		billingDefaultsID, d.TaxRatePercent.String(), d.PaymentTermsDays, string(d.DefaultPaymentSchedule),
		d.InstallmentPlan.FirstRate.String(), d.InstallmentPlan.SecondRate.String(), d.InstallmentPlan.FinalRate.String(),
		d.HourlyRate.String(), d.BillingIntervalMinutes,
	)
	if err != nil {
		return entities.BillingDefaults{}, err
	}
	return d, nil
}
