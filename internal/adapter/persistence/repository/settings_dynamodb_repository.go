package repository

import (
	"context"

	"erp_invoicing/internal/domain/entities"
	"erp_invoicing/internal/usecase/interfaces"
)

const (
	defaultSettingsTableName = "settings"
	billingDefaultsID        = "billing_defaults"
)

type billingDefaultsItem struct {
	ID                     string `dynamodbav:"id"`
	TaxRatePercent         string `dynamodbav:"tax_rate_percent"`
	PaymentTermsDays       int    `dynamodbav:"payment_terms_days"`
	DefaultPaymentSchedule string `dynamodbav:"default_payment_schedule"`
	FirstRate              string `dynamodbav:"installment_first_rate"`
	SecondRate             string `dynamodbav:"installment_second_rate"`
	FinalRate              string `dynamodbav:"installment_final_rate"`
	HourlyRate             string `dynamodbav:"hourly_rate"`
	BillingIntervalMinutes int    `dynamodbav:"billing_interval_minutes"`
}

// SettingsDynamoRepository keeps the billing defaults as a single item (id
// "billing_defaults") in the settings table.

type SettingsDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.ISettingsStore = (*SettingsDynamoRepository)(nil)

func NewSettingsDynamoRepository(ddb dynamoAPI, tableName string) *SettingsDynamoRepository {
	return &SettingsDynamoRepository{ddb: ddb, tableName: tableOrDefault(tableName, defaultSettingsTableName)}
}

func (r *SettingsDynamoRepository) GetBillingDefaults(ctx context.Context) (entities.BillingDefaults, error) {
	var it billingDefaultsItem
	found, err := getByID(ctx, r.ddb, r.tableName, billingDefaultsID, &it)
	if err != nil {
		return entities.BillingDefaults{}, err
	}
	if !found {
		return entities.DefaultBillingDefaults(), nil
	}
	return entities.BillingDefaults{
		TaxRatePercent:         parseDecimal(it.TaxRatePercent),
		PaymentTermsDays:       it.PaymentTermsDays,
		DefaultPaymentSchedule: entities.PaymentSchedule(it.DefaultPaymentSchedule),
		InstallmentPlan: entities.InstallmentPlan{
			FirstRate:  parseDecimal(it.FirstRate),
			SecondRate: parseDecimal(it.SecondRate),
			FinalRate:  parseDecimal(it.FinalRate),
		},
		HourlyRate:             parseDecimal(it.HourlyRate),
		BillingIntervalMinutes: it.BillingIntervalMinutes,
	}, nil
}

func (r *SettingsDynamoRepository) SaveBillingDefaults(ctx context.Context, d entities.BillingDefaults) (entities.BillingDefaults, error) {
	err := put(ctx, r.ddb, r.tableName, billingDefaultsItem{
		ID:                     billingDefaultsID,
		TaxRatePercent:         d.TaxRatePercent.String(),
		PaymentTermsDays:       d.PaymentTermsDays,
		DefaultPaymentSchedule: string(d.DefaultPaymentSchedule),
		FirstRate:              d.InstallmentPlan.FirstRate.String(),
		SecondRate:             d.InstallmentPlan.SecondRate.String(),
		FinalRate:              d.InstallmentPlan.FinalRate.String(),
		HourlyRate:             d.HourlyRate.String(),
		BillingIntervalMinutes: d.BillingIntervalMinutes,
	})
	if err != nil {
		return entities.BillingDefaults{}, err
	}
	return d, nil
}
