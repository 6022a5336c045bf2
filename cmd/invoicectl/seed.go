package main

import (
	"context"
	"fmt"
	"time"

	"erp_invoicing/internal/adapter/persistence"
	"erp_invoicing/internal/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSeedCmd() *cobra.Command {
	var hourlyRate float64
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert a demo customer, order and unbilled time entries",
		Long: `Writes a fixed demo data set (customer cus-demo, order ord-demo and three
unbilled time entries) and stores billing defaults with the given hourly rate.
Running it again overwrites the same records.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			stores, closeStores, err := persistence.Open(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer closeStores()

			if err := seed(cmd.Context(), stores, decimal.NewFromFloat(hourlyRate)); err != nil {
				return err
			}
			log.Info("demo data seeded", zap.String("customer_id", "cus-demo"), zap.String("order_id", "ord-demo"))
			fmt.Fprintln(cmd.OutOrStdout(), "seeded customer cus-demo, order ord-demo and 3 time entries")
			return nil
		},
	}
	cmd.Flags().Float64Var(&hourlyRate, "hourly-rate", 80, "hourly rate stored in the billing defaults")
	return cmd
}

func seed(ctx context.Context, stores persistence.Stores, hourlyRate decimal.Decimal) error {
	if _, err := stores.Customers.Save(ctx, entities.Customer{
		ID:      "cus-demo",
		Name:    "Demo Customer Ltd.",
		Email:   "billing@demo.example",
		Address: "1 Example Street",
	}); err != nil {
		return fmt.Errorf("seed customer: %w", err)
	}

	if _, err := stores.Orders.Save(ctx, entities.Order{
		ID:         "ord-demo",
		CustomerID: "cus-demo",
		Title:      "Website relaunch",
		Items: []entities.LineItem{
			{Description: "Design package", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1200)},
			{Description: "Hosting (12 months)", Quantity: decimal.NewFromInt(12), UnitPrice: decimal.RequireFromString("19.90")},
		},
	}); err != nil {
		return fmt.Errorf("seed order: %w", err)
	}

	day := time.Now().UTC().Truncate(24 * time.Hour)
	entries := []entities.TimeEntry{
		{ID: "te-demo-1", Description: "Kick-off meeting", DurationMinutes: 50},
		{ID: "te-demo-2", Description: "Implementation", DurationMinutes: 185},
		{ID: "te-demo-3", Description: "Review", DurationMinutes: 20},
	}
	for i, e := range entries {
		e.OrderID = "ord-demo"
		e.CustomerID = "cus-demo"
		e.Date = day.AddDate(0, 0, -len(entries)+i)
		if _, err := stores.TimeEntries.Save(ctx, e); err != nil {
			return fmt.Errorf("seed time entry %s: %w", e.ID, err)
		}
	}

	defaults, err := stores.Settings.GetBillingDefaults(ctx)
	if err != nil {
		return err
	}
	defaults.HourlyRate = hourlyRate
	if _, err := stores.Settings.SaveBillingDefaults(ctx, defaults); err != nil {
		return fmt.Errorf("seed billing defaults: %w", err)
	}
	return nil
}
