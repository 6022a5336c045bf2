package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	response "erp_invoicing/internal/adapter/http/dto/response"
	"erp_invoicing/internal/domain/entities"
	"erp_invoicing/internal/domain/invoicing"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type quoteOptions struct {
	items     []string
	taxRate   string
	plan      string
	issueDate string
	termsDays int
}

func newQuoteCmd() *cobra.Command {
	opts := quoteOptions{}
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Compute totals and the installment schedule without storing anything",
		Example: `  # Two items at 19% tax, paid 30/30/40
  invoicectl quote --item "Consulting:2:50" --item "Setup:1:30" --plan 30,30,40

  # Single payment, explicit issue date
  invoicectl quote --item "Audit:1:900" --tax 7 --issue 2026-03-01 --terms 30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inv, err := buildQuote(opts, time.Now().UTC())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(response.FromInvoice(inv))
		},
	}
	cmd.Flags().StringArrayVar(&opts.items, "item", nil, `line item as "description:quantity:unit_price" (repeatable)`)
	cmd.Flags().StringVar(&opts.taxRate, "tax", "19", "tax rate in percent")
	cmd.Flags().StringVar(&opts.plan, "plan", "", "comma separated installment percentages; empty means a single payment")
	cmd.Flags().StringVar(&opts.issueDate, "issue", "", "issue date (YYYY-MM-DD), defaults to today")
	cmd.Flags().IntVar(&opts.termsDays, "terms", 14, "payment terms in days")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func buildQuote(opts quoteOptions, today time.Time) (entities.Invoice, error) {
	items := make([]entities.LineItem, 0, len(opts.items))
	for _, raw := range opts.items {
		item, err := parseItemFlag(raw)
		if err != nil {
			return entities.Invoice{}, err
		}
		items = append(items, item)
	}

	taxRate, err := decimal.NewFromString(opts.taxRate)
	if err != nil {
		return entities.Invoice{}, fmt.Errorf("invalid --tax %q", opts.taxRate)
	}

	issue := today.Truncate(24 * time.Hour)
	if opts.issueDate != "" {
		if issue, err = time.Parse("2006-01-02", opts.issueDate); err != nil {
			return entities.Invoice{}, fmt.Errorf("invalid --issue %q", opts.issueDate)
		}
	}
	due := issue.AddDate(0, 0, opts.termsDays)

	inv := entities.Invoice{
		CustomerID:      "quote",
		Items:           items,
		TaxRatePercent:  taxRate,
		PaymentSchedule: entities.PaymentScheduleFull,
		IssueDate:       issue,
		DueDate:         due,
	}
	var plan []invoicing.PlanEntry
	if strings.TrimSpace(opts.plan) != "" {
		percentages, err := parsePercentages(opts.plan)
		if err != nil {
			return entities.Invoice{}, err
		}
		inv.PaymentSchedule = entities.PaymentScheduleInstallments
		plan = invoicing.DefaultPlan(percentages, issue, due)
	}
	return invoicing.Prepare(inv, plan)
}

func parseItemFlag(raw string) (entities.LineItem, error) {
	// The description may itself contain colons; quantity and price are the last two fields.
	parts := strings.Split(raw, ":")
	if len(parts) < 3 {
		return entities.LineItem{}, fmt.Errorf("invalid --item %q, want description:quantity:unit_price", raw)
	}
	n := len(parts)
	qty, err := decimal.NewFromString(strings.TrimSpace(parts[n-2]))
	if err != nil {
		return entities.LineItem{}, fmt.Errorf("invalid quantity in --item %q", raw)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(parts[n-1]))
	if err != nil {
		return entities.LineItem{}, fmt.Errorf("invalid unit price in --item %q", raw)
	}
	return entities.LineItem{
		Description: strings.TrimSpace(strings.Join(parts[:n-2], ":")),
		Quantity:    qty,
		UnitPrice:   price,
	}, nil
}

func parsePercentages(s string) ([]decimal.Decimal, error) {
	var out []decimal.Decimal
	for _, p := range strings.Split(s, ",") {
		d, err := decimal.NewFromString(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid --plan entry %q", p)
		}
		out = append(out, d)
	}
	return out, nil
}
