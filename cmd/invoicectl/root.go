package main

import (
	"erp_invoicing/internal/config"
	"erp_invoicing/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "1.0.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "invoicectl",
		Short: "Operator CLI for the ERP invoicing service",
		Long: `invoicectl prepares storage for the invoicing service, seeds demo data and
computes invoice quotes offline.

Storage commands read the same environment as the API (STORAGE_DRIVER, DATABASE_URL,
DYNAMODB_ENDPOINT, table names...).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newSeedCmd(), newQuoteCmd())
	return root
}

// loadEnv reads the service configuration and builds the logger for storage commands.
func loadEnv() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	log, err := logger.InitLogger(logger.Config{Level: cfg.LogLevel, Stage: cfg.Stage})
	if err != nil {
		return config.Config{}, nil, err
	}
	return *cfg, log.Named("invoicectl"), nil
}
