package main

import (
	"erp_invoicing/internal/adapter/persistence"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the storage schema",
		Long: `Applies the embedded goose migrations when STORAGE_DRIVER=postgres, or creates
the missing DynamoDB tables (with their indexes) when STORAGE_DRIVER=dynamodb.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if err := persistence.Migrate(cmd.Context(), cfg, log); err != nil {
				return err
			}
			log.Info("storage ready", zap.String("driver", cfg.StorageDriver))
			return nil
		},
	}
}
