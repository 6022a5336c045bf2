package persistence

import (
	"context"
	"fmt"

	"erp_invoicing/internal/adapter/persistence/postgres"
	"erp_invoicing/internal/adapter/persistence/repository"
	"erp_invoicing/internal/config"
	"erp_invoicing/internal/infrastructure/database"
	"erp_invoicing/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// Stores groups every port implementation for one storage driver.
type Stores struct {
	Invoices    interfaces.IInvoiceRepository
	Customers   interfaces.ICustomerDirectory
	Orders      interfaces.IOrderCatalog
	TimeEntries interfaces.ITimeEntryLedger
	Settings    interfaces.ISettingsStore
	Payments    interfaces.IBillingPaymentRepository
}

// Open builds the stores selected by cfg.StorageDriver. The returned close func
// releases the connection pool (a no-op for DynamoDB).
func Open(ctx context.Context, cfg config.Config, log *zap.Logger) (Stores, func(), error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return Stores{}, nil, err
		}
		return Stores{
			Invoices:    postgres.NewInvoiceRepository(pool),
			Customers:   postgres.NewCustomerRepository(pool),
			Orders:      postgres.NewOrderRepository(pool),
			TimeEntries: postgres.NewTimeEntryRepository(pool),
			Settings:    postgres.NewSettingsRepository(pool),
			Payments:    postgres.NewBillingPaymentRepository(pool),
		}, pool.Close, nil

	case config.StorageDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg, log)
		if err != nil {
			return Stores{}, nil, err
		}
		t := cfg.Tables
		return Stores{
			Invoices:    repository.NewInvoiceDynamoRepository(ddb, t.Invoices, t.InvoiceCounter),
			Customers:   repository.NewCustomerDynamoRepository(ddb, t.Customers),
			Orders:      repository.NewOrderDynamoRepository(ddb, t.Orders),
			TimeEntries: repository.NewTimeEntryDynamoRepository(ddb, t.TimeEntries),
			Settings:    repository.NewSettingsDynamoRepository(ddb, t.Settings),
			Payments:    repository.NewBillingPaymentDynamoRepository(ddb, t.Payments),
		}, func() {}, nil
	}
	return Stores{}, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
}

// Migrate prepares the schema: goose migrations for PostgreSQL, table creation for
// DynamoDB.
func Migrate(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return err
		}
		defer pool.Close()
		return database.MigratePostgres(ctx, pool, log)

	case config.StorageDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg, log)
		if err != nil {
			return err
		}
		return database.EnsureDynamoTables(ctx, ddb, cfg.Tables, log)
	}
	return fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
}
