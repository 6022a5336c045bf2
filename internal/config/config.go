package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	StorageDynamoDB = "dynamodb"
	StoragePostgres = "postgres"
)

// Config is read from the environment. main loads .env first (godotenv/autoload).
type Config struct {
	Port  int
	Stage string

	LogLevel string

	StorageDriver string
	DatabaseURL   string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	DynamoDBEndpoint   string
	Tables             Tables

	CORSAllowedOrigins []string

	MercadoPagoAccessToken     string
	MercadoPagoTestPayerEmail  string
	MercadoPagoTestPayerUserID string
	PaymentGatewayMock         bool
}

// Tables are the DynamoDB table names.
type Tables struct {
	Invoices       string
	InvoiceCounter string
	TimeEntries    string
	Customers      string
	Orders         string
	Settings       string
	Payments       string
}

func Load() (*Config, error) {
	port, err := strconv.Atoi(getenvDefault("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	cfg := &Config{
		Port:               port,
		Stage:              getenvDefault("STAGE", "dev"),
		LogLevel:           getenvDefault("LOG_LEVEL", "info"),
		StorageDriver:      strings.ToLower(getenvDefault("STORAGE_DRIVER", StorageDynamoDB)),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		AWSRegion:          getenvDefault("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getenvDefault("AWS_ACCESS_KEY_ID", "local"),
		AWSSecretAccessKey: getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
		DynamoDBEndpoint:   os.Getenv("DYNAMODB_ENDPOINT"),
		Tables: Tables{
			Invoices:       getenvDefault("INVOICES_TABLE", "invoices"),
			InvoiceCounter: getenvDefault("INVOICE_COUNTERS_TABLE", "invoice_counters"),
			TimeEntries:    getenvDefault("TIME_ENTRIES_TABLE", "time_entries"),
			Customers:      getenvDefault("CUSTOMERS_TABLE", "customers"),
			Orders:         getenvDefault("ORDERS_TABLE", "orders"),
			Settings:       getenvDefault("SETTINGS_TABLE", "settings"),
			Payments:       getenvDefault("PAYMENTS_TABLE", "payments"),
		},
		CORSAllowedOrigins:         splitList(getenvDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		MercadoPagoAccessToken:     strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")),
		MercadoPagoTestPayerEmail:  strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL")),
		MercadoPagoTestPayerUserID: strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_USER_ID")),
		PaymentGatewayMock:         isTruthy(os.Getenv("PAYMENT_GATEWAY_MOCK")) || isTruthy(os.Getenv("MERCADOPAGO_MOCK")),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case StorageDynamoDB:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %s or %s, got %q", StorageDynamoDB, StoragePostgres, c.StorageDriver)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
