package main

import (
	"context"
	"log"

	_ "erp_invoicing/docs"
	"erp_invoicing/internal/adapter/http/routes"
	"erp_invoicing/internal/config"
	"erp_invoicing/internal/logger"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// @title           ERP Invoicing API
// @version         1.0
// @description     Invoices with installment payment plans, backed by DynamoDB or PostgreSQL.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	zl, err := logger.InitLogger(logger.Config{Level: cfg.LogLevel, Stage: cfg.Stage})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := routes.Run(context.Background(), *cfg, zl); err != nil {
		zl.Fatal("failed to start the application", zap.Error(err))
	}
}
