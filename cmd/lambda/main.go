//go:build lambda

package main

import (
	"context"
	"log"

	_ "erp_invoicing/docs"
	"erp_invoicing/internal/adapter/http/routes"
	"erp_invoicing/internal/config"
	"erp_invoicing/internal/logger"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var ginLambda *ginadapter.GinLambda

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	zl, err := logger.InitLogger(logger.Config{Level: cfg.LogLevel, Stage: cfg.Stage})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	// The pool lives for the whole container; it is never closed explicitly.
	r, _, err := routes.NewRouter(context.Background(), *cfg, zl)
	if err != nil {
		zl.Fatal("failed to build router", zap.Error(err))
	}
	ginLambda = ginadapter.New(r)
}

func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.Log.Debug("received lambda request", zap.String("method", req.HTTPMethod), zap.String("path", req.Path))
	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	defer func() { _ = logger.Sync() }()
	lambda.Start(Handler)
}
