package routes

import (
	"context"
	"net/http"
	"strconv"

	_ "erp_invoicing/docs" // swag output
	"erp_invoicing/internal/adapter/http/handlers"
	"erp_invoicing/internal/adapter/persistence"
	"erp_invoicing/internal/config"
	"erp_invoicing/internal/infrastructure/payments"
	"erp_invoicing/internal/usecase"
	"erp_invoicing/internal/usecase/interfaces"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Run wires the storage driver, builds the router and serves until the listener fails.
func Run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	router, closeStores, err := NewRouter(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStores()

	log.Info("listening", zap.Int("port", cfg.Port), zap.String("storage", cfg.StorageDriver))
	return router.Run(":" + strconv.Itoa(cfg.Port))
}

// NewRouter builds the gin engine with every dependency wired. The returned func
// releases the storage connections.
func NewRouter(ctx context.Context, cfg config.Config, log *zap.Logger) (*gin.Engine, func(), error) {
	stores, closeStores, err := persistence.Open(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	gateway, err := payments.NewMercadoPagoGateway(cfg, log)
	if err != nil {
		// Invoices still work; only the payment route will report the missing gateway.
		log.Warn("mercado pago gateway not configured", zap.Error(err))
	}

	invoiceUseCase := usecase.NewInvoiceUseCase(stores.Invoices, stores.Customers, stores.Orders, stores.TimeEntries, stores.Settings, log)
	paymentUseCase := usecase.NewInstallmentPaymentUseCase(stores.Payments, stores.Invoices, gatewayOrNil(gateway), usecase.PaymentOptions{
		MockMode:        cfg.PaymentGatewayMock,
		AccessToken:     cfg.MercadoPagoAccessToken,
		TestPayerEmail:  cfg.MercadoPagoTestPayerEmail,
		TestPayerUserID: cfg.MercadoPagoTestPayerUserID,
	}, log)

	router := gin.New()
	setMiddlewares(router, cfg, log)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addBillingRoutes(v1,
		handlers.NewInvoiceHandler(invoiceUseCase, log),
		handlers.NewInstallmentPaymentHandler(paymentUseCase, cfg.PaymentGatewayMock, log),
	)
	return router, closeStores, nil
}

func setMiddlewares(router *gin.Engine, cfg config.Config, log *zap.Logger) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("recovered from panic", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	router.Use(corsMiddleware(cfg))
}

func corsMiddleware(cfg config.Config) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	return cors.New(corsConfig)
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

// gatewayOrNil keeps a typed nil gateway from turning into a non-nil interface.
func gatewayOrNil(g *payments.MercadoPagoGateway) interfaces.IPaymentGateway {
	if g == nil {
		return nil
	}
	return g
}
