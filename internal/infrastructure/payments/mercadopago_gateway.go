package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"erp_invoicing/internal/config"
	"erp_invoicing/internal/usecase/interfaces"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"go.uber.org/zap"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// MercadoPagoGateway creates payments through the Mercado Pago SDK. In mock mode it
// has no client; charges are approved by the installment payment flow itself.
type MercadoPagoGateway struct {
	client payment.Client
	log    *zap.Logger
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(cfg config.Config, log *zap.Logger) (*MercadoPagoGateway, error) {
	log = log.Named("gateway")
	if cfg.PaymentGatewayMock {
		log.Info("mock mode enabled; mercado pago client not created")
		return &MercadoPagoGateway{log: log}, nil
	}
	if cfg.MercadoPagoAccessToken == "" {
		return nil, ErrMissingMercadoPagoAccessToken
	}

	sdkCfg, err := mpconfig.New(cfg.MercadoPagoAccessToken)
	if err != nil {
		return nil, err
	}
	log.Info("mercado pago client initialized")
	return newGateway(payment.NewClient(sdkCfg), log), nil
}

func newGateway(client payment.Client, log *zap.Logger) *MercadoPagoGateway {
	return &MercadoPagoGateway{client: client, log: log}
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, requestPayload json.RawMessage) (string, string, json.RawMessage, error) {
	if g == nil || g.client == nil {
		return "", "", nil, ErrMercadoPagoGatewayNotConfigured
	}
	g.log.Debug("create payment start", zap.Int("payload_len", len(requestPayload)))

	var req payment.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		return "", "", nil, err
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		g.log.Warn("sdk create failed", zap.Error(err))
		return "", "", nil, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	id := fmt.Sprintf("%d", resp.ID)
	g.log.Info("payment created", zap.String("provider_payment_id", id), zap.String("provider_status", resp.Status))
	return id, resp.Status, b, nil
}
