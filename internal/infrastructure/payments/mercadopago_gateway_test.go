package payments

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"erp_invoicing/internal/config"

	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePaymentClient struct {
	payment.Client
	create func(ctx context.Context, req payment.Request) (*payment.Response, error)
}

func (f fakePaymentClient) Create(ctx context.Context, req payment.Request) (*payment.Response, error) {
	return f.create(ctx, req)
}

func TestNewMercadoPagoGateway(t *testing.T) {
	t.Run("mock mode needs no token", func(t *testing.T) {
		g, err := NewMercadoPagoGateway(config.Config{PaymentGatewayMock: true}, zap.NewNop())
		require.NoError(t, err)
		_, _, _, err = g.CreatePayment(context.Background(), json.RawMessage(`{}`))
		assert.ErrorIs(t, err, ErrMercadoPagoGatewayNotConfigured)
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := NewMercadoPagoGateway(config.Config{}, zap.NewNop())
		assert.ErrorIs(t, err, ErrMissingMercadoPagoAccessToken)
	})
}

func TestMercadoPagoGateway_CreatePayment(t *testing.T) {
	var got payment.Request
	g := newGateway(fakePaymentClient{create: func(_ context.Context, req payment.Request) (*payment.Response, error) {
		got = req
		return &payment.Response{ID: 123, Status: "approved"}, nil
	}}, zap.NewNop())

	id, status, raw, err := g.CreatePayment(context.Background(), json.RawMessage(`{"transaction_amount":46.41,"payment_method_id":"pix","external_reference":"inv-1:1"}`))
	require.NoError(t, err)
	assert.Equal(t, "123", id)
	assert.Equal(t, "approved", status)
	assert.True(t, json.Valid(raw))
	assert.Equal(t, 46.41, got.TransactionAmount)
	assert.Equal(t, "inv-1:1", got.ExternalReference)
}

func TestMercadoPagoGateway_CreatePaymentErrors(t *testing.T) {
	sdkErr := errors.New(`{"status":400,"error":"bad_request"}`)
	g := newGateway(fakePaymentClient{create: func(context.Context, payment.Request) (*payment.Response, error) {
		return nil, sdkErr
	}}, zap.NewNop())

	_, _, _, err := g.CreatePayment(context.Background(), json.RawMessage(`{"payment_method_id":"pix"}`))
	assert.ErrorIs(t, err, sdkErr)

	_, _, _, err = g.CreatePayment(context.Background(), json.RawMessage(`not json`))
	assert.Error(t, err)
}
