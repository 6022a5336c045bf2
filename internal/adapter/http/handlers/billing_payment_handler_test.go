package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"erp_invoicing/internal/adapter/http/handlers/mocks"
	"erp_invoicing/internal/domain/entities"
	"erp_invoicing/internal/domain/invoicing"
	"erp_invoicing/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type failingReadCloser struct{}

func (failingReadCloser) Read(_ []byte) (int, error) { return 0, errors.New("read error") }
func (failingReadCloser) Close() error               { return nil }

func newPaymentRouter(t *testing.T, mockMode bool) (*gin.Engine, *mocks.MockIInstallmentPaymentUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIInstallmentPaymentUseCase(ctrl)
	h := NewInstallmentPaymentHandler(uc, mockMode, zap.NewNop())

	r := gin.New()
	r.POST("/v1/invoices/:id/installments/:index/payments", h.PayInstallment)
	r.GET("/v1/invoices/:id/payments", h.ListInvoicePayments)
	r.GET("/v1/payments/:payment_id", h.GetPayment)
	return r, uc
}

func TestInstallmentPaymentHandler_PayInstallment(t *testing.T) {
	t.Run("invalid payload", func(t *testing.T) {
		r, _ := newPaymentRouter(t, false)
		w := doJSON(r, http.MethodPost, "/v1/invoices/inv-1/installments/0/payments", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid payload in mock mode falls back to empty", func(t *testing.T) {
		r, uc := newPaymentRouter(t, true)
		uc.EXPECT().PayInstallment(gomock.Any(), "inv-1", 0, json.RawMessage("{}")).
			Return(entities.BillingPayment{ID: "pay-1", Status: entities.PaymentStatusApproved}, entities.Invoice{ID: "inv-1"}, nil)

		w := doJSON(r, http.MethodPost, "/v1/invoices/inv-1/installments/0/payments", "{")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("already paid", func(t *testing.T) {
		r, uc := newPaymentRouter(t, false)
		uc.EXPECT().PayInstallment(gomock.Any(), "inv-1", 1, gomock.Any()).
			Return(entities.BillingPayment{}, entities.Invoice{}, invoicing.NewConflictError("installment", "inv-1:1", "installment is already paid"))

		w := doJSON(r, http.MethodPost, "/v1/invoices/inv-1/installments/1/payments", `{"payment_method_id":"pix","payer":{"email":"x@test.com"}}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("gateway unauthorized", func(t *testing.T) {
		r, uc := newPaymentRouter(t, false)
		uc.EXPECT().PayInstallment(gomock.Any(), "inv-1", 0, gomock.Any()).
			Return(entities.BillingPayment{}, entities.Invoice{}, usecase.ErrPaymentGatewayUnauthorized)

		w := doJSON(r, http.MethodPost, "/v1/invoices/inv-1/installments/0/payments", `{"payment_method_id":"pix"}`)
		if w.Code != http.StatusUnauthorized || errorCode(t, w) != "PAYMENT_PROVIDER_UNAUTHORIZED" {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("success with envelope", func(t *testing.T) {
		r, uc := newPaymentRouter(t, false)
		now := time.Now().UTC()
		inv := entities.Invoice{ID: "inv-1", Status: entities.InvoiceStatusPartiallyPaid}
		uc.EXPECT().PayInstallment(gomock.Any(), "inv-1", 0, json.RawMessage(`{"payment_method_id":"pix","payer":{"email":"x@test.com"}}`)).
			Return(entities.BillingPayment{ID: "pay-1", InvoiceID: "inv-1", Amount: decimal.RequireFromString("46.41"), Date: now, Status: entities.PaymentStatusApproved}, inv, nil)

		w := doJSON(r, http.MethodPost, "/v1/invoices/inv-1/installments/0/payments", `{"mp_payload":{"payment_method_id":"pix","payer":{"email":"x@test.com"}}}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body struct {
			Payment map[string]any `json:"payment"`
			Invoice map[string]any `json:"invoice"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body.Payment["id"] != "pay-1" || body.Payment["amount"] != 46.41 {
			t.Fatalf("unexpected payment: %v", body.Payment)
		}
		if body.Invoice["status"] != "partially_paid" {
			t.Fatalf("unexpected invoice: %v", body.Invoice)
		}
	})
}

func TestInstallmentPaymentHandler_ListAndGet(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		r, uc := newPaymentRouter(t, false)
		uc.EXPECT().ListByInvoiceID(gomock.Any(), "inv-1").Return([]entities.BillingPayment{{ID: "pay-1"}, {ID: "pay-2"}}, nil)

		w := doJSON(r, http.MethodGet, "/v1/invoices/inv-1/payments", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body) != 2 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("get not found", func(t *testing.T) {
		r, uc := newPaymentRouter(t, false)
		uc.EXPECT().GetByID(gomock.Any(), "pay-9").Return(entities.BillingPayment{}, usecase.ErrBillingPaymentNotFound)

		w := doJSON(r, http.MethodGet, "/v1/payments/pay-9", "")
		if w.Code != http.StatusNotFound || errorCode(t, w) != "PAYMENT_NOT_FOUND" {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestReadMPPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	read := func(body string) (json.RawMessage, error) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
		return readMPPayload(c)
	}

	if got, err := read("  "); err != nil || string(got) != "{}" {
		t.Fatalf("empty body: got %s, %v", got, err)
	}
	if _, err := read(`{"mp_payload":null}`); err == nil {
		t.Fatalf("expected error for null envelope")
	}
	if got, err := read(`{"payment_method_id":"pix"}`); err != nil || string(got) != `{"payment_method_id":"pix"}` {
		t.Fatalf("bare body: got %s, %v", got, err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Request.Body = failingReadCloser{}
	if _, err := readMPPayload(c); err == nil {
		t.Fatalf("expected read error")
	}
}
