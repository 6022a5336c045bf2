package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"erp_invoicing/internal/adapter/http/handlers"
	"erp_invoicing/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestBillingRoutesRegistered(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("/v1")
	addPingRoutes(v1)
	addBillingRoutes(v1, handlers.NewInvoiceHandler(nil, nil), handlers.NewInstallmentPaymentHandler(nil, false, nil))

	want := map[string]bool{
		"POST /v1/invoices":                                  false,
		"POST /v1/invoices/preview":                          false,
		"GET /v1/invoices":                                   false,
		"GET /v1/invoices/:id":                               false,
		"PUT /v1/invoices/:id/items":                         false,
		"PATCH /v1/invoices/:id/status":                      false,
		"PATCH /v1/invoices/:id/installments/:index":         false,
		"DELETE /v1/invoices/:id":                            false,
		"POST /v1/invoices/:id/installments/:index/payments": false,
		"GET /v1/invoices/:id/payments":                      false,
		"GET /v1/time-entries/unbilled":                      false,
		"GET /v1/settings/billing":                           false,
		"PUT /v1/settings/billing":                           false,
		"GET /v1/payments/:payment_id":                       false,
		"GET /v1/ping":                                       false,
	}
	for _, ri := range r.Routes() {
		key := ri.Method + " " + ri.Path
		if _, ok := want[key]; ok {
			want[key] = true
		}
	}
	for route, found := range want {
		if !found {
			t.Fatalf("route %s not registered", route)
		}
	}
}

func TestPing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	addPingRoutes(r.Group("/v1"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	setMiddlewares(r, config.Config{CORSAllowedOrigins: []string{"http://localhost:3000"}}, zap.NewNop())
	addPingRoutes(r.Group("/v1"))

	req := httptest.NewRequest(http.MethodOptions, "/v1/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("unexpected allow origin %q (status %d)", got, w.Code)
	}
}
