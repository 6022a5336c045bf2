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
	"erp_invoicing/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newInvoiceRouter(t *testing.T) (*gin.Engine, *mocks.MockIInvoiceUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIInvoiceUseCase(ctrl)
	h := NewInvoiceHandler(uc, zap.NewNop())

	r := gin.New()
	r.POST("/v1/invoices", h.CreateInvoice)
	r.POST("/v1/invoices/preview", h.PreviewInvoice)
	r.GET("/v1/invoices", h.ListInvoices)
	r.GET("/v1/invoices/:id", h.GetInvoice)
	r.PUT("/v1/invoices/:id/items", h.UpdateInvoiceItems)
	r.PATCH("/v1/invoices/:id/status", h.SetInvoiceStatus)
	r.PATCH("/v1/invoices/:id/installments/:index", h.MarkInstallmentPaid)
	r.DELETE("/v1/invoices/:id", h.DeleteInvoice)
	r.GET("/v1/time-entries/unbilled", h.ListUnbilledTimeEntries)
	r.GET("/v1/settings/billing", h.GetBillingDefaults)
	r.PUT("/v1/settings/billing", h.UpdateBillingDefaults)
	return r, uc
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", w.Body.String(), err)
	}
	return body.Error.Code
}

func sampleInvoice() entities.Invoice {
	issue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return entities.Invoice{
		ID:              "inv-1",
		InvoiceNumber:   "INV-2026-0001",
		CustomerID:      "cus-1",
		Items:           []entities.LineItem{{Description: "Consulting", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50)}},
		TaxRatePercent:  decimal.NewFromInt(19),
		Subtotal:        decimal.RequireFromString("100.00"),
		TaxAmount:       decimal.RequireFromString("19.00"),
		TotalAmount:     decimal.RequireFromString("119.00"),
		PaymentSchedule: entities.PaymentScheduleFull,
		Status:          entities.InvoiceStatusCreated,
		IssueDate:       issue,
		DueDate:         issue.AddDate(0, 0, 14),
		Version:         1,
	}
}

func TestInvoiceHandler_CreateInvoice(t *testing.T) {
	t.Run("invalid payload", func(t *testing.T) {
		r, _ := newInvoiceRouter(t)
		w := doJSON(r, http.MethodPost, "/v1/invoices", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing customer", func(t *testing.T) {
		r, _ := newInvoiceRouter(t)
		w := doJSON(r, http.MethodPost, "/v1/invoices", `{"items":[{"description":"x","quantity":1,"unit_price":1}]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("bad date is a validation error", func(t *testing.T) {
		r, _ := newInvoiceRouter(t)
		w := doJSON(r, http.MethodPost, "/v1/invoices", `{"customer_id":"cus-1","issue_date":"March 1"}`)
		if w.Code != http.StatusBadRequest || errorCode(t, w) != "VALIDATION_ERROR" {
			t.Fatalf("expected 400 VALIDATION_ERROR, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newInvoiceRouter(t)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, in usecase.CreateInvoiceInput) (entities.Invoice, error) {
			if in.CustomerID != "cus-1" || len(in.Items) != 1 || !in.Items[0].UnitPrice.Equal(decimal.NewFromInt(50)) {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.TaxRatePercent != nil {
				t.Fatalf("tax rate should fall back to defaults")
			}
			return sampleInvoice(), nil
		})

		w := doJSON(r, http.MethodPost, "/v1/invoices", `{"customer_id":"cus-1","items":[{"description":"Consulting","quantity":2,"unit_price":50}]}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["total_amount"] != 119.0 || body["issue_date"] != "2026-03-01" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("time entry billed elsewhere", func(t *testing.T) {
		r, uc := newInvoiceRouter(t)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Invoice{}, invoicing.NewConflictError("time entry", "te-1", "already billed"))

		w := doJSON(r, http.MethodPost, "/v1/invoices", `{"customer_id":"cus-1","time_entry_ids":["te-1"]}`)
		if w.Code != http.StatusConflict || errorCode(t, w) != "CONFLICT" {
			t.Fatalf("expected 409 CONFLICT, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("unknown customer", func(t *testing.T) {
		r, uc := newInvoiceRouter(t)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Invoice{}, invoicing.NewNotFoundError("customer", "cus-9"))

		w := doJSON(r, http.MethodPost, "/v1/invoices", `{"customer_id":"cus-9"}`)
		if w.Code != http.StatusNotFound || errorCode(t, w) != "CUSTOMER_NOT_FOUND" {
			t.Fatalf("expected 404 CUSTOMER_NOT_FOUND, got %d %s", w.Code, w.Body.String())
		}
	})
}

func TestInvoiceHandler_PreviewInvoice(t *testing.T) {
	r, uc := newInvoiceRouter(t)
	preview := sampleInvoice()
	preview.ID, preview.InvoiceNumber, preview.Version = "", "", 0
	uc.EXPECT().Preview(gomock.Any(), gomock.Any()).Return(preview, nil)

	w := doJSON(r, http.MethodPost, "/v1/invoices/preview", `{"customer_id":"cus-1","payment_schedule":"full"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if _, ok := body["id"]; ok {
		t.Fatalf("preview must not carry an id: %v", body)
	}
}

func TestInvoiceHandler_GetAndList(t *testing.T) {
	t.Run("get not found", func(t *testing.T) {
		r, uc := newInvoiceRouter(t)
		uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Invoice{}, invoicing.NewNotFoundError("invoice", "missing"))

		w := doJSON(r, http.MethodGet, "/v1/invoices/missing", "")
		if w.Code != http.StatusNotFound || errorCode(t, w) != "INVOICE_NOT_FOUND" {
			t.Fatalf("expected 404 INVOICE_NOT_FOUND, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("list passes filters", func(t *testing.T) {
		r, uc := newInvoiceRouter(t)
		uc.EXPECT().List(gomock.Any(), interfaces.InvoiceFilter{Status: entities.InvoiceStatusSent, CustomerID: "cus-1"}).
			Return([]entities.Invoice{sampleInvoice()}, nil)

		w := doJSON(r, http.MethodGet, "/v1/invoices?status=sent&customer_id=cus-1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body) != 1 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("internal error is hidden", func(t *testing.T) {
		r, uc := newInvoiceRouter(t)
		uc.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("dynamodb: connection reset"))

		w := doJSON(r, http.MethodGet, "/v1/invoices", "")
		if w.Code != http.StatusInternalServerError || errorCode(t, w) != "INTERNAL_ERROR" {
			t.Fatalf("expected 500 INTERNAL_ERROR, got %d", w.Code)
		}
		if bytes.Contains(w.Body.Bytes(), []byte("dynamodb")) {
			t.Fatalf("cause leaked: %s", w.Body.String())
		}
	})
}

func TestInvoiceHandler_UpdateItems(t *testing.T) {
	r, uc := newInvoiceRouter(t)
	uc.EXPECT().UpdateItems(gomock.Any(), "inv-1", gomock.Len(2)).Return(sampleInvoice(), nil)

	w := doJSON(r, http.MethodPut, "/v1/invoices/inv-1/items", `{"items":[{"description":"a","quantity":1,"unit_price":10},{"description":"b","quantity":0.5,"unit_price":80}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodPut, "/v1/invoices/inv-1/items", `{"items":[{"description":"a","quantity":0,"unit_price":10}]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero quantity, got %d", w.Code)
	}
}

func TestInvoiceHandler_SetStatus(t *testing.T) {
	t.Run("unknown status rejected by binding", func(t *testing.T) {
		r, _ := newInvoiceRouter(t)
		w := doJSON(r, http.MethodPatch, "/v1/invoices/inv-1/status", `{"status":"archived"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid transition", func(t *testing.T) {
		r, uc := newInvoiceRouter(t)
		uc.EXPECT().SetStatus(gomock.Any(), "inv-1", entities.InvoiceStatusSent).
			Return(entities.Invoice{}, invoicing.NewInvalidTransitionError(entities.InvoiceStatusCancelled, entities.InvoiceStatusSent, "invoice is cancelled"))

		w := doJSON(r, http.MethodPatch, "/v1/invoices/inv-1/status", `{"status":"sent"}`)
		if w.Code != http.StatusConflict || errorCode(t, w) != "INVALID_TRANSITION" {
			t.Fatalf("expected 409 INVALID_TRANSITION, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newInvoiceRouter(t)
		sent := sampleInvoice()
		sent.Status = entities.InvoiceStatusSent
		uc.EXPECT().SetStatus(gomock.Any(), "inv-1", entities.InvoiceStatusSent).Return(sent, nil)

		w := doJSON(r, http.MethodPatch, "/v1/invoices/inv-1/status", `{"status":"sent"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestInvoiceHandler_MarkInstallmentPaid(t *testing.T) {
	t.Run("non numeric index", func(t *testing.T) {
		r, _ := newInvoiceRouter(t)
		w := doJSON(r, http.MethodPatch, "/v1/invoices/inv-1/installments/first", `{"is_paid":true}`)
		if w.Code != http.StatusBadRequest || errorCode(t, w) != "VALIDATION_ERROR" {
			t.Fatalf("expected 400 VALIDATION_ERROR, got %d", w.Code)
		}
	})

	t.Run("missing flag", func(t *testing.T) {
		r, _ := newInvoiceRouter(t)
		w := doJSON(r, http.MethodPatch, "/v1/invoices/inv-1/installments/0", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unmark", func(t *testing.T) {
		r, uc := newInvoiceRouter(t)
		uc.EXPECT().MarkInstallmentPaid(gomock.Any(), "inv-1", 2, false).Return(sampleInvoice(), nil)

		w := doJSON(r, http.MethodPatch, "/v1/invoices/inv-1/installments/2", `{"is_paid":false}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("index out of range", func(t *testing.T) {
		r, uc := newInvoiceRouter(t)
		uc.EXPECT().MarkInstallmentPaid(gomock.Any(), "inv-1", 7, true).Return(entities.Invoice{}, invoicing.NewNotFoundError("installment", "7"))

		w := doJSON(r, http.MethodPatch, "/v1/invoices/inv-1/installments/7", `{"is_paid":true}`)
		if w.Code != http.StatusNotFound || errorCode(t, w) != "INSTALLMENT_NOT_FOUND" {
			t.Fatalf("expected 404 INSTALLMENT_NOT_FOUND, got %d", w.Code)
		}
	})
}

func TestInvoiceHandler_DeleteInvoice(t *testing.T) {
	r, uc := newInvoiceRouter(t)
	uc.EXPECT().Delete(gomock.Any(), "inv-1").Return(nil)

	w := doJSON(r, http.MethodDelete, "/v1/invoices/inv-1", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
}

func TestInvoiceHandler_ListUnbilledTimeEntries(t *testing.T) {
	r, uc := newInvoiceRouter(t)
	uc.EXPECT().ListUnbilledTimeEntries(gomock.Any(), "ord-1").Return([]entities.TimeEntry{{ID: "te-1", DurationMinutes: 50}}, nil)

	w := doJSON(r, http.MethodGet, "/v1/time-entries/unbilled?order_id=ord-1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if len(body) != 1 || body[0]["duration_minutes"] != 50.0 {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestInvoiceHandler_BillingDefaults(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		r, uc := newInvoiceRouter(t)
		uc.EXPECT().GetBillingDefaults(gomock.Any()).Return(entities.DefaultBillingDefaults(), nil)

		w := doJSON(r, http.MethodGet, "/v1/settings/billing", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("update rejected by use case", func(t *testing.T) {
		r, uc := newInvoiceRouter(t)
		uc.EXPECT().UpdateBillingDefaults(gomock.Any(), gomock.Any()).Return(entities.BillingDefaults{}, invoicing.NewValidationError("installment_plan", "percentages must sum to 100"))

		w := doJSON(r, http.MethodPut, "/v1/settings/billing", `{"tax_rate_percent":19,"payment_terms_days":14,"default_payment_schedule":"installments","installment_plan":{"first_rate":50,"second_rate":50,"final_rate":50}}`)
		if w.Code != http.StatusBadRequest || errorCode(t, w) != "VALIDATION_ERROR" {
			t.Fatalf("expected 400 VALIDATION_ERROR, got %d", w.Code)
		}
	})
}
