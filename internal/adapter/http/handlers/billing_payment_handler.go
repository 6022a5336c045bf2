package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	response "erp_invoicing/internal/adapter/http/dto/response"
	"erp_invoicing/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InstallmentPaymentHandler handles HTTP requests that charge installments through the
// payment gateway.

type InstallmentPaymentHandler struct {
	usecase  usecase.IInstallmentPaymentUseCase
	mockMode bool
	log      *zap.Logger
}

func NewInstallmentPaymentHandler(uc usecase.IInstallmentPaymentUseCase, mockMode bool, log *zap.Logger) *InstallmentPaymentHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &InstallmentPaymentHandler{usecase: uc, mockMode: mockMode, log: log.Named("payment_handler")}
}

// PayInstallment godoc
// @Summary      Pay an installment
// @Description  Charges the installment amount through Mercado Pago. An approved charge marks the installment paid.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id       path      string                         true  "Invoice ID"
// @Param        index    path      int                            true  "Installment index (0-based)"
// @Param        payment  body      request.PayInstallmentRequest  true  "Mercado Pago payload"
// @Success      200      {object}  response.PayInstallmentResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Failure      409      {object}  pkg.HTTPError
// @Router       /invoices/{id}/installments/{index}/payments [post]
func (h *InstallmentPaymentHandler) PayInstallment(c *gin.Context) {
	invoiceID := c.Param("id")
	index, ok := installmentIndex(c, h.log)
	if !ok {
		return
	}
	log := h.log.With(zap.String("invoice_id", invoiceID), zap.Int("installment_index", index))

	mpPayload, err := readMPPayload(c)
	if err != nil {
		if !h.mockMode {
			log.Debug("invalid payment payload", zap.Error(err))
			respondBindError(c, err)
			return
		}
		log.Debug("payload invalid in mock mode; using empty payload", zap.Error(err))
		mpPayload = json.RawMessage("{}")
	}

	payment, inv, err := h.usecase.PayInstallment(c.Request.Context(), invoiceID, index, mpPayload)
	if err != nil {
		respondError(c, log, err)
		return
	}
	log.Info("installment payment recorded", zap.String("payment_id", payment.ID), zap.String("status", string(payment.Status)))
	c.JSON(http.StatusOK, response.FromPayInstallment(payment, inv))
}

// ListInvoicePayments godoc
// @Summary  List the payments recorded for an invoice
// @Tags     payments
// @Produce  json
// @Param    id   path     string  true  "Invoice ID"
// @Success  200  {array}  response.BillingPaymentResponse
// @Router   /invoices/{id}/payments [get]
func (h *InstallmentPaymentHandler) ListInvoicePayments(c *gin.Context) {
	payments, err := h.usecase.ListByInvoiceID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, response.FromBillingPayments(payments))
}

// GetPayment godoc
// @Summary  Get a payment
// @Tags     payments
// @Produce  json
// @Param    payment_id  path      string  true  "Payment ID"
// @Success  200         {object}  response.BillingPaymentResponse
// @Failure  404         {object}  pkg.HTTPError
// @Router   /payments/{payment_id} [get]
func (h *InstallmentPaymentHandler) GetPayment(c *gin.Context) {
	payment, err := h.usecase.GetByID(c.Request.Context(), c.Param("payment_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, response.FromBillingPayment(payment))
}

// readMPPayload accepts either {"mp_payload": {...}} or the bare provider body. An empty
// body becomes {}.
func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			trimmed := strings.TrimSpace(string(wrapped))
			if trimmed == "" || trimmed == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return wrapped, nil
		}
	}
	return json.RawMessage(raw), nil
}
