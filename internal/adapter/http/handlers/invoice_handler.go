package handlers

import (
	"net/http"
	"strconv"

	request "erp_invoicing/internal/adapter/http/dto/request"
	response "erp_invoicing/internal/adapter/http/dto/response"
	"erp_invoicing/internal/domain/entities"
	"erp_invoicing/internal/domain/invoicing"
	"erp_invoicing/internal/usecase"
	"erp_invoicing/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InvoiceHandler handles HTTP requests for invoices, unbilled time entries and the
// billing defaults.

type InvoiceHandler struct {
	usecase usecase.IInvoiceUseCase
	log     *zap.Logger
}

func NewInvoiceHandler(uc usecase.IInvoiceUseCase, log *zap.Logger) *InvoiceHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &InvoiceHandler{usecase: uc, log: log.Named("invoice_handler")}
}

// CreateInvoice godoc
// @Summary      Create an invoice
// @Description  Computes totals and the installment schedule, bills the referenced time entries and stores the invoice.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        invoice  body      request.CreateInvoiceRequest  true  "Invoice draft"
// @Success      201      {object}  response.InvoiceResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Failure      409      {object}  pkg.HTTPError
// @Router       /invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	in, ok := h.bindCreate(c)
	if !ok {
		return
	}
	inv, err := h.usecase.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	h.log.Info("invoice created", zap.String("invoice_id", inv.ID), zap.String("invoice_number", inv.InvoiceNumber))
	c.JSON(http.StatusCreated, response.FromInvoice(inv))
}

// PreviewInvoice godoc
// @Summary      Preview an invoice
// @Description  Same computation as create, nothing is stored.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        invoice  body      request.CreateInvoiceRequest  true  "Invoice draft"
// @Success      200      {object}  response.InvoiceResponse
// @Failure      400      {object}  pkg.HTTPError
// @Router       /invoices/preview [post]
func (h *InvoiceHandler) PreviewInvoice(c *gin.Context) {
	in, ok := h.bindCreate(c)
	if !ok {
		return
	}
	inv, err := h.usecase.Preview(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

func (h *InvoiceHandler) bindCreate(c *gin.Context) (usecase.CreateInvoiceInput, bool) {
	var payload request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return usecase.CreateInvoiceInput{}, false
	}
	in, err := payload.ToInput()
	if err != nil {
		respondError(c, h.log, err)
		return usecase.CreateInvoiceInput{}, false
	}
	return in, true
}

// GetInvoice godoc
// @Summary  Get an invoice
// @Tags     invoices
// @Produce  json
// @Param    id   path      string  true  "Invoice ID"
// @Success  200  {object}  response.InvoiceResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	inv, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// ListInvoices godoc
// @Summary  List invoices
// @Tags     invoices
// @Produce  json
// @Param    status       query  string  false  "Status filter"
// @Param    customer_id  query  string  false  "Customer filter"
// @Success  200  {array}   response.InvoiceResponse
// @Router   /invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	filter := interfaces.InvoiceFilter{
		Status:     entities.InvoiceStatus(c.Query("status")),
		CustomerID: c.Query("customer_id"),
	}
	invoices, err := h.usecase.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoices(invoices))
}

// UpdateInvoiceItems godoc
// @Summary  Replace the line items of an invoice
// @Tags     invoices
// @Accept   json
// @Produce  json
// @Param    id     path      string                      true  "Invoice ID"
// @Param    items  body      request.UpdateItemsRequest  true  "Line items"
// @Success  200    {object}  response.InvoiceResponse
// @Failure  400    {object}  pkg.HTTPError
// @Failure  409    {object}  pkg.HTTPError
// @Router   /invoices/{id}/items [put]
func (h *InvoiceHandler) UpdateInvoiceItems(c *gin.Context) {
	var payload request.UpdateItemsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	inv, err := h.usecase.UpdateItems(c.Request.Context(), c.Param("id"), request.ToLineItems(payload.Items))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// SetInvoiceStatus godoc
// @Summary  Change the status of an invoice
// @Tags     invoices
// @Accept   json
// @Produce  json
// @Param    id      path      string                    true  "Invoice ID"
// @Param    status  body      request.SetStatusRequest  true  "Target status"
// @Success  200     {object}  response.InvoiceResponse
// @Failure  409     {object}  pkg.HTTPError
// @Router   /invoices/{id}/status [patch]
func (h *InvoiceHandler) SetInvoiceStatus(c *gin.Context) {
	var payload request.SetStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	inv, err := h.usecase.SetStatus(c.Request.Context(), c.Param("id"), entities.InvoiceStatus(payload.Status))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	h.log.Info("invoice status changed", zap.String("invoice_id", inv.ID), zap.String("status", string(inv.Status)))
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// MarkInstallmentPaid godoc
// @Summary  Mark an installment paid or unpaid
// @Tags     invoices
// @Accept   json
// @Produce  json
// @Param    id     path      string                              true  "Invoice ID"
// @Param    index  path      int                                 true  "Installment index (0-based)"
// @Param    body   body      request.MarkInstallmentPaidRequest  true  "Paid flag"
// @Success  200    {object}  response.InvoiceResponse
// @Failure  404    {object}  pkg.HTTPError
// @Failure  409    {object}  pkg.HTTPError
// @Router   /invoices/{id}/installments/{index} [patch]
func (h *InvoiceHandler) MarkInstallmentPaid(c *gin.Context) {
	index, ok := installmentIndex(c, h.log)
	if !ok {
		return
	}
	var payload request.MarkInstallmentPaidRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	inv, err := h.usecase.MarkInstallmentPaid(c.Request.Context(), c.Param("id"), index, *payload.IsPaid)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// DeleteInvoice godoc
// @Summary  Delete an invoice and release its time entries
// @Tags     invoices
// @Param    id  path  string  true  "Invoice ID"
// @Success  204
// @Failure  404  {object}  pkg.HTTPError
// @Router   /invoices/{id} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListUnbilledTimeEntries godoc
// @Summary  List time entries not yet billed
// @Tags     time-entries
// @Produce  json
// @Param    order_id  query  string  false  "Order filter"
// @Success  200  {array}  response.TimeEntryResponse
// @Router   /time-entries/unbilled [get]
func (h *InvoiceHandler) ListUnbilledTimeEntries(c *gin.Context) {
	entries, err := h.usecase.ListUnbilledTimeEntries(c.Request.Context(), c.Query("order_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, response.FromTimeEntries(entries))
}

// GetBillingDefaults godoc
// @Summary  Get the billing defaults
// @Tags     settings
// @Produce  json
// @Success  200  {object}  response.BillingDefaultsResponse
// @Router   /settings/billing [get]
func (h *InvoiceHandler) GetBillingDefaults(c *gin.Context) {
	d, err := h.usecase.GetBillingDefaults(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, response.FromBillingDefaults(d))
}

// UpdateBillingDefaults godoc
// @Summary  Replace the billing defaults
// @Tags     settings
// @Accept   json
// @Produce  json
// @Param    settings  body      request.BillingDefaultsRequest  true  "Billing defaults"
// @Success  200       {object}  response.BillingDefaultsResponse
// @Failure  400       {object}  pkg.HTTPError
// @Router   /settings/billing [put]
func (h *InvoiceHandler) UpdateBillingDefaults(c *gin.Context) {
	var payload request.BillingDefaultsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	d, err := h.usecase.UpdateBillingDefaults(c.Request.Context(), payload.ToEntity())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, response.FromBillingDefaults(d))
}

func installmentIndex(c *gin.Context, log *zap.Logger) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondError(c, log, invoicing.NewValidationError("index", "must be an integer"))
		return 0, false
	}
	return index, true
}
