package routes

import (
	"erp_invoicing/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathInvoices    = "/invoices"
	PathTimeEntries = "/time-entries"
	PathSettings    = "/settings"
	PathPayments    = "/payments"
)

func addBillingRoutes(rg *gin.RouterGroup, invoiceHandler *handlers.InvoiceHandler, paymentHandler *handlers.InstallmentPaymentHandler) {
	invoices := rg.Group(PathInvoices)
	{
		invoices.POST("", invoiceHandler.CreateInvoice)
		invoices.POST("/preview", invoiceHandler.PreviewInvoice)
		invoices.GET("", invoiceHandler.ListInvoices)
		invoices.GET("/:id", invoiceHandler.GetInvoice)
		invoices.PUT("/:id/items", invoiceHandler.UpdateInvoiceItems)
		invoices.PATCH("/:id/status", invoiceHandler.SetInvoiceStatus)
		invoices.PATCH("/:id/installments/:index", invoiceHandler.MarkInstallmentPaid)
		invoices.DELETE("/:id", invoiceHandler.DeleteInvoice)

		invoices.POST("/:id/installments/:index/payments", paymentHandler.PayInstallment)
		invoices.GET("/:id/payments", paymentHandler.ListInvoicePayments)
	}

	rg.GET(PathTimeEntries+"/unbilled", invoiceHandler.ListUnbilledTimeEntries)

	settings := rg.Group(PathSettings)
	{
		settings.GET("/billing", invoiceHandler.GetBillingDefaults)
		settings.PUT("/billing", invoiceHandler.UpdateBillingDefaults)
	}

	rg.GET(PathPayments+"/:payment_id", paymentHandler.GetPayment)
}
