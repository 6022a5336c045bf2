package handlers

import (
	"errors"
	"net/http"
	"strings"

	"erp_invoicing/internal/domain/invoicing"
	"erp_invoicing/internal/usecase"
	"erp_invoicing/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

// mapError turns use-case errors into the HTTP envelope. Unknown errors become a 500
// whose cause is only logged.
func mapError(err error) *pkg.AppError {
	var (
		validation *invoicing.ValidationError
		transition *invoicing.InvalidTransitionError
		notFound   *invoicing.NotFoundError
		conflict   *invoicing.ConflictError
	)
	switch {
	case errors.As(err, &validation):
		return pkg.NewDomainError("VALIDATION_ERROR", validation.Error(), err, http.StatusBadRequest)
	case errors.As(err, &transition):
		return pkg.NewDomainError("INVALID_TRANSITION", transition.Error(), err, http.StatusConflict)
	case errors.As(err, &notFound):
		code := strings.ToUpper(strings.ReplaceAll(notFound.Resource, " ", "_")) + "_NOT_FOUND"
		return pkg.NewDomainError(code, notFound.Error(), err, http.StatusNotFound)
	case errors.As(err, &conflict):
		return pkg.NewDomainError("CONFLICT", conflict.Error(), err, http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainError("INVALID_REQUEST", "Invalid request", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrBillingPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func respondError(c *gin.Context, log *zap.Logger, err error) {
	appErr := mapError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		log.Debug("request rejected", zap.String("path", c.FullPath()), zap.String("code", appErr.Code), zap.Error(err))
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func respondBindError(c *gin.Context, err error) {
	appErr := pkg.NewDomainError(errInvalidPayload.Code, errInvalidPayload.Message, err, errInvalidPayload.HTTPStatus)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
