package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"erp_invoicing/internal/domain/entities"
	"erp_invoicing/internal/domain/invoicing"
	"erp_invoicing/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrBillingPaymentNotFound         = errors.New("billing payment not found")
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// PaymentOptions carries the gateway settings the use case needs when it builds the
// provider request.
type PaymentOptions struct {
	// MockMode skips the gateway and approves every charge locally.
	MockMode        bool
	AccessToken     string
	TestPayerEmail  string
	TestPayerUserID string
}

func (o PaymentOptions) sandbox() bool {
	return strings.HasPrefix(o.AccessToken, "TEST-")
}

// IInstallmentPaymentUseCase charges a single installment through the payment gateway.
//
// A successful (approved) charge is stored as a payment record and the installment is
// marked paid, which rolls the invoice status up. Pending or denied charges are only
// recorded.

type IInstallmentPaymentUseCase interface {
	PayInstallment(ctx context.Context, invoiceID string, index int, mpPayload json.RawMessage) (entities.BillingPayment, entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.BillingPayment, error)
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.BillingPayment, error)
}

type InstallmentPaymentUseCase struct {
	repo     interfaces.IBillingPaymentRepository
	invoices interfaces.IInvoiceRepository
	gateway  interfaces.IPaymentGateway
	opts     PaymentOptions
	log      *zap.Logger
	now      func() time.Time
}

var _ IInstallmentPaymentUseCase = (*InstallmentPaymentUseCase)(nil)

func NewInstallmentPaymentUseCase(repo interfaces.IBillingPaymentRepository, invoices interfaces.IInvoiceRepository, gateway interfaces.IPaymentGateway, opts PaymentOptions, log *zap.Logger) *InstallmentPaymentUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &InstallmentPaymentUseCase{
		repo:     repo,
		invoices: invoices,
		gateway:  gateway,
		opts:     opts,
		log:      log.Named("payment"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (u *InstallmentPaymentUseCase) PayInstallment(ctx context.Context, invoiceID string, index int, mpPayload json.RawMessage) (entities.BillingPayment, entities.Invoice, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	log := u.log.With(zap.String("invoice_id", invoiceID), zap.Int("installment_index", index))
	log.Debug("pay installment start", zap.Int("payload_len", len(mpPayload)))

	if invoiceID == "" {
		return entities.BillingPayment{}, entities.Invoice{}, invoicing.NewValidationError("invoice_id", "is required")
	}
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		if !u.opts.MockMode {
			log.Warn("invalid payment payload")
			return entities.BillingPayment{}, entities.Invoice{}, ErrInvalidMPPayload
		}
		mpPayload = json.RawMessage("{}")
	}
	if u.gateway == nil {
		return entities.BillingPayment{}, entities.Invoice{}, errors.New("payment gateway not configured")
	}
	if u.invoices == nil {
		return entities.BillingPayment{}, entities.Invoice{}, errors.New("invoice repository not configured")
	}

	inv, err := u.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		log.Error("failed loading invoice", zap.Error(err))
		return entities.BillingPayment{}, entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.BillingPayment{}, entities.Invoice{}, invoicing.NewNotFoundError("invoice", invoiceID)
	}
	if inv.PaymentSchedule != entities.PaymentScheduleInstallments {
		return entities.BillingPayment{}, entities.Invoice{}, invoicing.NewValidationError("installment_index", "invoice has no installment schedule")
	}

	// Validate the transition before charging anyone.
	paid, err := invoicing.MarkInstallmentPaid(inv, index, true, u.now())
	if err != nil {
		return entities.BillingPayment{}, entities.Invoice{}, err
	}
	installment := inv.Installments[index]
	if installment.IsPaid {
		return entities.BillingPayment{}, entities.Invoice{}, invoicing.NewConflictError("installment", installmentRef(inv.ID, index), "installment is already paid")
	}

	amount, _ := installment.Amount.Float64()
	mpPayload, err = u.enrichPayload(mpPayload, inv, index, amount)
	if err != nil {
		log.Warn("payment payload rejected", zap.Error(err))
		return entities.BillingPayment{}, entities.Invoice{}, err
	}

	var (
		providerPaymentID string
		providerStatus    string
		providerResp      json.RawMessage
	)
	if u.opts.MockMode {
		log.Info("mock mode enabled; skipping external payment gateway")
		providerPaymentID, providerStatus, providerResp, err = mockApproval(mpPayload, u.now())
		if err != nil {
			return entities.BillingPayment{}, entities.Invoice{}, err
		}
	} else {
		providerPaymentID, providerStatus, providerResp, err = u.gateway.CreatePayment(ctx, mpPayload)
		if err != nil {
			log.Error("payment gateway failed", zap.Error(err))
			return entities.BillingPayment{}, entities.Invoice{}, classifyGatewayError(err)
		}
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Warn("provider response is not json", zap.Error(err))
	}

	payment := entities.BillingPayment{
		ID:                 providerPaymentID,
		InvoiceID:          inv.ID,
		InstallmentIndex:   index,
		Amount:             installment.Amount,
		Date:               u.now(),
		Status:             paymentStatusFromProvider(providerStatus),
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}
	created, err := u.repo.Create(ctx, payment)
	if err != nil {
		log.Error("payment repository create failed", zap.String("payment_id", payment.ID), zap.Error(err))
		return entities.BillingPayment{}, entities.Invoice{}, err
	}

	if created.Status != entities.PaymentStatusApproved {
		log.Info("payment not approved; installment left open", zap.String("payment_id", created.ID), zap.String("provider_status", providerStatus))
		return created, inv, nil
	}

	paid.UpdatedAt = u.now()
	updated, err := u.invoices.Update(ctx, paid)
	if err != nil {
		// The charge went through; the payment record is the source for reconciling.
		log.Error("installment charged but invoice update failed", zap.String("payment_id", created.ID), zap.Error(err))
		return created, entities.Invoice{}, err
	}
	log.Info("installment paid", zap.String("payment_id", created.ID), zap.String("status", string(updated.Status)))
	return created, updated, nil
}

// enrichPayload links the provider request to the installment. The charged amount
// always comes from the stored schedule, never from the caller.
func (u *InstallmentPaymentUseCase) enrichPayload(payload json.RawMessage, inv entities.Invoice, index int, amount float64) (json.RawMessage, error) {
	var req map[string]any
	if err := json.Unmarshal(payload, &req); err != nil || req == nil {
		if !u.opts.MockMode {
			return nil, ErrInvalidMPPayload
		}
		req = map[string]any{}
	}

	if !u.opts.MockMode {
		if !hasNonEmptyString(req, "payment_method_id") {
			return nil, ErrInvalidMPPayload
		}
		u.normalizeSandboxPayer(req)
		u.ensurePayerDefaults(req)
		if !hasPayer(req) {
			return nil, ErrInvalidMPPayload
		}
	}

	req["external_reference"] = installmentRef(inv.ID, index)
	if _, ok := req["description"]; !ok {
		req["description"] = fmt.Sprintf("Invoice %s - %s", inv.InvoiceNumber, inv.Installments[index].Description)
	}
	req["transaction_amount"] = amount

	b, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func installmentRef(invoiceID string, index int) string {
	return invoiceID + ":" + strconv.Itoa(index)
}

func mockApproval(payload json.RawMessage, now time.Time) (string, string, json.RawMessage, error) {
	id := strconv.FormatInt(now.UnixNano(), 10)
	resp := map[string]any{}
	_ = json.Unmarshal(payload, &resp)
	stamp := now.Format(time.RFC3339Nano)
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	resp["date_created"] = stamp
	resp["date_approved"] = stamp
	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	return id, "approved", b, nil
}

func paymentStatusFromProvider(status string) entities.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved", "authorized":
		return entities.PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentStatusDenied
	default:
		return entities.PaymentStatusPending
	}
}

func (u *InstallmentPaymentUseCase) GetByID(ctx context.Context, id string) (entities.BillingPayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.BillingPayment{}, invoicing.NewValidationError("id", "is required")
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.BillingPayment{}, err
	}
	if p.ID == "" {
		return entities.BillingPayment{}, ErrBillingPaymentNotFound
	}
	return p, nil
}

func (u *InstallmentPaymentUseCase) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.BillingPayment, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return nil, invoicing.NewValidationError("invoice_id", "is required")
	}
	return u.repo.ListByInvoiceID(ctx, invoiceID)
}
