package invoicing

import (
	"errors"
	"fmt"

	"erp_invoicing/internal/domain/entities"
)

// Kind sentinels. Every typed error below matches exactly one of them with errors.Is,
// so callers can branch on the category without unpacking the struct.
var (
	ErrValidation        = errors.New("validation error")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
)

// ValidationError reports malformed input. It is raised before any mutation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InvalidTransitionError is returned when the state machine refuses a status change.
type InvalidTransitionError struct {
	From entities.InvoiceStatus
	To   entities.InvoiceStatus
	// Reason is optional detail, e.g. "invoice is cancelled".
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("cannot transition invoice from %s to %s", e.From, e.To)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }

func NewInvalidTransitionError(from, to entities.InvoiceStatus, reason string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Reason: reason}
}

// NotFoundError reports a missing customer, order, time entry, invoice or installment index.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError reports a uniqueness or concurrency violation surfaced by persistence,
// e.g. a time entry already billed on another invoice.
type ConflictError struct {
	Resource string
	ID       string
	Message  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Resource, e.ID, e.Message)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

func NewConflictError(resource, id, message string) *ConflictError {
	return &ConflictError{Resource: resource, ID: id, Message: message}
}
