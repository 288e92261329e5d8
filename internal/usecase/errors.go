package usecase

import (
	"errors"
	"fmt"

	"gestion_comercial/internal/domain/entities"
)

// Error kinds returned by lifecycle operations. Callers match them with errors.Is;
// the wrapped message carries the detail.
var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrIllegalTransition   = errors.New("illegal transition")
	ErrValidation          = errors.New("validation error")
	ErrDependencyFailure   = errors.New("dependency failure")
	ErrNotificationFailure = errors.New("notification failure")

	ErrInconsistentTotals = errors.New("stored total does not match line items")
)

// ValidationError names the offending input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsRetryable reports whether the same request may succeed if repeated.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrDependencyFailure) || errors.Is(err, ErrNotificationFailure)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}

func forbidden(actor entities.Actor, capability entities.Capability) error {
	return fmt.Errorf("%w: actor %q lacks %s", ErrForbidden, actor.ID, capability)
}

func illegalTransition(from entities.QuotationStatus, ev entities.QuotationEvent) error {
	return fmt.Errorf("%w: cannot %s a quotation in status %s", ErrIllegalTransition, ev, from)
}

func dependencyFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDependencyFailure, op, err)
}

func notificationFailure(err error) error {
	return fmt.Errorf("%w: %w", ErrNotificationFailure, err)
}
