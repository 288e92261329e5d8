package interfaces

import (
	"context"
	"errors"

	"gestion_comercial/internal/domain/entities"
)

// ErrStatusConflict is returned by conditional status writes when the stored
// status no longer matches the expected one.
var ErrStatusConflict = errors.New("document status conflict")

// ErrDuplicateCode is returned when a human code is already taken.
var ErrDuplicateCode = errors.New("document code already exists")

// IQuotationRepository abstracts persistence for Quotation.
//
// Lookups return a zero Quotation (empty ID) when the id does not exist.
// Status changes are compare-and-swap: the write names the status it expects
// to replace and fails with ErrStatusConflict if that is no longer true.
// SetEmailSent only raises the email flag and applies in any status.
type IQuotationRepository interface {
	Create(ctx context.Context, q entities.Quotation) (entities.Quotation, error)
	GetByID(ctx context.Context, id string) (entities.Quotation, error)
	UpdateStatus(ctx context.Context, id string, expected, next entities.QuotationStatus) (entities.Quotation, error)
	MarkEmailSent(ctx context.Context, id string, expected, next entities.QuotationStatus) (entities.Quotation, error)
	SetEmailSent(ctx context.Context, id string) (entities.Quotation, error)
}
