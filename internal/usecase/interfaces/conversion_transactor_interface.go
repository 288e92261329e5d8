package interfaces

import (
	"context"

	"gestion_comercial/internal/domain/entities"
)

// ConversionUnit is everything a quotation conversion writes.
type ConversionUnit struct {
	QuotationID    string
	ExpectedStatus entities.QuotationStatus
	Order          entities.Order
	Remission      entities.Remission
}

// IConversionTransactor is implemented by stores that can write a whole
// conversion as one atomic unit: the quotation status swap, the order and the
// remission all land, or none do.
//
// A failed status precondition is reported as ErrStatusConflict.
type IConversionTransactor interface {
	CommitConversion(ctx context.Context, unit ConversionUnit) error
}
