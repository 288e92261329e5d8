package interfaces

import (
	"context"

	"gestion_comercial/internal/domain/entities"
)

// ISequenceGenerator hands out human codes.
//
// Codes are unique per kind across concurrent callers and their numeric part
// never decreases.
type ISequenceGenerator interface {
	// NextCode returns the next code of kind, e.g. PED-000123. Counters run
	// for the lifetime of the store and never reset per period: codes carry
	// no year, so a yearly reset would reissue codes already in use.
	NextCode(ctx context.Context, kind entities.DocumentKind) (string, error)
}
