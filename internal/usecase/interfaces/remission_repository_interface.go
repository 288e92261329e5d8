package interfaces

import (
	"context"

	"gestion_comercial/internal/domain/entities"
)

// IRemissionRepository abstracts persistence for Remission.
type IRemissionRepository interface {
	Create(ctx context.Context, r entities.Remission) (entities.Remission, error)
	GetByID(ctx context.Context, id string) (entities.Remission, error)
}
