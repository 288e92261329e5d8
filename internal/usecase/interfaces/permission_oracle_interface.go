package interfaces

import (
	"context"

	"gestion_comercial/internal/domain/entities"
)

// IPermissionOracle answers whether an actor holds a capability.
type IPermissionOracle interface {
	HasCapability(ctx context.Context, actor entities.Actor, capability entities.Capability) (bool, error)
}
