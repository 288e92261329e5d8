package auth

import (
	"context"

	"gestion_comercial/internal/domain/entities"
	"gestion_comercial/internal/usecase/interfaces"
)

// ClaimsPermissionOracle answers from the capabilities carried in the actor's
// token. It never fails.
type ClaimsPermissionOracle struct{}

var _ interfaces.IPermissionOracle = ClaimsPermissionOracle{}

func NewClaimsPermissionOracle() ClaimsPermissionOracle {
	return ClaimsPermissionOracle{}
}

func (ClaimsPermissionOracle) HasCapability(_ context.Context, actor entities.Actor, capability entities.Capability) (bool, error) {
	return actor.Holds(capability), nil
}
