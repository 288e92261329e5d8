package memory

import (
	"context"
	"fmt"

	"gestion_comercial/internal/domain/entities"
	"gestion_comercial/internal/usecase/interfaces"
)

type RemissionRepository struct {
	s *Store
}

var _ interfaces.IRemissionRepository = (*RemissionRepository)(nil)

func (r *RemissionRepository) Create(ctx context.Context, rem entities.Remission) (entities.Remission, error) {
	if err := ctx.Err(); err != nil {
		return entities.Remission{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.remissions[rem.ID]; ok {
		return entities.Remission{}, fmt.Errorf("remission %s already exists", rem.ID)
	}
	if err := r.s.checkCodesLocked(rem.Code); err != nil {
		return entities.Remission{}, err
	}
	r.s.remissions[rem.ID] = copyRemission(rem)
	r.s.codes[rem.Code] = rem.ID
	return copyRemission(rem), nil
}

func (r *RemissionRepository) GetByID(ctx context.Context, id string) (entities.Remission, error) {
	if err := ctx.Err(); err != nil {
		return entities.Remission{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return copyRemission(r.s.remissions[id]), nil
}
