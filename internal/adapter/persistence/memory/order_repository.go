package memory

import (
	"context"
	"fmt"

	"gestion_comercial/internal/domain/entities"
	"gestion_comercial/internal/usecase/interfaces"
)

type OrderRepository struct {
	s *Store
}

var _ interfaces.IOrderRepository = (*OrderRepository)(nil)

func (r *OrderRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	if err := ctx.Err(); err != nil {
		return entities.Order{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.orders[o.ID]; ok {
		return entities.Order{}, fmt.Errorf("order %s already exists", o.ID)
	}
	if err := r.s.checkCodesLocked(o.Code); err != nil {
		return entities.Order{}, err
	}
	r.s.orders[o.ID] = copyOrder(o)
	r.s.codes[o.Code] = o.ID
	return copyOrder(o), nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	if err := ctx.Err(); err != nil {
		return entities.Order{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return copyOrder(r.s.orders[id]), nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil
	}
	delete(r.s.orders, id)
	delete(r.s.codes, o.Code)
	return nil
}
