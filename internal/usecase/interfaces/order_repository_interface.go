package interfaces

import (
	"context"

	"gestion_comercial/internal/domain/entities"
)

// IOrderRepository abstracts persistence for Order.
//
// Delete exists only to undo an order created by a conversion that could not
// complete; nothing else removes orders.
type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	Delete(ctx context.Context, id string) error
}
