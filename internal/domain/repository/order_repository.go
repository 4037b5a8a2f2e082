package repository

import (
	"context"

	"github.com/jhoicas/stockorder-sync/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia de órdenes del sistema anfitrión (DIP).
// Get* devuelven (nil, nil) si la orden no existe.
type OrderRepository interface {
	GetPurchaseOrder(ctx context.Context, id string) (*entity.Order, error)
	GetSaleOrder(ctx context.Context, id string) (*entity.Order, error)
	CreateSaleOrder(ctx context.Context, order *entity.Order) error
	Confirm(ctx context.Context, id string) error
	SetNote(ctx context.Context, orderID, note string) error
	AppendAnnotation(ctx context.Context, orderID, body string) error
	ListAnnotations(ctx context.Context, orderID string) ([]*entity.Annotation, error)
}
