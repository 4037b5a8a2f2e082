package saleorder

import (
	"context"

	"github.com/jhoicas/stockorder-sync/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella,
// para que cabecera y líneas de la orden se creen de forma atómica.
type TxRunner interface {
	RunSaleOrder(ctx context.Context, fn func(
		orders repository.OrderRepository,
		products repository.ProductRepository,
	) error) error
}
