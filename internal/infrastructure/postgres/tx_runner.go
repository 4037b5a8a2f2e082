package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stockorder-sync/internal/application/saleorder"
	"github.com/jhoicas/stockorder-sync/internal/application/stockorder"
	"github.com/jhoicas/stockorder-sync/internal/domain/repository"
)

// Ensure TxRunner implements saleorder.TxRunner and stockorder.OrderTxRunner.
var (
	_ saleorder.TxRunner       = (*TxRunner)(nil)
	_ stockorder.OrderTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunOrders igual que RunSaleOrder pero solo con el repositorio de órdenes (confirmación de lotes).
func (r *TxRunner) RunOrders(ctx context.Context, fn func(orders repository.OrderRepository) error) error {
	return r.RunSaleOrder(ctx, func(orders repository.OrderRepository, _ repository.ProductRepository) error {
		return fn(orders)
	})
}

// RunSaleOrder inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunSaleOrder(ctx context.Context, fn func(
	orders repository.OrderRepository,
	products repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewOrderRepository(tx), NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
