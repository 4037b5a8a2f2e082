package stockorder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/stockorder-sync/internal/application/ports"
	"github.com/jhoicas/stockorder-sync/internal/domain"
	"github.com/jhoicas/stockorder-sync/internal/domain/entity"
	"github.com/jhoicas/stockorder-sync/internal/domain/repository"
	"github.com/jhoicas/stockorder-sync/pkg/logger"
)

// OrderTxRunner ejecuta fn dentro de una transacción con un repositorio de órdenes atado a ella.
// Si fn devuelve error no queda nada escrito.
type OrderTxRunner interface {
	RunOrders(ctx context.Context, fn func(orders repository.OrderRepository) error) error
}

// SaleOrderPusher confirma órdenes de venta y envía un stock order por línea (sin lectura previa).
// Nunca escribe el campo de nota: las órdenes de venta no lo tienen.
type SaleOrderPusher struct {
	lineRunner
	tx  OrderTxRunner
	now func() time.Time
}

// NewSaleOrderPusher construye el caso de uso. now nil usa time.Now.
// tx nil confirma sobre orders sin transacción; la validación previa del lote se hace igual.
func NewSaleOrderPusher(orders repository.OrderRepository, tx OrderTxRunner, client ports.StockOrderClient, settings Settings, log *logger.Logger, now func() time.Time) *SaleOrderPusher {
	if log == nil {
		log = logger.Nop()
	}
	if now == nil {
		now = time.Now
	}
	return &SaleOrderPusher{
		lineRunner: lineRunner{
			orders:   orders,
			client:   client,
			settings: settings,
			log:      log.Named("sale_order_pusher"),
		},
		tx:  tx,
		now: now,
	}
}

// ConfirmAndPush confirma todas las órdenes y luego envía sus líneas.
// La confirmación es todo o nada: si una orden falla ninguna queda confirmada y no se envía nada.
// Las fallas de líneas quedan en las notas y en el reporte, con resultado true.
func (p *SaleOrderPusher) ConfirmAndPush(ctx context.Context, orderIDs []string) (bool, *BatchReport, error) {
	if err := p.confirmAll(ctx, orderIDs); err != nil {
		p.log.Warn().Err(err).Strs("order_ids", orderIDs).Msg("confirmación del lote rechazada")
		return false, nil, err
	}

	report := &BatchReport{Orders: make([]OrderReport, 0, len(orderIDs))}
	for _, id := range orderIDs {
		order, err := p.orders.GetSaleOrder(ctx, id)
		if err == nil && order == nil {
			err = domain.ErrNotFound
		}
		if err != nil {
			p.log.Error().Err(err).Str("order_id", id).Msg("no se pudo cargar la orden de venta")
			report.Orders = append(report.Orders, OrderReport{OrderID: id, Lines: []LineOutcome{}, Err: err.Error()})
			continue
		}

		or := OrderReport{OrderID: order.ID, OrderName: order.Name, Lines: make([]LineOutcome, 0, len(order.Lines))}
		for i := range order.Lines {
			out := p.processLine(ctx, order, &order.Lines[i])
			p.logOutcome(&out)
			or.Lines = append(or.Lines, out)
		}
		report.Orders = append(report.Orders, or)
	}

	s, pa, f := report.Counts()
	p.log.Info().Int("orders", len(orderIDs)).Int("success", s).Int("partial", pa).Int("failed", f).Msg("envío de órdenes de venta terminado")
	return true, report, nil
}

// confirmAll revisa el lote completo antes de confirmar la primera orden.
func (p *SaleOrderPusher) confirmAll(ctx context.Context, orderIDs []string) error {
	confirm := func(orders repository.OrderRepository) error {
		for _, id := range orderIDs {
			order, err := orders.GetSaleOrder(ctx, id)
			if err == nil && order == nil {
				err = domain.ErrNotFound
			}
			if err == nil && order.State == entity.OrderStateCancelled {
				err = domain.ErrConflict
			}
			if err != nil {
				return fmt.Errorf("confirmar orden de venta %s: %w", id, err)
			}
		}
		for _, id := range orderIDs {
			if err := orders.Confirm(ctx, id); err != nil {
				return fmt.Errorf("confirmar orden de venta %s: %w", id, err)
			}
		}
		return nil
	}

	if p.tx == nil {
		return confirm(p.orders)
	}
	return p.tx.RunOrders(ctx, confirm)
}

func (p *SaleOrderPusher) processLine(ctx context.Context, order *entity.Order, line *entity.OrderLine) (out LineOutcome) {
	out = LineOutcome{OrderID: order.ID, LineID: line.ID}
	defer p.recoverLine(ctx, &out)

	out.SKU = ResolveSKU(line.Product)
	payload := BuildSaleStockOrder(p.settings, order, line, p.now())

	res, err := p.client.SubmitStockOrder(ctx, payload)
	if err != nil {
		var re *domain.RemoteError
		errors.As(err, &re)
		switch {
		case domain.RemoteKind(err) == domain.RemoteHTTPStatus:
			msg := fmt.Sprintf(notePostFailed, re.StatusCode, re.Body)
			p.log.Warn().Str("order_id", order.ID).Msg(msg)
			out.Status, out.Failure, out.Message = LineFailed, FailureHTTPStatus, msg
			p.annotate(ctx, &out, msg)
			return out
		case domain.RemoteKind(err) == domain.RemoteParse && res != nil:
			// el cuerpo no interesa en ventas: el status aceptado basta
		default:
			p.fail(ctx, &out, err)
			return out
		}
	}

	out.Status, out.OrderNo = LineSuccess, res.OrderNo
	p.annotate(ctx, &out, fmt.Sprintf(noteSaleOrderSuccess, res.StatusCode))
	return out
}
