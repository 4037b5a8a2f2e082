package stockorder

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/stockorder-sync/internal/application/ports"
	"github.com/jhoicas/stockorder-sync/internal/domain"
	"github.com/jhoicas/stockorder-sync/internal/domain/entity"
	"github.com/jhoicas/stockorder-sync/internal/domain/repository"
	"github.com/jhoicas/stockorder-sync/pkg/logger"
)

// PurchaseOrderUpdater concilia las líneas de órdenes de compra con el stock remoto:
// lee la cantidad actual, suma la ingresada y envía un stock order de ajuste.
type PurchaseOrderUpdater struct {
	lineRunner
}

// NewPurchaseOrderUpdater construye el caso de uso.
func NewPurchaseOrderUpdater(orders repository.OrderRepository, client ports.StockOrderClient, settings Settings, log *logger.Logger) *PurchaseOrderUpdater {
	if log == nil {
		log = logger.Nop()
	}
	return &PurchaseOrderUpdater{lineRunner{
		orders:   orders,
		client:   client,
		settings: settings,
		log:      log.Named("purchase_order_updater"),
	}}
}

// Run procesa las órdenes en secuencia, línea por línea. Las fallas quedan en las notas de
// cada orden y en el reporte; el booleano es siempre true.
func (u *PurchaseOrderUpdater) Run(ctx context.Context, orderIDs []string) (bool, *BatchReport) {
	report := &BatchReport{Orders: make([]OrderReport, 0, len(orderIDs))}

	for _, id := range orderIDs {
		order, err := u.orders.GetPurchaseOrder(ctx, id)
		if err == nil && order == nil {
			err = domain.ErrNotFound
		}
		if err != nil {
			u.log.Error().Err(err).Str("order_id", id).Msg("no se pudo cargar la orden de compra")
			report.Orders = append(report.Orders, OrderReport{OrderID: id, Lines: []LineOutcome{}, Err: err.Error()})
			continue
		}

		or := OrderReport{OrderID: order.ID, OrderName: order.Name, Lines: make([]LineOutcome, 0, len(order.Lines))}
		for i := range order.Lines {
			out := u.processLine(ctx, order, &order.Lines[i])
			u.logOutcome(&out)
			or.Lines = append(or.Lines, out)
		}
		report.Orders = append(report.Orders, or)
	}

	s, p, f := report.Counts()
	u.log.Info().Int("orders", len(orderIDs)).Int("success", s).Int("partial", p).Int("failed", f).Msg("actualización de órdenes de compra terminada")
	return true, report
}

func (u *PurchaseOrderUpdater) processLine(ctx context.Context, order *entity.Order, line *entity.OrderLine) (out LineOutcome) {
	out = LineOutcome{OrderID: order.ID, LineID: line.ID}
	defer u.recoverLine(ctx, &out)

	out.SKU = ResolveSKU(line.Product)
	entered := line.QuantityInt()

	current, err := u.client.FetchCurrentQuantity(ctx, u.settings.PrincipalCode, u.settings.CustomerReference, out.SKU)
	if err != nil {
		var re *domain.RemoteError
		errors.As(err, &re)
		switch domain.RemoteKind(err) {
		case domain.RemoteHTTPStatus:
			u.annotate(ctx, &out, fmt.Sprintf(noteGetStatusFailed, re.StatusCode))
			current = 0
		case domain.RemoteParse:
			u.annotate(ctx, &out, noteGetParseFailed)
			current = 0
		default:
			u.fail(ctx, &out, err)
			return out
		}
	}

	total := current + entered
	payload := BuildPurchaseAdjustment(u.settings, order, line, entered, total)

	res, err := u.client.SubmitStockOrder(ctx, payload)
	if err != nil {
		var re *domain.RemoteError
		errors.As(err, &re)
		switch domain.RemoteKind(err) {
		case domain.RemoteHTTPStatus:
			msg := fmt.Sprintf(notePostFailed, re.StatusCode, re.Body)
			u.log.Warn().Str("order_id", order.ID).Msg(msg)
			out.Status, out.Failure, out.Message = LineFailed, FailureHTTPStatus, msg
			u.annotate(ctx, &out, msg)
		case domain.RemoteParse:
			out.Status, out.Failure, out.Message = LineFailed, FailureParse, err.Error()
			u.annotate(ctx, &out, notePostParseFailed)
		default:
			u.fail(ctx, &out, err)
		}
		return out
	}

	if res.OrderNo == "" {
		out.Status = LinePartial
		u.annotate(ctx, &out, noteNoOrderNo)
		return out
	}

	if err := u.orders.SetNote(ctx, order.ID, res.OrderNo); err != nil {
		u.fail(ctx, &out, fmt.Errorf("guardar nota de la orden: %w", err))
		return out
	}
	order.Note = res.OrderNo
	out.Status, out.OrderNo = LineSuccess, res.OrderNo
	u.annotate(ctx, &out, fmt.Sprintf(noteOrderNo, res.OrderNo))
	return out
}
