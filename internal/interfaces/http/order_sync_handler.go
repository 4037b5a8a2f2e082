package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockorder-sync/internal/application/dto"
	"github.com/jhoicas/stockorder-sync/internal/application/stockorder"
	"github.com/jhoicas/stockorder-sync/pkg/logger"
)

// purchaseStockUpdater lo implementa *stockorder.PurchaseOrderUpdater.
type purchaseStockUpdater interface {
	Run(ctx context.Context, orderIDs []string) (bool, *stockorder.BatchReport)
}

// saleOrderPusher lo implementa *stockorder.SaleOrderPusher.
type saleOrderPusher interface {
	ConfirmAndPush(ctx context.Context, orderIDs []string) (bool, *stockorder.BatchReport, error)
}

// batchResponse respuesta de las acciones por lote. Result es true aunque fallen líneas.
type batchResponse struct {
	Result  bool                    `json:"result"`
	Success int                     `json:"success"`
	Partial int                     `json:"partial"`
	Failed  int                     `json:"failed"`
	Report  *stockorder.BatchReport `json:"report"`
}

func newBatchResponse(ok bool, report *stockorder.BatchReport) batchResponse {
	s, p, f := report.Counts()
	return batchResponse{Result: ok, Success: s, Partial: p, Failed: f, Report: report}
}

// OrderSyncHandler dispara la sincronización de órdenes con el WMS.
type OrderSyncHandler struct {
	updater purchaseStockUpdater
	pusher  saleOrderPusher
	log     *logger.Logger
}

// NewOrderSyncHandler construye el handler.
func NewOrderSyncHandler(updater purchaseStockUpdater, pusher saleOrderPusher, log *logger.Logger) *OrderSyncHandler {
	return &OrderSyncHandler{updater: updater, pusher: pusher, log: log}
}

// UpdatePurchaseStock ajusta el stock remoto de cada línea de las órdenes de compra.
// POST /api/purchase-orders/update-stock
func (h *OrderSyncHandler) UpdatePurchaseStock(c *fiber.Ctx) error {
	ids, bad := parseOrderIDs(c)
	if bad != nil {
		return c.Status(fiber.StatusBadRequest).JSON(bad)
	}
	ok, report := h.updater.Run(c.UserContext(), ids)
	h.log.Info().Str("user_id", GetUserID(c)).Int("orders", len(ids)).Msg("ajuste de stock de compras ejecutado")
	return c.JSON(newBatchResponse(ok, report))
}

// ConfirmAndPush confirma las órdenes de venta y envía cada línea al WMS.
// POST /api/sale-orders/confirm-and-push
func (h *OrderSyncHandler) ConfirmAndPush(c *fiber.Ctx) error {
	ids, bad := parseOrderIDs(c)
	if bad != nil {
		return c.Status(fiber.StatusBadRequest).JSON(bad)
	}
	ok, report, err := h.pusher.ConfirmAndPush(c.UserContext(), ids)
	if err != nil {
		return writeDomainError(c, err)
	}
	h.log.Info().Str("user_id", GetUserID(c)).Int("orders", len(ids)).Msg("confirmación y envío de ventas ejecutado")
	return c.JSON(newBatchResponse(ok, report))
}

// parseOrderIDs lee {"order_ids": [...]}; devuelve el cuerpo de error 400 si no es válido.
func parseOrderIDs(c *fiber.Ctx) ([]string, *dto.ErrorResponse) {
	var in dto.OrderBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return nil, &dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}
	}
	if len(in.OrderIDs) == 0 {
		return nil, &dto.ErrorResponse{Code: "VALIDATION", Message: "order_ids requerido"}
	}
	return in.OrderIDs, nil
}
