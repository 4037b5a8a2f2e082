package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockorder-sync/internal/application/dto"
)

// posOrderCreator lo implementa *saleorder.CreateFromPOSUseCase.
type posOrderCreator interface {
	CreateFromJSON(ctx context.Context, raw []byte) (*dto.POSOrderResponse, error)
}

// SaleOrderHandler crea órdenes de venta desde el punto de venta.
type SaleOrderHandler struct {
	uc posOrderCreator
}

// NewSaleOrderHandler construye el handler.
func NewSaleOrderHandler(uc posOrderCreator) *SaleOrderHandler {
	return &SaleOrderHandler{uc: uc}
}

// CreateFromPOS crea una orden de venta en borrador con las líneas del POS.
// POST /api/sale-orders/from-pos
func (h *SaleOrderHandler) CreateFromPOS(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo requerido"})
	}
	out, err := h.uc.CreateFromJSON(c.UserContext(), body)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
