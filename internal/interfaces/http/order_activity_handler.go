package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockorder-sync/internal/application/dto"
)

// activityReader lo implementa *orderactivity.UseCase.
type activityReader interface {
	ListAnnotations(ctx context.Context, orderID string) ([]dto.AnnotationResponse, error)
	ActivityPDF(ctx context.Context, orderID string) ([]byte, string, error)
}

// OrderActivityHandler expone el registro de actividad de las órdenes.
type OrderActivityHandler struct {
	uc activityReader
}

// NewOrderActivityHandler construye el handler.
func NewOrderActivityHandler(uc activityReader) *OrderActivityHandler {
	return &OrderActivityHandler{uc: uc}
}

// ListAnnotations GET /api/orders/:id/annotations
func (h *OrderActivityHandler) ListAnnotations(c *fiber.Ctx) error {
	out, err := h.uc.ListAnnotations(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF GET /api/orders/:id/activity.pdf
func (h *OrderActivityHandler) DownloadPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.ActivityPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
