package orderactivity

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockorder-sync/internal/application/dto"
	"github.com/jhoicas/stockorder-sync/internal/domain"
	"github.com/jhoicas/stockorder-sync/internal/domain/entity"
	"github.com/jhoicas/stockorder-sync/internal/domain/repository"
)

// UseCase expone el registro de actividad (notas de integración) de las órdenes.
type UseCase struct {
	orders    repository.OrderRepository
	generator ActivityPDFGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(orders repository.OrderRepository, generator ActivityPDFGenerator) *UseCase {
	return &UseCase{orders: orders, generator: generator}
}

// ListAnnotations devuelve las notas de la orden en orden cronológico.
// domain.ErrNotFound si no existe ni como compra ni como venta.
func (uc *UseCase) ListAnnotations(ctx context.Context, orderID string) ([]dto.AnnotationResponse, error) {
	if _, err := uc.findOrder(ctx, orderID); err != nil {
		return nil, err
	}
	notes, err := uc.orders.ListAnnotations(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("listar notas: %w", err)
	}
	out := make([]dto.AnnotationResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toAnnotationResponse(n))
	}
	return out, nil
}

// ActivityPDF genera el PDF del registro de actividad.
// Retorna (pdfBytes, filename, nil) o domain.ErrNotFound.
func (uc *UseCase) ActivityPDF(ctx context.Context, orderID string) ([]byte, string, error) {
	order, err := uc.findOrder(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	notes, err := uc.orders.ListAnnotations(ctx, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("listar notas: %w", err)
	}
	pdf, err := uc.generator.GenerateActivityPDF(ctx, order, notes)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("actividad-%s.pdf", order.Name), nil
}

func (uc *UseCase) findOrder(ctx context.Context, orderID string) (*entity.Order, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orders.GetPurchaseOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("obtener orden: %w", err)
	}
	if order != nil {
		return order, nil
	}
	order, err = uc.orders.GetSaleOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("obtener orden: %w", err)
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func toAnnotationResponse(a *entity.Annotation) dto.AnnotationResponse {
	return dto.AnnotationResponse{
		ID:          a.ID,
		Body:        a.Body,
		MessageType: a.MessageType,
		CreatedAt:   a.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
