package orderactivity

import (
	"context"

	"github.com/jhoicas/stockorder-sync/internal/domain/entity"
)

// ActivityPDFGenerator genera el PDF del registro de actividad de una orden.
// La implementación vive en infrastructure/pdf.
type ActivityPDFGenerator interface {
	GenerateActivityPDF(ctx context.Context, order *entity.Order, annotations []*entity.Annotation) ([]byte, error)
}
