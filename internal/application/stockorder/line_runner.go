package stockorder

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/stockorder-sync/internal/application/ports"
	"github.com/jhoicas/stockorder-sync/internal/domain"
	"github.com/jhoicas/stockorder-sync/internal/domain/repository"
	"github.com/jhoicas/stockorder-sync/pkg/logger"
)

// Textos de las notas agregadas a la orden.
const (
	noteGetParseFailed   = "Failed to parse API response."
	noteGetStatusFailed  = "Failed to retrieve current quantity from API. Status: %d"
	notePostFailed       = "API failed: Status %d, Response: %s"
	notePostParseFailed  = "Failed to parse POST API response."
	noteOrderNo          = "Note from API: %s"
	noteNoOrderNo        = "API call successful, but no 'orderNo' value found in response."
	noteTimeout          = "API Timeout"
	noteError            = "API Error: %s"
	noteSaleOrderSuccess = "Stock Order API Success - Status: %d"
)

// lineRunner piezas compartidas por ambos flujos: notas en la orden, fallas y recover por línea.
type lineRunner struct {
	orders   repository.OrderRepository
	client   ports.StockOrderClient
	settings Settings
	log      *logger.Logger
}

// annotate agrega la nota a la orden. Si la escritura falla solo se registra en el log.
func (r *lineRunner) annotate(ctx context.Context, out *LineOutcome, body string) {
	out.Annotations = append(out.Annotations, body)
	if err := r.orders.AppendAnnotation(ctx, out.OrderID, body); err != nil {
		r.log.Error().Err(err).Str("order_id", out.OrderID).Str("note", body).Msg("no se pudo agregar la nota a la orden")
	}
}

// fail marca la línea como fallida: timeout → "API Timeout", cualquier otro error → "API Error: ...".
func (r *lineRunner) fail(ctx context.Context, out *LineOutcome, err error) {
	out.Status = LineFailed
	out.Message = err.Error()

	if domain.IsTimeout(err) {
		out.Failure = FailureTimeout
		r.log.Error().Str("order_id", out.OrderID).Str("line_id", out.LineID).Str("sku", out.SKU).Msg("timeout en push-api")
		r.annotate(ctx, out, noteTimeout)
		return
	}

	out.Failure = FailureUnexpected
	var re *domain.RemoteError
	if errors.As(err, &re) && re.Kind == domain.RemoteTransport {
		out.Failure = FailureTransport
	}
	r.log.Error().Err(err).Str("order_id", out.OrderID).Str("line_id", out.LineID).Str("sku", out.SKU).Msg("error procesando línea")
	r.annotate(ctx, out, fmt.Sprintf(noteError, err.Error()))
}

// recoverLine se usa con defer: convierte un panic de la línea en una falla inesperada.
func (r *lineRunner) recoverLine(ctx context.Context, out *LineOutcome) {
	if rec := recover(); rec != nil {
		r.fail(ctx, out, fmt.Errorf("panic: %v", rec))
	}
}

func (r *lineRunner) logOutcome(out *LineOutcome) {
	ev := r.log.Info()
	if out.Status == LineFailed {
		ev = r.log.Warn().Str("failure", string(out.Failure))
	}
	ev.Str("order_id", out.OrderID).
		Str("line_id", out.LineID).
		Str("sku", out.SKU).
		Str("outcome", string(out.Status)).
		Msg("línea procesada")
}
