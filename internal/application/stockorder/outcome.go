package stockorder

// LineStatus resultado de procesar una línea.
type LineStatus string

const (
	LineSuccess LineStatus = "success"
	LinePartial LineStatus = "partial" // POST aceptado sin número de orden
	LineFailed  LineStatus = "failed"
)

// FailureKind tipo de falla de una línea.
type FailureKind string

const (
	FailureHTTPStatus FailureKind = "http_status"
	FailureParse      FailureKind = "parse"
	FailureTimeout    FailureKind = "timeout"
	FailureTransport  FailureKind = "transport"
	FailureUnexpected FailureKind = "unexpected"
)

// LineOutcome resultado explícito de una línea; Annotations son las notas agregadas a la orden.
type LineOutcome struct {
	OrderID     string      `json:"order_id"`
	LineID      string      `json:"line_id"`
	SKU         string      `json:"sku"`
	Status      LineStatus  `json:"status"`
	Failure     FailureKind `json:"failure,omitempty"`
	OrderNo     string      `json:"order_no,omitempty"`
	Message     string      `json:"message,omitempty"`
	Annotations []string    `json:"annotations,omitempty"`
}

// OrderReport resultado por orden. Err se llena si la orden no pudo cargarse.
type OrderReport struct {
	OrderID   string        `json:"order_id"`
	OrderName string        `json:"order_name,omitempty"`
	Lines     []LineOutcome `json:"lines"`
	Err       string        `json:"error,omitempty"`
}

// BatchReport resultado agregado de un lote de órdenes.
type BatchReport struct {
	Orders []OrderReport `json:"orders"`
}

// Counts cuenta las líneas por estado.
func (b *BatchReport) Counts() (success, partial, failed int) {
	for _, o := range b.Orders {
		for _, l := range o.Lines {
			switch l.Status {
			case LineSuccess:
				success++
			case LinePartial:
				partial++
			case LineFailed:
				failed++
			}
		}
	}
	return success, partial, failed
}
