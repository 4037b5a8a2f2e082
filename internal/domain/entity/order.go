package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderKind distingue órdenes de compra y de venta.
type OrderKind string

const (
	OrderKindPurchase OrderKind = "purchase"
	OrderKindSale     OrderKind = "sale"
)

// Estados de una orden.
const (
	OrderStateDraft     = "draft"
	OrderStateSent      = "sent"
	OrderStateConfirmed = "confirmed"
	OrderStateCancelled = "cancelled"
)

// Order orden de compra o de venta con sus líneas.
// Note solo existe en órdenes de compra: guarda el número de orden remoto (última escritura gana).
type Order struct {
	ID             string
	Kind           OrderKind
	Name           string // ej. P00012, S00042
	PartnerID      string
	Partner        *Partner
	DateOrder      *time.Time
	State          string
	Note           string
	AmountTax      decimal.Decimal
	CreatedFromPOS bool
	Lines          []OrderLine
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasNoteField indica si la orden expone el campo de nota remota.
func (o *Order) HasNoteField() bool {
	return o.Kind == OrderKindPurchase
}

// OrderLine línea de una orden.
type OrderLine struct {
	ID          string
	OrderID     string
	ProductID   string
	Product     *Product
	Quantity    decimal.Decimal
	PriceUnit   decimal.Decimal
	Discount    decimal.Decimal // porcentaje 0..100
	DatePlanned *time.Time
	UoMName     string
}

// QuantityInt cantidad de la línea truncada a entero.
func (l *OrderLine) QuantityInt() int {
	return int(l.Quantity.IntPart())
}
