package stockorder

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/stockorder-sync/internal/domain/entity"
)

// Valores de sustitución cuando el producto no informa el atributo.
const (
	FallbackSKU     = "B001"
	FallbackBarcode = "12235ASER"
	FallbackGTIN    = "ABC123"
	FallbackUoM     = "UNIT"

	DefaultWidth  = 2.0
	DefaultLength = 2.0
	DefaultHeight = 2.0
	DefaultVolume = 1.5
	DefaultWeight = 1.6
)

// Constantes fijas del contrato de stock order.
const (
	orderTypeIn     = "IN"
	stockMethodN    = "N"
	itemType        = "Cartoon"
	itemGroup       = "A"
	shortDescMax    = 50
	isoDateTime     = "2006-01-02T15:04:05"
	isoDate         = "2006-01-02"
	firstLineNumber = 1
)

// Settings identificadores de tenant y textos por defecto del payload.
type Settings struct {
	PrincipalCode       string
	CustomerReference   string
	Warehouse           string
	DefaultInstructions string
	DefaultOrderNotes   string
}

// ResolveSKU devuelve el SKU del producto o FallbackSKU si no tiene.
// Dos productos sin SKU comparten FallbackSKU en la consulta remota.
func ResolveSKU(p *entity.Product) string {
	if p == nil || p.SKU == "" {
		return FallbackSKU
	}
	return p.SKU
}

// BuildPurchaseAdjustment arma el stock order de ajuste de inventario para una línea de compra.
// received es la cantidad ingresada y total la suma con la cantidad remota actual.
func BuildPurchaseAdjustment(s Settings, order *entity.Order, line *entity.OrderLine, received, total int) *entity.StockOrderRequest {
	sku := ResolveSKU(line.Product)
	reference := "INV-ADJ-" + sku
	orderDate := formatDateTime(order.DateOrder)
	lineDate := formatDateTime(line.DatePlanned)

	return &entity.StockOrderRequest{
		OrderType:             orderTypeIn,
		Warehouse:             s.Warehouse,
		PrincipalCode:         s.PrincipalCode,
		Reference:             reference,
		JobReference:          reference,
		CustomerReference:     s.CustomerReference,
		OrderDate:             orderDate,
		DateWanted:            orderDate,
		EtaDate:               lineDate,
		Instructions:          s.DefaultInstructions,
		OrderNotes:            s.DefaultOrderNotes,
		DeliveryDocketNumber:  reference,
		SupplierInvoiceNumber: reference,
		StockMethod:           stockMethodN,
		StockOrderLines: []entity.StockOrderLine{
			buildLine(line, fmt.Sprintf("Inventory Adjustment - Product: %s", productName(line.Product)), received, total),
		},
	}
}

// BuildSaleStockOrder arma el stock order de una línea de venta confirmada; las tres fechas son today.
func BuildSaleStockOrder(s Settings, order *entity.Order, line *entity.OrderLine, today time.Time) *entity.StockOrderRequest {
	sku := ResolveSKU(line.Product)
	reference := fmt.Sprintf("SO-PO-%s-%s", order.Name, sku)
	date := today.Format(isoDate)
	qty := line.QuantityInt()

	instructions, notes := s.DefaultInstructions, s.DefaultOrderNotes
	if order.Partner != nil {
		if order.Partner.Email != "" {
			instructions = order.Partner.Email
		}
		if order.Partner.Name != "" {
			notes = order.Partner.Name
		}
	}

	return &entity.StockOrderRequest{
		OrderType:             orderTypeIn,
		Warehouse:             s.Warehouse,
		PrincipalCode:         s.PrincipalCode,
		Reference:             reference,
		JobReference:          reference,
		CustomerReference:     s.CustomerReference,
		OrderDate:             &date,
		DateWanted:            &date,
		EtaDate:               &date,
		Instructions:          instructions,
		OrderNotes:            notes,
		DeliveryDocketNumber:  "DN" + reference,
		SupplierInvoiceNumber: "SI" + reference,
		StockMethod:           stockMethodN,
		StockOrderLines: []entity.StockOrderLine{
			buildLine(line, "Stock Order for Sale Order: "+order.Name, qty, qty),
		},
	}
}

func buildLine(line *entity.OrderLine, notes string, received, ordered int) entity.StockOrderLine {
	p := line.Product
	if p == nil {
		p = &entity.Product{}
	}
	barcode, gtin := FallbackBarcode, FallbackGTIN
	if p.Barcode != "" {
		barcode, gtin = p.Barcode, p.Barcode
	}
	uom := line.UoMName
	if uom == "" {
		uom = FallbackUoM
	}
	return entity.StockOrderLine{
		LineNumber:    firstLineNumber,
		ProductCode:   ResolveSKU(p),
		ItemDesc:      p.Name,
		ItemShortdesc: truncateRunes(p.Name, shortDescMax),
		ItemWidth:     orDefault(p.Width, DefaultWidth),
		ItemLength:    orDefault(p.Length, DefaultLength),
		ItemHeight:    orDefault(p.Height, DefaultHeight),
		ItemVol:       orDefault(p.Volume, DefaultVolume),
		ItemWeight:    orDefault(p.Weight, DefaultWeight),
		ItemBarcode:   barcode,
		ItemType:      itemType,
		ItemGroup:     itemGroup,
		UoM:           uom,
		Notes:         notes,
		QtyReceived:   received,
		QtyOrdered:    ordered,
		GtinBarcode:   gtin,
	}
}

func productName(p *entity.Product) string {
	if p == nil {
		return ""
	}
	return p.Name
}

// orDefault cero cuenta como "no informado".
func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func formatDateTime(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.UTC().Format(isoDateTime)
	return &s
}
