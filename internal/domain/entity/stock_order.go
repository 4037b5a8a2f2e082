package entity

// StockOrderRequest cuerpo de POST /v2/StockOrder en push-api.
// Los nombres JSON respetan el contrato externo (incluye claves en PascalCase).
type StockOrderRequest struct {
	OrderType             string           `json:"orderType"`
	Warehouse             string           `json:"warehouse"`
	PrincipalCode         string           `json:"principalCode"`
	Reference             string           `json:"reference"`
	JobReference          string           `json:"jobReference"`
	CustomerReference     string           `json:"customerReference"`
	OrderDate             *string          `json:"orderDate"`
	DateWanted            *string          `json:"dateWanted"`
	EtaDate               *string          `json:"etaDate"`
	Instructions          string           `json:"instructions"`
	OrderNotes            string           `json:"orderNotes"`
	DeliveryDocketNumber  string           `json:"deliveryDocketNumber"`
	SupplierInvoiceNumber string           `json:"supplierInvoiceNumber"`
	StockMethod           string           `json:"stockMethod"`
	StockOrderLines       []StockOrderLine `json:"stockOrderLines"`
}

// StockOrderLine línea de un stock order remoto.
type StockOrderLine struct {
	LineNumber    int     `json:"lineNumber"`
	ProductCode   string  `json:"productCode"`
	ItemDesc      string  `json:"ItemDesc"`
	ItemShortdesc string  `json:"ItemShortdesc"`
	ItemWidth     float64 `json:"ItemWidth"`
	ItemLength    float64 `json:"ItemLength"`
	ItemHeight    float64 `json:"ItemHeight"`
	ItemVol       float64 `json:"ItemVol"`
	ItemWeight    float64 `json:"ItemWeight"`
	ItemBarcode   string  `json:"ItemBarcode"`
	ItemType      string  `json:"ItemType"`
	ItemGroup     string  `json:"ItemGroup"`
	UoM           string  `json:"uom"`
	Notes         string  `json:"notes"`
	QtyReceived   int     `json:"qtyReceived"`
	QtyOrdered    int     `json:"qtyOrdered"`
	GtinBarcode   string  `json:"gtinBarcode"`
}

// SubmitResult resultado de un POST aceptado (200/201).
// OrderNo vacío significa que la respuesta no traía productStockOrder.orderNo.
type SubmitResult struct {
	StatusCode int
	OrderNo    string
}
