package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Claves reservadas del detalle de orden enviado por el POS; el resto son líneas.
const (
	POSKeyPartner   = "partner_id"
	POSKeyTaxAmount = "tax_amount"
)

// POSOrderLine línea del detalle POS. Key es la clave de la línea en el objeto original.
type POSOrderLine struct {
	Key       string          `json:"key"`
	ProductID string          `json:"product" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
	Price     decimal.Decimal `json:"price" validate:"gte=0"`
	Discount  decimal.Decimal `json:"discount" validate:"gte=0,lte=100"`
}

// POSOrderRequest detalle de orden del POS:
//
//	{"<línea>": {"product", "quantity", "price", "discount"}, ..., "partner_id": ..., "tax_amount": ...}
//
// El orden de las líneas respeta el orden del documento JSON.
type POSOrderRequest struct {
	PartnerID string          `json:"partner_id" validate:"required"`
	TaxAmount decimal.Decimal `json:"tax_amount" validate:"gte=0"`
	Lines     []POSOrderLine  `json:"lines" validate:"required,min=1,dive"`
}

type posLineWire struct {
	Product  json.RawMessage `json:"product"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Discount decimal.Decimal `json:"discount"`
}

// UnmarshalJSON lee el objeto plano del POS separando las claves reservadas de las líneas.
func (r *POSOrderRequest) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("se esperaba un objeto JSON")
	}

	*r = POSOrderRequest{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("clave %q: %w", key, err)
		}

		switch key {
		case POSKeyPartner:
			if r.PartnerID, err = idString(raw); err != nil {
				return fmt.Errorf("partner_id: %w", err)
			}
		case POSKeyTaxAmount:
			if err := json.Unmarshal(raw, &r.TaxAmount); err != nil {
				return fmt.Errorf("tax_amount: %w", err)
			}
		default:
			if t := bytes.TrimSpace(raw); len(t) == 0 || t[0] != '{' {
				return fmt.Errorf("línea %q: se esperaba un objeto", key)
			}
			var w posLineWire
			if err := json.Unmarshal(raw, &w); err != nil {
				return fmt.Errorf("línea %q: %w", key, err)
			}
			productID, err := idString(w.Product)
			if err != nil {
				return fmt.Errorf("línea %q: product: %w", key, err)
			}
			r.Lines = append(r.Lines, POSOrderLine{
				Key:       key,
				ProductID: productID,
				Quantity:  w.Quantity,
				Price:     w.Price,
				Discount:  w.Discount,
			})
		}
	}
	_, err = dec.Token()
	return err
}

// idString acepta un identificador como string o número; null o ausente queda vacío.
func idString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("identificador inválido: %s", raw)
	}
	return n.String(), nil
}

// POSOrderResponse salida de la creación de una orden de venta desde el POS.
type POSOrderResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OrderBatchRequest ids de órdenes a procesar por una acción.
type OrderBatchRequest struct {
	OrderIDs []string `json:"order_ids"`
}

// AnnotationResponse nota del registro de actividad.
type AnnotationResponse struct {
	ID          string `json:"id"`
	Body        string `json:"body"`
	MessageType string `json:"message_type"`
	CreatedAt   string `json:"created_at"`
}
