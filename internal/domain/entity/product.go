package entity

import "time"

// Product representa un producto del sistema de órdenes.
// SKU y Barcode pueden venir vacíos; las dimensiones en cero significan "no informado".
type Product struct {
	ID        string
	SKU       string // default_code del producto
	Name      string
	Barcode   string
	Width     float64
	Length    float64
	Height    float64
	Volume    float64
	Weight    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
