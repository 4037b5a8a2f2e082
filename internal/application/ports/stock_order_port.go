package ports

import (
	"context"

	"github.com/jhoicas/stockorder-sync/internal/domain/entity"
)

// StockOrderClient puerto de salida hacia la API de stock orders del WMS (push-api).
// Las fallas se devuelven como *domain.RemoteError; cada llamada se intenta una sola vez.
type StockOrderClient interface {
	// FetchCurrentQuantity devuelve la cantidad remota del SKU para el par principal/cliente.
	// Devuelve 0 si no hay coincidencia; ante status no aceptado o JSON inválido devuelve 0 y el error.
	FetchCurrentQuantity(ctx context.Context, principalCode, customerReference, sku string) (int, error)

	// SubmitStockOrder envía el stock order completo. Con status aceptado y cuerpo ilegible
	// devuelve el resultado (sin OrderNo) junto con un error de parseo.
	SubmitStockOrder(ctx context.Context, req *entity.StockOrderRequest) (*entity.SubmitResult, error)
}
