// Package pushapi implementa el cliente REST del WMS externo (push-api):
// lectura de stock orders por principal/cliente y alta de nuevos stock orders.
package pushapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/stockorder-sync/internal/application/ports"
	"github.com/jhoicas/stockorder-sync/internal/domain"
	"github.com/jhoicas/stockorder-sync/internal/domain/entity"
	"github.com/jhoicas/stockorder-sync/pkg/config"
	"github.com/jhoicas/stockorder-sync/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa StockOrderClient.
var _ ports.StockOrderClient = (*Client)(nil)

const (
	stockOrderPath = "/v2/StockOrder"

	opGetStockOrder  = "get_stock_order"
	opPostStockOrder = "post_stock_order"

	// DefaultTimeout tiempo máximo por llamada.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBodyBytes tope de lectura de una respuesta. El GET lista todos los
	// stock orders del cliente, así que el tope es holgado.
	DefaultMaxBodyBytes = 32 << 20
)

// ErrBodyTooLarge la respuesta supera el tope de lectura; nunca se parsea un cuerpo truncado.
var ErrBodyTooLarge = errors.New("pushapi: cuerpo de respuesta excede el tope")

// Client adaptador HTTP de push-api. Usa net/http; una sola tentativa por llamada, sin reintentos.
type Client struct {
	baseURL    string
	keys       config.KeyProvider
	httpClient *http.Client
	maxBody    int64
	log        *logger.Logger
}

// NewClient construye el cliente. timeout <= 0 usa DefaultTimeout.
// La API key se pide a keys en cada llamada; si no está disponible se registra el error
// y la petición se envía igual (fallará en la capa de autorización remota).
func NewClient(baseURL string, timeout time.Duration, keys config.KeyProvider, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		keys:       keys,
		httpClient: &http.Client{Timeout: timeout},
		maxBody:    DefaultMaxBodyBytes,
		log:        log.Named("pushapi"),
	}
}

// ── Respuestas ────────────────────────────────────────────────────────────────

type stockOrdersResponse struct {
	ProductStockOrders []struct {
		Lines []struct {
			SKU flexString      `json:"sku"`
			Qty json.RawMessage `json:"qty"`
		} `json:"lines"`
	} `json:"productStockOrders"`
}

type submitResponse struct {
	ProductStockOrder *struct {
		OrderNo flexOrderNo `json:"orderNo"`
	} `json:"productStockOrder"`
}

// ── FetchCurrentQuantity ──────────────────────────────────────────────────────

// FetchCurrentQuantity GET /v2/StockOrder/{principalCode}/{customerReference}.
// Recorre productStockOrders[].lines[] buscando el SKU (comparación exacta tras TrimSpace).
// Dentro de un stock order gana la primera línea; si varios stock orders traen el SKU, gana el último.
// El qty solo se convierte en las líneas que coinciden; un qty raro en otro SKU no afecta.
func (c *Client) FetchCurrentQuantity(ctx context.Context, principalCode, customerReference, sku string) (int, error) {
	endpoint := fmt.Sprintf("%s%s/%s/%s", c.baseURL, stockOrderPath,
		url.PathEscape(principalCode), url.PathEscape(customerReference))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, &domain.RemoteError{Kind: domain.RemoteTransport, Op: opGetStockOrder, Err: err}
	}
	c.setHeaders(req)

	status, body, err := c.do(req, opGetStockOrder)
	if err != nil {
		return 0, err
	}
	if !accepted(status) {
		return 0, &domain.RemoteError{Kind: domain.RemoteHTTPStatus, Op: opGetStockOrder, StatusCode: status, Body: string(body)}
	}

	var data stockOrdersResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.log.Error().Err(err).Str("op", opGetStockOrder).Msg("respuesta JSON inválida")
		return 0, &domain.RemoteError{Kind: domain.RemoteParse, Op: opGetStockOrder, StatusCode: status, Body: string(body), Err: err}
	}

	want := strings.TrimSpace(sku)
	qty := 0
	for _, order := range data.ProductStockOrders {
		for _, line := range order.Lines {
			if strings.TrimSpace(string(line.SKU)) != want {
				continue
			}
			n, err := parseQty(line.Qty)
			if err != nil {
				return 0, &domain.RemoteError{Kind: domain.RemoteParse, Op: opGetStockOrder, StatusCode: status, Body: string(body), Err: err}
			}
			qty = n
			break
		}
	}
	return qty, nil
}

// ── SubmitStockOrder ──────────────────────────────────────────────────────────

// SubmitStockOrder POST /v2/StockOrder con el payload completo.
// 200/201 → SubmitResult (OrderNo vacío si la respuesta no lo trae); otro status → RemoteError con status y cuerpo.
// Si el status es aceptado pero el cuerpo no es JSON se devuelven ambos: el resultado y un RemoteError de parseo.
func (c *Client) SubmitStockOrder(ctx context.Context, payload *entity.StockOrderRequest) (*entity.SubmitResult, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("pushapi: serializar stock order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+stockOrderPath, bytes.NewReader(raw))
	if err != nil {
		return nil, &domain.RemoteError{Kind: domain.RemoteTransport, Op: opPostStockOrder, Err: err}
	}
	c.setHeaders(req)

	status, body, err := c.do(req, opPostStockOrder)
	if err != nil {
		return nil, err
	}

	c.log.Info().Str("reference", payload.Reference).Int("status", status).Msg("POST stock order")

	if !accepted(status) {
		c.log.Warn().Int("status", status).Str("body", string(body)).Msg("stock order rechazado")
		return nil, &domain.RemoteError{Kind: domain.RemoteHTTPStatus, Op: opPostStockOrder, StatusCode: status, Body: string(body)}
	}

	result := &entity.SubmitResult{StatusCode: status}

	var data submitResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.log.Error().Err(err).Str("op", opPostStockOrder).Msg("respuesta JSON inválida")
		return result, &domain.RemoteError{Kind: domain.RemoteParse, Op: opPostStockOrder, StatusCode: status, Body: string(body), Err: err}
	}
	if data.ProductStockOrder != nil && data.ProductStockOrder.OrderNo.set {
		result.OrderNo = data.ProductStockOrder.OrderNo.text
	}
	return result, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	key, err := c.keys.APIKey()
	if err != nil {
		c.log.Error().Err(err).Msg("no se pudo obtener la API key; se envía la petición sin Authorization")
		return
	}
	req.Header.Set("Authorization", key)
}

// do ejecuta la petición y lee el cuerpo completo, clasificando timeouts.
// Se lee un byte más que el tope para detectar el desborde.
func (c *Client) do(req *http.Request, op string) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, domain.RemoteErrorFrom(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return resp.StatusCode, nil, domain.RemoteErrorFrom(op, err)
	}
	if int64(len(body)) > c.maxBody {
		c.log.Error().Str("op", op).Int64("max_bytes", c.maxBody).Msg("respuesta demasiado grande")
		return resp.StatusCode, nil, &domain.RemoteError{
			Kind:       domain.RemoteTransport,
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w (%d bytes)", ErrBodyTooLarge, c.maxBody),
		}
	}
	return resp.StatusCode, body, nil
}

func accepted(status int) bool {
	return status == http.StatusOK || status == http.StatusCreated
}
