package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockorder-sync/internal/domain"
	"github.com/jhoicas/stockorder-sync/internal/domain/entity"
	"github.com/jhoicas/stockorder-sync/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// GetPurchaseOrder obtiene una orden de compra con cliente, líneas y productos.
func (r *OrderRepo) GetPurchaseOrder(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOrder(ctx, entity.OrderKindPurchase, id)
}

// GetSaleOrder obtiene una orden de venta con cliente, líneas y productos.
func (r *OrderRepo) GetSaleOrder(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOrder(ctx, entity.OrderKindSale, id)
}

func (r *OrderRepo) getOrder(ctx context.Context, kind entity.OrderKind, id string) (*entity.Order, error) {
	query := `
		SELECT o.id, o.kind, o.name, COALESCE(o.partner_id, ''), o.date_order, o.state, o.note,
		       o.amount_tax, o.created_from_pos, o.created_at, o.updated_at,
		       COALESCE(p.name, ''), COALESCE(p.email, '')
		FROM orders o
		LEFT JOIN partners p ON p.id = o.partner_id
		WHERE o.id = $1 AND o.kind = $2`
	var o entity.Order
	var partner entity.Partner
	err := r.q.QueryRow(ctx, query, id, string(kind)).Scan(
		&o.ID, &o.Kind, &o.Name, &o.PartnerID, &o.DateOrder, &o.State, &o.Note,
		&o.AmountTax, &o.CreatedFromPOS, &o.CreatedAt, &o.UpdatedAt,
		&partner.Name, &partner.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if o.PartnerID != "" {
		partner.ID = o.PartnerID
		o.Partner = &partner
	}

	lines, err := r.getLines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

func (r *OrderRepo) getLines(ctx context.Context, orderID string) ([]entity.OrderLine, error) {
	query := `
		SELECT l.id, l.order_id, l.product_id, l.quantity, l.price_unit, l.discount, l.date_planned, l.uom_name,
		       p.id, p.sku, p.name, p.barcode, p.width, p.length, p.height, p.volume, p.weight, p.created_at, p.updated_at
		FROM order_lines l
		JOIN products p ON p.id = l.product_id
		WHERE l.order_id = $1
		ORDER BY l.sequence, l.id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()

	var out []entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		var p entity.Product
		if err := rows.Scan(
			&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &l.PriceUnit, &l.Discount, &l.DatePlanned, &l.UoMName,
			&p.ID, &p.SKU, &p.Name, &p.Barcode, &p.Width, &p.Length, &p.Height, &p.Volume, &p.Weight, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		l.Product = &p
		out = append(out, l)
	}
	return out, rows.Err()
}

// CreateSaleOrder persiste cabecera y líneas; asigna el nombre S00001, S00002, ... desde la secuencia.
// Debe ejecutarse dentro de TxRunner.RunSaleOrder para que sea atómico.
func (r *OrderRepo) CreateSaleOrder(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.q.QueryRow(ctx, `SELECT 'S' || lpad(nextval('sale_order_name_seq')::text, 5, '0')`).Scan(&order.Name); err != nil {
		return fmt.Errorf("next sale order name: %w", err)
	}

	query := `
		INSERT INTO orders (id, kind, name, partner_id, date_order, state, note, amount_tax, created_from_pos, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, '', $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		order.ID, string(entity.OrderKindSale), order.Name, order.PartnerID, order.DateOrder,
		order.State, order.AmountTax, order.CreatedFromPOS, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: partner %s", domain.ErrNotFound, order.PartnerID)
		}
		return fmt.Errorf("insert sale order: %w", err)
	}

	lineQuery := `
		INSERT INTO order_lines (id, order_id, sequence, product_id, quantity, price_unit, discount, date_planned, uom_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for i := range order.Lines {
		l := &order.Lines[i]
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.OrderID = order.ID
		if _, err := r.q.Exec(ctx, lineQuery,
			l.ID, l.OrderID, i+1, l.ProductID, l.Quantity, l.PriceUnit, l.Discount, l.DatePlanned, l.UoMName,
		); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, l.ProductID)
			}
			return fmt.Errorf("insert sale order line: %w", err)
		}
	}
	return nil
}

// Confirm pasa una orden de venta a confirmada. Ya confirmada → no-op; cancelada → ErrConflict.
func (r *OrderRepo) Confirm(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE orders SET state = $3, updated_at = $4
		WHERE id = $1 AND kind = $2 AND state IN ('draft', 'sent')`,
		id, string(entity.OrderKindSale), entity.OrderStateConfirmed, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("confirm order: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var state string
	err = r.q.QueryRow(ctx, `SELECT state FROM orders WHERE id = $1 AND kind = $2`, id, string(entity.OrderKindSale)).Scan(&state)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("confirm order: %w", err)
	}
	if state == entity.OrderStateConfirmed {
		return nil
	}
	return fmt.Errorf("%w: orden en estado %s", domain.ErrConflict, state)
}

// SetNote sobrescribe la nota de una orden de compra (última escritura gana).
func (r *OrderRepo) SetNote(ctx context.Context, orderID, note string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE orders SET note = $3, updated_at = $4 WHERE id = $1 AND kind = $2`,
		orderID, string(entity.OrderKindPurchase), note, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("set order note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AppendAnnotation agrega una nota al registro de actividad de la orden.
func (r *OrderRepo) AppendAnnotation(ctx context.Context, orderID, body string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO order_annotations (id, order_id, body, message_type, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		uuid.New().String(), orderID, body, entity.AnnotationTypeComment, time.Now(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert annotation: %w", err)
	}
	return nil
}

// ListAnnotations lista las notas de una orden en orden cronológico.
func (r *OrderRepo) ListAnnotations(ctx context.Context, orderID string) ([]*entity.Annotation, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, body, message_type, created_at
		FROM order_annotations WHERE order_id = $1
		ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list annotations: %w", err)
	}
	defer rows.Close()

	var out []*entity.Annotation
	for rows.Next() {
		var a entity.Annotation
		if err := rows.Scan(&a.ID, &a.OrderID, &a.Body, &a.MessageType, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan annotation: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
