package saleorder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockorder-sync/internal/application/dto"
	"github.com/jhoicas/stockorder-sync/internal/domain"
	"github.com/jhoicas/stockorder-sync/internal/domain/entity"
	"github.com/jhoicas/stockorder-sync/internal/domain/repository"
	"github.com/jhoicas/stockorder-sync/pkg/logger"
)

// CreateFromPOSUseCase crea una orden de venta en borrador a partir del detalle enviado por el POS.
// Es construcción local: no llama a push-api.
type CreateFromPOSUseCase struct {
	tx        TxRunner
	validator *validator.Validate
	log       *logger.Logger
	now       func() time.Time
}

// NewCreateFromPOSUseCase construye el caso de uso. now nil usa time.Now.
func NewCreateFromPOSUseCase(tx TxRunner, log *logger.Logger, now func() time.Time) *CreateFromPOSUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if now == nil {
		now = time.Now
	}
	return &CreateFromPOSUseCase{
		tx:        tx,
		validator: newValidator(),
		log:       log.Named("sale_order_from_pos"),
		now:       now,
	}
}

// newValidator registra decimal.Decimal como float64 para poder usar gt/gte/lte en los tags.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// CreateFromJSON parsea el cuerpo del POS y crea la orden. Cuerpo malformado → ErrInvalidInput.
func (uc *CreateFromPOSUseCase) CreateFromJSON(ctx context.Context, raw []byte) (*dto.POSOrderResponse, error) {
	var in dto.POSOrderRequest
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return uc.Create(ctx, in)
}

// Create valida el detalle, verifica los productos y persiste orden y líneas en una transacción.
// Errores: ErrInvalidInput (forma inválida), ErrNotFound (producto inexistente).
func (uc *CreateFromPOSUseCase) Create(ctx context.Context, in dto.POSOrderRequest) (*dto.POSOrderResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, describeValidation(err))
	}

	now := uc.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	order := &entity.Order{
		ID:             uuid.New().String(),
		Kind:           entity.OrderKindSale,
		PartnerID:      in.PartnerID,
		DateOrder:      &today,
		State:          entity.OrderStateDraft,
		AmountTax:      in.TaxAmount,
		CreatedFromPOS: true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := uc.tx.RunSaleOrder(ctx, func(orders repository.OrderRepository, products repository.ProductRepository) error {
		for _, l := range in.Lines {
			p, err := products.GetByID(ctx, l.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("%w: producto %s (línea %s)", domain.ErrNotFound, l.ProductID, l.Key)
			}
			order.Lines = append(order.Lines, entity.OrderLine{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				ProductID: p.ID,
				Product:   p,
				Quantity:  l.Quantity,
				PriceUnit: l.Price,
				Discount:  l.Discount,
			})
		}
		return orders.CreateSaleOrder(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("order_id", order.ID).Str("name", order.Name).Int("lines", len(order.Lines)).Msg("orden de venta creada desde POS")
	return &dto.POSOrderResponse{ID: order.ID, Name: order.Name}, nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
