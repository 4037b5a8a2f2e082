package stockorder_test

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/stockorder-sync/internal/domain"
	"github.com/jhoicas/stockorder-sync/internal/domain/entity"
	"github.com/jhoicas/stockorder-sync/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de repositorio y cliente
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	mu          sync.Mutex
	orders      map[string]*entity.Order
	annotations map[string][]string
	notes       map[string]string
	confirmed   []string
	confirmErr  error
	failOn      string // Confirm falla solo para este ID
	setNoteErr  error
}

func newFakeOrderRepo(orders ...*entity.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{
		orders:      map[string]*entity.Order{},
		annotations: map[string][]string{},
		notes:       map[string]string{},
	}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) get(kind entity.OrderKind, id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Kind != kind {
		return nil, nil
	}
	return o, nil
}

func (r *fakeOrderRepo) GetPurchaseOrder(_ context.Context, id string) (*entity.Order, error) {
	return r.get(entity.OrderKindPurchase, id)
}

func (r *fakeOrderRepo) GetSaleOrder(_ context.Context, id string) (*entity.Order, error) {
	return r.get(entity.OrderKindSale, id)
}

func (r *fakeOrderRepo) CreateSaleOrder(_ context.Context, o *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) Confirm(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.confirmErr != nil {
		return r.confirmErr
	}
	if r.failOn == id {
		return domain.ErrConflict
	}
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.State = entity.OrderStateConfirmed
	r.confirmed = append(r.confirmed, id)
	return nil
}

func (r *fakeOrderRepo) SetNote(_ context.Context, id, note string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.setNoteErr != nil {
		return r.setNoteErr
	}
	o, ok := r.orders[id]
	if !ok || !o.HasNoteField() {
		return errors.New("la orden no tiene campo de nota")
	}
	r.notes[id] = note
	return nil
}

func (r *fakeOrderRepo) AppendAnnotation(_ context.Context, id, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.annotations[id] = append(r.annotations[id], body)
	return nil
}

func (r *fakeOrderRepo) ListAnnotations(_ context.Context, id string) ([]*entity.Annotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Annotation, 0, len(r.annotations[id]))
	for _, b := range r.annotations[id] {
		out = append(out, &entity.Annotation{OrderID: id, Body: b, MessageType: entity.AnnotationTypeComment})
	}
	return out, nil
}

// fakeTxRunner deshace los cambios de estado si fn falla.
type fakeTxRunner struct {
	repo *fakeOrderRepo
	runs int
}

func (t *fakeTxRunner) RunOrders(_ context.Context, fn func(orders repository.OrderRepository) error) error {
	t.runs++
	t.repo.mu.Lock()
	states := make(map[string]string, len(t.repo.orders))
	for id, o := range t.repo.orders {
		states[id] = o.State
	}
	confirmed := append([]string(nil), t.repo.confirmed...)
	t.repo.mu.Unlock()

	if err := fn(t.repo); err != nil {
		t.repo.mu.Lock()
		defer t.repo.mu.Unlock()
		for id, st := range states {
			t.repo.orders[id].State = st
		}
		t.repo.confirmed = confirmed
		return err
	}
	return nil
}

type fakeClient struct {
	fetch     func(sku string) (int, error)
	submit    func(req *entity.StockOrderRequest) (*entity.SubmitResult, error)
	submitted []*entity.StockOrderRequest
	fetched   []string
}

func (c *fakeClient) FetchCurrentQuantity(_ context.Context, _, _, sku string) (int, error) {
	c.fetched = append(c.fetched, sku)
	if c.fetch == nil {
		return 0, nil
	}
	return c.fetch(sku)
}

func (c *fakeClient) SubmitStockOrder(_ context.Context, req *entity.StockOrderRequest) (*entity.SubmitResult, error) {
	c.submitted = append(c.submitted, req)
	if c.submit == nil {
		return &entity.SubmitResult{StatusCode: 201}, nil
	}
	return c.submit(req)
}
