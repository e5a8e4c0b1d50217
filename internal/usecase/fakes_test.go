package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/DRSN-tech/order-backoffice/internal/domain"
	"github.com/DRSN-tech/order-backoffice/internal/editor"
	"github.com/DRSN-tech/order-backoffice/pkg/e"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type memDrafts struct {
	mu        sync.Mutex
	drafts    map[uuid.UUID]*Draft
	deleteErr error
}

func newMemDrafts() *memDrafts {
	return &memDrafts{drafts: make(map[uuid.UUID]*Draft)}
}

func (m *memDrafts) Get(_ context.Context, id uuid.UUID) (*Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.drafts[id]
	if !ok {
		return nil, e.ErrDraftNotFound
	}
	return cloneDraft(d), nil
}

func (m *memDrafts) Save(_ context.Context, d *Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.drafts[d.ID] = cloneDraft(d)
	return nil
}

func (m *memDrafts) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.drafts, id)
	return nil
}

// cloneDraft имитирует сериализацию: хранилище не делит память с вызывающим.
func cloneDraft(d *Draft) *Draft {
	order := *d.Order
	order.Lines = append([]domain.OrderLineItem(nil), d.Order.Lines...)
	return &Draft{ID: d.ID, Order: &order, UpdatedAt: d.UpdatedAt}
}

type memOrders struct {
	nextID    int64
	orders    map[int64]*domain.Order
	lines     map[int64][]domain.OrderLineItem
	createErr error
}

func newMemOrders() *memOrders {
	return &memOrders{
		orders: make(map[int64]*domain.Order),
		lines:  make(map[int64][]domain.OrderLineItem),
	}
}

func (m *memOrders) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	saved := *o
	saved.ID = m.nextID
	saved.Lines = nil
	m.orders[saved.ID] = &saved
	return &saved, nil
}

func (m *memOrders) Update(_ context.Context, o *domain.Order) (*domain.Order, error) {
	if _, ok := m.orders[o.ID]; !ok {
		return nil, e.ErrOrderNotFound
	}
	saved := *o
	saved.Lines = nil
	m.orders[o.ID] = &saved
	return &saved, nil
}

func (m *memOrders) ReplaceLines(_ context.Context, orderID int64, lines []domain.OrderLineItem) error {
	m.lines[orderID] = append([]domain.OrderLineItem(nil), lines...)
	return nil
}

func (m *memOrders) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, e.ErrOrderNotFound
	}
	out := *o
	out.Lines = append([]domain.OrderLineItem(nil), m.lines[id]...)
	return &out, nil
}

func (m *memOrders) List(_ context.Context, limit, offset int) ([]domain.Order, int64, error) {
	ids := make([]int64, 0, len(m.orders))
	for id := range m.orders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	out := make([]domain.Order, 0, limit)
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		out = append(out, *m.orders[ids[i]])
	}
	return out, int64(len(ids)), nil
}

func (m *memOrders) Delete(_ context.Context, id int64) error {
	if _, ok := m.orders[id]; !ok {
		return e.ErrOrderNotFound
	}
	delete(m.orders, id)
	delete(m.lines, id)
	return nil
}

type memPaymentMethods struct {
	methods []domain.PaymentMethod
}

func (m *memPaymentMethods) GetByID(_ context.Context, id int64) (*domain.PaymentMethod, error) {
	for _, pm := range m.methods {
		if pm.ID == id {
			return &pm, nil
		}
	}
	return nil, e.ErrPaymentMethodNotFound
}

func (m *memPaymentMethods) ListActive(_ context.Context) ([]domain.PaymentMethod, error) {
	out := make([]domain.PaymentMethod, 0, len(m.methods))
	for _, pm := range m.methods {
		if pm.IsActive {
			out = append(out, pm)
		}
	}
	return out, nil
}

type memOutbox struct {
	events []*OutboxEvent
}

func (m *memOutbox) Create(_ context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	event.ID = int64(len(m.events) + 1)
	m.events = append(m.events, event)
	return event, nil
}

func (m *memOutbox) GetAndMarkAsProcessing(context.Context, int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (m *memOutbox) MarkAsProcessed(context.Context, int64) error { return nil }

func (m *memOutbox) MarkAsPending(context.Context, int64) error { return nil }

func (m *memOutbox) MarkAsFailed(context.Context, int64, string) error { return nil }

// fakeTx откатывает изменения заказов, если fn вернула ошибку.
type fakeTx struct {
	orders *memOrders
	outbox *memOutbox
	calls  int
}

func (f *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++

	nextID := f.orders.nextID
	orders := make(map[int64]*domain.Order, len(f.orders.orders))
	for k, v := range f.orders.orders {
		orders[k] = v
	}
	lines := make(map[int64][]domain.OrderLineItem, len(f.orders.lines))
	for k, v := range f.orders.lines {
		lines[k] = v
	}
	events := len(f.outbox.events)

	if err := fn(ctx); err != nil {
		f.orders.nextID = nextID
		f.orders.orders = orders
		f.orders.lines = lines
		f.outbox.events = f.outbox.events[:events]
		return err
	}
	return nil
}

type fakeCatalog struct {
	products map[int64]editor.ProductSnapshot
}

func newFakeCatalog(products ...editor.ProductSnapshot) *fakeCatalog {
	c := &fakeCatalog{products: make(map[int64]editor.ProductSnapshot)}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *fakeCatalog) LookupProduct(_ context.Context, id int64) (*editor.ProductSnapshot, error) {
	p, ok := c.products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}
	return &p, nil
}

func (c *fakeCatalog) ListAvailableProducts(_ context.Context, excluding []int64) ([]editor.ProductOption, error) {
	skip := make(map[int64]bool, len(excluding))
	for _, id := range excluding {
		skip[id] = true
	}

	out := make([]editor.ProductOption, 0)
	for id, p := range c.products {
		if !skip[id] {
			out = append(out, editor.ProductOption{ID: id, Name: p.Name})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func snapshot(id int64, name string, price string, stock int32) editor.ProductSnapshot {
	return editor.ProductSnapshot{ID: id, Name: name, Price: decimal.RequireFromString(price), Stock: stock}
}
