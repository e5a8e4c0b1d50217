package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/DRSN-tech/order-backoffice/internal/cfg"
	"github.com/DRSN-tech/order-backoffice/internal/domain"
	"github.com/DRSN-tech/order-backoffice/internal/editor"
	"github.com/DRSN-tech/order-backoffice/pkg/e"
	"github.com/DRSN-tech/order-backoffice/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderUseCase реализует редактирование черновиков и оформление заказов.
type OrderUseCase struct {
	drafts         DraftRepository
	orderRepo      OrderRepository
	paymentMethods PaymentMethodRepository
	outboxRepo     OutboxRepository
	catalog        editor.Catalog
	txManager      TxManager
	cfg            *cfg.OrderCfg
	logger         logger.Logger
	now            func() time.Time
}

func NewOrderUC(
	drafts DraftRepository,
	orderRepo OrderRepository,
	paymentMethods PaymentMethodRepository,
	outboxRepo OutboxRepository,
	catalog editor.Catalog,
	txManager TxManager,
	cfg *cfg.OrderCfg,
	logger logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		drafts:         drafts,
		orderRepo:      orderRepo,
		paymentMethods: paymentMethods,
		outboxRepo:     outboxRepo,
		catalog:        catalog,
		txManager:      txManager,
		cfg:            cfg,
		logger:         logger,
		now:            time.Now,
	}
}

// StartDraft создаёт черновик нового заказа с одной пустой строкой.
func (o *OrderUseCase) StartDraft(ctx context.Context) (*DraftRes, error) {
	const op = "OrderUseCase.StartDraft"

	draft := NewDraft(&domain.Order{})
	ed := editor.New(draft.Order, o.catalog, o.logger)
	ed.AddLine()

	if err := o.saveDraft(ctx, draft); err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewDraftRes(draft, ed.DrainWarnings()), nil
}

// StartEditDraft загружает сохранённый заказ в черновик.
// Цены строк остаются зафиксированными, остатки запрашиваются заново.
func (o *OrderUseCase) StartEditDraft(ctx context.Context, orderID int64) (*DraftRes, error) {
	const op = "OrderUseCase.StartEditDraft"

	order, err := o.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	for i := range order.Lines {
		line := &order.Lines[i]
		snapshot, err := o.catalog.LookupProduct(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, e.ErrProductNotFound) {
				o.logger.Warnf("order %d line %d: product %d no longer exists", order.ID, i, line.ProductID)
				line.Stock = 0
				continue
			}
			return nil, e.Wrap(op, err)
		}
		line.Stock = snapshot.Stock
	}

	draft := NewDraft(order)
	ed := editor.New(draft.Order, o.catalog, o.logger)

	if err := o.saveDraft(ctx, draft); err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewDraftRes(draft, ed.DrainWarnings()), nil
}

func (o *OrderUseCase) GetDraft(ctx context.Context, draftID uuid.UUID) (*DraftRes, error) {
	const op = "OrderUseCase.GetDraft"

	draft, err := o.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewDraftRes(draft, nil), nil
}

func (o *OrderUseCase) DiscardDraft(ctx context.Context, draftID uuid.UUID) error {
	const op = "OrderUseCase.DiscardDraft"

	if err := o.drafts.Delete(ctx, draftID); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// UpdateDraftHeader заменяет шапку заказа. Обязательность полей проверяется при оформлении.
func (o *OrderUseCase) UpdateDraftHeader(ctx context.Context, req *UpdateDraftHeaderReq) (*DraftRes, error) {
	const op = "OrderUseCase.UpdateDraftHeader"

	if err := validateHeaderFormat(req.CustomerName, req.Phone); err != nil {
		return nil, e.Wrap(op, err)
	}
	if isNegative(req.PaidAmount) || isNegative(req.ChangeAmount) {
		return nil, e.Wrap(op, e.ErrNegativeAmount)
	}
	if req.PaymentMethodID < 0 {
		return nil, e.Wrap(op, e.ErrInvalidID)
	}

	res, err := o.withEditor(ctx, req.DraftID, func(ed *editor.Editor) error {
		order := ed.Order()
		if order.PaymentMethodID != req.PaymentMethodID {
			name, err := o.paymentMethodName(ctx, req.PaymentMethodID)
			if err != nil {
				return err
			}
			order.PaymentMethodName = name
		}

		order.CustomerName = strings.TrimSpace(req.CustomerName)
		order.Phone = strings.TrimSpace(req.Phone)
		order.Note = req.Note
		order.PaymentMethodID = req.PaymentMethodID
		order.PaidAmount = req.PaidAmount
		order.ChangeAmount = req.ChangeAmount
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return res, nil
}

func (o *OrderUseCase) AddLine(ctx context.Context, draftID uuid.UUID) (*DraftRes, error) {
	const op = "OrderUseCase.AddLine"

	res, err := o.withEditor(ctx, draftID, func(ed *editor.Editor) error {
		ed.AddLine()
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return res, nil
}

func (o *OrderUseCase) SelectProduct(ctx context.Context, req *SelectProductReq) (*DraftRes, error) {
	const op = "OrderUseCase.SelectProduct"

	res, err := o.withEditor(ctx, req.DraftID, func(ed *editor.Editor) error {
		return ed.SelectProduct(ctx, req.Line, req.ProductID)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return res, nil
}

func (o *OrderUseCase) SetQuantity(ctx context.Context, req *SetQuantityReq) (*DraftRes, error) {
	const op = "OrderUseCase.SetQuantity"

	res, err := o.withEditor(ctx, req.DraftID, func(ed *editor.Editor) error {
		return ed.SetQuantity(req.Line, req.Quantity)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return res, nil
}

func (o *OrderUseCase) ClearQuantity(ctx context.Context, draftID uuid.UUID, line int) (*DraftRes, error) {
	const op = "OrderUseCase.ClearQuantity"

	res, err := o.withEditor(ctx, draftID, func(ed *editor.Editor) error {
		return ed.ClearQuantity(line)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return res, nil
}

func (o *OrderUseCase) RemoveLine(ctx context.Context, draftID uuid.UUID, line int) (*DraftRes, error) {
	const op = "OrderUseCase.RemoveLine"

	res, err := o.withEditor(ctx, draftID, func(ed *editor.Editor) error {
		return ed.RemoveLine(line)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return res, nil
}

// LineOptions возвращает товары, которые можно выбрать в строке.
func (o *OrderUseCase) LineOptions(ctx context.Context, draftID uuid.UUID, line int) ([]editor.ProductOption, error) {
	const op = "OrderUseCase.LineOptions"

	draft, err := o.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	options, err := editor.New(draft.Order, o.catalog, o.logger).Options(ctx, line)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return options, nil
}

// SubmitDraft проверяет черновик и атомарно сохраняет заказ, его строки и событие outbox.
func (o *OrderUseCase) SubmitDraft(ctx context.Context, draftID uuid.UUID) (*domain.Order, error) {
	const op = "OrderUseCase.SubmitDraft"

	draft, err := o.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// New пересчитывает итог по строкам
	ed := editor.New(draft.Order, o.catalog, o.logger)
	order := ed.Order()

	if err := o.validateSubmission(ctx, order); err != nil {
		return nil, e.Wrap(op, err)
	}

	if o.cfg.StrictStockCheck {
		if err := o.checkStock(ctx, order); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	eventType := OrderUpdated
	if order.IsNew() {
		eventType = OrderCreated
	}

	err = o.txManager.Do(ctx, func(ctx context.Context) error {
		var saved *domain.Order
		var err error
		if order.IsNew() {
			saved, err = o.orderRepo.Create(ctx, order)
		} else {
			saved, err = o.orderRepo.Update(ctx, order)
		}
		if err != nil {
			return err
		}
		order.ID = saved.ID
		order.CreatedAt = saved.CreatedAt
		order.UpdatedAt = saved.UpdatedAt

		for i := range order.Lines {
			order.Lines[i].OrderID = order.ID
		}
		if err := o.orderRepo.ReplaceLines(ctx, order.ID, order.Lines); err != nil {
			return err
		}

		event, err := o.newOrderEvent(eventType, order)
		if err != nil {
			return err
		}
		if _, err := o.outboxRepo.Create(ctx, event); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Черновик больше не нужен. Ошибка удаления не отменяет сохранённый заказ
	if err := o.drafts.Delete(ctx, draftID); err != nil {
		o.logger.Warnf("Failed to delete submitted draft %s: %v", draftID, e.Wrap(op, err))
	}

	o.logger.Infof("order %d saved (%s), total %s", order.ID, eventType, order.TotalPrice.StringFixed(2))

	return order, nil
}

func (o *OrderUseCase) ListOrders(ctx context.Context, req *ListOrdersReq) (*ListOrdersRes, error) {
	const op = "OrderUseCase.ListOrders"

	limit := req.Limit
	if limit <= 0 {
		limit = o.cfg.ListDefaultLimit
	}
	if limit > o.cfg.ListMaxLimit {
		limit = o.cfg.ListMaxLimit
	}
	offset := max(req.Offset, 0)

	orders, total, err := o.orderRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewListOrdersRes(orders, total, limit, offset), nil
}

func (o *OrderUseCase) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	const op = "OrderUseCase.GetOrder"

	order, err := o.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return order, nil
}

// DeleteOrder удаляет заказ. Строки удаляются каскадно.
func (o *OrderUseCase) DeleteOrder(ctx context.Context, orderID int64) error {
	const op = "OrderUseCase.DeleteOrder"

	if err := o.orderRepo.Delete(ctx, orderID); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (o *OrderUseCase) ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	const op = "OrderUseCase.ListPaymentMethods"

	methods, err := o.paymentMethods.ListActive(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return methods, nil
}

// withEditor загружает черновик, применяет правку и сохраняет результат.
// При ошибке правки черновик не сохраняется.
func (o *OrderUseCase) withEditor(ctx context.Context, draftID uuid.UUID, fn func(ed *editor.Editor) error) (*DraftRes, error) {
	draft, err := o.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	ed := editor.New(draft.Order, o.catalog, o.logger)
	if err := fn(ed); err != nil {
		return nil, err
	}

	if err := o.saveDraft(ctx, draft); err != nil {
		return nil, err
	}

	return NewDraftRes(draft, ed.DrainWarnings()), nil
}

func (o *OrderUseCase) saveDraft(ctx context.Context, draft *Draft) error {
	draft.UpdatedAt = o.now()
	return o.drafts.Save(ctx, draft)
}

// paymentMethodName возвращает название способа оплаты для шапки черновика.
// Неизвестный id не ошибка: он отклоняется при оформлении.
func (o *OrderUseCase) paymentMethodName(ctx context.Context, id int64) (string, error) {
	if id == 0 {
		return "", nil
	}

	method, err := o.paymentMethods.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrPaymentMethodNotFound) {
			return "", nil
		}
		return "", err
	}

	return method.Name, nil
}

// validateSubmission проверяет обязательные поля шапки и полноту строк.
func (o *OrderUseCase) validateSubmission(ctx context.Context, order *domain.Order) error {
	if strings.TrimSpace(order.CustomerName) == "" {
		return e.ErrCustomerNameRequired
	}
	if err := validateHeaderFormat(order.CustomerName, order.Phone); err != nil {
		return err
	}
	if isNegative(order.PaidAmount) || isNegative(order.ChangeAmount) {
		return e.ErrNegativeAmount
	}

	seen := make(map[int64]struct{}, len(order.Lines))
	for _, l := range order.Lines {
		if !l.IsComplete() {
			return e.ErrIncompleteLineItem
		}
		if _, ok := seen[l.ProductID]; ok {
			return e.ErrDuplicateProductSelection
		}
		seen[l.ProductID] = struct{}{}
	}

	if order.PaymentMethodID <= 0 {
		return e.ErrPaymentMethodRequired
	}
	if _, err := o.paymentMethods.GetByID(ctx, order.PaymentMethodID); err != nil {
		return err
	}

	return nil
}

// checkStock повторно сверяет количество с текущими остатками каталога.
func (o *OrderUseCase) checkStock(ctx context.Context, order *domain.Order) error {
	for _, l := range order.Lines {
		snapshot, err := o.catalog.LookupProduct(ctx, l.ProductID)
		if err != nil {
			return err
		}
		if l.Quantity > snapshot.Stock {
			o.logger.Warnf("product %d: requested %d, in stock %d", l.ProductID, l.Quantity, snapshot.Stock)
			return e.ErrInsufficientStock
		}
	}

	return nil
}

func (o *OrderUseCase) newOrderEvent(eventType OutboxEventType, order *domain.Order) (*OutboxEvent, error) {
	eventID := uuid.NewString()
	now := o.now()

	payload, err := json.Marshal(NewOrderEventPayload(eventID, eventType, order, now))
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		OrderID:   order.ID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: now,
	}, nil
}

func validateHeaderFormat(customerName, phone string) error {
	if utf8.RuneCountInString(strings.TrimSpace(customerName)) > domain.MaxCustomerNameLen {
		return e.ErrCustomerNameTooLong
	}
	if utf8.RuneCountInString(strings.TrimSpace(phone)) > domain.MaxPhoneLen {
		return e.ErrPhoneTooLong
	}

	return nil
}

func isNegative(d decimal.NullDecimal) bool {
	return d.Valid && d.Decimal.IsNegative()
}
