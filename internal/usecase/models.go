package usecase

import (
	"time"

	"github.com/DRSN-tech/order-backoffice/internal/domain"
	"github.com/DRSN-tech/order-backoffice/internal/editor"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DRAFTS

// Draft — черновик заказа между запросами редактора.
type Draft struct {
	ID        uuid.UUID
	Order     *domain.Order
	UpdatedAt time.Time
}

// DraftRes — состояние черновика и предупреждения, возникшие при последней правке.
type DraftRes struct {
	Draft    *Draft
	Warnings []editor.Warning
}

// UpdateDraftHeaderReq заменяет поля шапки заказа целиком.
type UpdateDraftHeaderReq struct {
	DraftID         uuid.UUID
	CustomerName    string
	Phone           string
	Note            string
	PaymentMethodID int64
	PaidAmount      decimal.NullDecimal
	ChangeAmount    decimal.NullDecimal
}

type SelectProductReq struct {
	DraftID   uuid.UUID
	Line      int
	ProductID int64
}

type SetQuantityReq struct {
	DraftID  uuid.UUID
	Line     int
	Quantity int32
}

// ORDERS

type ListOrdersReq struct {
	Limit  int
	Offset int
}

type ListOrdersRes struct {
	Orders []domain.Order
	Total  int64
	Limit  int
	Offset int
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
	Failed     OutboxStatus = "failed" // Kafka отклонила событие без шанса на повтор
)

type OutboxEventType string

const (
	OrderCreated OutboxEventType = "order.created"
	OrderUpdated OutboxEventType = "order.updated"
)

type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	OrderID     int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// OrderEventPayload — тело события заказа, публикуемое в Kafka.
type OrderEventPayload struct {
	EventID    string           `json:"event_id"`
	EventType  OutboxEventType  `json:"event_type"`
	OrderID    int64            `json:"order_id"`
	TotalPrice decimal.Decimal  `json:"total_price"`
	Lines      []OrderEventLine `json:"lines"`
	OccurredAt time.Time        `json:"occurred_at"`
}

type OrderEventLine struct {
	ProductID int64           `json:"product_id"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// INFRASTRUCTURE

type WriteRawMessageReq struct {
	OrderID int64
	Payload []byte
}

// MAPPERS

func NewDraft(order *domain.Order) *Draft {
	return &Draft{
		ID:    uuid.New(),
		Order: order,
	}
}

func NewDraftRes(draft *Draft, warnings []editor.Warning) *DraftRes {
	return &DraftRes{
		Draft:    draft,
		Warnings: warnings,
	}
}

func NewListOrdersRes(orders []domain.Order, total int64, limit, offset int) *ListOrdersRes {
	return &ListOrdersRes{
		Orders: orders,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
}

func NewWriteRawMessageReq(orderID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		OrderID: orderID,
		Payload: payload,
	}
}

func NewOrderEventPayload(eventID string, eventType OutboxEventType, order *domain.Order, occurredAt time.Time) *OrderEventPayload {
	lines := make([]OrderEventLine, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, OrderEventLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}

	return &OrderEventPayload{
		EventID:    eventID,
		EventType:  eventType,
		OrderID:    order.ID,
		TotalPrice: order.TotalPrice,
		Lines:      lines,
		OccurredAt: occurredAt,
	}
}
