package usecase

import (
	"context"

	"github.com/DRSN-tech/order-backoffice/internal/domain"
	"github.com/google/uuid"
)

// DraftRepository хранит незавершённые черновики заказов.
type DraftRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*Draft, error)
	Save(ctx context.Context, draft *Draft) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ReplaceLines(ctx context.Context, orderID int64, lines []domain.OrderLineItem) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, limit, offset int) ([]domain.Order, int64, error)
	Delete(ctx context.Context, id int64) error
}

type PaymentMethodRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.PaymentMethod, error)
	ListActive(ctx context.Context) ([]domain.PaymentMethod, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	MarkAsPending(ctx context.Context, id int64) error
	MarkAsFailed(ctx context.Context, id int64, reason string) error
}

// TxManager выполняет fn в одной транзакции БД. Транзакция передаётся через ctx.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
