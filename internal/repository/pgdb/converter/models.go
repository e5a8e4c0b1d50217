package converter

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID         int64           `db:"id"`
	Name       string          `db:"name"`
	Stock      int32           `db:"stock"`
	Price      decimal.Decimal `db:"price"`
	CategoryID int64           `db:"category_id"`
	IsActive   bool            `db:"is_active"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  *time.Time      `db:"updated_at"`
}

// PaymentMethodModel представляет запись таблицы payment_methods.
type PaymentMethodModel struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
}

// OrderModel представляет запись таблицы orders вместе с именем способа оплаты.
type OrderModel struct {
	ID                int64               `db:"id"`
	CustomerName      string              `db:"customer_name"`
	Phone             string              `db:"phone"`
	Note              string              `db:"note"`
	PaymentMethodID   int64               `db:"payment_method_id"`
	PaymentMethodName string              `db:"payment_method_name"`
	TotalPrice        decimal.Decimal     `db:"total_price"`
	PaidAmount        decimal.NullDecimal `db:"paid_amount"`
	ChangeAmount      decimal.NullDecimal `db:"change_amount"`
	CreatedAt         time.Time           `db:"created_at"`
	UpdatedAt         *time.Time          `db:"updated_at"`
}

// OrderLineItemModel представляет запись таблицы order_line_items.
type OrderLineItemModel struct {
	ID          int64           `db:"id"`
	OrderID     int64           `db:"order_id"`
	ProductID   int64           `db:"product_id"`
	ProductName string          `db:"product_name"`
	Quantity    int32           `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
}

// OutboxEventModel представляет запись таблицы outbox_events.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	OrderID     int64      `db:"order_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
