package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MaxCustomerNameLen = 255
	MaxPhoneLen        = 255
)

// Order — заказ вместе со строками. TotalPrice всегда вычисляется из строк.
type Order struct {
	ID                int64
	CustomerName      string
	Phone             string
	Note              string
	PaymentMethodID   int64
	PaymentMethodName string
	TotalPrice        decimal.Decimal
	PaidAmount        decimal.NullDecimal
	ChangeAmount      decimal.NullDecimal
	CreatedAt         time.Time
	UpdatedAt         *time.Time
	Lines             []OrderLineItem
}

// IsNew сообщает, что заказ ещё не сохранён.
func (o *Order) IsNew() bool {
	return o.ID == 0
}

// OrderLineItem — строка заказа.
// ProductID == 0 означает, что товар не выбран, Quantity == 0 — что количество не задано.
type OrderLineItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	Quantity    int32
	UnitPrice   decimal.Decimal // цена на момент выбора товара
	Stock       int32           // потолок остатка, только для черновика
}

// HasProduct сообщает, выбран ли товар в строке.
func (l OrderLineItem) HasProduct() bool {
	return l.ProductID != 0
}

// HasQuantity сообщает, задано ли количество.
func (l OrderLineItem) HasQuantity() bool {
	return l.Quantity > 0
}

// IsComplete — строка участвует в сумме заказа.
func (l OrderLineItem) IsComplete() bool {
	return l.HasProduct() && l.HasQuantity()
}

// Subtotal возвращает UnitPrice * Quantity.
func (l OrderLineItem) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt32(l.Quantity))
}
