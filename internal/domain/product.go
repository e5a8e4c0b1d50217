package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product описывает товар каталога. Для редактора заказов только чтение.
type Product struct {
	ID         int64
	Name       string
	Stock      int32
	Price      decimal.Decimal
	CategoryID int64
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
