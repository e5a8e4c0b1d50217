package editor

import (
	"context"

	"github.com/shopspring/decimal"
)

// Catalog — порт каталога товаров, через который редактор получает цену и остаток.
type Catalog interface {
	// LookupProduct возвращает актуальные цену и остаток товара.
	// Если товара нет, возвращает e.ErrProductNotFound.
	LookupProduct(ctx context.Context, id int64) (*ProductSnapshot, error)
	// ListAvailableProducts возвращает товары, доступные для выбора, кроме excluding.
	ListAvailableProducts(ctx context.Context, excluding []int64) ([]ProductOption, error)
}

// ProductSnapshot — цена и остаток товара на момент выбора.
type ProductSnapshot struct {
	ID    int64
	Name  string
	Price decimal.Decimal
	Stock int32
}

// ProductOption — вариант в списке выбора товара для строки.
type ProductOption struct {
	ID           int64
	Name         string
	CategoryName string
}
