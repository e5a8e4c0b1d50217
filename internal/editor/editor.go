// Package editor поддерживает согласованность строк заказа при редактировании:
// цена и остаток берутся из каталога при выборе товара, количество ограничивается
// остатком, сумма заказа пересчитывается после каждой правки.
package editor

import (
	"context"
	"errors"

	"github.com/DRSN-tech/order-backoffice/internal/domain"
	"github.com/DRSN-tech/order-backoffice/pkg/e"
	"github.com/DRSN-tech/order-backoffice/pkg/logger"
	"github.com/shopspring/decimal"
)

const defaultQuantity = 1

// Editor оборачивает черновик заказа. Не потокобезопасен, на каждый черновик свой редактор.
type Editor struct {
	order    *domain.Order
	catalog  Catalog
	logger   logger.Logger
	warnings []Warning
}

func New(order *domain.Order, catalog Catalog, logger logger.Logger) *Editor {
	if order == nil {
		order = &domain.Order{}
	}

	ed := &Editor{
		order:   order,
		catalog: catalog,
		logger:  logger,
	}
	ed.recomputeTotal()

	return ed
}

// AddLine добавляет пустую строку и возвращает её индекс.
func (ed *Editor) AddLine() int {
	ed.order.Lines = append(ed.order.Lines, domain.OrderLineItem{
		OrderID:   ed.order.ID,
		Quantity:  defaultQuantity,
		UnitPrice: decimal.Zero,
	})
	ed.recomputeTotal()

	return len(ed.order.Lines) - 1
}

// SelectProduct выбирает товар для строки и перезаписывает её цену и остаток.
func (ed *Editor) SelectProduct(ctx context.Context, lineIndex int, productID int64) error {
	const op = "Editor.SelectProduct"

	if err := ed.checkIndex(lineIndex); err != nil {
		return e.Wrap(op, err)
	}
	if productID <= 0 {
		return e.Wrap(op, e.ErrInvalidID)
	}

	for i, l := range ed.order.Lines {
		if i != lineIndex && l.ProductID == productID {
			ed.logger.Errorf(e.ErrDuplicateProductSelection, "product %d already used on line %d", productID, i)
			return e.Wrap(op, e.ErrDuplicateProductSelection)
		}
	}

	line := &ed.order.Lines[lineIndex]

	snapshot, err := ed.catalog.LookupProduct(ctx, productID)
	switch {
	case errors.Is(err, e.ErrProductNotFound):
		line.ProductID = productID
		line.ProductName = ""
		line.UnitPrice = decimal.Zero
		line.Stock = 0
		ed.warn(newProductNotFound(lineIndex, productID))
	case err != nil:
		return e.Wrap(op, err)
	default:
		line.ProductID = snapshot.ID
		line.ProductName = snapshot.Name
		line.UnitPrice = snapshot.Price
		line.Stock = snapshot.Stock
	}

	ed.recomputeTotal()

	return nil
}

// SetQuantity задаёт количество. Количество больше остатка обрезается до остатка с предупреждением.
func (ed *Editor) SetQuantity(lineIndex int, quantity int32) error {
	const op = "Editor.SetQuantity"

	if err := ed.checkIndex(lineIndex); err != nil {
		return e.Wrap(op, err)
	}
	if quantity < 1 {
		return e.Wrap(op, e.ErrInvalidQuantity)
	}

	line := &ed.order.Lines[lineIndex]
	if quantity > line.Stock {
		ed.warn(newInsufficientStock(lineIndex, line.ProductID, quantity, line.Stock))
		quantity = line.Stock
	}
	line.Quantity = quantity

	ed.recomputeTotal()

	return nil
}

// ClearQuantity сбрасывает количество: строка остаётся, но не входит в сумму.
func (ed *Editor) ClearQuantity(lineIndex int) error {
	const op = "Editor.ClearQuantity"

	if err := ed.checkIndex(lineIndex); err != nil {
		return e.Wrap(op, err)
	}

	ed.order.Lines[lineIndex].Quantity = 0
	ed.recomputeTotal()

	return nil
}

func (ed *Editor) RemoveLine(lineIndex int) error {
	const op = "Editor.RemoveLine"

	if err := ed.checkIndex(lineIndex); err != nil {
		return e.Wrap(op, err)
	}

	ed.order.Lines = append(ed.order.Lines[:lineIndex], ed.order.Lines[lineIndex+1:]...)
	ed.recomputeTotal()

	return nil
}

// Options возвращает товары для выбора в строке без товаров соседних строк.
// Текущий товар самой строки остаётся доступным.
func (ed *Editor) Options(ctx context.Context, lineIndex int) ([]ProductOption, error) {
	const op = "Editor.Options"

	if err := ed.checkIndex(lineIndex); err != nil {
		return nil, e.Wrap(op, err)
	}

	options, err := ed.catalog.ListAvailableProducts(ctx, ed.siblingProducts(lineIndex))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return options, nil
}

// Recompute пересчитывает сумму без изменения строк.
func (ed *Editor) Recompute() decimal.Decimal {
	ed.recomputeTotal()
	return ed.order.TotalPrice
}

func (ed *Editor) Total() decimal.Decimal {
	return ed.order.TotalPrice
}

func (ed *Editor) Order() *domain.Order {
	return ed.order
}

func (ed *Editor) Warnings() []Warning {
	out := make([]Warning, len(ed.warnings))
	copy(out, ed.warnings)
	return out
}

// DrainWarnings возвращает накопленные предупреждения и очищает очередь.
func (ed *Editor) DrainWarnings() []Warning {
	out := ed.warnings
	ed.warnings = nil
	return out
}

// recomputeTotal суммирует UnitPrice * Quantity по строкам с товаром и количеством.
func (ed *Editor) recomputeTotal() {
	total := decimal.Zero
	for _, l := range ed.order.Lines {
		if !l.IsComplete() {
			continue
		}
		total = total.Add(l.Subtotal())
	}

	ed.order.TotalPrice = total
}

func (ed *Editor) siblingProducts(lineIndex int) []int64 {
	ids := make([]int64, 0, len(ed.order.Lines))
	for i, l := range ed.order.Lines {
		if i == lineIndex || !l.HasProduct() {
			continue
		}
		ids = append(ids, l.ProductID)
	}

	return ids
}

func (ed *Editor) checkIndex(lineIndex int) error {
	if lineIndex < 0 || lineIndex >= len(ed.order.Lines) {
		return e.ErrLineIndexOutOfRange
	}
	return nil
}

func (ed *Editor) warn(w Warning) {
	ed.logger.Warnf("line %d: %s", w.Line, w.Message())
	ed.warnings = append(ed.warnings, w)
}
