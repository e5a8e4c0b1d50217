package editor

import "fmt"

type WarningKind string

const (
	WarningInsufficientStock WarningKind = "insufficient_stock"
	WarningProductNotFound   WarningKind = "product_not_found"
)

// Warning — некритичное уведомление для пользователя. Правка при этом уже применена.
type Warning struct {
	Kind      WarningKind
	Line      int
	ProductID int64
	Requested int32
	Available int32
}

func (w Warning) Message() string {
	switch w.Kind {
	case WarningInsufficientStock:
		return fmt.Sprintf("insufficient stock: requested %d, available %d", w.Requested, w.Available)
	case WarningProductNotFound:
		return fmt.Sprintf("product %d not found", w.ProductID)
	default:
		return string(w.Kind)
	}
}

func newInsufficientStock(line int, productID int64, requested, available int32) Warning {
	return Warning{
		Kind:      WarningInsufficientStock,
		Line:      line,
		ProductID: productID,
		Requested: requested,
		Available: available,
	}
}

func newProductNotFound(line int, productID int64) Warning {
	return Warning{
		Kind:      WarningProductNotFound,
		Line:      line,
		ProductID: productID,
	}
}
