package converter

import (
	"fmt"

	"github.com/DRSN-tech/order-backoffice/internal/domain"
	"github.com/DRSN-tech/order-backoffice/internal/usecase"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DraftConverter преобразует черновик между usecase и моделью Redis.
// Деньги хранятся строками, чтобы не терять точность.
type DraftConverter struct{}

func (DraftConverter) ToRedisModel(entity *usecase.Draft) *DraftRedisModel {
	order := entity.Order

	model := &DraftRedisModel{
		ID:                entity.ID.String(),
		OrderID:           order.ID,
		CustomerName:      order.CustomerName,
		Phone:             order.Phone,
		Note:              order.Note,
		PaymentMethodID:   order.PaymentMethodID,
		PaymentMethodName: order.PaymentMethodName,
		TotalPrice:        order.TotalPrice.String(),
		PaidAmount:        nullDecimalToString(order.PaidAmount),
		ChangeAmount:      nullDecimalToString(order.ChangeAmount),
		UpdatedAt:         entity.UpdatedAt,
		Lines:             make([]DraftLineRedisModel, 0, len(order.Lines)),
	}
	if !order.CreatedAt.IsZero() {
		createdAt := order.CreatedAt
		model.CreatedAt = &createdAt
	}

	for _, l := range order.Lines {
		model.Lines = append(model.Lines, DraftLineRedisModel{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice.String(),
			Stock:       l.Stock,
		})
	}

	return model
}

func (DraftConverter) ToUseCase(model *DraftRedisModel) (*usecase.Draft, error) {
	id, err := uuid.Parse(model.ID)
	if err != nil {
		return nil, fmt.Errorf("draft id: %w", err)
	}

	total, err := decimal.NewFromString(model.TotalPrice)
	if err != nil {
		return nil, fmt.Errorf("total_price: %w", err)
	}

	paid, err := stringToNullDecimal(model.PaidAmount)
	if err != nil {
		return nil, fmt.Errorf("paid_amount: %w", err)
	}

	change, err := stringToNullDecimal(model.ChangeAmount)
	if err != nil {
		return nil, fmt.Errorf("change_amount: %w", err)
	}

	order := &domain.Order{
		ID:                model.OrderID,
		CustomerName:      model.CustomerName,
		Phone:             model.Phone,
		Note:              model.Note,
		PaymentMethodID:   model.PaymentMethodID,
		PaymentMethodName: model.PaymentMethodName,
		TotalPrice:        total,
		PaidAmount:        paid,
		ChangeAmount:      change,
		Lines:             make([]domain.OrderLineItem, 0, len(model.Lines)),
	}
	if model.CreatedAt != nil {
		order.CreatedAt = *model.CreatedAt
	}

	for i, l := range model.Lines {
		price, err := decimal.NewFromString(l.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("line %d unit_price: %w", i, err)
		}

		order.Lines = append(order.Lines, domain.OrderLineItem{
			ID:          l.ID,
			OrderID:     model.OrderID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   price,
			Stock:       l.Stock,
		})
	}

	return &usecase.Draft{
		ID:        id,
		Order:     order,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

func nullDecimalToString(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.String()
	return &s
}

func stringToNullDecimal(s *string) (decimal.NullDecimal, error) {
	if s == nil {
		return decimal.NullDecimal{}, nil
	}

	d, err := decimal.NewFromString(*s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}

	return decimal.NewNullDecimal(d), nil
}
