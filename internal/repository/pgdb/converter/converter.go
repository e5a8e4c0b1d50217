package converter

import (
	"github.com/DRSN-tech/order-backoffice/internal/domain"
	"github.com/DRSN-tech/order-backoffice/internal/editor"
	"github.com/DRSN-tech/order-backoffice/internal/usecase"
)

// ProductConverter преобразует товар из модели PostgreSQL в сущность и снимок для редактора.
type ProductConverter struct{}

func (ProductConverter) ToEntity(model *ProductModel) *domain.Product {
	return &domain.Product{
		ID:         model.ID,
		Name:       model.Name,
		Stock:      model.Stock,
		Price:      model.Price,
		CategoryID: model.CategoryID,
		IsActive:   model.IsActive,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func (ProductConverter) ToSnapshot(product *domain.Product) *editor.ProductSnapshot {
	return &editor.ProductSnapshot{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
		Stock: product.Stock,
	}
}

type PaymentMethodConverter struct{}

func (PaymentMethodConverter) ToEntity(model *PaymentMethodModel) *domain.PaymentMethod {
	return &domain.PaymentMethod{
		ID:       model.ID,
		Name:     model.Name,
		IsActive: model.IsActive,
	}
}

func (c PaymentMethodConverter) ToArrEntity(models []PaymentMethodModel) []domain.PaymentMethod {
	result := make([]domain.PaymentMethod, 0, len(models))
	for i := range models {
		result = append(result, *c.ToEntity(&models[i]))
	}
	return result
}

// OrderConverter преобразует заказ и его строки между domain и моделями PostgreSQL.
type OrderConverter struct{}

func (OrderConverter) ToModel(entity *domain.Order) *OrderModel {
	return &OrderModel{
		ID:                entity.ID,
		CustomerName:      entity.CustomerName,
		Phone:             entity.Phone,
		Note:              entity.Note,
		PaymentMethodID:   entity.PaymentMethodID,
		PaymentMethodName: entity.PaymentMethodName,
		TotalPrice:        entity.TotalPrice,
		PaidAmount:        entity.PaidAmount,
		ChangeAmount:      entity.ChangeAmount,
		CreatedAt:         entity.CreatedAt,
		UpdatedAt:         entity.UpdatedAt,
	}
}

func (OrderConverter) ToEntity(model *OrderModel, lines []OrderLineItemModel) *domain.Order {
	order := &domain.Order{
		ID:                model.ID,
		CustomerName:      model.CustomerName,
		Phone:             model.Phone,
		Note:              model.Note,
		PaymentMethodID:   model.PaymentMethodID,
		PaymentMethodName: model.PaymentMethodName,
		TotalPrice:        model.TotalPrice,
		PaidAmount:        model.PaidAmount,
		ChangeAmount:      model.ChangeAmount,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}

	if len(lines) > 0 {
		order.Lines = make([]domain.OrderLineItem, 0, len(lines))
		for _, l := range lines {
			order.Lines = append(order.Lines, domain.OrderLineItem{
				ID:          l.ID,
				OrderID:     l.OrderID,
				ProductID:   l.ProductID,
				ProductName: l.ProductName,
				Quantity:    l.Quantity,
				UnitPrice:   l.UnitPrice,
			})
		}
	}

	return order
}

func (OrderConverter) ToLineModel(orderID int64, entity domain.OrderLineItem) OrderLineItemModel {
	return OrderLineItemModel{
		ID:          entity.ID,
		OrderID:     orderID,
		ProductID:   entity.ProductID,
		ProductName: entity.ProductName,
		Quantity:    entity.Quantity,
		UnitPrice:   entity.UnitPrice,
	}
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter struct{}

func (OutboxEventConverter) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		OrderID:     entity.OrderID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (OutboxEventConverter) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		OrderID:     model.OrderID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c OutboxEventConverter) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	result := make([]*usecase.OutboxEvent, 0, len(models))
	for _, m := range models {
		result = append(result, c.ToEntity(m))
	}
	return result
}
