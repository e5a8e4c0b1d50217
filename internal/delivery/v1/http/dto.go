package http

import (
	"encoding/json"
	"time"

	"github.com/DRSN-tech/order-backoffice/internal/domain"
	"github.com/DRSN-tech/order-backoffice/internal/editor"
	"github.com/DRSN-tech/order-backoffice/internal/usecase"
	"github.com/shopspring/decimal"
)

// REQUESTS

type UpdateHeaderRequest struct {
	CustomerName    string  `json:"customer_name"`
	Phone           string  `json:"phone"`
	Note            string  `json:"note"`
	PaymentMethodID int64   `json:"payment_method_id"`
	PaidAmount      *string `json:"paid_amount" example:"100.00"`
	ChangeAmount    *string `json:"change_amount" example:"28.50"`
}

type SelectProductRequest struct {
	ProductID int64 `json:"product_id"`
}

// SetQuantityRequest: quantity = null сбрасывает количество.
type SetQuantityRequest struct {
	Quantity *json.Number `json:"quantity" swaggertype:"integer"`
}

// RESPONSES

type LineResponse struct {
	Index       int    `json:"index"`
	ProductID   *int64 `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    *int32 `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Stock       int32  `json:"stock"`
	Subtotal    string `json:"subtotal"`
}

type OrderResponse struct {
	ID                int64          `json:"id,omitempty"`
	CustomerName      string         `json:"customer_name"`
	Phone             string         `json:"phone"`
	Note              string         `json:"note"`
	PaymentMethodID   *int64         `json:"payment_method_id"`
	PaymentMethodName string         `json:"payment_method_name,omitempty"`
	TotalPrice        string         `json:"total_price"`
	PaidAmount        *string        `json:"paid_amount"`
	ChangeAmount      *string        `json:"change_amount"`
	CreatedAt         *time.Time     `json:"created_at,omitempty"`
	UpdatedAt         *time.Time     `json:"updated_at,omitempty"`
	Lines             []LineResponse `json:"lines"`
}

type WarningResponse struct {
	Kind      string `json:"kind"`
	Line      int    `json:"line"`
	ProductID int64  `json:"product_id"`
	Requested int32  `json:"requested,omitempty"`
	Available int32  `json:"available,omitempty"`
	Message   string `json:"message"`
}

type DraftResponse struct {
	ID        string            `json:"id"`
	Order     OrderResponse     `json:"order"`
	Warnings  []WarningResponse `json:"warnings"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type ProductOptionResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CategoryName string `json:"category_name,omitempty"`
}

type PaymentMethodResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// MAPPERS

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func nullMoney(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := money(d.Decimal)
	return &s
}

func nonZero[T int32 | int64](v T) *T {
	if v == 0 {
		return nil
	}
	return &v
}

func newLineResponse(i int, l domain.OrderLineItem) LineResponse {
	subtotal := decimal.Zero
	if l.IsComplete() {
		subtotal = l.Subtotal()
	}

	return LineResponse{
		Index:       i,
		ProductID:   nonZero(l.ProductID),
		ProductName: l.ProductName,
		Quantity:    nonZero(l.Quantity),
		UnitPrice:   money(l.UnitPrice),
		Stock:       l.Stock,
		Subtotal:    money(subtotal),
	}
}

func NewOrderResponse(o *domain.Order) OrderResponse {
	lines := make([]LineResponse, 0, len(o.Lines))
	for i, l := range o.Lines {
		lines = append(lines, newLineResponse(i, l))
	}

	res := OrderResponse{
		ID:                o.ID,
		CustomerName:      o.CustomerName,
		Phone:             o.Phone,
		Note:              o.Note,
		PaymentMethodID:   nonZero(o.PaymentMethodID),
		PaymentMethodName: o.PaymentMethodName,
		TotalPrice:        money(o.TotalPrice),
		PaidAmount:        nullMoney(o.PaidAmount),
		ChangeAmount:      nullMoney(o.ChangeAmount),
		UpdatedAt:         o.UpdatedAt,
		Lines:             lines,
	}
	if !o.CreatedAt.IsZero() {
		res.CreatedAt = &o.CreatedAt
	}

	return res
}

func newWarningResponses(warnings []editor.Warning) []WarningResponse {
	res := make([]WarningResponse, 0, len(warnings))
	for _, w := range warnings {
		res = append(res, WarningResponse{
			Kind:      string(w.Kind),
			Line:      w.Line,
			ProductID: w.ProductID,
			Requested: w.Requested,
			Available: w.Available,
			Message:   w.Message(),
		})
	}
	return res
}

func NewDraftResponse(res *usecase.DraftRes) DraftResponse {
	return DraftResponse{
		ID:        res.Draft.ID.String(),
		Order:     NewOrderResponse(res.Draft.Order),
		Warnings:  newWarningResponses(res.Warnings),
		UpdatedAt: res.Draft.UpdatedAt,
	}
}

func newProductOptionResponses(opts []editor.ProductOption) []ProductOptionResponse {
	res := make([]ProductOptionResponse, 0, len(opts))
	for _, o := range opts {
		res = append(res, ProductOptionResponse{ID: o.ID, Name: o.Name, CategoryName: o.CategoryName})
	}
	return res
}

func newPaymentMethodResponses(methods []domain.PaymentMethod) []PaymentMethodResponse {
	res := make([]PaymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		res = append(res, PaymentMethodResponse{ID: m.ID, Name: m.Name})
	}
	return res
}

func newListOrdersResponse(res *usecase.ListOrdersRes) ListOrdersResponse {
	orders := make([]OrderResponse, 0, len(res.Orders))
	for i := range res.Orders {
		orders = append(orders, NewOrderResponse(&res.Orders[i]))
	}

	return ListOrdersResponse{
		Orders: orders,
		Total:  res.Total,
		Limit:  res.Limit,
		Offset: res.Offset,
	}
}
