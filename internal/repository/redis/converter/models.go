package converter

import "time"

// DraftRedisModel — черновик заказа в Redis.
type DraftRedisModel struct {
	ID                string                `json:"id"`
	OrderID           int64                 `json:"order_id,omitempty"`
	CustomerName      string                `json:"customer_name"`
	Phone             string                `json:"phone"`
	Note              string                `json:"note"`
	PaymentMethodID   int64                 `json:"payment_method_id"`
	PaymentMethodName string                `json:"payment_method_name,omitempty"`
	TotalPrice        string                `json:"total_price"`
	PaidAmount        *string               `json:"paid_amount,omitempty"`
	ChangeAmount      *string               `json:"change_amount,omitempty"`
	CreatedAt         *time.Time            `json:"created_at,omitempty"`
	UpdatedAt         time.Time             `json:"updated_at"`
	Lines             []DraftLineRedisModel `json:"lines"`
}

type DraftLineRedisModel struct {
	ID          int64  `json:"id,omitempty"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int32  `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Stock       int32  `json:"stock"`
}
