package domain

// PaymentMethod — способ оплаты заказа (справочник)
type PaymentMethod struct {
	ID       int64
	Name     string
	IsActive bool
}
