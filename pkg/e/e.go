package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки редактора позиций заказа
	ErrProductNotFound           = fmt.Errorf("product not found")
	ErrInsufficientStock         = fmt.Errorf("insufficient stock")
	ErrDuplicateProductSelection = fmt.Errorf("product already selected in another line")
	ErrLineIndexOutOfRange       = fmt.Errorf("line index out of range")
	ErrInvalidQuantity           = fmt.Errorf("quantity must be a positive integer")

	// 400 Bad Request
	ErrStatusBadRequest      = fmt.Errorf("bad request")
	ErrInvalidJSON           = fmt.Errorf("invalid json body")
	ErrInvalidID             = fmt.Errorf("invalid id")
	ErrInvalidAmount         = fmt.Errorf("invalid amount")
	ErrAmountPrecision       = fmt.Errorf("amount must have at most 2 decimal places")
	ErrNegativeAmount        = fmt.Errorf("amount must not be negative")
	ErrCustomerNameRequired  = fmt.Errorf("customer name is required")
	ErrCustomerNameTooLong   = fmt.Errorf("customer name is too long")
	ErrPhoneTooLong          = fmt.Errorf("phone is too long")
	ErrPaymentMethodRequired = fmt.Errorf("payment method is required")
	ErrPaymentMethodNotFound = fmt.Errorf("payment method not found")
	ErrIncompleteLineItem    = fmt.Errorf("line item must have a product and a quantity")

	// 404 Not Found
	ErrDraftNotFound = fmt.Errorf("order draft not found")
	ErrOrderNotFound = fmt.Errorf("order not found")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
