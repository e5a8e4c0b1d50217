package http

import (
	"net/http"

	"github.com/DRSN-tech/order-backoffice/internal/usecase"
	"github.com/DRSN-tech/order-backoffice/pkg/logger"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUC
	logger       logger.Logger
}

func NewOrderHandler(orderUsecase usecase.OrderUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase, logger: logger}
}

// listOrders
//
//	@Summary	Список заказов
//	@Tags		orders
//	@Produce	json
//	@Param		limit	query		int	false	"Размер страницы"
//	@Param		offset	query		int	false	"Смещение"
//	@Success	200		{object}	ListOrdersResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/orders [get]
func (o *OrderHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := parsePagination(r)
	if err != nil {
		fail(o.logger, w, r, err)
		return
	}

	res, err := o.orderUsecase.ListOrders(r.Context(), &usecase.ListOrdersReq{Limit: limit, Offset: offset})
	if err != nil {
		fail(o.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newListOrdersResponse(res))
}

// getOrder
//
//	@Summary	Заказ со строками
//	@Tags		orders
//	@Produce	json
//	@Param		orderID	path		int	true	"ID заказа"
//	@Success	200		{object}	OrderResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/orders/{orderID} [get]
func (o *OrderHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseOrderID(r)
	if err != nil {
		fail(o.logger, w, r, err)
		return
	}

	order, err := o.orderUsecase.GetOrder(r.Context(), orderID)
	if err != nil {
		fail(o.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewOrderResponse(order))
}

// deleteOrder
//
//	@Summary	Удаление заказа
//	@Tags		orders
//	@Param		orderID	path	int	true	"ID заказа"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/orders/{orderID} [delete]
func (o *OrderHandler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseOrderID(r)
	if err != nil {
		fail(o.logger, w, r, err)
		return
	}

	if err := o.orderUsecase.DeleteOrder(r.Context(), orderID); err != nil {
		fail(o.logger, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listPaymentMethods
//
//	@Summary	Активные способы оплаты
//	@Tags		payment-methods
//	@Produce	json
//	@Success	200	{array}	PaymentMethodResponse
//	@Router		/payment-methods [get]
func (o *OrderHandler) listPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := o.orderUsecase.ListPaymentMethods(r.Context())
	if err != nil {
		fail(o.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newPaymentMethodResponses(methods))
}
