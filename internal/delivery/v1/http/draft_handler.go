package http

import (
	"net/http"

	"github.com/DRSN-tech/order-backoffice/internal/usecase"
	"github.com/DRSN-tech/order-backoffice/pkg/logger"
)

type DraftHandler struct {
	orderUsecase usecase.OrderUC
	logger       logger.Logger
}

func NewDraftHandler(orderUsecase usecase.OrderUC, logger logger.Logger) *DraftHandler {
	return &DraftHandler{orderUsecase: orderUsecase, logger: logger}
}

// fail пишет ошибку в ответ. 4xx логируются как предупреждения, 5xx как ошибки.
func fail(log logger.Logger, w http.ResponseWriter, r *http.Request, err error) {
	code, msg := ToHTTPResponse(err)
	if code >= http.StatusInternalServerError {
		log.Errorf(err, "%s %s", r.Method, r.URL.Path)
	} else {
		log.Warnf("%d %s: %s", code, msg, err.Error())
	}
	WriteError(w, err)
}

// startDraft
//
//	@Summary		Новый черновик заказа
//	@Description	Создает черновик с одной пустой строкой
//	@Tags			drafts
//	@Produce		json
//	@Success		201	{object}	DraftResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/drafts [post]
func (d *DraftHandler) startDraft(w http.ResponseWriter, r *http.Request) {
	res, err := d.orderUsecase.StartDraft(r.Context())
	if err != nil {
		fail(d.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, NewDraftResponse(res))
}

// startEditDraft
//
//	@Summary		Черновик для редактирования заказа
//	@Description	Загружает сохраненный заказ в черновик. Цены строк сохраняются, остатки запрашиваются заново
//	@Tags			drafts
//	@Produce		json
//	@Param			orderID	path		int	true	"ID заказа"
//	@Success		201		{object}	DraftResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/orders/{orderID}/drafts [post]
func (d *DraftHandler) startEditDraft(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseOrderID(r)
	if err != nil {
		fail(d.logger, w, r, err)
		return
	}

	res, err := d.orderUsecase.StartEditDraft(r.Context(), orderID)
	if err != nil {
		fail(d.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, NewDraftResponse(res))
}

// getDraft
//
//	@Summary	Текущее состояние черновика
//	@Tags		drafts
//	@Produce	json
//	@Param		draftID	path		string	true	"ID черновика"
//	@Success	200		{object}	DraftResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/drafts/{draftID} [get]
func (d *DraftHandler) getDraft(w http.ResponseWriter, r *http.Request) {
	draftID, err := parseDraftID(r)
	if err != nil {
		fail(d.logger, w, r, err)
		return
	}

	res, err := d.orderUsecase.GetDraft(r.Context(), draftID)
	if err != nil {
		fail(d.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewDraftResponse(res))
}

// discardDraft
//
//	@Summary	Удаление черновика
//	@Tags		drafts
//	@Param		draftID	path	string	true	"ID черновика"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Router		/drafts/{draftID} [delete]
func (d *DraftHandler) discardDraft(w http.ResponseWriter, r *http.Request) {
	draftID, err := parseDraftID(r)
	if err != nil {
		fail(d.logger, w, r, err)
		return
	}

	if err := d.orderUsecase.DiscardDraft(r.Context(), draftID); err != nil {
		fail(d.logger, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// updateHeader
//
//	@Summary		Шапка заказа
//	@Description	Заменяет покупателя, телефон, примечание, способ оплаты и суммы оплаты
//	@Tags			drafts
//	@Accept			json
//	@Produce		json
//	@Param			draftID	path		string				true	"ID черновика"
//	@Param			body	body		UpdateHeaderRequest	true	"Шапка заказа"
//	@Success		200		{object}	DraftResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/drafts/{draftID}/header [patch]
func (d *DraftHandler) updateHeader(w http.ResponseWriter, r *http.Request) {
	draftID, err := parseDraftID(r)
	if err != nil {
		fail(d.logger, w, r, err)
		return
	}

	var body UpdateHeaderRequest
	if err := decodeJSON(w, r, &body); err != nil {
		fail(d.logger, w, r, err)
		return
	}

	paid, err := parseAmount(body.PaidAmount)
	if err != nil {
		fail(d.logger, w, r, err)
		return
	}
	change, err := parseAmount(body.ChangeAmount)
	if err != nil {
		fail(d.logger, w, r, err)
		return
	}

	res, err := d.orderUsecase.UpdateDraftHeader(r.Context(), &usecase.UpdateDraftHeaderReq{
		DraftID:         draftID,
		CustomerName:    body.CustomerName,
		Phone:           body.Phone,
		Note:            body.Note,
		PaymentMethodID: body.PaymentMethodID,
		PaidAmount:      paid,
		ChangeAmount:    change,
	})
	if err != nil {
		fail(d.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewDraftResponse(res))
}

// addLine
//
//	@Summary	Новая пустая строка
//	@Tags		lines
//	@Produce	json
//	@Param		draftID	path		string	true	"ID черновика"
//	@Success	201		{object}	DraftResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/drafts/{draftID}/lines [post]
func (d *DraftHandler) addLine(w http.ResponseWriter, r *http.Request) {
	draftID, err := parseDraftID(r)
	if err != nil {
		fail(d.logger, w, r, err)
		return
	}

	res, err := d.orderUsecase.AddLine(r.Context(), draftID)
	if err != nil {
		fail(d.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, NewDraftResponse(res))
}

// removeLine
//
//	@Summary	Удаление строки
//	@Tags		lines
//	@Produce	json
//	@Param		draftID	path		string	true	"ID черновика"
//	@Param		line	path		int		true	"Номер строки"
//	@Success	200		{object}	DraftResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/drafts/{draftID}/lines/{line} [delete]
func (d *DraftHandler) removeLine(w http.ResponseWriter, r *http.Request) {
	draftID, line, err := parseLineParams(r)
	if err != nil {
		fail(d.logger, w, r, err)
		return
	}

	res, err := d.orderUsecase.RemoveLine(r.Context(), draftID, line)
	if err != nil {
		fail(d.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewDraftResponse(res))
}

// selectProduct
//
//	@Summary		Выбор товара в строке
//	@Description	Подставляет цену и остаток товара. Количество не меняется
//	@Tags			lines
//	@Accept			json
//	@Produce		json
//	@Param			draftID	path		string					true	"ID черновика"
//	@Param			line	path		int						true	"Номер строки"
//	@Param			body	body		SelectProductRequest	true	"Товар"
//	@Success		200		{object}	DraftResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/drafts/{draftID}/lines/{line}/product [put]
func (d *DraftHandler) selectProduct(w http.ResponseWriter, r *http.Request) {
	draftID, line, err := parseLineParams(r)
	if err != nil {
		fail(d.logger, w, r, err)
		return
	}

	var body SelectProductRequest
	if err := decodeJSON(w, r, &body); err != nil {
		fail(d.logger, w, r, err)
		return
	}

	res, err := d.orderUsecase.SelectProduct(r.Context(), &usecase.SelectProductReq{
		DraftID:   draftID,
		Line:      line,
		ProductID: body.ProductID,
	})
	if err != nil {
		fail(d.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewDraftResponse(res))
}

// setQuantity
//
//	@Summary		Количество в строке
//	@Description	Количество больше остатка урезается до остатка с предупреждением. null сбрасывает количество
//	@Tags			lines
//	@Accept			json
//	@Produce		json
//	@Param			draftID	path		string				true	"ID черновика"
//	@Param			line	path		int					true	"Номер строки"
//	@Param			body	body		SetQuantityRequest	true	"Количество"
//	@Success		200		{object}	DraftResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/drafts/{draftID}/lines/{line}/quantity [put]
func (d *DraftHandler) setQuantity(w http.ResponseWriter, r *http.Request) {
	draftID, line, err := parseLineParams(r)
	if err != nil {
		fail(d.logger, w, r, err)
		return
	}

	var body SetQuantityRequest
	if err := decodeJSON(w, r, &body); err != nil {
		fail(d.logger, w, r, err)
		return
	}

	var res *usecase.DraftRes
	if body.Quantity == nil {
		res, err = d.orderUsecase.ClearQuantity(r.Context(), draftID, line)
	} else {
		qty, qErr := parseQuantity(*body.Quantity)
		if qErr != nil {
			fail(d.logger, w, r, qErr)
			return
		}
		res, err = d.orderUsecase.SetQuantity(r.Context(), &usecase.SetQuantityReq{
			DraftID:  draftID,
			Line:     line,
			Quantity: qty,
		})
	}
	if err != nil {
		fail(d.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewDraftResponse(res))
}

// lineOptions
//
//	@Summary		Товары для выбора в строке
//	@Description	Активные товары в наличии, кроме выбранных в других строках
//	@Tags			lines
//	@Produce		json
//	@Param			draftID	path		string	true	"ID черновика"
//	@Param			line	path		int		true	"Номер строки"
//	@Success		200		{array}		ProductOptionResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/drafts/{draftID}/lines/{line}/options [get]
func (d *DraftHandler) lineOptions(w http.ResponseWriter, r *http.Request) {
	draftID, line, err := parseLineParams(r)
	if err != nil {
		fail(d.logger, w, r, err)
		return
	}

	opts, err := d.orderUsecase.LineOptions(r.Context(), draftID, line)
	if err != nil {
		fail(d.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductOptionResponses(opts))
}

// submitDraft
//
//	@Summary		Оформление заказа
//	@Description	Сохраняет заказ со строками в одной транзакции и удаляет черновик
//	@Tags			drafts
//	@Produce		json
//	@Param			draftID	path		string	true	"ID черновика"
//	@Success		200		{object}	OrderResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/drafts/{draftID}/submit [post]
func (d *DraftHandler) submitDraft(w http.ResponseWriter, r *http.Request) {
	draftID, err := parseDraftID(r)
	if err != nil {
		fail(d.logger, w, r, err)
		return
	}

	order, err := d.orderUsecase.SubmitDraft(r.Context(), draftID)
	if err != nil {
		fail(d.logger, w, r, err)
		return
	}

	d.logger.Infof("order %d submitted from draft %s", order.ID, draftID)
	WriteSuccess(w, http.StatusOK, NewOrderResponse(order))
}
