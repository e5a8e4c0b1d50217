package http

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/order-backoffice/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

const maxBodySize = 1 << 20

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

var badRequestErrs = []error{
	e.ErrInvalidJSON,
	e.ErrInvalidID,
	e.ErrInvalidQuantity,
	e.ErrLineIndexOutOfRange,
	e.ErrInvalidAmount,
	e.ErrAmountPrecision,
	e.ErrNegativeAmount,
	e.ErrCustomerNameTooLong,
	e.ErrPhoneTooLong,
	e.ErrDuplicateProductSelection,
	e.ErrStatusBadRequest,
}

var unprocessableErrs = []error{
	e.ErrCustomerNameRequired,
	e.ErrPaymentMethodRequired,
	e.ErrPaymentMethodNotFound,
	e.ErrIncompleteLineItem,
	e.ErrInsufficientStock,
	e.ErrProductNotFound,
}

var notFoundErrs = []error{
	e.ErrDraftNotFound,
	e.ErrOrderNotFound,
}

func ToHTTPResponse(err error) (int, string) {
	for _, target := range notFoundErrs {
		if errors.Is(err, target) {
			return http.StatusNotFound, target.Error()
		}
	}
	for _, target := range badRequestErrs {
		if errors.Is(err, target) {
			return http.StatusBadRequest, target.Error()
		}
	}
	for _, target := range unprocessableErrs {
		if errors.Is(err, target) {
			return http.StatusUnprocessableEntity, target.Error()
		}
	}

	return http.StatusInternalServerError, e.ErrInternalServerError.Error()
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return e.Wrap(err.Error(), e.ErrInvalidJSON)
	}

	return nil
}

func parseDraftID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "draftID"))
	if err != nil {
		return uuid.Nil, e.Wrap(whereami.WhereAmI(), e.ErrInvalidID)
	}
	return id, nil
}

func parseOrderID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, e.Wrap(whereami.WhereAmI(), e.ErrInvalidID)
	}
	return id, nil
}

func parseLine(r *http.Request) (int, error) {
	line, err := strconv.Atoi(chi.URLParam(r, "line"))
	if err != nil || line < 0 {
		return 0, e.Wrap(whereami.WhereAmI(), e.ErrLineIndexOutOfRange)
	}
	return line, nil
}

// parseQuantity принимает только целые положительные числа в пределах int32.
func parseQuantity(n json.Number) (int32, error) {
	q, err := strconv.ParseInt(n.String(), 10, 32)
	if err != nil || q <= 0 || q > math.MaxInt32 {
		return 0, e.Wrap(n.String(), e.ErrInvalidQuantity)
	}
	return int32(q), nil
}

// parseAmount переводит строку вида "599.99" в денежную сумму.
// nil или пустая строка означают, что сумма не указана.
func parseAmount(s *string) (decimal.NullDecimal, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return decimal.NullDecimal{}, nil
	}

	d, err := decimal.NewFromString(strings.TrimSpace(*s))
	if err != nil {
		return decimal.NullDecimal{}, e.Wrap(*s, e.ErrInvalidAmount)
	}
	if d.IsNegative() {
		return decimal.NullDecimal{}, e.Wrap(*s, e.ErrNegativeAmount)
	}
	if d.Exponent() < -2 {
		return decimal.NullDecimal{}, e.Wrap(*s, e.ErrAmountPrecision)
	}

	return decimal.NewNullDecimal(d), nil
}

func parsePagination(r *http.Request) (int, int, error) {
	var limit, offset int
	var err error

	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 0 {
			return 0, 0, e.Wrap("limit", e.ErrStatusBadRequest)
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil || offset < 0 {
			return 0, 0, e.Wrap("offset", e.ErrStatusBadRequest)
		}
	}

	return limit, offset, nil
}

func parseLineParams(r *http.Request) (uuid.UUID, int, error) {
	draftID, err := parseDraftID(r)
	if err != nil {
		return uuid.Nil, 0, err
	}

	line, err := parseLine(r)
	if err != nil {
		return uuid.Nil, 0, err
	}

	return draftID, line, nil
}
