package converter

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/DRSN-tech/order-backoffice/internal/domain"
	"github.com/DRSN-tech/order-backoffice/internal/usecase"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftConverterKeepsDraftState(t *testing.T) {
	conv := DraftConverter{}
	draft := &usecase.Draft{
		ID:        uuid.New(),
		UpdatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Order: &domain.Order{
			ID:                12,
			CustomerName:      "Siti",
			PaymentMethodID:   2,
			PaymentMethodName: "Card",
			TotalPrice:        decimal.RequireFromString("30.10"),
			PaidAmount:        decimal.NewNullDecimal(decimal.RequireFromString("50.00")),
			Lines: []domain.OrderLineItem{
				{ID: 4, ProductID: 3, ProductName: "Cake", Quantity: 2, UnitPrice: decimal.RequireFromString("15.05"), Stock: 2},
				{Quantity: 1, UnitPrice: decimal.Zero},
			},
		},
	}

	data, err := json.Marshal(conv.ToRedisModel(draft))
	require.NoError(t, err)

	var model DraftRedisModel
	require.NoError(t, json.Unmarshal(data, &model))

	got, err := conv.ToUseCase(&model)
	require.NoError(t, err)

	assert.Equal(t, draft.ID, got.ID)
	assert.True(t, draft.UpdatedAt.Equal(got.UpdatedAt))
	assert.Equal(t, int64(12), got.Order.ID)
	assert.Equal(t, int64(2), got.Order.PaymentMethodID)
	assert.Equal(t, "Card", got.Order.PaymentMethodName)
	assert.True(t, got.Order.TotalPrice.Equal(decimal.RequireFromString("30.1")))
	assert.True(t, got.Order.PaidAmount.Valid)
	assert.False(t, got.Order.ChangeAmount.Valid)

	require.Len(t, got.Order.Lines, 2)
	assert.Equal(t, int32(2), got.Order.Lines[0].Stock)
	assert.Equal(t, int64(12), got.Order.Lines[0].OrderID)
	assert.True(t, got.Order.Lines[0].UnitPrice.Equal(decimal.RequireFromString("15.05")))
	assert.Equal(t, int64(0), got.Order.Lines[1].ProductID)
}

func TestDraftConverterRejectsBadMoney(t *testing.T) {
	model := &DraftRedisModel{ID: uuid.NewString(), TotalPrice: "abc"}

	_, err := DraftConverter{}.ToUseCase(model)
	require.Error(t, err)
}
