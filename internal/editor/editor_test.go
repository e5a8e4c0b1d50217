package editor

import (
	"context"
	"testing"

	"github.com/DRSN-tech/order-backoffice/internal/domain"
	"github.com/DRSN-tech/order-backoffice/pkg/e"
	"github.com/DRSN-tech/order-backoffice/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEditor(t *testing.T, c Catalog) *Editor {
	t.Helper()
	return New(nil, c, logger.Nop())
}

func requireTotal(t *testing.T, ed *Editor, want int64) {
	t.Helper()
	require.True(t, ed.Total().Equal(decimal.NewFromInt(want)), "total %s, want %d", ed.Total(), want)
	require.True(t, ed.Order().TotalPrice.Equal(ed.Total()))
}

func TestTwoLinesTotal(t *testing.T) {
	ctx := context.Background()
	ed := newEditor(t, newFakeCatalog(product(1, "A", 10, 5), product(2, "B", 20, 2)))

	a := ed.AddLine()
	require.NoError(t, ed.SelectProduct(ctx, a, 1))
	require.NoError(t, ed.SetQuantity(a, 3))

	b := ed.AddLine()
	require.NoError(t, ed.SelectProduct(ctx, b, 2))
	require.NoError(t, ed.SetQuantity(b, 2))

	requireTotal(t, ed, 70)
	assert.Empty(t, ed.Warnings())
}

func TestSetQuantityClampsToStock(t *testing.T) {
	ctx := context.Background()
	ed := newEditor(t, newFakeCatalog(product(3, "C", 15, 2)))

	i := ed.AddLine()
	require.NoError(t, ed.SelectProduct(ctx, i, 3))
	require.NoError(t, ed.SetQuantity(i, 5))

	assert.Equal(t, int32(2), ed.Order().Lines[i].Quantity)
	requireTotal(t, ed, 30)

	warnings := ed.DrainWarnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, WarningInsufficientStock, warnings[0].Kind)
	assert.Equal(t, int32(5), warnings[0].Requested)
	assert.Equal(t, int32(2), warnings[0].Available)
	assert.Empty(t, ed.Warnings())
}

func TestLineWithoutProductIsExcluded(t *testing.T) {
	ed := newEditor(t, newFakeCatalog())

	i := ed.AddLine()

	line := ed.Order().Lines[i]
	assert.Equal(t, int64(0), line.ProductID)
	assert.Equal(t, int32(1), line.Quantity)
	assert.True(t, line.UnitPrice.IsZero())
	assert.Equal(t, int32(0), line.Stock)
	requireTotal(t, ed, 0)
}

func TestSelectProductOverwritesPriceAndStock(t *testing.T) {
	ctx := context.Background()
	c := newFakeCatalog(product(1, "A", 10, 5), product(2, "B", 20, 7))
	ed := newEditor(t, c)

	i := ed.AddLine()
	require.NoError(t, ed.SelectProduct(ctx, i, 1))
	require.NoError(t, ed.SetQuantity(i, 2))
	requireTotal(t, ed, 20)

	require.NoError(t, ed.SelectProduct(ctx, i, 2))

	line := ed.Order().Lines[i]
	assert.Equal(t, int64(2), line.ProductID)
	assert.Equal(t, "B", line.ProductName)
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, int32(7), line.Stock)
	requireTotal(t, ed, 40)
}

func TestSelectProductFetchesFreshValues(t *testing.T) {
	ctx := context.Background()
	c := newFakeCatalog(product(1, "A", 10, 5))
	ed := newEditor(t, c)

	i := ed.AddLine()
	require.NoError(t, ed.SelectProduct(ctx, i, 1))

	c.products[1] = product(1, "A", 12, 9)
	require.NoError(t, ed.SelectProduct(ctx, i, 1))

	assert.Equal(t, 2, c.lookups)
	assert.True(t, ed.Order().Lines[i].UnitPrice.Equal(decimal.NewFromInt(12)))
	assert.Equal(t, int32(9), ed.Order().Lines[i].Stock)
}

func TestSelectProductNotFoundDefaultsToZero(t *testing.T) {
	ctx := context.Background()
	ed := newEditor(t, newFakeCatalog(product(1, "A", 10, 5)))

	i := ed.AddLine()
	require.NoError(t, ed.SelectProduct(ctx, i, 1))
	require.NoError(t, ed.SelectProduct(ctx, i, 42))

	line := ed.Order().Lines[i]
	assert.Equal(t, int64(42), line.ProductID)
	assert.True(t, line.UnitPrice.IsZero())
	assert.Equal(t, int32(0), line.Stock)
	requireTotal(t, ed, 0)

	warnings := ed.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, WarningProductNotFound, warnings[0].Kind)
	assert.Equal(t, int64(42), warnings[0].ProductID)
}

func TestSelectProductCatalogFailureLeavesLine(t *testing.T) {
	ctx := context.Background()
	c := newFakeCatalog(product(1, "A", 10, 5))
	ed := newEditor(t, c)

	i := ed.AddLine()
	require.NoError(t, ed.SelectProduct(ctx, i, 1))

	c.err = errCatalogDown
	err := ed.SelectProduct(ctx, i, 2)
	require.ErrorIs(t, err, errCatalogDown)

	assert.Equal(t, int64(1), ed.Order().Lines[i].ProductID)
	assert.True(t, ed.Order().Lines[i].UnitPrice.Equal(decimal.NewFromInt(10)))
}

func TestSelectProductRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	ed := newEditor(t, newFakeCatalog(product(1, "A", 10, 5), product(2, "B", 20, 2)))

	a := ed.AddLine()
	require.NoError(t, ed.SelectProduct(ctx, a, 1))
	b := ed.AddLine()
	require.NoError(t, ed.SelectProduct(ctx, b, 2))

	err := ed.SelectProduct(ctx, b, 1)
	require.ErrorIs(t, err, e.ErrDuplicateProductSelection)
	assert.Equal(t, int64(2), ed.Order().Lines[b].ProductID)

	// повторный выбор того же товара в той же строке допустим
	require.NoError(t, ed.SelectProduct(ctx, a, 1))
}

func TestSetQuantityRejectsNonPositive(t *testing.T) {
	ctx := context.Background()
	ed := newEditor(t, newFakeCatalog(product(1, "A", 10, 5)))

	i := ed.AddLine()
	require.NoError(t, ed.SelectProduct(ctx, i, 1))

	for _, q := range []int32{0, -1} {
		require.ErrorIs(t, ed.SetQuantity(i, q), e.ErrInvalidQuantity)
	}
	assert.Equal(t, int32(1), ed.Order().Lines[i].Quantity)
	requireTotal(t, ed, 10)
}

func TestSetQuantityWithoutProductClampsToZero(t *testing.T) {
	ed := newEditor(t, newFakeCatalog())

	i := ed.AddLine()
	require.NoError(t, ed.SetQuantity(i, 3))

	assert.Equal(t, int32(0), ed.Order().Lines[i].Quantity)
	assert.Len(t, ed.Warnings(), 1)
	requireTotal(t, ed, 0)
}

func TestClearQuantityExcludesLine(t *testing.T) {
	ctx := context.Background()
	ed := newEditor(t, newFakeCatalog(product(1, "A", 10, 5), product(2, "B", 20, 2)))

	a := ed.AddLine()
	require.NoError(t, ed.SelectProduct(ctx, a, 1))
	b := ed.AddLine()
	require.NoError(t, ed.SelectProduct(ctx, b, 2))
	requireTotal(t, ed, 30)

	require.NoError(t, ed.ClearQuantity(a))
	requireTotal(t, ed, 20)
	assert.Len(t, ed.Order().Lines, 2)
}

func TestRemoveLine(t *testing.T) {
	ctx := context.Background()
	ed := newEditor(t, newFakeCatalog(product(1, "A", 10, 5), product(2, "B", 20, 2)))

	a := ed.AddLine()
	require.NoError(t, ed.SelectProduct(ctx, a, 1))
	require.NoError(t, ed.SetQuantity(a, 3))
	b := ed.AddLine()
	require.NoError(t, ed.SelectProduct(ctx, b, 2))
	requireTotal(t, ed, 50)

	require.NoError(t, ed.RemoveLine(a))
	require.Len(t, ed.Order().Lines, 1)
	assert.Equal(t, int64(2), ed.Order().Lines[0].ProductID)
	requireTotal(t, ed, 20)
}

func TestIndexOutOfRange(t *testing.T) {
	ctx := context.Background()
	ed := newEditor(t, newFakeCatalog(product(1, "A", 10, 5)))
	ed.AddLine()

	for _, i := range []int{-1, 1, 10} {
		assert.ErrorIs(t, ed.SelectProduct(ctx, i, 1), e.ErrLineIndexOutOfRange)
		assert.ErrorIs(t, ed.SetQuantity(i, 1), e.ErrLineIndexOutOfRange)
		assert.ErrorIs(t, ed.ClearQuantity(i), e.ErrLineIndexOutOfRange)
		assert.ErrorIs(t, ed.RemoveLine(i), e.ErrLineIndexOutOfRange)
		_, err := ed.Options(ctx, i)
		assert.ErrorIs(t, err, e.ErrLineIndexOutOfRange)
	}
}

func TestOptionsExcludeSiblingProducts(t *testing.T) {
	ctx := context.Background()
	c := newFakeCatalog(product(1, "A", 10, 5), product(2, "B", 20, 2), product(3, "C", 15, 4))
	ed := newEditor(t, c)

	a := ed.AddLine()
	require.NoError(t, ed.SelectProduct(ctx, a, 1))
	b := ed.AddLine()
	require.NoError(t, ed.SelectProduct(ctx, b, 2))
	ed.AddLine()

	opts, err := ed.Options(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, optionIDs(opts))

	opts, err = ed.Options(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, optionIDs(opts))
}

func TestNewRecomputesLoadedOrder(t *testing.T) {
	order := &domain.Order{
		ID:         7,
		TotalPrice: decimal.NewFromInt(999),
		Lines: []domain.OrderLineItem{
			{ProductID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("9.99"), Stock: 5},
			{ProductID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("0.02"), Stock: 5},
		},
	}

	ed := New(order, newFakeCatalog(), logger.Nop())

	assert.True(t, ed.Total().Equal(decimal.RequireFromString("20")), "got %s", ed.Total())
	assert.Same(t, order, ed.Order())

	i := ed.AddLine()
	assert.Equal(t, int64(7), ed.Order().Lines[i].OrderID)
}

func optionIDs(opts []ProductOption) []int64 {
	ids := make([]int64, 0, len(opts))
	for _, o := range opts {
		ids = append(ids, o.ID)
	}
	return ids
}
