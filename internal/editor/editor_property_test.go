package editor

import (
	"context"
	"testing"

	"github.com/DRSN-tech/order-backoffice/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const catalogSize = 6

func genCatalog(t *rapid.T) *fakeCatalog {
	c := newFakeCatalog()
	for id := int64(1); id <= catalogSize; id++ {
		c.products[id] = ProductSnapshot{
			ID:    id,
			Price: decimal.New(rapid.Int64Range(0, 100_000).Draw(t, "price-cents"), -2),
			Stock: rapid.Int32Range(0, 20).Draw(t, "stock"),
		}
	}
	return c
}

func expectedTotal(ed *Editor) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range ed.Order().Lines {
		if l.ProductID == 0 || l.Quantity == 0 {
			continue
		}
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt32(l.Quantity)))
	}
	return sum
}

// Каждая операция оставляет сумму равной сумме по заполненным строкам,
// товары в строках не повторяются, количество не превышает остаток.
func TestEditorInvariantsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		c := genCatalog(t)
		ed := New(nil, c, logger.Nop())

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for s := 0; s < steps; s++ {
			n := len(ed.Order().Lines)
			op := rapid.IntRange(0, 4).Draw(t, "op")
			if n == 0 {
				op = 0
			}

			switch op {
			case 0:
				ed.AddLine()
			case 1:
				i := rapid.IntRange(0, n-1).Draw(t, "line")
				id := rapid.Int64Range(1, catalogSize+1).Draw(t, "product")
				_ = ed.SelectProduct(ctx, i, id)
			case 2:
				i := rapid.IntRange(0, n-1).Draw(t, "line")
				q := rapid.Int32Range(1, 30).Draw(t, "qty")
				require.NoError(t, ed.SetQuantity(i, q))
				line := ed.Order().Lines[i]
				if q > line.Stock {
					require.Equal(t, line.Stock, line.Quantity)
				} else {
					require.Equal(t, q, line.Quantity)
				}
			case 3:
				i := rapid.IntRange(0, n-1).Draw(t, "line")
				require.NoError(t, ed.ClearQuantity(i))
			case 4:
				i := rapid.IntRange(0, n-1).Draw(t, "line")
				require.NoError(t, ed.RemoveLine(i))
			}

			require.True(t, ed.Total().Equal(expectedTotal(ed)), "total %s, want %s", ed.Total(), expectedTotal(ed))

			seen := make(map[int64]bool)
			for _, l := range ed.Order().Lines {
				if l.ProductID == 0 {
					continue
				}
				require.False(t, seen[l.ProductID], "duplicate product %d", l.ProductID)
				seen[l.ProductID] = true
			}
		}
	})
}

func TestOptionsNeverOfferSiblingProductsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		c := genCatalog(t)
		ed := New(nil, c, logger.Nop())

		lines := rapid.IntRange(1, catalogSize).Draw(t, "lines")
		for i := 0; i < lines; i++ {
			ed.AddLine()
			_ = ed.SelectProduct(ctx, i, rapid.Int64Range(1, catalogSize).Draw(t, "product"))
		}

		i := rapid.IntRange(0, lines-1).Draw(t, "target")
		opts, err := ed.Options(ctx, i)
		require.NoError(t, err)

		for j, l := range ed.Order().Lines {
			if j == i || l.ProductID == 0 {
				continue
			}
			for _, o := range opts {
				require.NotEqual(t, l.ProductID, o.ID, "line %d product offered on line %d", j, i)
			}
		}
	})
}
