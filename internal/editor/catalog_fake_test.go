package editor

import (
	"context"
	"errors"
	"sort"

	"github.com/DRSN-tech/order-backoffice/pkg/e"
	"github.com/shopspring/decimal"
)

type fakeCatalog struct {
	products map[int64]ProductSnapshot
	err      error
	lookups  int
	excluded [][]int64
}

func newFakeCatalog(products ...ProductSnapshot) *fakeCatalog {
	c := &fakeCatalog{products: make(map[int64]ProductSnapshot, len(products))}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *fakeCatalog) LookupProduct(_ context.Context, id int64) (*ProductSnapshot, error) {
	c.lookups++
	if c.err != nil {
		return nil, c.err
	}
	p, ok := c.products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}
	return &p, nil
}

func (c *fakeCatalog) ListAvailableProducts(_ context.Context, excluding []int64) ([]ProductOption, error) {
	c.excluded = append(c.excluded, excluding)
	if c.err != nil {
		return nil, c.err
	}

	skip := make(map[int64]struct{}, len(excluding))
	for _, id := range excluding {
		skip[id] = struct{}{}
	}

	out := make([]ProductOption, 0, len(c.products))
	for id, p := range c.products {
		if _, ok := skip[id]; ok {
			continue
		}
		out = append(out, ProductOption{ID: id, Name: p.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func product(id int64, name string, price int64, stock int32) ProductSnapshot {
	return ProductSnapshot{ID: id, Name: name, Price: decimal.NewFromInt(price), Stock: stock}
}

var errCatalogDown = errors.New("catalog unavailable")
