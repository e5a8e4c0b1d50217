package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/order-backoffice/internal/editor"
	"github.com/DRSN-tech/order-backoffice/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/order-backoffice/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo — каталог товаров для редактора заказов. Всегда читает из PostgreSQL.
type ProductRepo struct {
	pool     *pgxpool.Pool
	conv     converter.ProductConverter
	minStock int32
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter, minStock int32) *ProductRepo {
	return &ProductRepo{
		pool:     pool,
		conv:     conv,
		minStock: minStock,
	}
}

// LookupProduct возвращает текущие цену и остаток товара.
func (p *ProductRepo) LookupProduct(ctx context.Context, id int64) (*editor.ProductSnapshot, error) {
	query := `
		SELECT id, name, stock, price, COALESCE(category_id, 0), is_active, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var model converter.ProductModel
	err := conn(ctx, p.pool).QueryRow(ctx, query, id).Scan(
		&model.ID, &model.Name, &model.Stock, &model.Price,
		&model.CategoryID, &model.IsActive, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	// неактивный товар уже мог быть выбран в сохранённом заказе, поэтому не фильтруем
	return p.conv.ToSnapshot(p.conv.ToEntity(&model)), nil
}

// ListAvailableProducts возвращает активные товары с остатком больше минимального,
// кроме excluding, вместе с названием категории.
func (p *ProductRepo) ListAvailableProducts(ctx context.Context, excluding []int64) ([]editor.ProductOption, error) {
	if excluding == nil {
		excluding = []int64{}
	}

	query := `
		SELECT pr.id, pr.name, COALESCE(cat.name, '')
		FROM products pr
		LEFT JOIN categories cat ON pr.category_id = cat.id
		WHERE pr.is_active
		  AND pr.stock > $1
		  AND NOT (pr.id = ANY($2))
		ORDER BY pr.name, pr.id
	`

	rows, err := conn(ctx, p.pool).Query(ctx, query, p.minStock, excluding)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]editor.ProductOption, 0)
	for rows.Next() {
		var option editor.ProductOption
		if err := rows.Scan(&option.ID, &option.Name, &option.CategoryName); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, option)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
