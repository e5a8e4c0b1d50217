package pgdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/DRSN-tech/order-backoffice/internal/domain"
	"github.com/DRSN-tech/order-backoffice/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/order-backoffice/pkg/e"
	"github.com/DRSN-tech/order-backoffice/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// OrderRepo хранит заказы и их строки в PostgreSQL.
type OrderRepo struct {
	pool *pgxpool.Pool
	conv converter.OrderConverter
}

func NewOrderRepo(pool *pgxpool.Pool, conv converter.OrderConverter) *OrderRepo {
	return &OrderRepo{
		pool: pool,
		conv: conv,
	}
}

const orderColumns = `
	o.id, o.customer_name, o.phone, o.note, o.payment_method_id,
	COALESCE(pm.name, ''), o.total_price, o.paid_amount, o.change_amount,
	o.created_at, o.updated_at
`

func scanOrder(row pgx.Row, model *converter.OrderModel) error {
	return row.Scan(
		&model.ID, &model.CustomerName, &model.Phone, &model.Note, &model.PaymentMethodID,
		&model.PaymentMethodName, &model.TotalPrice, &model.PaidAmount, &model.ChangeAmount,
		&model.CreatedAt, &model.UpdatedAt,
	)
}

// Create вставляет заказ без строк. Требует транзакцию в контексте.
func (r *OrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := r.conv.ToModel(order)
	query := `
		INSERT INTO orders (
			customer_name,
			phone,
			note,
			payment_method_id,
			total_price,
			paid_amount,
			change_amount
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at;
	`

	err = tx.QueryRow(ctx, query,
		model.CustomerName,
		model.Phone,
		model.Note,
		model.PaymentMethodID,
		model.TotalPrice,
		model.PaidAmount,
		model.ChangeAmount,
	).Scan(&model.ID, &model.CreatedAt, &model.UpdatedAt)
	if err != nil {
		if postgresForeignKey(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrPaymentMethodNotFound)
		}
		return nil, fmt.Errorf("%s: failed to insert order: %w", whereami.WhereAmI(), err)
	}

	return r.conv.ToEntity(model, nil), nil
}

// Update перезаписывает шапку и итог заказа. Требует транзакцию в контексте.
func (r *OrderRepo) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := r.conv.ToModel(order)
	query := `
		UPDATE orders
		SET customer_name = $2,
			phone = $3,
			note = $4,
			payment_method_id = $5,
			total_price = $6,
			paid_amount = $7,
			change_amount = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at;
	`

	err = tx.QueryRow(ctx, query,
		model.ID,
		model.CustomerName,
		model.Phone,
		model.Note,
		model.PaymentMethodID,
		model.TotalPrice,
		model.PaidAmount,
		model.ChangeAmount,
	).Scan(&model.CreatedAt, &model.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrOrderNotFound)
		}
		if postgresForeignKey(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrPaymentMethodNotFound)
		}
		return nil, fmt.Errorf("%s: failed to update order %d: %w", whereami.WhereAmI(), order.ID, err)
	}

	return r.conv.ToEntity(model, nil), nil
}

// ReplaceLines удаляет строки заказа и вставляет переданные. Требует транзакцию в контексте.
func (r *OrderRepo) ReplaceLines(ctx context.Context, orderID int64, lines []domain.OrderLineItem) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_line_items WHERE order_id = $1`, orderID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if len(lines) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_line_items (order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
	`

	batch := &pgx.Batch{}
	for _, l := range lines {
		model := r.conv.ToLineModel(orderID, l)
		batch.Queue(query, model.OrderID, model.ProductID, model.Quantity, model.UnitPrice)
	}

	results := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			if postgresDuplicate(err) {
				return e.Wrap(whereami.WhereAmI(), e.ErrDuplicateProductSelection)
			}
			if postgresForeignKey(err) {
				return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
			}
			return fmt.Errorf("%s: failed to insert line item: %w", whereami.WhereAmI(), err)
		}
	}

	if err := results.Close(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// GetByID возвращает заказ со строками в порядке добавления.
func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	q := conn(ctx, r.pool)

	query := `SELECT ` + orderColumns + `
		FROM orders o
		LEFT JOIN payment_methods pm ON pm.id = o.payment_method_id
		WHERE o.id = $1
	`

	var model converter.OrderModel
	if err := scanOrder(q.QueryRow(ctx, query, id), &model); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrOrderNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	linesQuery := `
		SELECT li.id, li.order_id, li.product_id, COALESCE(p.name, ''), li.quantity, li.unit_price
		FROM order_line_items li
		LEFT JOIN products p ON p.id = li.product_id
		WHERE li.order_id = $1
		ORDER BY li.id
	`

	rows, err := q.Query(ctx, linesQuery, id)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	lines := make([]converter.OrderLineItemModel, 0)
	for rows.Next() {
		var l converter.OrderLineItemModel
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.ProductName, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToEntity(&model, lines), nil
}

// List возвращает страницу заказов (новые первыми) и общее количество заказов.
func (r *OrderRepo) List(ctx context.Context, limit, offset int) ([]domain.Order, int64, error) {
	q := conn(ctx, r.pool)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + orderColumns + `
		FROM orders o
		LEFT JOIN payment_methods pm ON pm.id = o.payment_method_id
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0, limit)
	for rows.Next() {
		var model converter.OrderModel
		if err := scanOrder(rows, &model); err != nil {
			return nil, 0, e.Wrap(whereami.WhereAmI(), err)
		}
		orders = append(orders, *r.conv.ToEntity(&model, nil))
	}

	if err := rows.Err(); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return orders, total, nil
}

// Delete удаляет заказ. Строки удаляются каскадно на уровне БД.
func (r *OrderRepo) Delete(ctx context.Context, id int64) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrOrderNotFound)
	}

	return nil
}
