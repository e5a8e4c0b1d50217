package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/order-backoffice/internal/domain"
	"github.com/DRSN-tech/order-backoffice/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/order-backoffice/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

type PaymentMethodRepo struct {
	pool *pgxpool.Pool
	conv converter.PaymentMethodConverter
}

func NewPaymentMethodRepo(pool *pgxpool.Pool, conv converter.PaymentMethodConverter) *PaymentMethodRepo {
	return &PaymentMethodRepo{
		pool: pool,
		conv: conv,
	}
}

func (p *PaymentMethodRepo) GetByID(ctx context.Context, id int64) (*domain.PaymentMethod, error) {
	query := `
		SELECT id, name, is_active
		FROM payment_methods
		WHERE id = $1
	`

	var model converter.PaymentMethodModel
	err := conn(ctx, p.pool).QueryRow(ctx, query, id).Scan(&model.ID, &model.Name, &model.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrPaymentMethodNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// ListActive возвращает активные способы оплаты, отсортированные по имени.
func (p *PaymentMethodRepo) ListActive(ctx context.Context) ([]domain.PaymentMethod, error) {
	query := `
		SELECT id, name, is_active
		FROM payment_methods
		WHERE is_active
		ORDER BY name, id
	`

	rows, err := conn(ctx, p.pool).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	models, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.PaymentMethodModel])
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}
