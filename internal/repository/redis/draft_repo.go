package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DRSN-tech/order-backoffice/internal/cfg"
	"github.com/DRSN-tech/order-backoffice/internal/repository/redis/converter"
	"github.com/DRSN-tech/order-backoffice/internal/usecase"
	"github.com/DRSN-tech/order-backoffice/pkg/clients"
	"github.com/DRSN-tech/order-backoffice/pkg/e"
	"github.com/DRSN-tech/order-backoffice/pkg/logger"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// DraftRepo хранит черновики заказов в Redis с TTL, продлеваемым при каждом сохранении.
type DraftRepo struct {
	client *clients.RedisClient
	conv   converter.DraftConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewDraftRepo(client *clients.RedisClient, conv converter.DraftConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *DraftRepo {
	return &DraftRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

func (d *DraftRepo) Get(ctx context.Context, id uuid.UUID) (*usecase.Draft, error) {
	data, err := d.client.Client.Get(ctx, d.draftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrDraftNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model, err := d.unmarshalDraft(data)
	if err != nil {
		// Повреждённый черновик не восстановить, удаляем его
		d.logger.Warnf("Redis unmarshal failed for draft %s: %v", id, e.Wrap(whereami.WhereAmI(), err))
		if err := d.client.Client.Del(ctx, d.draftKey(id)).Err(); err != nil {
			d.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrDraftNotFound)
	}

	draft, err := d.conv.ToUseCase(model)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if draft.ID != id {
		d.logger.Warnf("Draft ID mismatch: key_id: %s, model_id: %s", id, draft.ID)
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrDraftNotFound)
	}

	return draft, nil
}

// Save записывает черновик и продлевает его TTL.
func (d *DraftRepo) Save(ctx context.Context, draft *usecase.Draft) error {
	data, err := json.Marshal(d.conv.ToRedisModel(draft))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := d.client.Client.Set(ctx, d.draftKey(draft.ID), data, d.cfg.DraftTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Delete удаляет черновик. Отсутствие ключа ошибкой не считается.
func (d *DraftRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := d.client.Client.Del(ctx, d.draftKey(id)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (d *DraftRepo) unmarshalDraft(data []byte) (*converter.DraftRedisModel, error) {
	var model converter.DraftRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, err
	}

	return &model, nil
}

// draftKey возвращает Redis-ключ черновика
func (d *DraftRepo) draftKey(id uuid.UUID) string {
	return fmt.Sprintf("order_draft:%s", id)
}
