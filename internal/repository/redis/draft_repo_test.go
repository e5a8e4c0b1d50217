package redis

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/order-backoffice/internal/cfg"
	"github.com/DRSN-tech/order-backoffice/internal/domain"
	"github.com/DRSN-tech/order-backoffice/internal/repository/redis/converter"
	"github.com/DRSN-tech/order-backoffice/internal/usecase"
	"github.com/DRSN-tech/order-backoffice/pkg/clients"
	"github.com/DRSN-tech/order-backoffice/pkg/e"
	"github.com/DRSN-tech/order-backoffice/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newTestRedis(t *testing.T) (*clients.RedisClient, *cfg.RedisCfg) {
	t.Helper()

	if testing.Short() {
		t.Skip("integration test, skipped in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	endpoint, err := ctr.Endpoint(ctx, "")
	require.NoError(t, err)

	redisCfg := &cfg.RedisCfg{
		Addr:        endpoint,
		MaxRetries:  1,
		DialTimeout: 5 * time.Second,
		Timeout:     3 * time.Second,
		DraftTTL:    time.Minute,
	}
	client := clients.NewRedisClient(redisCfg)
	t.Cleanup(func() { _ = client.Close(context.Background()) })
	require.NoError(t, client.Ping(ctx))

	return client, redisCfg
}

func TestDraftRepo(t *testing.T) {
	client, redisCfg := newTestRedis(t)
	repo := NewDraftRepo(client, converter.DraftConverter{}, redisCfg, logger.Nop())
	ctx := context.Background()

	draft := &usecase.Draft{
		ID:        uuid.New(),
		UpdatedAt: time.Now().UTC(),
		Order: &domain.Order{
			CustomerName: "Budi",
			TotalPrice:   decimal.NewFromInt(70),
			Lines: []domain.OrderLineItem{
				{ProductID: 1, Quantity: 3, UnitPrice: decimal.NewFromInt(10), Stock: 5},
				{ProductID: 2, Quantity: 2, UnitPrice: decimal.NewFromInt(20), Stock: 2},
			},
		},
	}

	t.Run("missing draft", func(t *testing.T) {
		_, err := repo.Get(ctx, uuid.New())
		require.ErrorIs(t, err, e.ErrDraftNotFound)
	})

	t.Run("save and get", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, draft))

		got, err := repo.Get(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, "Budi", got.Order.CustomerName)
		assert.True(t, got.Order.TotalPrice.Equal(decimal.NewFromInt(70)))
		require.Len(t, got.Order.Lines, 2)
		assert.Equal(t, int32(2), got.Order.Lines[1].Stock)

		ttl, err := client.Client.TTL(ctx, repo.draftKey(draft.ID)).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, redisCfg.DraftTTL)
	})

	t.Run("corrupted draft is dropped", func(t *testing.T) {
		id := uuid.New()
		require.NoError(t, client.Client.Set(ctx, repo.draftKey(id), "{not json", time.Minute).Err())

		_, err := repo.Get(ctx, id)
		require.ErrorIs(t, err, e.ErrDraftNotFound)

		exists, err := client.Client.Exists(ctx, repo.draftKey(id)).Result()
		require.NoError(t, err)
		assert.Zero(t, exists)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, draft.ID))
		require.NoError(t, repo.Delete(ctx, draft.ID))

		_, err := repo.Get(ctx, draft.ID)
		require.ErrorIs(t, err, e.ErrDraftNotFound)
	})
}
