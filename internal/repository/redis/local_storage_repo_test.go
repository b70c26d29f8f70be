package redis

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/alicebob/miniredis/v2"
	r "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T, ttl time.Duration) (*LocalStorageRepo, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := &clients.RedisClient{Client: r.NewClient(&r.Options{Addr: mr.Addr()})}
	t.Cleanup(func() { _ = client.Client.Close() })

	storageCfg := &cfg.StorageCfg{Driver: cfg.StorageDriverRedis, KeyPrefix: "test", TTL: ttl}
	return NewLocalStorageRepo(client, storageCfg, logger.NewNopLogger()), mr
}

func TestLocalStorageRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepo(t, 0)

	_, ok, err := repo.GetItem(ctx, "v1", "cart")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.SetItem(ctx, "v1", "cart", `[{"id":"a"}]`))

	stored, err := mr.Get("test:visitor:v1:cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, stored)
	assert.Zero(t, mr.TTL("test:visitor:v1:cart"), "keys never expire without VISITOR_TTL")

	value, ok, err := repo.GetItem(ctx, "v1", "cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"a"}]`, value)

	require.NoError(t, repo.RemoveItem(ctx, "v1", "cart"))
	assert.False(t, mr.Exists("test:visitor:v1:cart"))
}

func TestLocalStorageRepoTTL(t *testing.T) {
	repo, mr := newTestRepo(t, time.Hour)

	require.NoError(t, repo.SetItem(context.Background(), "v1", "cart", "[]"))
	assert.Equal(t, time.Hour, mr.TTL("test:visitor:v1:cart"))
}

func TestLocalStorageRepoTakeItem(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepo(t, 0)

	require.NoError(t, mr.Set("test:visitor:v1:lastOrderTotal", "250"))

	value, ok, err := repo.TakeItem(ctx, "v1", "lastOrderTotal")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "250", value)
	assert.False(t, mr.Exists("test:visitor:v1:lastOrderTotal"))

	_, ok, err = repo.TakeItem(ctx, "v1", "lastOrderTotal")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalStorageRepoUnavailable(t *testing.T) {
	repo, mr := newTestRepo(t, 0)
	mr.Close()

	_, _, err := repo.GetItem(context.Background(), "v1", "cart")
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrStorageUnavailable)
}
