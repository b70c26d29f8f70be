package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// LocalStorageRepo хранит значения посетителей в Redis, по одному ключу на пару (visitor, key).
type LocalStorageRepo struct {
	client *clients.RedisClient
	cfg    *cfg.StorageCfg
	logger logger.Logger
}

func NewLocalStorageRepo(client *clients.RedisClient, cfg *cfg.StorageCfg, logger logger.Logger) *LocalStorageRepo {
	return &LocalStorageRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// GetItem возвращает значение ключа посетителя, промах не считается ошибкой
func (l *LocalStorageRepo) GetItem(ctx context.Context, visitorID, key string) (string, bool, error) {
	value, err := l.client.Client.Get(ctx, l.storageKey(visitorID, key)).Result()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return "", false, nil
		}

		l.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return "", false, e.Wrap(whereami.WhereAmI(), errors.Join(e.ErrStorageUnavailable, err))
	}

	return value, true, nil
}

// SetItem записывает значение. При заданном TTL срок жизни продлевается при каждой записи.
func (l *LocalStorageRepo) SetItem(ctx context.Context, visitorID, key, value string) error {
	if err := l.client.Client.Set(ctx, l.storageKey(visitorID, key), value, l.cfg.TTL).Err(); err != nil {
		l.logger.Warnf("Redis SET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return e.Wrap(whereami.WhereAmI(), errors.Join(e.ErrStorageUnavailable, err))
	}

	return nil
}

// RemoveItem удаляет ключ посетителя
func (l *LocalStorageRepo) RemoveItem(ctx context.Context, visitorID, key string) error {
	if err := l.client.Client.Del(ctx, l.storageKey(visitorID, key)).Err(); err != nil {
		l.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return e.Wrap(whereami.WhereAmI(), errors.Join(e.ErrStorageUnavailable, err))
	}

	return nil
}

// TakeItem атомарно читает и удаляет значение (GETDEL)
func (l *LocalStorageRepo) TakeItem(ctx context.Context, visitorID, key string) (string, bool, error) {
	value, err := l.client.Client.GetDel(ctx, l.storageKey(visitorID, key)).Result()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return "", false, nil
		}

		l.logger.Warnf("Redis GETDEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return "", false, e.Wrap(whereami.WhereAmI(), errors.Join(e.ErrStorageUnavailable, err))
	}

	return value, true, nil
}

// storageKey возвращает Redis-ключ значения посетителя
func (l *LocalStorageRepo) storageKey(visitorID, key string) string {
	return fmt.Sprintf("%s:visitor:%s:%s", l.cfg.KeyPrefix, visitorID, key)
}
