package clients

import (
	"context"
	"errors"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// clientName виден в CLIENT LIST, чтобы отличать соединения витрины.
const clientName = "storefront"

// RedisClient - соединение с Redis, в котором живут корзины посетителей.
type RedisClient struct {
	Client *r.Client
}

func NewRedisClient(cfg *cfg.RedisCfg) *RedisClient {
	return &RedisClient{
		Client: r.NewClient(redisOptions(cfg)),
	}
}

func redisOptions(cfg *cfg.RedisCfg) *r.Options {
	return &r.Options{
		Addr:         cfg.Addr,
		ClientName:   clientName,
		Username:     cfg.User,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	}
}

// Ping проверяет доступность хранилища посетителей при старте.
// Любой сбой классифицируется как e.ErrStorageUnavailable.
func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), errors.Join(e.ErrStorageUnavailable, err))
	}

	return nil
}

// Close закрывает пул соединений; сигнатура подходит для closer.Func.
func (c *RedisClient) Close(_ context.Context) error {
	return c.Client.Close()
}
