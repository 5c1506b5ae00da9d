package cache

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/credit-checkout/internal/config"
	"github.com/polkiloo/credit-checkout/internal/domain/repository"
)

// Module provides the catalog repository, cached in redis when an address is configured.
var Module = fx.Provide(newProductRepository)

type productParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
	Products  repository.ProductRepository `name:"postgresProducts"`
}

func newProductRepository(p productParams) repository.ProductRepository {
	if p.Config.RedisAddress == "" {
		return p.Products
	}

	store := NewRedisStore(p.Config.RedisAddress)
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := store.Ping(ctx); err != nil {
				p.Logger.Warn("redis unavailable, catalog served from postgres", slog.String("error", err.Error()))
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return store.Close()
		},
	})
	return NewProductRepository(p.Products, store, p.Config.CatalogCacheTTL, p.Logger)
}
