package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/credit-checkout/internal/adapter/credit"
	"github.com/polkiloo/credit-checkout/internal/adapter/events"
	"github.com/polkiloo/credit-checkout/internal/app"
	"github.com/polkiloo/credit-checkout/internal/config"
	"github.com/polkiloo/credit-checkout/internal/logger"
	"github.com/polkiloo/credit-checkout/internal/metrics"
	"github.com/polkiloo/credit-checkout/internal/server/http/router"
	"github.com/polkiloo/credit-checkout/internal/storage/cache"
	"github.com/polkiloo/credit-checkout/internal/storage/postgres"
	"github.com/polkiloo/credit-checkout/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		postgres.Module,
		cache.Module,
		credit.Module,
		events.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
