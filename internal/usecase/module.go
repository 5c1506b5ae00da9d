package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/credit-checkout/internal/adapter/credit"
	"github.com/polkiloo/credit-checkout/internal/adapter/events"
	"github.com/polkiloo/credit-checkout/internal/config"
)

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(
		func(c credit.Client) CreditService { return c },
		func(p events.Publisher) EventPublisher { return p },
		func(cfg *config.Config) Settings { return Settings{SellerTaxID: cfg.SellerTaxID} },
	),
	fx.Provide(
		NewEvaluatorUseCase,
		NewCheckoutUseCase,
		NewRelayUseCase,
	),
)
