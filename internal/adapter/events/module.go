package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/credit-checkout/internal/config"
)

// Module provides the event publisher, Kafka backed when brokers are configured.
var Module = fx.Provide(newPublisher)

type publisherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newPublisher(p publisherParams) Publisher {
	var pub Publisher
	if len(p.Config.KafkaBrokers) > 0 {
		pub = NewKafkaPublisher(p.Config.KafkaBrokers)
		p.Logger.Info("kafka publisher enabled", slog.Any("brokers", p.Config.KafkaBrokers))
	} else {
		pub = NewLogPublisher(p.Logger)
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return pub.Close()
		},
	})
	return pub
}
