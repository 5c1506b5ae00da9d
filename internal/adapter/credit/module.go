package credit

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/credit-checkout/internal/config"
)

// Module exposes credit client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.CreditAPIAddress, p.Config.CreditAPIKey, p.Config.CreditAPITimeout, p.Logger)
}
