package router

import (
	"go.uber.org/fx"

	"github.com/polkiloo/credit-checkout/internal/app"
	"github.com/polkiloo/credit-checkout/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Options(
	fx.Provide(func(f *app.CheckoutFacade) handlers.Facade { return f }),
	fx.Provide(Setup),
)
