package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/credit-checkout/internal/config"
	"github.com/polkiloo/credit-checkout/internal/metrics"
	"github.com/polkiloo/credit-checkout/internal/server/http/handlers"
	"github.com/polkiloo/credit-checkout/internal/server/http/middleware"
)

// Params collects router dependencies.
type Params struct {
	fx.In

	Facade  handlers.Facade
	Metrics *metrics.Metrics
	Config  *config.Config
	Logger  *slog.Logger
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(middleware.Metrics(p.Metrics))
	engine.Use(middleware.CORS(p.Config.CORSAllowedOrigins))
	engine.Use(middleware.Compression())

	system := handlers.NewSystemHandler(p.Facade)
	buyer := handlers.NewBuyerHandler(p.Facade)
	checkout := handlers.NewCheckoutHandler(p.Facade, p.Metrics)

	engine.GET("/", system.Index)
	engine.GET("/health", system.Health)
	engine.GET("/metrics", gin.WrapH(p.Metrics.Handler()))

	engine.GET("/buyer/:cnpj", buyer.Get)
	engine.POST("/buyer/terms/", checkout.Terms)
	engine.POST("/order/create/", checkout.CreateOrder)

	return engine
}
