package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/credit-checkout/internal/config"
	"github.com/polkiloo/credit-checkout/internal/storage/postgres"
	"github.com/polkiloo/credit-checkout/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		func(s *postgres.Storage) HealthChecker { return s },
		NewCheckoutFacade,
		newHTTPServer,
		newReconciler,
		newOutboxRelay,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade *CheckoutFacade
	Config *config.Config
	Logger *slog.Logger
}

// reconcileLeaseTicks is how many poll intervals a claimed attempt stays leased.
const reconcileLeaseTicks = 3

func newReconciler(p workerParams) *worker.Reconciler {
	return worker.NewReconciler(p.Facade, worker.ReconcilerOptions{
		PollInterval: p.Config.ReconcileInterval,
		BatchSize:    p.Config.ReconcileBatch,
		Workers:      p.Config.WorkerPoolSize,
		Lease:        reconcileLeaseTicks * p.Config.ReconcileInterval,
		StaleAfter:   p.Config.StaleAttemptAfter,
	}, p.Logger)
}

func newOutboxRelay(p workerParams) *worker.OutboxRelay {
	return worker.NewOutboxRelay(p.Facade, p.Config.OutboxInterval, p.Config.ReconcileBatch, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Reconciler *worker.Reconciler
	Relay      *worker.OutboxRelay
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting credit checkout", slog.String("addr", p.Server.Addr))
			// fx cancels the start context once OnStart returns
			p.Reconciler.Start(context.WithoutCancel(ctx))
			p.Relay.Start(context.WithoutCancel(ctx))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			err := p.Server.Shutdown(shutdownCtx)
			p.Reconciler.Stop()
			p.Relay.Stop()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("credit checkout stopped")
			return nil
		},
	})
}
