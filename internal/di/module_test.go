package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/credit-checkout/internal/adapter/credit"
	"github.com/polkiloo/credit-checkout/internal/app"
	"github.com/polkiloo/credit-checkout/internal/config"
	"github.com/polkiloo/credit-checkout/internal/domain/repository"
	"github.com/polkiloo/credit-checkout/internal/storage/postgres"
	"github.com/polkiloo/credit-checkout/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:        ":0",
		DatabaseURI:       "postgres://stub",
		CreditAPIAddress:  "http://localhost",
		CreditAPIKey:      "key",
		SellerTaxID:       test.SellerTaxID,
		ReconcileInterval: time.Millisecond,
		ReconcileBatch:    1,
		WorkerPoolSize:    1,
		StaleAttemptAfter: time.Minute,
		OutboxInterval:    time.Millisecond,
		ShutdownTimeout:   time.Millisecond,
		OrderEventsTopic:  "orders.created",
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	var (
		facade *app.CheckoutFacade
		engine *gin.Engine
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.OrderRepository(&test.OrderRepositoryStub{})),
			fx.Replace(repository.AttemptRepository(&test.AttemptRepositoryStub{})),
			fx.Replace(repository.OutboxRepository(&test.OutboxRepositoryStub{})),
			fx.Replace(credit.Client(&test.CreditServiceStub{})),
		),
		fx.Populate(&facade, &engine),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected checkout facade instance")
	}
	if engine == nil {
		t.Fatal("expected router instance")
	}
}
