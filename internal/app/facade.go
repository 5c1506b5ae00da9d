package app

import (
	"context"
	"time"

	"github.com/polkiloo/credit-checkout/internal/domain/model"
	"github.com/polkiloo/credit-checkout/internal/usecase"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// CheckoutFacade is the single entry point the transport and workers use.
type CheckoutFacade struct {
	evaluator *usecase.EvaluatorUseCase
	checkout  *usecase.CheckoutUseCase
	relay     *usecase.RelayUseCase
	health    HealthChecker
}

func NewCheckoutFacade(evaluator *usecase.EvaluatorUseCase, checkout *usecase.CheckoutUseCase, relay *usecase.RelayUseCase, health HealthChecker) *CheckoutFacade {
	return &CheckoutFacade{evaluator: evaluator, checkout: checkout, relay: relay, health: health}
}

func (f *CheckoutFacade) Buyer(ctx context.Context, cnpj string) (*model.BuyerProfile, error) {
	return f.evaluator.Buyer(ctx, cnpj)
}

func (f *CheckoutFacade) Terms(ctx context.Context, cnpj string, cart []model.CartLine) (*model.Evaluation, error) {
	return f.evaluator.Evaluate(ctx, cnpj, cart, false)
}

func (f *CheckoutFacade) CreateOrder(ctx context.Context, req *model.CheckoutRequest) (string, error) {
	return f.checkout.Checkout(ctx, req)
}

func (f *CheckoutFacade) AttemptsForReconciliation(ctx context.Context, leaseBefore, staleBefore time.Time, limit int) ([]model.CheckoutAttempt, error) {
	return f.checkout.AttemptsForReconciliation(ctx, leaseBefore, staleBefore, limit)
}

func (f *CheckoutFacade) Reconcile(ctx context.Context, attempt model.CheckoutAttempt) error {
	return f.checkout.Reconcile(ctx, attempt)
}

func (f *CheckoutFacade) RelayEvents(ctx context.Context, limit int) (int, error) {
	return f.relay.Relay(ctx, limit)
}

func (f *CheckoutFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
