package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/polkiloo/credit-checkout/internal/domain/model"
)

// CheckoutFacadeStub provides controllable behaviour for checkout endpoints.
type CheckoutFacadeStub struct {
	BuyerFn       func(context.Context, string) (*model.BuyerProfile, error)
	TermsFn       func(context.Context, string, []model.CartLine) (*model.Evaluation, error)
	CreateOrderFn func(context.Context, *model.CheckoutRequest) (string, error)
	HealthFn      func(context.Context) error
}

// Buyer delegates to provided function or returns an approved buyer.
func (s CheckoutFacadeStub) Buyer(ctx context.Context, cnpj string) (*model.BuyerProfile, error) {
	if s.BuyerFn != nil {
		return s.BuyerFn(ctx, cnpj)
	}
	return ApprovedBuyer(1_000_000, 30), nil
}

// Terms delegates to provided function or returns an empty evaluation.
func (s CheckoutFacadeStub) Terms(ctx context.Context, cnpj string, cart []model.CartLine) (*model.Evaluation, error) {
	if s.TermsFn != nil {
		return s.TermsFn(ctx, cnpj, cart)
	}
	return &model.Evaluation{BuyerTaxID: cnpj, Terms: []int{7, 14, 30}}, nil
}

// CreateOrder delegates to provided function or returns a fixed id.
func (s CheckoutFacadeStub) CreateOrder(ctx context.Context, req *model.CheckoutRequest) (string, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, req)
	}
	return "ord_1", nil
}

// HealthCheck delegates to provided function.
func (s CheckoutFacadeStub) HealthCheck(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}

// ReconcileFacadeStub mimics worker interactions with the checkout facade.
type ReconcileFacadeStub struct {
	Batches     [][]model.CheckoutAttempt
	AttemptsFn  func(context.Context, time.Time, time.Time, int) ([]model.CheckoutAttempt, error)
	ReconcileFn func(context.Context, model.CheckoutAttempt) error
	Reconciled  []model.CheckoutAttempt
	mu          sync.Mutex
	calls       int32
}

// Lock exposes internal mutex for external synchronization.
func (s *ReconcileFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *ReconcileFacadeStub) Unlock() { s.mu.Unlock() }

// AttemptsForReconciliation returns batches from configured queue.
func (s *ReconcileFacadeStub) AttemptsForReconciliation(ctx context.Context, leaseBefore, staleBefore time.Time, limit int) ([]model.CheckoutAttempt, error) {
	if s.AttemptsFn != nil {
		return s.AttemptsFn(ctx, leaseBefore, staleBefore, limit)
	}
	call := atomic.AddInt32(&s.calls, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// Reconcile records reconciled attempts.
func (s *ReconcileFacadeStub) Reconcile(ctx context.Context, attempt model.CheckoutAttempt) error {
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx, attempt)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reconciled = append(s.Reconciled, attempt)
	return nil
}

// RelayFacadeStub counts relay invocations.
type RelayFacadeStub struct {
	RelayFn func(context.Context, int) (int, error)
	calls   int32
}

// RelayEvents delegates to provided function.
func (s *RelayFacadeStub) RelayEvents(ctx context.Context, limit int) (int, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.RelayFn != nil {
		return s.RelayFn(ctx, limit)
	}
	return 0, nil
}

// Calls returns how many times RelayEvents ran.
func (s *RelayFacadeStub) Calls() int {
	return int(atomic.LoadInt32(&s.calls))
}
