package handlers

import (
	"context"

	"github.com/polkiloo/credit-checkout/internal/domain/model"
)

// BuyerFacade exposes buyer lookups.
type BuyerFacade interface {
	Buyer(ctx context.Context, cnpj string) (*model.BuyerProfile, error)
}

// CheckoutFacade encapsulates cart evaluation and order placement.
type CheckoutFacade interface {
	Terms(ctx context.Context, cnpj string, cart []model.CartLine) (*model.Evaluation, error)
	CreateOrder(ctx context.Context, req *model.CheckoutRequest) (string, error)
}

// HealthFacade reports backing store health.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// Facade aggregates the full set of operations used across handlers.
type Facade interface {
	BuyerFacade
	CheckoutFacade
	HealthFacade
}

// CheckoutObserver records checkout outcomes.
type CheckoutObserver interface {
	ObserveCheckout(outcome string)
}
