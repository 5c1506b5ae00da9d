package repository

import (
	"context"

	"github.com/polkiloo/credit-checkout/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// CreateWithItems stores the order, its items and an order.created outbox
	// event in a single transaction and marks attemptID completed when it is
	// non-zero. A repeated external order id returns the stored order.
	CreateWithItems(ctx context.Context, order *model.Order, attemptID int64) (*model.Order, error)
	GetByExternalID(ctx context.Context, externalOrderID string) (*model.Order, error)
}
