package repository

import (
	"context"

	"github.com/polkiloo/credit-checkout/internal/domain/model"
)

// OutboxRepository reads and acknowledges events waiting for the event bus.
type OutboxRepository interface {
	FetchPending(ctx context.Context, limit int) ([]model.OutboxEvent, error)
	MarkSent(ctx context.Context, ids []int64) error
}
