package usecase

import (
	"context"
	"fmt"

	"github.com/polkiloo/credit-checkout/internal/domain/model"
	"github.com/polkiloo/credit-checkout/internal/domain/repository"
)

// EventPublisher delivers outbox events to the event bus.
type EventPublisher interface {
	Publish(ctx context.Context, events []model.OutboxEvent) error
}

// RelayUseCase moves recorded events from the outbox to the event bus.
type RelayUseCase struct {
	outbox    repository.OutboxRepository
	publisher EventPublisher
}

// NewRelayUseCase constructs RelayUseCase.
func NewRelayUseCase(outbox repository.OutboxRepository, publisher EventPublisher) *RelayUseCase {
	return &RelayUseCase{outbox: outbox, publisher: publisher}
}

// Relay publishes up to limit pending events and marks them sent. Events are
// delivered at least once: a failure after publishing leaves them pending.
func (u *RelayUseCase) Relay(ctx context.Context, limit int) (int, error) {
	pending, err := u.outbox.FetchPending(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("fetch pending events: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	if err := u.publisher.Publish(ctx, pending); err != nil {
		return 0, fmt.Errorf("publish events: %w", err)
	}

	ids := make([]int64, len(pending))
	for i, event := range pending {
		ids[i] = event.ID
	}
	if err := u.outbox.MarkSent(ctx, ids); err != nil {
		return 0, fmt.Errorf("mark events sent: %w", err)
	}
	return len(pending), nil
}
