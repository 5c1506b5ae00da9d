package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RelayFacade publishes pending outbox events.
type RelayFacade interface {
	RelayEvents(ctx context.Context, limit int) (int, error)
}

// OutboxRelay periodically drains the outbox to the event bus.
type OutboxRelay struct {
	facade       RelayFacade
	pollInterval time.Duration
	batchSize    int
	logger       *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewOutboxRelay constructs the relay loop.
func NewOutboxRelay(facade RelayFacade, pollInterval time.Duration, batchSize int, logger *slog.Logger) *OutboxRelay {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &OutboxRelay{facade: facade, pollInterval: pollInterval, batchSize: batchSize, logger: logger}
}

// Start launches background processing.
func (r *OutboxRelay) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go r.loop(runCtx)
}

// Stop waits for the loop to finish.
func (r *OutboxRelay) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *OutboxRelay) loop(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.drain(ctx)
		}
	}
}

// drain keeps relaying full batches until the outbox runs dry.
func (r *OutboxRelay) drain(ctx context.Context) {
	for ctx.Err() == nil {
		n, err := r.facade.RelayEvents(ctx, r.batchSize)
		if err != nil {
			r.logger.Error("relay outbox events failed", slog.String("error", err.Error()))
			return
		}
		if n > 0 {
			r.logger.Debug("outbox events relayed", slog.Int("count", n))
		}
		if n < r.batchSize {
			return
		}
	}
}
