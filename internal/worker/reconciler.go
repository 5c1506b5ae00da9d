package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/credit-checkout/internal/domain/model"
)

// ReconcileFacade exposes the subset of application functionality required by the reconciler.
type ReconcileFacade interface {
	AttemptsForReconciliation(ctx context.Context, leaseBefore, staleBefore time.Time, limit int) ([]model.CheckoutAttempt, error)
	Reconcile(ctx context.Context, attempt model.CheckoutAttempt) error
}

// ReconcilerOptions tunes the reconciliation loop.
type ReconcilerOptions struct {
	PollInterval time.Duration
	BatchSize    int
	Workers      int
	// Lease is how long a claimed attempt stays invisible to other passes.
	Lease time.Duration
	// StaleAfter is how long a PENDING attempt may go untouched before it is
	// considered abandoned.
	StaleAfter time.Duration
}

// Reconciler polls the attempt journal and records orders the provider
// accepted but the local ledger missed.
type Reconciler struct {
	facade ReconcileFacade
	opts   ReconcilerOptions
	logger *slog.Logger
	now    func() time.Time

	jobs   chan model.CheckoutAttempt
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconciler constructs the reconciliation worker pool.
func NewReconciler(facade ReconcileFacade, opts ReconcilerOptions, logger *slog.Logger) *Reconciler {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 1
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	if opts.Lease <= 0 {
		opts.Lease = opts.PollInterval
	}
	return &Reconciler{
		facade: facade,
		opts:   opts,
		logger: logger,
		now:    time.Now,
		jobs:   make(chan model.CheckoutAttempt, opts.BatchSize*opts.Workers),
	}
}

// Start launches background processing.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.opts.Workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *Reconciler) fetchAndDispatch(ctx context.Context) {
	now := r.now()
	attempts, err := r.facade.AttemptsForReconciliation(ctx, now.Add(-r.opts.Lease), now.Add(-r.opts.StaleAfter), r.opts.BatchSize)
	if err != nil {
		r.logger.Error("fetch attempts for reconciliation failed", slog.String("error", err.Error()))
		return
	}
	for _, attempt := range attempts {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- attempt:
		}
	}
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case attempt, ok := <-r.jobs:
			if !ok {
				return
			}
			if err := r.facade.Reconcile(ctx, attempt); err != nil {
				r.logger.Error("reconcile attempt failed",
					slog.Int64("attempt_id", attempt.ID),
					slog.String("status", string(attempt.Status)),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
