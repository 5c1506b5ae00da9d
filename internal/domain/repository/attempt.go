package repository

import (
	"context"
	"time"

	"github.com/polkiloo/credit-checkout/internal/domain/model"
)

// AttemptRepository journals checkout submissions.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *model.CheckoutAttempt) (*model.CheckoutAttempt, error)
	UpdateStatus(ctx context.Context, attemptID int64, status model.AttemptStatus, externalOrderID *string) error
	// SelectBatchForReconciliation claims submitted attempts not touched since
	// leaseBefore and pending ones not touched since staleBefore. Claimed rows
	// have their updated_at bumped so that concurrent passes skip them.
	SelectBatchForReconciliation(ctx context.Context, leaseBefore, staleBefore time.Time, limit int) ([]model.CheckoutAttempt, error)
}
