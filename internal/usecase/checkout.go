package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/credit-checkout/internal/domain/errors"
	"github.com/polkiloo/credit-checkout/internal/domain/model"
	"github.com/polkiloo/credit-checkout/internal/domain/repository"
)

// recordTimeout bounds the local writes that follow a provider decision.
const recordTimeout = 10 * time.Second

// CheckoutUseCase submits evaluated orders to the credit provider and records them locally.
type CheckoutUseCase struct {
	evaluator *EvaluatorUseCase
	credit    CreditService
	orders    repository.OrderRepository
	attempts  repository.AttemptRepository
	settings  Settings
	logger    *slog.Logger

	now    func() time.Time
	newKey func() string
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(
	evaluator *EvaluatorUseCase,
	credit CreditService,
	orders repository.OrderRepository,
	attempts repository.AttemptRepository,
	settings Settings,
	logger *slog.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		evaluator: evaluator,
		credit:    credit,
		orders:    orders,
		attempts:  attempts,
		settings:  settings,
		logger:    logger,
		now:       time.Now,
		newKey:    uuid.NewString,
	}
}

// Checkout re-evaluates the cart, checks the chosen term, submits a single
// installment order and records it. It returns the provider order id.
//
// The attempt is journaled before submission. When the provider accepts the
// order but the local write fails, the attempt is left SUBMITTED for the
// reconciler and the provider id is still returned.
func (u *CheckoutUseCase) Checkout(ctx context.Context, req *model.CheckoutRequest) (string, error) {
	eval, err := u.evaluator.Evaluate(ctx, req.BuyerTaxID, req.Cart, true)
	if err != nil {
		return "", err
	}

	if req.Term == nil {
		return "", domainErrors.ErrNoTermSelected
	}
	term := *req.Term
	if !eval.HasTerm(term) {
		return "", domainErrors.ErrTermNotAvailable
	}
	if err := validateContact(req.Contact); err != nil {
		return "", err
	}

	submission := u.buildSubmission(eval, term, req.Contact)

	attempt, err := u.attempts.Create(ctx, &model.CheckoutAttempt{
		IdempotencyKey: u.newKey(),
		BuyerTaxID:     eval.BuyerTaxID,
		Submission:     *submission,
		Status:         model.AttemptStatusPending,
	})
	if err != nil {
		return "", fmt.Errorf("journal checkout attempt: %w", err)
	}

	result, err := u.credit.SubmitOrder(ctx, attempt.IdempotencyKey, submission)
	if err != nil {
		var providerErr *domainErrors.ProviderError
		if errors.As(err, &providerErr) {
			recordCtx, cancel := detached(ctx)
			defer cancel()
			u.markAttempt(recordCtx, attempt.ID, model.AttemptStatusRejected, nil)
			return "", fmt.Errorf("%w: %w", domainErrors.ErrOrderNotCreated, err)
		}
		u.logger.Warn("order submission outcome unknown",
			slog.Int64("attempt_id", attempt.ID),
			slog.String("idempotency_key", attempt.IdempotencyKey),
			slog.String("error", err.Error()),
		)
		if !errors.Is(err, domainErrors.ErrProviderTransport) {
			err = fmt.Errorf("%w: %w", domainErrors.ErrProviderTransport, err)
		}
		return "", err
	}

	// The provider holds the order now, so a client disconnect must not
	// abort recording it.
	recordCtx, cancel := detached(ctx)
	defer cancel()

	externalID := result.ExternalOrderID
	order := model.OrderFromSubmission(submission, externalID)
	if _, err := u.orders.CreateWithItems(recordCtx, order, attempt.ID); err != nil {
		u.logger.Error("record order failed, deferring to reconciliation",
			slog.Int64("attempt_id", attempt.ID),
			slog.String("external_order_id", externalID),
			slog.String("error", err.Error()),
		)
		if err := u.attempts.UpdateStatus(recordCtx, attempt.ID, model.AttemptStatusSubmitted, &externalID); err != nil {
			u.logger.Error("mark attempt submitted failed",
				slog.Int64("attempt_id", attempt.ID),
				slog.String("external_order_id", externalID),
				slog.String("error", err.Error()),
			)
			return "", fmt.Errorf("%w: %s", domainErrors.ErrOrderNotRecorded, externalID)
		}
	}

	return externalID, nil
}

func (u *CheckoutUseCase) buildSubmission(eval *model.Evaluation, term int, contact model.Contact) *model.OrderSubmission {
	submission := &model.OrderSubmission{
		SubtotalAmountCents: ToCents(eval.Subtotal),
		TaxAmountCents:      ToCents(eval.Taxes),
		ShippingCostCents:   0,
		Installments: []model.Installment{{
			MaturityDate:   model.MaturityDate(u.now(), term),
			FaceValueCents: ToCents(eval.Total()),
		}},
		BuyerTaxID:  eval.BuyerTaxID,
		SellerTaxID: u.settings.SellerTaxID,
		Items:       make([]model.SubmissionItem, 0, len(eval.LineItems)),
		Contact: model.ContactInformation{
			Email:    contact.Email,
			Phone:    contact.Phone,
			Name:     contact.FirstName,
			LastName: contact.LastName,
		},
	}
	for _, line := range eval.LineItems {
		submission.Items = append(submission.Items, model.SubmissionItem{
			ProductID:      line.SKU,
			ProductName:    line.Name,
			Quantity:       line.Quantity,
			UnitPriceCents: ToCents(line.Price),
		})
	}
	return submission
}

func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
}

func (u *CheckoutUseCase) markAttempt(ctx context.Context, id int64, status model.AttemptStatus, externalID *string) {
	if err := u.attempts.UpdateStatus(ctx, id, status, externalID); err != nil {
		u.logger.Error("update attempt status failed",
			slog.Int64("attempt_id", id),
			slog.String("status", string(status)),
			slog.String("error", err.Error()),
		)
	}
}

// AttemptsForReconciliation claims attempts that need a reconciliation pass.
func (u *CheckoutUseCase) AttemptsForReconciliation(ctx context.Context, leaseBefore, staleBefore time.Time, limit int) ([]model.CheckoutAttempt, error) {
	return u.attempts.SelectBatchForReconciliation(ctx, leaseBefore, staleBefore, limit)
}

// Reconcile records submitted attempts locally. Pending attempts that went
// stale never reached a known outcome and are marked UNKNOWN without being
// resubmitted.
func (u *CheckoutUseCase) Reconcile(ctx context.Context, attempt model.CheckoutAttempt) error {
	switch attempt.Status {
	case model.AttemptStatusSubmitted:
		if attempt.ExternalOrderID == nil || *attempt.ExternalOrderID == "" {
			return fmt.Errorf("attempt %d submitted without external order id", attempt.ID)
		}
		externalID := *attempt.ExternalOrderID
		if _, err := u.orders.GetByExternalID(ctx, externalID); err == nil {
			u.logger.Info("order already recorded",
				slog.Int64("attempt_id", attempt.ID),
				slog.String("external_order_id", externalID),
			)
			return u.attempts.UpdateStatus(ctx, attempt.ID, model.AttemptStatusCompleted, &externalID)
		} else if !errors.Is(err, domainErrors.ErrNotFound) {
			return fmt.Errorf("lookup order %s: %w", externalID, err)
		}
		order := model.OrderFromSubmission(&attempt.Submission, externalID)
		if _, err := u.orders.CreateWithItems(ctx, order, attempt.ID); err != nil {
			return fmt.Errorf("record order %s: %w", externalID, err)
		}
		u.logger.Info("order reconciled",
			slog.Int64("attempt_id", attempt.ID),
			slog.String("external_order_id", *attempt.ExternalOrderID),
		)
		return nil
	case model.AttemptStatusPending:
		u.logger.Warn("checkout attempt outcome unknown",
			slog.Int64("attempt_id", attempt.ID),
			slog.String("idempotency_key", attempt.IdempotencyKey),
			slog.String("buyer_tax_id", attempt.BuyerTaxID),
		)
		return u.attempts.UpdateStatus(ctx, attempt.ID, model.AttemptStatusUnknown, nil)
	default:
		return nil
	}
}
