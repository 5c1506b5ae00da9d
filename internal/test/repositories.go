package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/credit-checkout/internal/domain/errors"
	"github.com/polkiloo/credit-checkout/internal/domain/model"
)

// ProductRepositoryStub serves catalog entries from memory.
type ProductRepositoryStub struct {
	Products map[string]*model.Product
	Err      error
	Calls    []string
}

// NewProductRepositoryStub returns a stub seeded with the default catalog.
func NewProductRepositoryStub() *ProductRepositoryStub {
	return &ProductRepositoryStub{Products: DefaultCatalog()}
}

// GetBySKU looks the product up or returns not found.
func (s *ProductRepositoryStub) GetBySKU(ctx context.Context, sku string) (*model.Product, error) {
	s.Calls = append(s.Calls, sku)
	if s.Err != nil {
		return nil, s.Err
	}
	if product, ok := s.Products[sku]; ok {
		return product, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub records created orders.
type OrderRepositoryStub struct {
	CreateFn func(context.Context, *model.Order, int64) (*model.Order, error)
	GetFn    func(context.Context, string) (*model.Order, error)

	Created    []*model.Order
	AttemptIDs []int64
	mu         sync.Mutex
}

// CreateWithItems tracks invocations and returns configured responses.
func (s *OrderRepositoryStub) CreateWithItems(ctx context.Context, order *model.Order, attemptID int64) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order, attemptID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *order
	stored.ID = int64(len(s.Created) + 1)
	s.Created = append(s.Created, &stored)
	s.AttemptIDs = append(s.AttemptIDs, attemptID)
	return &stored, nil
}

// GetByExternalID returns a previously created order.
func (s *OrderRepositoryStub) GetByExternalID(ctx context.Context, externalOrderID string) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, externalOrderID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.Created {
		if order.ExternalOrderID == externalOrderID {
			return order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// AttemptUpdateCall stores information about UpdateStatus invocations.
type AttemptUpdateCall struct {
	AttemptID       int64
	Status          model.AttemptStatus
	ExternalOrderID *string
}

// AttemptRepositoryStub journals attempts in memory.
type AttemptRepositoryStub struct {
	CreateFn func(context.Context, *model.CheckoutAttempt) (*model.CheckoutAttempt, error)
	UpdateFn func(context.Context, int64, model.AttemptStatus, *string) error
	SelectFn func(context.Context, time.Time, time.Time, int) ([]model.CheckoutAttempt, error)

	Created []model.CheckoutAttempt
	Updates []AttemptUpdateCall
	mu      sync.Mutex
}

// Create assigns an id and stores the attempt.
func (s *AttemptRepositoryStub) Create(ctx context.Context, attempt *model.CheckoutAttempt) (*model.CheckoutAttempt, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, attempt)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *attempt
	stored.ID = int64(len(s.Created) + 1)
	s.Created = append(s.Created, stored)
	return &stored, nil
}

// UpdateStatus records update invocations.
func (s *AttemptRepositoryStub) UpdateStatus(ctx context.Context, attemptID int64, status model.AttemptStatus, externalOrderID *string) error {
	s.mu.Lock()
	s.Updates = append(s.Updates, AttemptUpdateCall{AttemptID: attemptID, Status: status, ExternalOrderID: externalOrderID})
	s.mu.Unlock()
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, attemptID, status, externalOrderID)
	}
	return nil
}

// SelectBatchForReconciliation returns configured attempts.
func (s *AttemptRepositoryStub) SelectBatchForReconciliation(ctx context.Context, leaseBefore, staleBefore time.Time, limit int) ([]model.CheckoutAttempt, error) {
	if s.SelectFn != nil {
		return s.SelectFn(ctx, leaseBefore, staleBefore, limit)
	}
	return nil, nil
}

// OutboxRepositoryStub keeps pending events in memory.
type OutboxRepositoryStub struct {
	Pending  []model.OutboxEvent
	FetchErr error
	MarkErr  error
	Sent     []int64
}

// FetchPending returns up to limit pending events.
func (s *OutboxRepositoryStub) FetchPending(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	if s.FetchErr != nil {
		return nil, s.FetchErr
	}
	if limit < len(s.Pending) {
		return s.Pending[:limit], nil
	}
	return s.Pending, nil
}

// MarkSent removes acknowledged events from the pending list.
func (s *OutboxRepositoryStub) MarkSent(ctx context.Context, ids []int64) error {
	if s.MarkErr != nil {
		return s.MarkErr
	}
	sent := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		sent[id] = struct{}{}
	}
	remaining := s.Pending[:0:0]
	for _, event := range s.Pending {
		if _, ok := sent[event.ID]; !ok {
			remaining = append(remaining, event)
		}
	}
	s.Pending = remaining
	s.Sent = append(s.Sent, ids...)
	return nil
}

// PublisherStub collects published events.
type PublisherStub struct {
	Err       error
	Published []model.OutboxEvent
}

// Publish stores events unless an error is configured.
func (s *PublisherStub) Publish(ctx context.Context, events []model.OutboxEvent) error {
	if s.Err != nil {
		return s.Err
	}
	s.Published = append(s.Published, events...)
	return nil
}

// Close is a no-op.
func (s *PublisherStub) Close() error { return nil }
