package test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/credit-checkout/internal/domain/model"
)

// SellerTaxID is the seller identity used across tests.
const SellerTaxID = "11444777000161"

// BuyerTaxID is an approved buyer used across tests.
const BuyerTaxID = "31605828000105"

// DefaultCatalog returns the two seeded products.
func DefaultCatalog() map[string]*model.Product {
	return map[string]*model.Product{
		"oweuriek": {ID: 1, SKU: "oweuriek", Name: "Product A", Price: decimal.RequireFromString("100.00")},
		"eepheeje": {ID: 2, SKU: "eepheeje", Name: "Product B", Price: decimal.RequireFromString("150.00")},
	}
}

// ApprovedBuyer returns a profile with the given credit and seller term.
func ApprovedBuyer(creditCents int64, maxTermDays int) *model.BuyerProfile {
	return &model.BuyerProfile{
		TaxID:                BuyerTaxID,
		AvailableCreditCents: creditCents,
		SellerConfigs:        []model.SellerConfig{{TaxID: SellerTaxID, MaxPaymentTermDays: maxTermDays}},
	}
}

// SubmitCall stores information about SubmitOrder invocations.
type SubmitCall struct {
	IdempotencyKey string
	Submission     model.OrderSubmission
}

// CreditServiceStub simulates the credit provider.
type CreditServiceStub struct {
	FetchFn  func(context.Context, string) (*model.BuyerProfile, error)
	SubmitFn func(context.Context, string, *model.OrderSubmission) (*model.SubmissionResult, error)

	Buyer      *model.BuyerProfile
	ExternalID string

	Fetches []string
	Submits []SubmitCall
	mu      sync.Mutex
}

// FetchBuyer returns the configured profile.
func (s *CreditServiceStub) FetchBuyer(ctx context.Context, taxID string) (*model.BuyerProfile, error) {
	s.mu.Lock()
	s.Fetches = append(s.Fetches, taxID)
	s.mu.Unlock()
	if s.FetchFn != nil {
		return s.FetchFn(ctx, taxID)
	}
	if s.Buyer != nil {
		return s.Buyer, nil
	}
	return ApprovedBuyer(1_000_000, 30), nil
}

// SubmitOrder records the submission and returns the configured id.
func (s *CreditServiceStub) SubmitOrder(ctx context.Context, idempotencyKey string, submission *model.OrderSubmission) (*model.SubmissionResult, error) {
	s.mu.Lock()
	s.Submits = append(s.Submits, SubmitCall{IdempotencyKey: idempotencyKey, Submission: *submission})
	s.mu.Unlock()
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, idempotencyKey, submission)
	}
	id := s.ExternalID
	if id == "" {
		id = "ord_" + RandomASCIIString(8, 8)
	}
	return &model.SubmissionResult{ExternalOrderID: id}, nil
}
