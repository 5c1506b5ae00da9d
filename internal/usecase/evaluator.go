package usecase

import (
	"context"
	"errors"
	"fmt"

	domainErrors "github.com/polkiloo/credit-checkout/internal/domain/errors"
	"github.com/polkiloo/credit-checkout/internal/domain/model"
	"github.com/polkiloo/credit-checkout/internal/domain/repository"
)

// CreditService is the credit provider as seen by checkout.
type CreditService interface {
	FetchBuyer(ctx context.Context, taxID string) (*model.BuyerProfile, error)
	SubmitOrder(ctx context.Context, idempotencyKey string, submission *model.OrderSubmission) (*model.SubmissionResult, error)
}

// Settings carries the seller identity checkout runs on behalf of.
type Settings struct {
	SellerTaxID string
}

// EvaluatorUseCase prices a cart against the catalog and the buyer credit profile.
type EvaluatorUseCase struct {
	credit   CreditService
	products repository.ProductRepository
	settings Settings
}

// NewEvaluatorUseCase constructs EvaluatorUseCase.
func NewEvaluatorUseCase(credit CreditService, products repository.ProductRepository, settings Settings) *EvaluatorUseCase {
	return &EvaluatorUseCase{credit: credit, products: products, settings: settings}
}

// Buyer returns the credit profile of a buyer.
func (u *EvaluatorUseCase) Buyer(ctx context.Context, cnpj string) (*model.BuyerProfile, error) {
	cnpj = NormalizeCNPJ(cnpj)
	if !ValidateCNPJ(cnpj) {
		return nil, domainErrors.ErrInvalidTaxID
	}
	return u.fetchBuyer(ctx, cnpj)
}

// Evaluate runs buyer lookup, catalog resolution, credit check and term
// derivation in that order, stopping at the first failure. Line items are
// only attached to the result when withItems is set.
func (u *EvaluatorUseCase) Evaluate(ctx context.Context, cnpj string, cart []model.CartLine, withItems bool) (*model.Evaluation, error) {
	cnpj = NormalizeCNPJ(cnpj)
	if !ValidateCNPJ(cnpj) {
		return nil, domainErrors.ErrInvalidTaxID
	}
	if err := ValidateCart(cart); err != nil {
		return nil, err
	}

	buyer, err := u.fetchBuyer(ctx, cnpj)
	if err != nil {
		return nil, err
	}

	lines := make([]model.LineItem, 0, len(cart))
	for _, entry := range cart {
		product, err := u.products.GetBySKU(ctx, entry.SKU)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", domainErrors.ErrProductNotFound, entry.SKU)
			}
			return nil, fmt.Errorf("resolve sku %s: %w", entry.SKU, err)
		}
		lines = append(lines, model.LineItem{
			ProductID: product.ID,
			SKU:       product.SKU,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  entry.Quantity,
		})
	}

	subtotal, taxes := PriceOrder(lines)
	if buyer.AvailableCreditCents < CeilCents(subtotal.Add(taxes)) {
		return nil, domainErrors.ErrInsufficientCredit
	}

	seller, ok := buyer.SellerConfig(u.settings.SellerTaxID)
	// A non-positive maximum offers no valid term.
	if !ok || seller.MaxPaymentTermDays <= 0 {
		return nil, domainErrors.ErrNoTermsForBuyer
	}

	eval := &model.Evaluation{
		BuyerTaxID: cnpj,
		Terms:      DeriveTerms(seller.MaxPaymentTermDays),
		Subtotal:   subtotal,
		Taxes:      taxes,
	}
	if withItems {
		eval.LineItems = lines
	}
	return eval, nil
}

// fetchBuyer maps explicit provider error statuses to ErrBuyerNotApproved and
// anything else to a transport failure.
func (u *EvaluatorUseCase) fetchBuyer(ctx context.Context, cnpj string) (*model.BuyerProfile, error) {
	buyer, err := u.credit.FetchBuyer(ctx, cnpj)
	if err == nil {
		return buyer, nil
	}

	var providerErr *domainErrors.ProviderError
	switch {
	case errors.As(err, &providerErr):
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrBuyerNotApproved, err)
	case errors.Is(err, domainErrors.ErrProviderTransport):
		return nil, err
	default:
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrProviderTransport, err)
	}
}
