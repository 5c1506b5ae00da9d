package repository

import (
	"context"

	"github.com/polkiloo/credit-checkout/internal/domain/model"
)

// ProductRepository resolves catalog entries.
type ProductRepository interface {
	GetBySKU(ctx context.Context, sku string) (*model.Product, error)
}
