package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/credit-checkout/internal/domain/errors"
	"github.com/polkiloo/credit-checkout/internal/domain/model"
)

func (r *productRepository) GetBySKU(ctx context.Context, sku string) (*model.Product, error) {
	const query = `SELECT id, sku, name, price::text, created_at, updated_at FROM products WHERE sku=$1`
	var (
		p     model.Product
		price string
	)
	err := r.storage.pool.QueryRow(ctx, query, sku).Scan(&p.ID, &p.SKU, &p.Name, &price, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("parse price of %s: %w", sku, err)
	}
	return &p, nil
}
