package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry priced in the store currency.
type Product struct {
	ID        int64
	SKU       string
	Name      string
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
