package model

import "github.com/shopspring/decimal"

// CartLine is a caller supplied sku and quantity pair.
type CartLine struct {
	SKU      string
	Quantity int
}

// LineItem is a cart line resolved against the catalog.
type LineItem struct {
	ProductID int64
	SKU       string
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

// Amount returns price multiplied by quantity.
func (l LineItem) Amount() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
