package usecase

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/credit-checkout/internal/domain/model"
)

// TaxRate is applied to the order subtotal.
var TaxRate = decimal.RequireFromString("0.10")

// Standard terms offered in addition to the seller maximum, when it allows them.
var standardTerms = []int{7, 14, 30}

var hundred = decimal.NewFromInt(100)

// PriceOrder returns the subtotal of the resolved lines and the tax due on it.
func PriceOrder(lines []model.LineItem) (subtotal, taxes decimal.Decimal) {
	subtotal = decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Amount())
	}
	return subtotal, subtotal.Mul(TaxRate)
}

// ToCents rounds an amount to whole cents, half away from zero.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// CeilCents rounds an amount up to whole cents.
func CeilCents(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Ceil().IntPart()
}

// DeriveTerms returns the payment terms in days available for a seller
// maximum: the maximum itself plus every standard term it covers, ascending
// and without duplicates.
func DeriveTerms(maxPaymentTermDays int) []int {
	seen := map[int]struct{}{maxPaymentTermDays: {}}
	terms := []int{maxPaymentTermDays}
	for _, term := range standardTerms {
		if maxPaymentTermDays < term {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}
	sort.Ints(terms)
	return terms
}
