package model

import "github.com/shopspring/decimal"

// Evaluation is the priced, credit-checked view of a cart.
type Evaluation struct {
	BuyerTaxID string
	Terms      []int
	Subtotal   decimal.Decimal
	Taxes      decimal.Decimal
	LineItems  []LineItem
}

// Total returns subtotal plus taxes.
func (e *Evaluation) Total() decimal.Decimal {
	return e.Subtotal.Add(e.Taxes)
}

// HasTerm reports whether term is one of the available terms.
func (e *Evaluation) HasTerm(term int) bool {
	for _, t := range e.Terms {
		if t == term {
			return true
		}
	}
	return false
}
