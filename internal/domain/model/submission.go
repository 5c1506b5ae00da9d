package model

import "time"

// MaturityDateLayout is the UTC second precision layout expected by the credit provider.
const MaturityDateLayout = "2006-01-02T15:04:05Z"

// Installment is a single scheduled payment.
type Installment struct {
	MaturityDate   string
	FaceValueCents int64
}

// SubmissionItem is an order line as sent to the credit provider.
type SubmissionItem struct {
	ProductID      string
	ProductName    string
	Quantity       int
	UnitPriceCents int64
}

// ContactInformation is the buyer contact as sent to the credit provider.
type ContactInformation struct {
	Email    string
	Phone    string
	Name     string
	LastName string
}

// OrderSubmission is the order payload accepted by the credit provider.
type OrderSubmission struct {
	SubtotalAmountCents int64
	TaxAmountCents      int64
	ShippingCostCents   int64
	Installments        []Installment
	BuyerTaxID          string
	SellerTaxID         string
	Items               []SubmissionItem
	Contact             ContactInformation
}

// SubmissionResult is the provider answer to an accepted submission.
type SubmissionResult struct {
	ExternalOrderID string
}

// MaturityDate formats the due date of an installment term days after now.
func MaturityDate(now time.Time, term int) string {
	return now.UTC().AddDate(0, 0, term).Format(MaturityDateLayout)
}
