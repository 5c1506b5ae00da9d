package model

import "time"

// AttemptStatus tracks a checkout submission towards the credit provider.
type AttemptStatus string

const (
	AttemptStatusPending   AttemptStatus = "PENDING"
	AttemptStatusRejected  AttemptStatus = "REJECTED"
	AttemptStatusSubmitted AttemptStatus = "SUBMITTED"
	AttemptStatusCompleted AttemptStatus = "COMPLETED"
	AttemptStatusUnknown   AttemptStatus = "UNKNOWN"
)

// CheckoutAttempt journals a submission so that the local ledger can be
// reconciled when persistence fails after the provider accepted the order.
type CheckoutAttempt struct {
	ID              int64
	IdempotencyKey  string
	BuyerTaxID      string
	Submission      OrderSubmission
	Status          AttemptStatus
	ExternalOrderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
