package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAttemptStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   AttemptStatus
		value string
	}{
		{"pending", AttemptStatusPending, "PENDING"},
		{"rejected", AttemptStatusRejected, "REJECTED"},
		{"submitted", AttemptStatusSubmitted, "SUBMITTED"},
		{"completed", AttemptStatusCompleted, "COMPLETED"},
		{"unknown", AttemptStatusUnknown, "UNKNOWN"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestLineItemAmount(t *testing.T) {
	item := LineItem{Price: decimal.RequireFromString("150.25"), Quantity: 3}
	if !item.Amount().Equal(decimal.RequireFromString("450.75")) {
		t.Fatalf("unexpected amount %s", item.Amount())
	}
}

func TestBuyerProfileSellerConfig(t *testing.T) {
	buyer := &BuyerProfile{SellerConfigs: []SellerConfig{
		{TaxID: "1", MaxPaymentTermDays: 10},
		{TaxID: "2", MaxPaymentTermDays: 30},
	}}
	cfg, ok := buyer.SellerConfig("2")
	if !ok || cfg.MaxPaymentTermDays != 30 {
		t.Fatalf("unexpected config %+v ok=%v", cfg, ok)
	}
	if _, ok := buyer.SellerConfig("3"); ok {
		t.Fatal("expected missing seller")
	}
}

func TestEvaluationHelpers(t *testing.T) {
	eval := &Evaluation{
		Terms:    []int{7, 14, 30},
		Subtotal: decimal.RequireFromString("900"),
		Taxes:    decimal.RequireFromString("90"),
	}
	if !eval.Total().Equal(decimal.RequireFromString("990")) {
		t.Fatalf("unexpected total %s", eval.Total())
	}
	if !eval.HasTerm(14) || eval.HasTerm(5) {
		t.Fatalf("unexpected term membership for %v", eval.Terms)
	}
}

func TestMaturityDate(t *testing.T) {
	now := time.Date(2025, 1, 30, 22, 15, 9, 500, time.FixedZone("BRT", -3*3600))
	if got := MaturityDate(now, 14); got != "2025-02-14T01:15:09Z" {
		t.Fatalf("unexpected maturity date %q", got)
	}
}

func TestOrderFromSubmission(t *testing.T) {
	sub := &OrderSubmission{
		Items: []SubmissionItem{{ProductID: "oweuriek", Quantity: 2}, {ProductID: "eepheeje", Quantity: 1}},
		Contact: ContactInformation{
			Email: "ana@example.com", Phone: "+5511999998888", Name: "Ana", LastName: "Silva",
		},
	}
	order := OrderFromSubmission(sub, "ext-1")
	if order.ExternalOrderID != "ext-1" || order.Contact.FirstName != "Ana" || order.Contact.LastName != "Silva" {
		t.Fatalf("unexpected order %+v", order)
	}
	if len(order.Items) != 2 || order.Items[0].SKU != "oweuriek" || order.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items %+v", order.Items)
	}
}
