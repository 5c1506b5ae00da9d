package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/credit-checkout/internal/domain/errors"
	"github.com/polkiloo/credit-checkout/internal/domain/model"
)

func TestTermsRequestValidate(t *testing.T) {
	var missing *domainErrors.MissingFieldError

	err := (&TermsRequest{}).Validate()
	require.True(t, errors.As(err, &missing))
	require.Equal(t, "cnpj", missing.Field)

	err = (&TermsRequest{CNPJ: "1"}).Validate()
	require.True(t, errors.As(err, &missing))
	require.Equal(t, "cart", missing.Field)

	require.NoError(t, (&TermsRequest{CNPJ: "1", Cart: []CartLine{}}).Validate())
}

func TestOrderCreateRequestDecoding(t *testing.T) {
	body := `{"cnpj":"31605828000105","cart":[{"sku":"oweuriek","quantity":2}],"term":14,
		"email":"a@b.c","phone":"1","firstName":"Ana","lastName":"Souza"}`

	var req OrderCreateRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NoError(t, req.Validate())

	checkout := req.CheckoutRequest()
	require.Equal(t, "31605828000105", checkout.BuyerTaxID)
	require.Equal(t, []model.CartLine{{SKU: "oweuriek", Quantity: 2}}, checkout.Cart)
	require.NotNil(t, checkout.Term)
	require.Equal(t, 14, *checkout.Term)
	require.Equal(t, model.Contact{FirstName: "Ana", LastName: "Souza", Phone: "1", Email: "a@b.c"}, checkout.Contact)
}

func TestOrderCreateRequestWithoutTerm(t *testing.T) {
	var req OrderCreateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"cnpj":"1","cart":[]}`), &req))
	require.Nil(t, req.CheckoutRequest().Term)
}

func TestNewTermsResponse(t *testing.T) {
	eval := &model.Evaluation{
		Terms:    []int{7, 14, 30},
		Subtotal: decimal.RequireFromString("900"),
		Taxes:    decimal.RequireFromString("90"),
	}

	data, err := json.Marshal(NewTermsResponse(eval))
	require.NoError(t, err)
	require.JSONEq(t, `{"status":"success","terms":[7,14,30],"order_taxes":90,"order_subtotal":900}`, string(data))

	eval.LineItems = []model.LineItem{{SKU: "oweuriek", Name: "Product A", Price: decimal.RequireFromString("100.00"), Quantity: 6}}
	resp := NewTermsResponse(eval)
	require.Equal(t, []ProductLine{{SKU: "oweuriek", Name: "Product A", Price: 100, Quantity: 6}}, resp.Products)
}
