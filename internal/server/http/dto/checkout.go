package dto

import (
	"encoding/json"

	domainErrors "github.com/polkiloo/credit-checkout/internal/domain/errors"
	"github.com/polkiloo/credit-checkout/internal/domain/model"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// CartLine is a single cart entry.
type CartLine struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// TermsRequest describes POST /buyer/terms/ payload.
type TermsRequest struct {
	CNPJ string     `json:"cnpj"`
	Cart []CartLine `json:"cart"`
}

// Validate reports the first absent field.
func (r *TermsRequest) Validate() error {
	if r.CNPJ == "" {
		return &domainErrors.MissingFieldError{Field: "cnpj"}
	}
	if r.Cart == nil {
		return &domainErrors.MissingFieldError{Field: "cart"}
	}
	return nil
}

// CartLines converts the payload into domain cart lines.
func (r *TermsRequest) CartLines() []model.CartLine {
	lines := make([]model.CartLine, 0, len(r.Cart))
	for _, line := range r.Cart {
		lines = append(lines, model.CartLine{SKU: line.SKU, Quantity: line.Quantity})
	}
	return lines
}

// OrderCreateRequest describes POST /order/create/ payload. Contact fields
// are checked after the term, so they are not validated here.
type OrderCreateRequest struct {
	TermsRequest
	Term      *int   `json:"term"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// CheckoutRequest converts the payload into the domain request.
func (r *OrderCreateRequest) CheckoutRequest() *model.CheckoutRequest {
	return &model.CheckoutRequest{
		BuyerTaxID: r.CNPJ,
		Cart:       r.CartLines(),
		Term:       r.Term,
		Contact: model.Contact{
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Phone:     r.Phone,
			Email:     r.Email,
		},
	}
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ProductLine is a priced cart line.
type ProductLine struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// TermsResponse carries the evaluation of a cart.
type TermsResponse struct {
	Status        string        `json:"status"`
	Terms         []int         `json:"terms"`
	OrderTaxes    float64       `json:"order_taxes"`
	OrderSubtotal float64       `json:"order_subtotal"`
	Products      []ProductLine `json:"products,omitempty"`
}

// NewTermsResponse renders an evaluation. Amounts are exposed as JSON numbers.
func NewTermsResponse(eval *model.Evaluation) TermsResponse {
	resp := TermsResponse{
		Status:        StatusSuccess,
		Terms:         eval.Terms,
		OrderTaxes:    eval.Taxes.InexactFloat64(),
		OrderSubtotal: eval.Subtotal.InexactFloat64(),
	}
	for _, line := range eval.LineItems {
		resp.Products = append(resp.Products, ProductLine{
			SKU:      line.SKU,
			Name:     line.Name,
			Price:    line.Price.InexactFloat64(),
			Quantity: line.Quantity,
		})
	}
	return resp
}

// OrderCreateResponse carries the credit provider order id.
type OrderCreateResponse struct {
	Status        string `json:"status"`
	CredixOrderID string `json:"credix_order_id"`
}

// BuyerResponse passes the provider buyer document through.
type BuyerResponse struct {
	Status string          `json:"status"`
	Buyer  json.RawMessage `json:"buyer"`
}

// MessageResponse is a plain informational body.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports service health.
type HealthResponse struct {
	Status string `json:"status"`
}
