package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/credit-checkout/internal/domain/errors"
	"github.com/polkiloo/credit-checkout/internal/server/http/dto"
)

type errorMapping struct {
	target  error
	status  int
	message string
	outcome string
}

// Business failures are client errors carrying the messages the front end displays.
var errorMappings = []errorMapping{
	{domainErrors.ErrInvalidTaxID, http.StatusBadRequest, "Invalid CNPJ", "invalid_tax_id"},
	{domainErrors.ErrInvalidCart, http.StatusBadRequest, "Invalid cart", "invalid_cart"},
	{domainErrors.ErrBuyerNotApproved, http.StatusBadRequest, "Buyer not approved", "buyer_not_approved"},
	{domainErrors.ErrProductNotFound, http.StatusBadRequest, "Product not found", "product_not_found"},
	{domainErrors.ErrInsufficientCredit, http.StatusBadRequest, "Insufficient credit", "insufficient_credit"},
	{domainErrors.ErrNoTermsForBuyer, http.StatusBadRequest, "Seller doesn't have terms for this buyer", "no_terms_for_buyer"},
	{domainErrors.ErrNoTermSelected, http.StatusBadRequest, "No term selected", "no_term_selected"},
	{domainErrors.ErrTermNotAvailable, http.StatusBadRequest, "Term not available", "term_not_available"},
	{domainErrors.ErrOrderNotCreated, http.StatusBadRequest, "Order not created", "order_not_created"},
	{domainErrors.ErrProviderTransport, http.StatusBadGateway, "Credit service unavailable", "provider_unavailable"},
}

// classify resolves the response status, message and metric outcome for err.
func classify(err error) (int, string, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.message, m.outcome
		}
	}
	var missing *domainErrors.MissingFieldError
	if errors.As(err, &missing) {
		return http.StatusBadRequest, "Missing field: " + missing.Field, "missing_field"
	}
	return http.StatusInternalServerError, "Internal error", "internal_error"
}

// respondError writes the error body and attaches err for the request logger.
func respondError(c *gin.Context, err error) string {
	status, message, outcome := classify(err)
	_ = c.Error(err)
	c.JSON(status, dto.ErrorResponse{Status: dto.StatusError, Message: message})
	return outcome
}

func respondBadJSON(c *gin.Context, err error) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Status: dto.StatusError, Message: "Invalid JSON"})
}
