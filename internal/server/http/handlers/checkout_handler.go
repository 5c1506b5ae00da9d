package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/credit-checkout/internal/server/http/dto"
)

// CheckoutHandler evaluates carts and places orders.
type CheckoutHandler struct {
	facade   CheckoutFacade
	observer CheckoutObserver
}

// NewCheckoutHandler constructs CheckoutHandler. observer may be nil.
func NewCheckoutHandler(facade CheckoutFacade, observer CheckoutObserver) *CheckoutHandler {
	return &CheckoutHandler{facade: facade, observer: observer}
}

// Terms handles POST /buyer/terms/.
func (h *CheckoutHandler) Terms(c *gin.Context) {
	var req dto.TermsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadJSON(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	eval, err := h.facade.Terms(c.Request.Context(), req.CNPJ, req.CartLines())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTermsResponse(eval))
}

// CreateOrder handles POST /order/create/.
func (h *CheckoutHandler) CreateOrder(c *gin.Context) {
	var req dto.OrderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadJSON(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.observe(respondError(c, err))
		return
	}

	orderID, err := h.facade.CreateOrder(c.Request.Context(), req.CheckoutRequest())
	if err != nil {
		h.observe(respondError(c, err))
		return
	}

	h.observe("success")
	c.JSON(http.StatusOK, dto.OrderCreateResponse{Status: dto.StatusSuccess, CredixOrderID: orderID})
}

func (h *CheckoutHandler) observe(outcome string) {
	if h.observer != nil {
		h.observer.ObserveCheckout(outcome)
	}
}
