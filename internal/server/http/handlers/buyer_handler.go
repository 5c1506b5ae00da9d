package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/credit-checkout/internal/server/http/dto"
)

// BuyerHandler serves buyer credit profiles.
type BuyerHandler struct {
	facade BuyerFacade
}

// NewBuyerHandler creates BuyerHandler instance.
func NewBuyerHandler(facade BuyerFacade) *BuyerHandler {
	return &BuyerHandler{facade: facade}
}

// Get handles GET /buyer/:cnpj.
func (h *BuyerHandler) Get(c *gin.Context) {
	buyer, err := h.facade.Buyer(c.Request.Context(), c.Param("cnpj"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BuyerResponse{Status: dto.StatusSuccess, Buyer: buyer.Raw})
}
