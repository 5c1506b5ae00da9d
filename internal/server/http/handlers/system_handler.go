package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/credit-checkout/internal/server/http/dto"
)

// SystemHandler serves the index and health endpoints.
type SystemHandler struct {
	facade HealthFacade
}

func NewSystemHandler(facade HealthFacade) *SystemHandler {
	return &SystemHandler{facade: facade}
}

// Index handles GET /.
func (h *SystemHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Welcome to the credit checkout API!"})
}

// Health handles GET /health.
func (h *SystemHandler) Health(c *gin.Context) {
	if err := h.facade.HealthCheck(c.Request.Context()); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable"})
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
