package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetGarages handles GET /api/garages: every reference garage joined with its
// latest availability reading.
func (h *Handler) GetGarages(c *gin.Context) {
	garages, err := h.facade.ListGarages(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve garages"})
		return
	}
	c.JSON(http.StatusOK, garages)
}
