package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHistory handles GET /api/history/:garage_name. Unknown garage names are
// an empty array, never an error.
func (h *Handler) GetHistory(c *gin.Context) {
	garageName := c.Param("garage_name")

	history, err := h.facade.ListHistory(c.Request.Context(), garageName)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve history"})
		return
	}
	c.JSON(http.StatusOK, history)
}
