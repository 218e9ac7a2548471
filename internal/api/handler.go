package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parking-vacancy-backend/internal/query"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	facade *query.Facade
}

// NewHandler creates a new API handler.
func NewHandler(facade *query.Facade) *Handler {
	return &Handler{facade: facade}
}

// GetHealth handles GET /healthz.
func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
