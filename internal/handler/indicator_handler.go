package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/indicators-dashboard-go/internal/catalog"
	"github.com/jengzang/indicators-dashboard-go/pkg/response"
)

// IndicatorHandler serves the indicator catalog
type IndicatorHandler struct {
	catalog *catalog.Catalog
}

// NewIndicatorHandler creates a new indicator handler
func NewIndicatorHandler(cat *catalog.Catalog) *IndicatorHandler {
	return &IndicatorHandler{catalog: cat}
}

// ListIndicators handles GET /api/v1/indicators
func (h *IndicatorHandler) ListIndicators(c *gin.Context) {
	defs := h.catalog.List()
	response.Success(c, gin.H{
		"data":  defs,
		"total": len(defs),
	})
}

// GetIndicator handles GET /api/v1/indicators/lookup?key=...
func (h *IndicatorHandler) GetIndicator(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		response.BadRequest(c, "Missing indicator key")
		return
	}

	def, err := h.catalog.Lookup(key)
	if err != nil {
		writeError(c, err, nil)
		return
	}
	response.Success(c, def)
}
