package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/indicators-dashboard-go/internal/service"
	"github.com/jengzang/indicators-dashboard-go/pkg/response"
)

// OptionsHandler serves the filter control choices
type OptionsHandler struct {
	service *service.OptionsService
}

// NewOptionsHandler creates a new options handler
func NewOptionsHandler(service *service.OptionsService) *OptionsHandler {
	return &OptionsHandler{service: service}
}

// GetOptions handles GET /api/v1/options
func (h *OptionsHandler) GetOptions(c *gin.Context) {
	opts, err := h.service.GetOptions(c.Request.Context())
	if err != nil {
		writeError(c, err, nil)
		return
	}
	response.Success(c, opts)
}
