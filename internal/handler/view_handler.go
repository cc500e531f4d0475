package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/indicators-dashboard-go/internal/dashboard"
	"github.com/jengzang/indicators-dashboard-go/internal/service"
	"github.com/jengzang/indicators-dashboard-go/pkg/response"
)

// ViewHandler handles HTTP requests for dashboard views
type ViewHandler struct {
	service *service.DashboardService
}

// NewViewHandler creates a new view handler
func NewViewHandler(service *service.DashboardService) *ViewHandler {
	return &ViewHandler{service: service}
}

// SelectIndicatorRequest is the body of PUT /views/:id/indicator
type SelectIndicatorRequest struct {
	Key string `json:"key" binding:"required"`
}

// MountView handles POST /api/v1/views
func (h *ViewHandler) MountView(c *gin.Context) {
	id, snap := h.service.Mount()
	response.Created(c, gin.H{
		"id":   id,
		"view": snap,
	})
}

// GetView handles GET /api/v1/views/:id
func (h *ViewHandler) GetView(c *gin.Context) {
	snap, err := h.service.GetView(c.Param("id"))
	if err != nil {
		writeError(c, err, nil)
		return
	}
	response.Success(c, snap)
}

// UnmountView handles DELETE /api/v1/views/:id
func (h *ViewHandler) UnmountView(c *gin.Context) {
	if err := h.service.Unmount(c.Param("id")); err != nil {
		writeError(c, err, nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// SelectIndicator handles PUT /api/v1/views/:id/indicator
func (h *ViewHandler) SelectIndicator(c *gin.Context) {
	var req SelectIndicatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	snap, err := h.service.SelectIndicator(c.Param("id"), req.Key)
	if err != nil {
		writeError(c, err, viewData(snap))
		return
	}
	response.Success(c, snap)
}

// SetFilters handles PATCH /api/v1/views/:id/filters with a {field: value} body
func (h *ViewHandler) SetFilters(c *gin.Context) {
	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	snap, err := h.service.SetFilters(c.Param("id"), fields)
	if err != nil {
		writeError(c, err, viewData(snap))
		return
	}
	response.Success(c, snap)
}

// Submit handles POST /api/v1/views/:id/submit
func (h *ViewHandler) Submit(c *gin.Context) {
	snap, err := h.service.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, viewData(snap))
		return
	}
	response.Success(c, snap)
}

// viewData attaches the snapshot to error responses when the view exists
func viewData(snap dashboard.Snapshot) interface{} {
	if snap.Phase == "" {
		return nil
	}
	return snap
}
