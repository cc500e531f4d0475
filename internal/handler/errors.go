package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/indicators-dashboard-go/internal/catalog"
	"github.com/jengzang/indicators-dashboard-go/internal/client"
	"github.com/jengzang/indicators-dashboard-go/internal/dashboard"
	"github.com/jengzang/indicators-dashboard-go/internal/filter"
	"github.com/jengzang/indicators-dashboard-go/internal/reshape"
	"github.com/jengzang/indicators-dashboard-go/internal/service"
	"github.com/jengzang/indicators-dashboard-go/pkg/response"
)

// statusOf classifies an error for the HTTP response
func statusOf(err error) (int, string) {
	var (
		notFound *catalog.NotFoundError
		fieldErr *filter.FieldError
		apiErr   *client.APIError
		shapeErr *reshape.ShapeMismatchError
	)

	switch {
	case errors.Is(err, service.ErrViewNotFound):
		return http.StatusNotFound, "View not found"
	case errors.As(err, &notFound):
		return http.StatusNotFound, "Indicator not found"
	case errors.As(err, &fieldErr):
		return http.StatusBadRequest, "Invalid filter"
	case errors.Is(err, dashboard.ErrNoIndicator):
		return http.StatusBadRequest, "No indicator selected"
	case errors.Is(err, dashboard.ErrSuperseded):
		return http.StatusConflict, "Superseded by a newer request"
	case errors.As(err, &apiErr):
		return http.StatusBadGateway, "Upstream request failed"
	case errors.As(err, &shapeErr):
		return http.StatusBadGateway, "Unexpected upstream data"
	}
	return http.StatusInternalServerError, "Internal error"
}

// messagesOf returns the user-facing detail messages of err
func messagesOf(err error) []string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && len(apiErr.Messages) > 0 {
		return apiErr.Messages
	}
	return []string{err.Error()}
}

// writeError sends err with its detail messages and, when given, the view snapshot
func writeError(c *gin.Context, err error, data interface{}) {
	code, message := statusOf(err)
	_ = c.Error(err)
	response.ErrorWithData(c, code, message, messagesOf(err), data)
}
