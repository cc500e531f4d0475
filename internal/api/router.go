package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/indicators-dashboard-go/internal/handler"
	"github.com/jengzang/indicators-dashboard-go/internal/middleware"
	"github.com/jengzang/indicators-dashboard-go/pkg/response"
)

// Handlers groups the route handlers mounted by SetupRouter
type Handlers struct {
	Indicators *handler.IndicatorHandler
	Options    *handler.OptionsHandler
	Views      *handler.ViewHandler
}

// SetupRouter 设置路由
func SetupRouter(h Handlers, limiter *middleware.RateLimiter, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(log))
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		response.InternalError(c, "Internal error")
		c.Abort()
	}))
	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Indicators dashboard API is running",
		})
	})

	// API 路由组
	api := r.Group("/api/v1")
	if limiter != nil {
		api.Use(middleware.RateLimit(limiter))
	}
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.GET("/indicators", h.Indicators.ListIndicators)
		api.GET("/indicators/lookup", h.Indicators.GetIndicator)
		api.GET("/options", h.Options.GetOptions)

		views := api.Group("/views")
		{
			views.POST("", h.Views.MountView)
			views.GET("/:id", h.Views.GetView)
			views.DELETE("/:id", h.Views.UnmountView)
			views.PUT("/:id/indicator", h.Views.SelectIndicator)
			views.PATCH("/:id/filters", h.Views.SetFilters)
			views.POST("/:id/submit", h.Views.Submit)
		}
	}

	return r
}
