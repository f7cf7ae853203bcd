package analytics

import (
	"tripveda/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAnalyticsRoutes(rg *gin.RouterGroup, controller Controller) {
	admin := rg.Group("/admin/analytics")
	admin.Use(middleware.JWTAuth())
	admin.Use(middleware.RequireAdmin())

	// Dashboard summary (with ?days=30 param for the daily series)
	admin.GET("/summary", controller.GetSummary)
}
