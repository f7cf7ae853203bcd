package agents

import (
	"tripveda/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAgentRoutes configures agent management routes (admin-only).
func SetupAgentRoutes(rg *gin.RouterGroup, controller *Controller) {
	admin := rg.Group("/admin/agents")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateAgent)
		admin.GET("", controller.ListAgents)
		admin.GET("/:id", controller.GetAgent)
		admin.GET("/:id/summary", controller.GetAgentSummary)
		admin.PATCH("/:id", controller.UpdateAgent)
		admin.DELETE("/:id", controller.DeleteAgent)
	}
}
