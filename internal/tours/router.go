package tours

import (
	"tripveda/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupTourRoutes configures the public catalogue plus the admin
// tour and rate-table management routes.
func SetupTourRoutes(rg *gin.RouterGroup, controller *Controller) {
	public := rg.Group("/tours")
	{
		public.GET("", controller.ListTours)               // GET  /api/v1/tours
		public.GET("/featured", controller.ListFeaturedTours)
		public.GET("/:slug", controller.GetTour)           // GET  /api/v1/tours/:slug
		public.POST("/:slug/quote", controller.Quote)      // POST /api/v1/tours/:slug/quote
	}

	admin := rg.Group("/admin")
	admin.Use(middleware.JWTAuth(), middleware.RequireRoles("ADMIN", "STAFF"))
	{
		admin.POST("/tours", controller.CreateTour)        // POST   /api/v1/admin/tours
		admin.GET("/tours", controller.ListAllTours)       // GET    /api/v1/admin/tours
		admin.PATCH("/tours/:id", controller.UpdateTour)   // PATCH  /api/v1/admin/tours/:id
		admin.DELETE("/tours/:id", controller.DeleteTour)

		admin.GET("/global-price", controller.GetGlobalPrice)
		admin.PUT("/global-price", controller.UpdateGlobalPrice)
	}
}
