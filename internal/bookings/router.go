package bookings

import (
	"tripveda/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures booking routes: public submission and
// self-service tracking, admin management for everything else.
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	public := rg.Group("/bookings")
	{
		public.POST("", controller.CreateBooking)      // POST /api/v1/bookings
		public.GET("/track", controller.TrackBooking)  // GET  /api/v1/bookings/track
	}

	admin := rg.Group("/admin/bookings")
	admin.Use(middleware.JWTAuth(), middleware.RequireRoles("ADMIN", "STAFF"))
	{
		admin.GET("", controller.ListBookings)                   // GET    /api/v1/admin/bookings
		admin.GET("/:id", controller.GetBooking)                 // GET    /api/v1/admin/bookings/:id
		admin.PATCH("/:id/status", controller.UpdateBookingStatus) // PATCH /api/v1/admin/bookings/:id/status
		admin.GET("/:id/unit-rates", controller.GetUnitRates)    // GET    /api/v1/admin/bookings/:id/unit-rates
		admin.DELETE("/:id", controller.DeleteBooking)           // DELETE /api/v1/admin/bookings/:id
	}
}
