package coupons

import (
	"tripveda/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCouponRoutes configures coupon routes: one public validation
// endpoint, everything else admin-only.
func SetupCouponRoutes(rg *gin.RouterGroup, controller *Controller) {
	public := rg.Group("/coupons")
	{
		public.POST("/validate", controller.ValidateCoupon) // POST /api/v1/coupons/validate
	}

	admin := rg.Group("/admin/coupons")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateCoupon)      // POST   /api/v1/admin/coupons
		admin.GET("", controller.ListCoupons)        // GET    /api/v1/admin/coupons
		admin.GET("/:id", controller.GetCoupon)      // GET    /api/v1/admin/coupons/:id
		admin.PATCH("/:id", controller.UpdateCoupon) // PATCH  /api/v1/admin/coupons/:id
		admin.DELETE("/:id", controller.DeleteCoupon)
	}
}
