package pages

import (
	"tripveda/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPageRoutes configures public content routes and the admin CMS.
func SetupPageRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/pages/:slug", controller.GetPage) // GET /api/v1/pages/:slug

	posts := rg.Group("/posts")
	{
		posts.GET("", controller.ListPosts)      // GET /api/v1/posts
		posts.GET("/:slug", controller.GetPost)  // GET /api/v1/posts/:slug
	}

	admin := rg.Group("/admin/pages")
	admin.Use(middleware.JWTAuth(), middleware.RequireRoles("ADMIN", "STAFF"))
	{
		admin.POST("", controller.CreatePage)     // POST   /api/v1/admin/pages
		admin.GET("", controller.ListAdminPages)  // GET    /api/v1/admin/pages
		admin.PATCH("/:id", controller.UpdatePage)
		admin.DELETE("/:id", controller.DeletePage)
	}
}
