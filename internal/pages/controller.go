package pages

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetPage handles GET /api/v1/pages/:slug (public)
func (c *Controller) GetPage(ctx *gin.Context) {
	page, err := c.service.GetPublishedBySlug(ctx.Request.Context(), ctx.Param("slug"), KindPage)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrPageNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Page retrieved successfully",
		"data":    page,
	})
}

// ListPosts handles GET /api/v1/posts (public)
func (c *Controller) ListPosts(ctx *gin.Context) {
	posts, err := c.service.ListPublished(ctx.Request.Context(), KindPost)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list posts"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Posts retrieved successfully",
		"data":    gin.H{"posts": posts, "count": len(posts)},
	})
}

// GetPost handles GET /api/v1/posts/:slug (public)
func (c *Controller) GetPost(ctx *gin.Context) {
	post, err := c.service.GetPublishedBySlug(ctx.Request.Context(), ctx.Param("slug"), KindPost)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrPageNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Post retrieved successfully",
		"data":    post,
	})
}

// CreatePage handles POST /api/v1/admin/pages
func (c *Controller) CreatePage(ctx *gin.Context) {
	var req CreatePageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	page, err := c.service.CreatePage(ctx.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrSlugTaken):
			status = http.StatusConflict
		case errors.Is(err, ErrInvalidKind):
			status = http.StatusBadRequest
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Page created successfully",
		"data":    page,
	})
}

// ListAdminPages handles GET /api/v1/admin/pages?kind=PAGE|POST
func (c *Controller) ListAdminPages(ctx *gin.Context) {
	kind := Kind(ctx.DefaultQuery("kind", string(KindPage)))
	if !kind.IsValid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": ErrInvalidKind.Error()})
		return
	}

	results, err := c.service.ListAll(ctx.Request.Context(), kind)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pages"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Pages retrieved successfully",
		"data":    gin.H{"pages": results, "count": len(results)},
	})
}

// UpdatePage handles PATCH /api/v1/admin/pages/:id
func (c *Controller) UpdatePage(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page ID"})
		return
	}

	var req UpdatePageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	page, err := c.service.UpdatePage(ctx.Request.Context(), id, req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrPageNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Page updated successfully",
		"data":    page,
	})
}

// DeletePage handles DELETE /api/v1/admin/pages/:id
func (c *Controller) DeletePage(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page ID"})
		return
	}

	if err := c.service.DeletePage(ctx.Request.Context(), id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Page deleted successfully"})
}
