package tours

import (
	"errors"
	"net/http"

	"tripveda/internal/coupons"
	"tripveda/internal/pricing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListTours handles GET /api/v1/tours (public, active only)
func (c *Controller) ListTours(ctx *gin.Context) {
	tourList, err := c.service.ListTours(ctx.Request.Context(), false)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tours"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Tours retrieved successfully",
		"data":    gin.H{"tours": tourList, "count": len(tourList)},
	})
}

// ListFeaturedTours handles GET /api/v1/tours/featured (public)
func (c *Controller) ListFeaturedTours(ctx *gin.Context) {
	tourList, err := c.service.ListFeaturedTours(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list featured tours"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Featured tours retrieved successfully",
		"data":    gin.H{"tours": tourList, "count": len(tourList)},
	})
}

// GetTour handles GET /api/v1/tours/:slug (public)
func (c *Controller) GetTour(ctx *gin.Context) {
	tour, err := c.service.GetTourBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrTourNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Tour retrieved successfully",
		"data":    tour,
	})
}

// Quote handles POST /api/v1/tours/:slug/quote (public)
func (c *Controller) Quote(ctx *gin.Context) {
	var req QuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	tour, err := c.service.GetTourBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrTourNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	quote, err := c.service.Quote(ctx.Request.Context(), tour, req)
	if err != nil {
		var confErr *pricing.ConfigurationError
		switch {
		case errors.As(err, &confErr):
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, coupons.ErrCouponNotFound),
			errors.Is(err, coupons.ErrCouponInactive),
			errors.Is(err, coupons.ErrCouponExpired),
			errors.Is(err, coupons.ErrCouponExhausted):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to price the quote"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Quote calculated successfully",
		"data":    quote,
	})
}

// CreateTour handles POST /api/v1/admin/tours
func (c *Controller) CreateTour(ctx *gin.Context) {
	var req CreateTourRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	tour, err := c.service.CreateTour(ctx.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrTourExists) {
			status = http.StatusConflict
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Tour created successfully",
		"data":    tour,
	})
}

// ListAllTours handles GET /api/v1/admin/tours (includes inactive)
func (c *Controller) ListAllTours(ctx *gin.Context) {
	tourList, err := c.service.ListTours(ctx.Request.Context(), true)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tours"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Tours retrieved successfully",
		"data":    gin.H{"tours": tourList, "count": len(tourList)},
	})
}

// UpdateTour handles PATCH /api/v1/admin/tours/:id
func (c *Controller) UpdateTour(ctx *gin.Context) {
	tourID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tour ID"})
		return
	}

	var req UpdateTourRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	tour, err := c.service.UpdateTour(ctx.Request.Context(), tourID, req)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrTourNotFound):
			status = http.StatusNotFound
		case errors.Is(err, ErrTourExists):
			status = http.StatusConflict
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Tour updated successfully",
		"data":    tour,
	})
}

// DeleteTour handles DELETE /api/v1/admin/tours/:id
func (c *Controller) DeleteTour(ctx *gin.Context) {
	tourID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tour ID"})
		return
	}

	if err := c.service.DeleteTour(ctx.Request.Context(), tourID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrTourNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Tour deleted successfully"})
}

// GetGlobalPrice handles GET /api/v1/admin/global-price
func (c *Controller) GetGlobalPrice(ctx *gin.Context) {
	gp, err := c.service.GetGlobalPrice(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load global price"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Global price retrieved successfully",
		"data":    gp,
	})
}

// UpdateGlobalPrice handles PUT /api/v1/admin/global-price
func (c *Controller) UpdateGlobalPrice(ctx *gin.Context) {
	var req UpdateGlobalPriceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	gp, err := c.service.UpdateGlobalPrice(ctx.Request.Context(), req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update global price"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Global price updated successfully",
		"data":    gp,
	})
}
