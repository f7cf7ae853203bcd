package coupons

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

// ValidateCoupon handles POST /api/v1/coupons/validate (public)
func (c *Controller) ValidateCoupon(ctx *gin.Context) {
	var req ValidateCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	result, err := c.service.Validate(ctx.Request.Context(), req.Code, req.OrderTotal)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrCouponNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Coupon is valid",
		"data":    result,
	})
}

// CreateCoupon handles POST /api/v1/admin/coupons
func (c *Controller) CreateCoupon(ctx *gin.Context) {
	var req CreateCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	coupon, err := c.service.CreateCoupon(ctx.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrCouponExists):
			status = http.StatusConflict
		case errors.Is(err, ErrInvalidDiscount):
			status = http.StatusBadRequest
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Coupon created successfully",
		"data":    coupon,
	})
}

// ListCoupons handles GET /api/v1/admin/coupons
func (c *Controller) ListCoupons(ctx *gin.Context) {
	activeOnly := ctx.Query("active") == "true"

	result, err := c.service.ListCoupons(ctx.Request.Context(), activeOnly)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list coupons"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Coupons retrieved successfully",
		"data":    gin.H{"coupons": result, "count": len(result)},
	})
}

// GetCoupon handles GET /api/v1/admin/coupons/:id
func (c *Controller) GetCoupon(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon ID"})
		return
	}

	coupon, err := c.service.GetCoupon(ctx.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrCouponNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Coupon retrieved successfully",
		"data":    coupon,
	})
}

// UpdateCoupon handles PATCH /api/v1/admin/coupons/:id
func (c *Controller) UpdateCoupon(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon ID"})
		return
	}

	var req UpdateCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	coupon, err := c.service.UpdateCoupon(ctx.Request.Context(), id, req)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrCouponNotFound):
			status = http.StatusNotFound
		case errors.Is(err, ErrInvalidDiscount):
			status = http.StatusBadRequest
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Coupon updated successfully",
		"data":    coupon,
	})
}

// DeleteCoupon handles DELETE /api/v1/admin/coupons/:id
func (c *Controller) DeleteCoupon(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon ID"})
		return
	}

	if err := c.service.DeleteCoupon(ctx.Request.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrCouponNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Coupon deleted successfully"})
}
