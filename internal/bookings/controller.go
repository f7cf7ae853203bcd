package bookings

import (
	"errors"
	"net/http"

	"tripveda/internal/coupons"
	"tripveda/internal/pricing"
	"tripveda/internal/tours"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateBooking handles POST /api/v1/bookings (public)
func (c *Controller) CreateBooking(ctx *gin.Context) {
	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	booking, quote, err := c.service.CreateBooking(ctx.Request.Context(), req)
	if err != nil {
		var dup *DuplicateBookingError
		if errors.As(err, &dup) {
			ctx.JSON(http.StatusConflict, gin.H{
				"error": err.Error(),
				"data":  gin.H{"existing_booking": dup.Existing},
			})
			return
		}

		status := http.StatusInternalServerError
		var cfgErr *pricing.ConfigurationError
		switch {
		case errors.Is(err, tours.ErrTourNotFound):
			status = http.StatusNotFound
		case errors.As(err, &cfgErr):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, coupons.ErrCouponNotFound),
			errors.Is(err, coupons.ErrCouponExpired),
			errors.Is(err, coupons.ErrCouponExhausted),
			errors.Is(err, coupons.ErrCouponInactive):
			status = http.StatusBadRequest
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Booking created successfully",
		"data": gin.H{
			"booking":   booking,
			"reference": booking.ShortRef(),
			"quote":     quote,
		},
	})
}

// TrackBooking handles GET /api/v1/bookings/track?phone=...&ref=... (public)
func (c *Controller) TrackBooking(ctx *gin.Context) {
	var query TrackBookingQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "phone and a 6-character ref are required",
			"details": err.Error(),
		})
		return
	}

	booking, err := c.service.LookupBookingByReference(ctx.Request.Context(), query.Phone, query.Ref)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrBookingNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Booking found",
		"data":    booking,
	})
}

// ListBookings handles GET /api/v1/admin/bookings
func (c *Controller) ListBookings(ctx *gin.Context) {
	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	results, totalCount, err := c.service.ListBookings(ctx.Request.Context(), query)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Bookings retrieved successfully",
		"data": gin.H{
			"bookings": results,
			"pagination": gin.H{
				"page":        query.Page,
				"limit":       query.Limit,
				"total_count": totalCount,
				"total_pages": CalculateTotalPages(totalCount, query.Limit),
			},
		},
	})
}

// GetBooking handles GET /api/v1/admin/bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrBookingNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Booking retrieved successfully",
		"data":    booking,
	})
}

// UpdateBookingStatus handles PATCH /api/v1/admin/bookings/:id/status
func (c *Controller) UpdateBookingStatus(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var req UpdateBookingStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	booking, err := c.service.UpdateBookingStatus(ctx.Request.Context(), id, req)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrBookingNotFound):
			status = http.StatusNotFound
		case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidPaymentType):
			status = http.StatusBadRequest
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Booking updated successfully",
		"data":    booking,
	})
}

// DeleteBooking handles DELETE /api/v1/admin/bookings/:id
func (c *Controller) DeleteBooking(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	if err := c.service.DeleteBooking(ctx.Request.Context(), id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}

// GetUnitRates handles GET /api/v1/admin/bookings/:id/unit-rates
func (c *Controller) GetUnitRates(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	rates, err := c.service.UnitRates(ctx.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		var cfgErr *pricing.ConfigurationError
		switch {
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, tours.ErrTourNotFound):
			status = http.StatusNotFound
		case errors.As(err, &cfgErr):
			status = http.StatusUnprocessableEntity
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Unit rates retrieved successfully",
		"data":    gin.H{"unit_rates": rates},
	})
}
