package coupons

import (
	"strings"
	"time"

	"tripveda/internal/pricing"

	"github.com/google/uuid"
)

// Coupon is a discount code, optionally owned by a referral agent.
// UsedCount only ever goes up: each confirmed booking that carried the
// code increments it exactly once.
type Coupon struct {
	ID            uuid.UUID            `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Code          string               `gorm:"size:50;uniqueIndex;not null" json:"code"`
	DiscountType  pricing.DiscountKind `gorm:"type:varchar(20);check:discount_type IN ('percentage', 'flat');not null" json:"discount_type"`
	DiscountValue int64                `gorm:"not null;check:discount_value >= 0" json:"discount_value"`
	ExpiresAt     time.Time            `gorm:"not null" json:"expires_at"`
	UsageLimit    int                  `gorm:"not null;check:usage_limit >= 0" json:"usage_limit"`
	UsedCount     int                  `gorm:"default:0;check:used_count >= 0" json:"used_count"`
	AgentID       *uuid.UUID           `gorm:"type:uuid;index" json:"agent_id,omitempty"`
	Active        bool                 `gorm:"default:true" json:"active"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func (Coupon) TableName() string {
	return "coupons"
}

// NormalizeCode upper-cases and trims a coupon code. Codes are stored
// and compared in this form.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsExpired reports whether the coupon's expiry date has passed.
func (c *Coupon) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// IsExhausted reports whether the usage limit has been reached. A limit
// of zero means the coupon has no cap.
func (c *Coupon) IsExhausted() bool {
	return c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit
}

// CreateCouponRequest is the admin payload for creating a coupon.
type CreateCouponRequest struct {
	Code          string     `json:"code" binding:"required,min=3,max=50"`
	DiscountType  string     `json:"discount_type" binding:"required,oneof=percentage flat"`
	DiscountValue int64      `json:"discount_value" binding:"required,min=0"`
	ExpiresAt     time.Time  `json:"expires_at" binding:"required"`
	UsageLimit    int        `json:"usage_limit" binding:"min=0"` // 0 = no cap
	AgentID       *uuid.UUID `json:"agent_id"`
}

// UpdateCouponRequest is a partial admin update.
type UpdateCouponRequest struct {
	DiscountType  *string    `json:"discount_type" binding:"omitempty,oneof=percentage flat"`
	DiscountValue *int64     `json:"discount_value" binding:"omitempty,min=0"`
	ExpiresAt     *time.Time `json:"expires_at"`
	UsageLimit    *int       `json:"usage_limit" binding:"omitempty,min=0"`
	AgentID       *uuid.UUID `json:"agent_id"`
	Active        *bool      `json:"active"`
}

// ValidateCouponRequest is the public validation payload: the customer's
// code plus the quote total the discount applies to.
type ValidateCouponRequest struct {
	Code       string `json:"code" binding:"required"`
	OrderTotal int64  `json:"order_total" binding:"required,min=1"`
}

// ValidationResult is returned to the booking flow and the public
// validation endpoint.
type ValidationResult struct {
	Coupon        *Coupon `json:"-"`
	Code          string  `json:"code"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue int64   `json:"discount_value"`
	Discount      int64   `json:"discount"`
	FinalTotal    int64   `json:"final_total"`
}
