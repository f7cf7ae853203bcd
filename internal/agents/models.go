package agents

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Agent is a referral partner. Coupons link back to the agent that owns
// them; every confirmed booking redeeming such a coupon credits the
// agent's running commission total exactly once.
type Agent struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	Email           string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone           string    `gorm:"size:20" json:"phone"`
	CommissionRate  float64   `gorm:"not null;check:commission_rate >= 0" json:"commission_rate"` // percentage
	TotalCommission int64     `gorm:"default:0;check:total_commission >= 0" json:"total_commission"`
	Active          bool      `gorm:"default:true" json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Agent) TableName() string {
	return "agents"
}

// CommissionFor computes the whole-rupee commission for a booking total.
func (a *Agent) CommissionFor(totalPrice int64) int64 {
	return int64(math.Round(float64(totalPrice) * a.CommissionRate / 100.0))
}

// CreateAgentRequest is the admin payload for onboarding an agent.
type CreateAgentRequest struct {
	Name           string  `json:"name" binding:"required,min=2,max=255"`
	Email          string  `json:"email" binding:"required,email"`
	Phone          string  `json:"phone" binding:"omitempty,min=7,max=20"`
	CommissionRate float64 `json:"commission_rate" binding:"required,min=0,max=100"`
}

// AgentCouponRow is one coupon owned by an agent, as shown on the
// agent summary.
type AgentCouponRow struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	UsedCount int       `json:"used_count"`
	Active    bool      `json:"active"`
}

// AgentSummary is the admin dashboard view of a single agent: the
// agent row plus its coupons and confirmed-booking credit totals.
type AgentSummary struct {
	Agent             *Agent           `json:"agent"`
	Coupons           []AgentCouponRow `json:"coupons"`
	ConfirmedBookings int64            `json:"confirmed_bookings"`
	CreditedTotal     int64            `json:"credited_total"`
}

// UpdateAgentRequest is a partial admin update.
type UpdateAgentRequest struct {
	Name           *string  `json:"name" binding:"omitempty,min=2,max=255"`
	Email          *string  `json:"email" binding:"omitempty,email"`
	Phone          *string  `json:"phone" binding:"omitempty,min=7,max=20"`
	CommissionRate *float64 `json:"commission_rate" binding:"omitempty,min=0,max=100"`
	Active         *bool    `json:"active"`
}
