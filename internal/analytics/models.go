package analytics

import "github.com/google/uuid"

// Summary is the admin dashboard payload. All money values are whole rupees.
type Summary struct {
	TotalBookings     int64             `json:"total_bookings"`
	BookingsByStatus  []StatusCount     `json:"bookings_by_status"`
	ConfirmedRevenue  int64             `json:"confirmed_revenue"`
	TotalDiscount     int64             `json:"total_discount"`
	CouponRedemptions []CouponStat      `json:"coupon_redemptions"`
	AgentCommissions  []AgentStat       `json:"agent_commissions"`
	DailyBookings     []DailyBookingRow `json:"daily_bookings"`
}

// StatusCount counts bookings in a single workflow status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// CouponStat is one coupon's redemption tally against its limit.
type CouponStat struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	UsedCount int       `json:"used_count"`
	MaxUses   *int      `json:"max_uses,omitempty"`
	Active    bool      `json:"active"`
}

// AgentStat is one agent's confirmed booking volume and commission total.
type AgentStat struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	ConfirmedBookings int64     `json:"confirmed_bookings"`
	TotalCommission   int64     `json:"total_commission"`
}

// DailyBookingRow is one calendar day's booking count and confirmed revenue.
type DailyBookingRow struct {
	Date     string `json:"date"`
	Bookings int64  `json:"bookings"`
	Revenue  int64  `json:"revenue"`
}
