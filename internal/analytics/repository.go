package analytics

import (
	"context"
	"fmt"

	"tripveda/internal/bookings"

	"gorm.io/gorm"
)

// Repository defines the analytics repository interface
type Repository interface {
	GetSummary(ctx context.Context, days int) (*Summary, error)
	GetDailyBookings(ctx context.Context, days int) ([]DailyBookingRow, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new analytics repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetSummary(ctx context.Context, days int) (*Summary, error) {
	summary := &Summary{}
	db := r.db.WithContext(ctx)

	if err := db.Table("bookings").Count(&summary.TotalBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	if err := db.Table("bookings").
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&summary.BookingsByStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings by status: %w", err)
	}

	if err := db.Table("bookings").
		Where("status = ?", bookings.StatusConfirmed).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&summary.ConfirmedRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to calculate confirmed revenue: %w", err)
	}

	// original_price is only stored when a coupon discounted the booking.
	if err := db.Table("bookings").
		Where("status = ? AND original_price IS NOT NULL", bookings.StatusConfirmed).
		Select("COALESCE(SUM(original_price - total_price), 0)").
		Scan(&summary.TotalDiscount).Error; err != nil {
		return nil, fmt.Errorf("failed to calculate total discount: %w", err)
	}

	// usage_limit 0 means uncapped; surface that as a missing max_uses.
	if err := db.Table("coupons").
		Select("id, code, used_count, NULLIF(usage_limit, 0) AS max_uses, active").
		Order("used_count DESC, code").
		Scan(&summary.CouponRedemptions).Error; err != nil {
		return nil, fmt.Errorf("failed to load coupon redemptions: %w", err)
	}

	if err := db.Table("agents").
		Select("agents.id, agents.name, agents.total_commission, COUNT(bookings.id) AS confirmed_bookings").
		Joins("LEFT JOIN bookings ON bookings.agent_id = agents.id AND bookings.status = ?", bookings.StatusConfirmed).
		Group("agents.id, agents.name, agents.total_commission").
		Order("agents.total_commission DESC, agents.name").
		Scan(&summary.AgentCommissions).Error; err != nil {
		return nil, fmt.Errorf("failed to load agent commissions: %w", err)
	}

	daily, err := r.GetDailyBookings(ctx, days)
	if err != nil {
		return nil, err
	}
	summary.DailyBookings = daily

	return summary, nil
}

func (r *repository) GetDailyBookings(ctx context.Context, days int) ([]DailyBookingRow, error) {
	if days <= 0 {
		days = 30
	}

	var rows []DailyBookingRow
	err := r.db.WithContext(ctx).Table("bookings").
		Select(`TO_CHAR(DATE(created_at), 'YYYY-MM-DD') AS date,
			COUNT(*) AS bookings,
			COALESCE(SUM(total_price) FILTER (WHERE status = ?), 0) AS revenue`, bookings.StatusConfirmed).
		Where("created_at >= CURRENT_DATE - ?::int", days).
		Group("DATE(created_at)").
		Order("date").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load daily booking stats: %w", err)
	}

	return rows, nil
}
