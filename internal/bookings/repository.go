package bookings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"tripveda/internal/agents"
	"tripveda/internal/coupons"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	Update(ctx context.Context, booking *Booking) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindActiveByContactAndTour returns the first non-cancelled booking
	// matching (phone OR email) for the given tour title, or nil.
	FindActiveByContactAndTour(ctx context.Context, phone, email, tourTitle string) (*Booking, error)

	// SearchByPhone returns bookings whose phone contains the given
	// fragment, case-insensitive.
	SearchByPhone(ctx context.Context, phone string) ([]Booking, error)

	List(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)

	// ConfirmWithSideEffects transitions a booking to CONFIRMED and, in
	// the same transaction, redeems its coupon and credits the owning
	// agent's commission. The status update is conditional on the row not
	// already being CONFIRMED; when that guard misses, confirmed is false,
	// no side effects run, and the caller still owns the patch fields.
	ConfirmWithSideEffects(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (confirmed, credited bool, err error)

	// ApplyUpdates patches arbitrary columns on a booking row.
	ApplyUpdates(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) Update(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Booking{}, "id = ?", id).Error
}

func (r *repository) FindActiveByContactAndTour(ctx context.Context, phone, email, tourTitle string) (*Booking, error) {
	var booking Booking
	query := r.db.WithContext(ctx).
		Where("tour_title = ?", tourTitle).
		Where("status <> ?", StatusCancelled)

	if email != "" {
		query = query.Where("(phone = ? OR email = ?)", phone, email)
	} else {
		query = query.Where("phone = ?", phone)
	}

	err := query.Order("created_at DESC").First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) SearchByPhone(ctx context.Context, phone string) ([]Booking, error) {
	var results []Booking
	err := r.db.WithContext(ctx).
		Where("phone ILIKE ?", "%"+phone+"%").
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *repository) List(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	var results []Booking
	var totalCount int64

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	baseQuery := r.applyFilters(r.db.WithContext(ctx).Model(&Booking{}), query)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&results).Error

	return results, totalCount, err
}

func (r *repository) ConfirmWithSideEffects(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (bool, bool, error) {
	confirmed := false
	credited := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if updates == nil {
			updates = map[string]interface{}{}
		}
		updates["status"] = StatusConfirmed
		updates["updated_at"] = time.Now().UTC()

		// The status guard is the idempotency marker: a booking that is
		// already CONFIRMED matches zero rows and no side effects run.
		result := tx.Model(&Booking{}).
			Where("id = ? AND status <> ?", id, StatusConfirmed).
			Updates(updates)
		if result.Error != nil {
			return fmt.Errorf("failed to confirm booking: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}
		confirmed = true

		var booking Booking
		if err := tx.First(&booking, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to reload booking: %w", err)
		}
		if booking.CouponCode == "" {
			return nil
		}

		var coupon coupons.Coupon
		err := tx.
			Where("code = ?", coupons.NormalizeCode(booking.CouponCode)).
			Set("gorm:query_option", "FOR UPDATE").
			First(&coupon).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Coupon deleted after booking creation. The discount stands;
			// there is just nothing left to redeem.
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to lock coupon: %w", err)
		}

		err = tx.Model(&coupons.Coupon{}).
			Where("id = ?", coupon.ID).
			Update("used_count", gorm.Expr("used_count + 1")).Error
		if err != nil {
			return fmt.Errorf("failed to increment coupon usage: %w", err)
		}

		if coupon.AgentID == nil {
			return nil
		}

		var agent agents.Agent
		err = tx.
			Where("id = ?", *coupon.AgentID).
			Set("gorm:query_option", "FOR UPDATE").
			First(&agent).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to lock agent: %w", err)
		}

		commission := agent.CommissionFor(booking.TotalPrice)

		err = tx.Model(&agents.Agent{}).
			Where("id = ?", agent.ID).
			Update("total_commission", gorm.Expr("total_commission + ?", commission)).Error
		if err != nil {
			return fmt.Errorf("failed to credit commission: %w", err)
		}

		err = tx.Model(&Booking{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"agent_id":          agent.ID,
				"commission_amount": commission,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to stamp commission on booking: %w", err)
		}

		credited = true
		return nil
	})

	return confirmed, credited, err
}

func (r *repository) ApplyUpdates(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// applyFilters applies query filters to the GORM query
func (r *repository) applyFilters(query *gorm.DB, filters BookingListQuery) *gorm.DB {
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if filters.TourTitle != "" {
		query = query.Where("tour_title = ?", filters.TourTitle)
	}

	if filters.Phone != "" {
		query = query.Where("phone ILIKE ?", "%"+filters.Phone+"%")
	}

	if filters.DateFrom != "" {
		if dateFrom, err := time.Parse("2006-01-02", filters.DateFrom); err == nil {
			query = query.Where("created_at >= ?", dateFrom)
		}
	}

	if filters.DateTo != "" {
		if dateTo, err := time.Parse("2006-01-02", filters.DateTo); err == nil {
			// Add 23:59:59 to include the entire day
			dateTo = dateTo.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
			query = query.Where("created_at <= ?", dateTo)
		}
	}

	return query
}

// CalculateTotalPages converts a row count into page count.
func CalculateTotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
