package coupons

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, coupon *Coupon) error
	GetByID(ctx context.Context, id uuid.UUID) (*Coupon, error)
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	List(ctx context.Context, activeOnly bool) ([]Coupon, error)
	Update(ctx context.Context, coupon *Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, coupon *Coupon) error {
	coupon.Code = NormalizeCode(coupon.Code)
	return r.db.WithContext(ctx).Create(coupon).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Coupon, error) {
	var coupon Coupon
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// GetByCode looks a coupon up by its normalized code. Codes are stored
// upper-cased, so normalizing the input makes the match case-insensitive.
func (r *repository) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	var coupon Coupon
	err := r.db.WithContext(ctx).Where("code = ?", NormalizeCode(code)).First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]Coupon, error) {
	var result []Coupon
	query := r.db.WithContext(ctx).Model(&Coupon{}).Order("created_at DESC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Find(&result).Error
	return result, err
}

func (r *repository) Update(ctx context.Context, coupon *Coupon) error {
	coupon.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(coupon).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Coupon{}).Error
}
