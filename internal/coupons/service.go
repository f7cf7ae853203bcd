package coupons

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripveda/internal/pricing"

	"github.com/google/uuid"
)

var (
	// ErrCouponNotFound is returned when no coupon matches the code or id
	ErrCouponNotFound = errors.New("coupon not found")

	// ErrCouponInactive is returned for disabled coupons
	ErrCouponInactive = errors.New("coupon is not active")

	// ErrCouponExpired is returned past the coupon's expiry date
	ErrCouponExpired = errors.New("coupon has expired")

	// ErrCouponExhausted is returned once the usage limit is reached
	ErrCouponExhausted = errors.New("coupon usage limit reached")

	// ErrCouponExists is returned when creating a duplicate code
	ErrCouponExists = errors.New("coupon code already exists")

	// ErrInvalidDiscount is returned for a percentage discount over 100
	ErrInvalidDiscount = errors.New("percentage discount cannot exceed 100")
)

type Service interface {
	CreateCoupon(ctx context.Context, req CreateCouponRequest) (*Coupon, error)
	GetCoupon(ctx context.Context, id uuid.UUID) (*Coupon, error)
	ListCoupons(ctx context.Context, activeOnly bool) ([]Coupon, error)
	UpdateCoupon(ctx context.Context, id uuid.UUID, req UpdateCouponRequest) (*Coupon, error)
	DeleteCoupon(ctx context.Context, id uuid.UUID) error

	// Validate checks a code against an order total and computes the
	// discount. Redemption bookkeeping (used_count, commission) happens
	// later, inside the booking confirmation transaction.
	Validate(ctx context.Context, code string, orderTotal int64) (*ValidationResult, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateCoupon(ctx context.Context, req CreateCouponRequest) (*Coupon, error) {
	if err := checkDiscount(pricing.DiscountKind(req.DiscountType), req.DiscountValue); err != nil {
		return nil, err
	}

	code := NormalizeCode(req.Code)

	existing, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("check existing coupon: %w", err)
	}
	if existing != nil {
		return nil, ErrCouponExists
	}

	coupon := &Coupon{
		Code:          code,
		DiscountType:  pricing.DiscountKind(req.DiscountType),
		DiscountValue: req.DiscountValue,
		ExpiresAt:     req.ExpiresAt,
		UsageLimit:    req.UsageLimit,
		AgentID:       req.AgentID,
		Active:        true,
	}

	if err := s.repo.Create(ctx, coupon); err != nil {
		return nil, fmt.Errorf("create coupon: %w", err)
	}
	return coupon, nil
}

func (s *service) GetCoupon(ctx context.Context, id uuid.UUID) (*Coupon, error) {
	coupon, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get coupon: %w", err)
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

func (s *service) ListCoupons(ctx context.Context, activeOnly bool) ([]Coupon, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *service) UpdateCoupon(ctx context.Context, id uuid.UUID, req UpdateCouponRequest) (*Coupon, error) {
	coupon, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get coupon: %w", err)
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}

	if req.DiscountType != nil {
		coupon.DiscountType = pricing.DiscountKind(*req.DiscountType)
	}
	if req.DiscountValue != nil {
		coupon.DiscountValue = *req.DiscountValue
	}
	if req.ExpiresAt != nil {
		coupon.ExpiresAt = *req.ExpiresAt
	}
	if req.UsageLimit != nil {
		coupon.UsageLimit = *req.UsageLimit
	}
	if req.AgentID != nil {
		coupon.AgentID = req.AgentID
	}
	if req.Active != nil {
		coupon.Active = *req.Active
	}

	if err := checkDiscount(coupon.DiscountType, coupon.DiscountValue); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, coupon); err != nil {
		return nil, fmt.Errorf("update coupon: %w", err)
	}
	return coupon, nil
}

// checkDiscount rejects percentage discounts over 100, which would
// drive a booking total negative.
func checkDiscount(kind pricing.DiscountKind, value int64) error {
	if kind == pricing.DiscountPercentage && value > 100 {
		return ErrInvalidDiscount
	}
	return nil
}

func (s *service) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	coupon, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get coupon: %w", err)
	}
	if coupon == nil {
		return ErrCouponNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Validate(ctx context.Context, code string, orderTotal int64) (*ValidationResult, error) {
	coupon, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("get coupon by code: %w", err)
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}

	if !coupon.Active {
		return nil, ErrCouponInactive
	}
	if coupon.IsExpired(time.Now()) {
		return nil, ErrCouponExpired
	}
	if coupon.IsExhausted() {
		return nil, ErrCouponExhausted
	}

	final, discount := pricing.ApplyDiscount(orderTotal, coupon.DiscountType, coupon.DiscountValue)

	return &ValidationResult{
		Coupon:        coupon,
		Code:          coupon.Code,
		DiscountType:  string(coupon.DiscountType),
		DiscountValue: coupon.DiscountValue,
		Discount:      discount,
		FinalTotal:    final,
	}, nil
}
