package coupons

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepository is a function-field mock of Repository.
type mockRepository struct {
	createFn    func(ctx context.Context, coupon *Coupon) error
	getByIDFn   func(ctx context.Context, id uuid.UUID) (*Coupon, error)
	getByCodeFn func(ctx context.Context, code string) (*Coupon, error)
	listFn      func(ctx context.Context, activeOnly bool) ([]Coupon, error)
	updateFn    func(ctx context.Context, coupon *Coupon) error
	deleteFn    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockRepository) Create(ctx context.Context, coupon *Coupon) error {
	if m.createFn != nil {
		return m.createFn(ctx, coupon)
	}
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Coupon, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockRepository) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	if m.getByCodeFn != nil {
		return m.getByCodeFn(ctx, code)
	}
	return nil, nil
}

func (m *mockRepository) List(ctx context.Context, activeOnly bool) ([]Coupon, error) {
	if m.listFn != nil {
		return m.listFn(ctx, activeOnly)
	}
	return nil, nil
}

func (m *mockRepository) Update(ctx context.Context, coupon *Coupon) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, coupon)
	}
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func validCoupon() *Coupon {
	return &Coupon{
		ID:            uuid.New(),
		Code:          "MONSOON10",
		DiscountType:  "percentage",
		DiscountValue: 10,
		ExpiresAt:     time.Now().Add(30 * 24 * time.Hour),
		UsageLimit:    100,
		UsedCount:     5,
		Active:        true,
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "MONSOON10", NormalizeCode("  monsoon10 "))
	assert.Equal(t, "FLAT500", NormalizeCode("Flat500"))
}

func TestValidate_Success(t *testing.T) {
	var lookedUp string
	repo := &mockRepository{
		getByCodeFn: func(ctx context.Context, code string) (*Coupon, error) {
			lookedUp = code
			return validCoupon(), nil
		},
	}
	svc := NewService(repo)

	result, err := svc.Validate(context.Background(), "monsoon10", 33998)

	require.NoError(t, err)
	assert.Equal(t, "monsoon10", lookedUp, "repository normalizes, service passes through")
	assert.Equal(t, int64(3400), result.Discount)
	assert.Equal(t, int64(30598), result.FinalTotal)
	assert.Equal(t, "MONSOON10", result.Code)
}

func TestValidate_FlatDiscount(t *testing.T) {
	coupon := validCoupon()
	coupon.Code = "FLAT500"
	coupon.DiscountType = "flat"
	coupon.DiscountValue = 500

	repo := &mockRepository{
		getByCodeFn: func(ctx context.Context, code string) (*Coupon, error) {
			return coupon, nil
		},
	}
	svc := NewService(repo)

	result, err := svc.Validate(context.Background(), "FLAT500", 300)

	require.NoError(t, err)
	assert.Equal(t, int64(300), result.Discount, "flat discount caps at the order total")
	assert.Equal(t, int64(0), result.FinalTotal)
}

func TestValidate_Failures(t *testing.T) {
	expired := validCoupon()
	expired.ExpiresAt = time.Now().Add(-time.Hour)

	exhausted := validCoupon()
	exhausted.UsedCount = exhausted.UsageLimit

	inactive := validCoupon()
	inactive.Active = false

	tests := []struct {
		name    string
		coupon  *Coupon
		wantErr error
	}{
		{"not found", nil, ErrCouponNotFound},
		{"expired", expired, ErrCouponExpired},
		{"exhausted", exhausted, ErrCouponExhausted},
		{"inactive", inactive, ErrCouponInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{
				getByCodeFn: func(ctx context.Context, code string) (*Coupon, error) {
					return tt.coupon, nil
				},
			}
			svc := NewService(repo)

			_, err := svc.Validate(context.Background(), "ANY", 1000)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_ZeroLimitMeansUncapped(t *testing.T) {
	coupon := validCoupon()
	coupon.UsageLimit = 0
	coupon.UsedCount = 9999

	repo := &mockRepository{
		getByCodeFn: func(ctx context.Context, code string) (*Coupon, error) {
			return coupon, nil
		},
	}
	svc := NewService(repo)

	result, err := svc.Validate(context.Background(), "MONSOON10", 33998)

	require.NoError(t, err, "a coupon without a usage cap never exhausts")
	assert.Equal(t, int64(3400), result.Discount)
}

func TestIsExhausted(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		used  int
		want  bool
	}{
		{"under the limit", 100, 5, false},
		{"at the limit", 100, 100, true},
		{"over the limit", 50, 51, true},
		{"zero limit is uncapped", 0, 0, false},
		{"zero limit stays uncapped", 0, 500, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Coupon{UsageLimit: tt.limit, UsedCount: tt.used}
			assert.Equal(t, tt.want, c.IsExhausted())
		})
	}
}

func TestCreateCoupon_RejectsPercentageOver100(t *testing.T) {
	svc := NewService(&mockRepository{})

	_, err := svc.CreateCoupon(context.Background(), CreateCouponRequest{
		Code:          "MEGA150",
		DiscountType:  "percentage",
		DiscountValue: 150,
		ExpiresAt:     time.Now().Add(time.Hour),
		UsageLimit:    10,
	})

	assert.ErrorIs(t, err, ErrInvalidDiscount)
}

func TestUpdateCoupon_RejectsPercentageOver100(t *testing.T) {
	coupon := validCoupon()
	repo := &mockRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*Coupon, error) {
			return coupon, nil
		},
	}
	svc := NewService(repo)

	over := int64(120)
	_, err := svc.UpdateCoupon(context.Background(), coupon.ID, UpdateCouponRequest{DiscountValue: &over})

	assert.ErrorIs(t, err, ErrInvalidDiscount)
}

func TestCreateCoupon_NormalizesAndRejectsDuplicates(t *testing.T) {
	existing := validCoupon()
	repo := &mockRepository{
		getByCodeFn: func(ctx context.Context, code string) (*Coupon, error) {
			if code == "MONSOON10" {
				return existing, nil
			}
			return nil, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.CreateCoupon(context.Background(), CreateCouponRequest{
		Code:          "monsoon10",
		DiscountType:  "percentage",
		DiscountValue: 10,
		ExpiresAt:     time.Now().Add(time.Hour),
		UsageLimit:    10,
	})

	assert.ErrorIs(t, err, ErrCouponExists)
}

func TestUpdateCoupon_PartialUpdate(t *testing.T) {
	coupon := validCoupon()
	var saved *Coupon
	repo := &mockRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*Coupon, error) {
			return coupon, nil
		},
		updateFn: func(ctx context.Context, c *Coupon) error {
			saved = c
			return nil
		},
	}
	svc := NewService(repo)

	active := false
	updated, err := svc.UpdateCoupon(context.Background(), coupon.ID, UpdateCouponRequest{Active: &active})

	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, int64(10), saved.DiscountValue, "untouched fields keep their values")
}
