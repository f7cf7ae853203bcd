package tours

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"tripveda/internal/coupons"
	"tripveda/internal/pricing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	createFn          func(ctx context.Context, tour *Tour) error
	getByIDFn         func(ctx context.Context, id uuid.UUID) (*Tour, error)
	getBySlugFn       func(ctx context.Context, slug string) (*Tour, error)
	getByTitleFn      func(ctx context.Context, title string) (*Tour, error)
	listFn            func(ctx context.Context, activeOnly bool) ([]Tour, error)
	listFeaturedFn    func(ctx context.Context) ([]Tour, error)
	updateFn          func(ctx context.Context, tour *Tour) error
	deleteFn          func(ctx context.Context, id uuid.UUID) error
	getGlobalPriceFn  func(ctx context.Context) (*GlobalPrice, error)
	saveGlobalPriceFn func(ctx context.Context, gp *GlobalPrice) error
}

func (m *mockRepository) Create(ctx context.Context, tour *Tour) error {
	return m.createFn(ctx, tour)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Tour, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockRepository) GetBySlug(ctx context.Context, slug string) (*Tour, error) {
	return m.getBySlugFn(ctx, slug)
}

func (m *mockRepository) GetByTitle(ctx context.Context, title string) (*Tour, error) {
	return m.getByTitleFn(ctx, title)
}

func (m *mockRepository) List(ctx context.Context, activeOnly bool) ([]Tour, error) {
	return m.listFn(ctx, activeOnly)
}

func (m *mockRepository) ListFeatured(ctx context.Context) ([]Tour, error) {
	return m.listFeaturedFn(ctx)
}

func (m *mockRepository) Update(ctx context.Context, tour *Tour) error {
	return m.updateFn(ctx, tour)
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockRepository) GetGlobalPrice(ctx context.Context) (*GlobalPrice, error) {
	return m.getGlobalPriceFn(ctx)
}

func (m *mockRepository) SaveGlobalPrice(ctx context.Context, gp *GlobalPrice) error {
	return m.saveGlobalPriceFn(ctx, gp)
}

type mockCouponsService struct {
	validateFn func(ctx context.Context, code string, orderTotal int64) (*coupons.ValidationResult, error)
}

func (m *mockCouponsService) Validate(ctx context.Context, code string, orderTotal int64) (*coupons.ValidationResult, error) {
	return m.validateFn(ctx, code, orderTotal)
}

func (m *mockCouponsService) CreateCoupon(ctx context.Context, req coupons.CreateCouponRequest) (*coupons.Coupon, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCouponsService) GetCoupon(ctx context.Context, id uuid.UUID) (*coupons.Coupon, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCouponsService) ListCoupons(ctx context.Context, activeOnly bool) ([]coupons.Coupon, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCouponsService) UpdateCoupon(ctx context.Context, id uuid.UUID, req coupons.UpdateCouponRequest) (*coupons.Coupon, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCouponsService) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	return errors.New("not implemented")
}

// passthroughCache always misses and forwards to the fetcher, so
// service logic runs against the repository in every test.
type passthroughCache struct{}

func (passthroughCache) Get(ctx context.Context, key string, dest interface{}) error {
	return errors.New("cache miss")
}

func (passthroughCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (passthroughCache) Delete(ctx context.Context, key string) error { return nil }

func (passthroughCache) DeletePattern(ctx context.Context, pattern string) error { return nil }

func (passthroughCache) Exists(ctx context.Context, key string) bool { return false }

func (passthroughCache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetcher func() (interface{}, error)) error {
	value, err := fetcher()
	if err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (passthroughCache) Ping(ctx context.Context) error { return nil }

func i64(v int64) *int64 { return &v }

func fullGlobalRates() pricing.RateOverrides {
	return pricing.RateOverrides{
		MealPerPersonPerDay: i64(450),
		TeaPerPersonPerDay:  i64(100),
		BonfireFlat:         i64(1500),
		TourGuideFlat:       i64(2500),
		ComfortSeatFlat:     i64(800),
		RoomStandard:        i64(1800),
		RoomPanoramic:       i64(3200),
		PersonalCabFlat:     i64(6000),
		TourManagerFlat:     i64(3000),
	}
}

func newTestService(repo *mockRepository, couponsSvc coupons.Service) Service {
	return NewService(repo, couponsSvc, passthroughCache{})
}

func TestCreateTour_SlugFromTitle(t *testing.T) {
	var created *Tour
	repo := &mockRepository{
		getByTitleFn: func(ctx context.Context, title string) (*Tour, error) { return nil, nil },
		createFn: func(ctx context.Context, tour *Tour) error {
			created = tour
			return nil
		},
	}

	svc := newTestService(repo, nil)
	tour, err := svc.CreateTour(context.Background(), CreateTourRequest{
		Title:     "Manali Winter Escape",
		Nights:    4,
		BasePrice: 7999,
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "manali-winter-escape", tour.Slug)
	assert.True(t, tour.Active)
}

func TestCreateTour_DuplicateTitle(t *testing.T) {
	repo := &mockRepository{
		getByTitleFn: func(ctx context.Context, title string) (*Tour, error) {
			return &Tour{ID: uuid.New(), Title: title}, nil
		},
	}

	svc := newTestService(repo, nil)
	_, err := svc.CreateTour(context.Background(), CreateTourRequest{
		Title:     "Manali Winter Escape",
		Nights:    4,
		BasePrice: 7999,
	})
	assert.ErrorIs(t, err, ErrTourExists)
}

func TestQuote_SharedTransportWithMeal(t *testing.T) {
	repo := &mockRepository{
		getGlobalPriceFn: func(ctx context.Context) (*GlobalPrice, error) {
			return &GlobalPrice{ID: 1, Rates: fullGlobalRates()}, nil
		},
	}
	svc := newTestService(repo, nil)

	tour := &Tour{Title: "Spiti Circuit", Nights: 3, BasePrice: 12499}
	quote, err := svc.Quote(context.Background(), tour, QuoteRequest{
		Adults:    2,
		Rooms:     1,
		Transport: pricing.TransportShared,
		Addons:    pricing.Addons{Meal: true},
	})
	require.NoError(t, err)

	// base 24,998 + room 5,400 + meals 450*2 pax*4 days = 33,998
	assert.Equal(t, int64(33998), quote.TotalPrice)
	assert.Equal(t, int64(33998), quote.OriginalTotal)
	assert.Zero(t, quote.Discount)
	assert.Empty(t, quote.CouponCode)
}

func TestQuote_TourOverrideBeatsGlobalRate(t *testing.T) {
	repo := &mockRepository{
		getGlobalPriceFn: func(ctx context.Context) (*GlobalPrice, error) {
			return &GlobalPrice{ID: 1, Rates: fullGlobalRates()}, nil
		},
	}
	svc := newTestService(repo, nil)

	tour := &Tour{
		Title:     "Goa Beach Week",
		Nights:    3,
		BasePrice: 12499,
		Rates:     pricing.RateOverrides{RoomStandard: i64(2200)},
	}
	quote, err := svc.Quote(context.Background(), tour, QuoteRequest{
		Adults:    2,
		Rooms:     1,
		Transport: pricing.TransportShared,
		Addons:    pricing.Addons{Meal: true},
	})
	require.NoError(t, err)

	// room goes from 1,800 to 2,200 per night: +400*3 nights
	assert.Equal(t, int64(35198), quote.TotalPrice)
}

func TestQuote_CouponApplied(t *testing.T) {
	repo := &mockRepository{
		getGlobalPriceFn: func(ctx context.Context) (*GlobalPrice, error) {
			return &GlobalPrice{ID: 1, Rates: fullGlobalRates()}, nil
		},
	}
	couponsSvc := &mockCouponsService{
		validateFn: func(ctx context.Context, code string, orderTotal int64) (*coupons.ValidationResult, error) {
			require.Equal(t, int64(33998), orderTotal)
			final, discount := pricing.ApplyDiscount(orderTotal, pricing.DiscountPercentage, 10)
			return &coupons.ValidationResult{
				Code:       "MONSOON10",
				Discount:   discount,
				FinalTotal: final,
			}, nil
		},
	}
	svc := newTestService(repo, couponsSvc)

	tour := &Tour{Title: "Spiti Circuit", Nights: 3, BasePrice: 12499}
	quote, err := svc.Quote(context.Background(), tour, QuoteRequest{
		Adults:     2,
		Rooms:      1,
		Transport:  pricing.TransportShared,
		Addons:     pricing.Addons{Meal: true},
		CouponCode: "monsoon10",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(33998), quote.OriginalTotal)
	assert.Equal(t, int64(3400), quote.Discount)
	assert.Equal(t, int64(30598), quote.TotalPrice)
	assert.Equal(t, "MONSOON10", quote.CouponCode)
}

func TestQuote_InvalidCouponFailsQuote(t *testing.T) {
	repo := &mockRepository{
		getGlobalPriceFn: func(ctx context.Context) (*GlobalPrice, error) {
			return &GlobalPrice{ID: 1, Rates: fullGlobalRates()}, nil
		},
	}
	couponsSvc := &mockCouponsService{
		validateFn: func(ctx context.Context, code string, orderTotal int64) (*coupons.ValidationResult, error) {
			return nil, coupons.ErrCouponExpired
		},
	}
	svc := newTestService(repo, couponsSvc)

	tour := &Tour{Title: "Spiti Circuit", Nights: 3, BasePrice: 12499}
	_, err := svc.Quote(context.Background(), tour, QuoteRequest{
		Adults:     1,
		CouponCode: "OLDCODE",
	})
	assert.ErrorIs(t, err, coupons.ErrCouponExpired)
}

func TestResolveRates_MissingRateReportsWhichOne(t *testing.T) {
	repo := &mockRepository{
		getGlobalPriceFn: func(ctx context.Context) (*GlobalPrice, error) {
			rates := fullGlobalRates()
			rates.PersonalCabFlat = nil
			return &GlobalPrice{ID: 1, Rates: rates}, nil
		},
	}
	svc := newTestService(repo, nil)

	_, err := svc.ResolveRates(context.Background(), &Tour{Title: "Spiti Circuit"})
	var confErr *pricing.ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.Equal(t, "personal_cab_flat", confErr.Rate)
}

func TestResolveRates_MissingGlobalRowActsEmpty(t *testing.T) {
	repo := &mockRepository{
		getGlobalPriceFn: func(ctx context.Context) (*GlobalPrice, error) { return nil, nil },
	}
	svc := newTestService(repo, nil)

	// Tour defines every rate itself, so resolution still succeeds.
	full := fullGlobalRates()
	rates, err := svc.ResolveRates(context.Background(), &Tour{Title: "Self Priced", Rates: full})
	require.NoError(t, err)
	assert.Equal(t, int64(450), rates.MealPerPersonPerDay)
	assert.Equal(t, int64(6000), rates.PersonalCabFlat)
}

func TestUpdateTour_PartialPatchRegeneratesSlug(t *testing.T) {
	existing := &Tour{
		ID:        uuid.New(),
		Title:     "Manali Winter Escape",
		Slug:      "manali-winter-escape",
		Nights:    4,
		BasePrice: 7999,
		Active:    true,
	}

	var saved *Tour
	repo := &mockRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*Tour, error) { return existing, nil },
		updateFn: func(ctx context.Context, tour *Tour) error {
			saved = tour
			return nil
		},
	}
	svc := newTestService(repo, nil)

	newTitle := "Manali Summer Escape"
	tour, err := svc.UpdateTour(context.Background(), existing.ID, UpdateTourRequest{Title: &newTitle})
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Equal(t, "manali-summer-escape", tour.Slug)
	assert.Equal(t, 4, tour.Nights)
	assert.Equal(t, int64(7999), tour.BasePrice)
}

func TestGetTourBySlug_NotFound(t *testing.T) {
	repo := &mockRepository{
		getBySlugFn: func(ctx context.Context, slug string) (*Tour, error) { return nil, nil },
	}
	svc := newTestService(repo, nil)

	_, err := svc.GetTourBySlug(context.Background(), "no-such-tour")
	assert.ErrorIs(t, err, ErrTourNotFound)
}
