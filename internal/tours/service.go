package tours

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripveda/internal/coupons"
	"tripveda/internal/pricing"
	"tripveda/internal/shared/constants"
	"tripveda/internal/shared/utils/slug"
	"tripveda/pkg/cache"

	"github.com/google/uuid"
)

var (
	ErrTourNotFound = errors.New("tour not found")
	ErrTourExists   = errors.New("tour with this title already exists")
)

type Service interface {
	CreateTour(ctx context.Context, req CreateTourRequest) (*Tour, error)
	GetTour(ctx context.Context, id uuid.UUID) (*Tour, error)
	GetTourBySlug(ctx context.Context, s string) (*Tour, error)
	GetTourByTitle(ctx context.Context, title string) (*Tour, error)
	ListTours(ctx context.Context, includeInactive bool) ([]Tour, error)
	ListFeaturedTours(ctx context.Context) ([]Tour, error)
	UpdateTour(ctx context.Context, id uuid.UUID, req UpdateTourRequest) (*Tour, error)
	DeleteTour(ctx context.Context, id uuid.UUID) error

	GetGlobalPrice(ctx context.Context) (*GlobalPrice, error)
	UpdateGlobalPrice(ctx context.Context, req UpdateGlobalPriceRequest) (*GlobalPrice, error)

	// ResolveRates merges a tour's overrides over the global price table.
	ResolveRates(ctx context.Context, tour *Tour) (*pricing.Rates, error)
	// Quote prices a party against a tour, applying an optional coupon.
	Quote(ctx context.Context, tour *Tour, req QuoteRequest) (*QuoteResult, error)
	// UnitRates exposes the per-unit rates a selection resolves to.
	UnitRates(ctx context.Context, tour *Tour, sel pricing.Selection) ([]pricing.UnitRate, error)
}

type service struct {
	repo       Repository
	couponsSvc coupons.Service
	cache      cache.Service
}

func NewService(repo Repository, couponsSvc coupons.Service, cacheService cache.Service) Service {
	return &service{repo: repo, couponsSvc: couponsSvc, cache: cacheService}
}

func (s *service) CreateTour(ctx context.Context, req CreateTourRequest) (*Tour, error) {
	existing, err := s.repo.GetByTitle(ctx, req.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing tour: %w", err)
	}
	if existing != nil {
		return nil, ErrTourExists
	}

	tour := &Tour{
		Title:       req.Title,
		Slug:        slug.Make(req.Title),
		Description: req.Description,
		Location:    req.Location,
		Nights:      req.Nights,
		BasePrice:   req.BasePrice,
		ImageURL:    req.ImageURL,
		Featured:    req.Featured,
		Active:      true,
		Rates:       req.Rates,
	}
	if err := s.repo.Create(ctx, tour); err != nil {
		return nil, fmt.Errorf("failed to create tour: %w", err)
	}

	s.invalidateTourCaches(ctx)
	return tour, nil
}

func (s *service) GetTour(ctx context.Context, id uuid.UUID) (*Tour, error) {
	tour, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get tour: %w", err)
	}
	if tour == nil {
		return nil, ErrTourNotFound
	}
	return tour, nil
}

func (s *service) GetTourBySlug(ctx context.Context, tourSlug string) (*Tour, error) {
	cacheKey := constants.CACHE_KEY_TOUR_DETAIL + tourSlug

	var tour Tour
	err := s.cache.GetOrSet(ctx, cacheKey, &tour, constants.TTL_SEMI_STATIC_MEDIUM, func() (interface{}, error) {
		t, err := s.repo.GetBySlug(ctx, tourSlug)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, ErrTourNotFound
		}
		return t, nil
	})
	if err != nil {
		if errors.Is(err, ErrTourNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, fmt.Errorf("failed to get tour: %w", err)
	}
	return &tour, nil
}

func (s *service) GetTourByTitle(ctx context.Context, title string) (*Tour, error) {
	tour, err := s.repo.GetByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("failed to get tour: %w", err)
	}
	if tour == nil {
		return nil, ErrTourNotFound
	}
	return tour, nil
}

func (s *service) ListTours(ctx context.Context, includeInactive bool) ([]Tour, error) {
	if includeInactive {
		return s.repo.List(ctx, false)
	}

	var tours []Tour
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_TOURS_LIST, &tours, constants.TTL_SEMI_STATIC_SHORT, func() (interface{}, error) {
		return s.repo.List(ctx, true)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tours: %w", err)
	}
	return tours, nil
}

func (s *service) ListFeaturedTours(ctx context.Context) ([]Tour, error) {
	var tours []Tour
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_TOURS_FEATURED, &tours, constants.TTL_SEMI_STATIC_QUICK, func() (interface{}, error) {
		return s.repo.ListFeatured(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list featured tours: %w", err)
	}
	return tours, nil
}

func (s *service) UpdateTour(ctx context.Context, id uuid.UUID, req UpdateTourRequest) (*Tour, error) {
	tour, err := s.GetTour(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		tour.Title = *req.Title
		tour.Slug = slug.Make(*req.Title)
	}
	if req.Description != nil {
		tour.Description = *req.Description
	}
	if req.Location != nil {
		tour.Location = *req.Location
	}
	if req.Nights != nil {
		tour.Nights = *req.Nights
	}
	if req.BasePrice != nil {
		tour.BasePrice = *req.BasePrice
	}
	if req.ImageURL != nil {
		tour.ImageURL = *req.ImageURL
	}
	if req.Featured != nil {
		tour.Featured = *req.Featured
	}
	if req.Active != nil {
		tour.Active = *req.Active
	}
	if req.Rates != nil {
		tour.Rates = *req.Rates
	}

	if err := s.repo.Update(ctx, tour); err != nil {
		return nil, fmt.Errorf("failed to update tour: %w", err)
	}

	s.invalidateTourCaches(ctx)
	return tour, nil
}

func (s *service) DeleteTour(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tour: %w", err)
	}
	s.invalidateTourCaches(ctx)
	return nil
}

func (s *service) GetGlobalPrice(ctx context.Context) (*GlobalPrice, error) {
	var gp GlobalPrice
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_GLOBAL_PRICE, &gp, constants.TTL_STATIC_MEDIUM, func() (interface{}, error) {
		stored, err := s.repo.GetGlobalPrice(ctx)
		if err != nil {
			return nil, err
		}
		if stored == nil {
			// A missing row behaves like an empty rate table.
			return &GlobalPrice{ID: 1}, nil
		}
		return stored, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get global price: %w", err)
	}
	return &gp, nil
}

func (s *service) UpdateGlobalPrice(ctx context.Context, req UpdateGlobalPriceRequest) (*GlobalPrice, error) {
	gp, err := s.repo.GetGlobalPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load global price: %w", err)
	}
	if gp == nil {
		gp = &GlobalPrice{ID: 1}
	}
	gp.Rates = req.Rates
	if err := s.repo.SaveGlobalPrice(ctx, gp); err != nil {
		return nil, fmt.Errorf("failed to save global price: %w", err)
	}

	s.cache.Delete(ctx, constants.CACHE_KEY_GLOBAL_PRICE)
	s.invalidateTourCaches(ctx)
	return gp, nil
}

func (s *service) ResolveRates(ctx context.Context, tour *Tour) (*pricing.Rates, error) {
	gp, err := s.GetGlobalPrice(ctx)
	if err != nil {
		return nil, err
	}
	return pricing.ResolveRates(&tour.Rates, &gp.Rates)
}

func (s *service) Quote(ctx context.Context, tour *Tour, req QuoteRequest) (*QuoteResult, error) {
	rates, err := s.ResolveRates(ctx, tour)
	if err != nil {
		return nil, err
	}

	sel := pricing.Selection{
		BasePrice: tour.BasePrice,
		Nights:    tour.Nights,
		Adults:    req.Adults,
		Children:  req.Children,
		Rooms:     req.Rooms,
		RoomType:  req.RoomType,
		Transport: req.Transport,
		Addons:    req.Addons,
	}
	breakdown := pricing.ComputeBreakdown(sel, rates)

	result := &QuoteResult{
		TourTitle:     tour.Title,
		Nights:        tour.Nights,
		Breakdown:     breakdown,
		OriginalTotal: breakdown.Total,
		TotalPrice:    breakdown.Total,
	}

	if req.CouponCode != "" {
		validation, err := s.couponsSvc.Validate(ctx, req.CouponCode, breakdown.Total)
		if err != nil {
			return nil, err
		}
		result.Discount = validation.Discount
		result.TotalPrice = validation.FinalTotal
		result.CouponCode = validation.Code
	}
	return result, nil
}

func (s *service) UnitRates(ctx context.Context, tour *Tour, sel pricing.Selection) ([]pricing.UnitRate, error) {
	rates, err := s.ResolveRates(ctx, tour)
	if err != nil {
		return nil, err
	}
	return pricing.UnitRates(sel, rates), nil
}

func (s *service) invalidateTourCaches(ctx context.Context) {
	// Best effort; a stale list expires on its own TTL anyway.
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.cache.DeletePattern(bgCtx, constants.PATTERN_INVALIDATE_TOURS_ALL)
	}()
}
