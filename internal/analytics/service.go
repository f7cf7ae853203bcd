package analytics

import (
	"context"
	"fmt"

	"tripveda/internal/shared/constants"
	"tripveda/pkg/cache"
)

// Service defines the analytics service interface
type Service interface {
	GetSummary(ctx context.Context, days int) (*Summary, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

// NewService creates a new analytics service instance
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{repo: repo, cacheService: cacheService}
}

func (s *service) GetSummary(ctx context.Context, days int) (*Summary, error) {
	if days <= 0 || days > 365 {
		days = 30
	}

	if s.cacheService == nil {
		return s.repo.GetSummary(ctx, days)
	}

	cacheKey := fmt.Sprintf("%s:%dd", constants.CACHE_KEY_ANALYTICS_SUMMARY, days)

	var summary Summary
	err := s.cacheService.GetOrSet(ctx, cacheKey, &summary, constants.TTL_DYNAMIC_MEDIUM, func() (interface{}, error) {
		return s.repo.GetSummary(ctx, days)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get analytics summary: %w", err)
	}

	return &summary, nil
}
