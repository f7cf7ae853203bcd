package pages

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripveda/internal/shared/constants"
	"tripveda/internal/shared/utils/slug"
	"tripveda/pkg/cache"

	"github.com/google/uuid"
)

var (
	ErrPageNotFound = errors.New("page not found")
	ErrSlugTaken    = errors.New("a page with this slug already exists")
	ErrInvalidKind  = errors.New("kind must be PAGE or POST")
)

type Service interface {
	CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error)
	GetPage(ctx context.Context, id uuid.UUID) (*Page, error)
	// GetPublishedBySlug serves public traffic and only returns
	// published content.
	GetPublishedBySlug(ctx context.Context, s string, kind Kind) (*Page, error)
	ListPublished(ctx context.Context, kind Kind) ([]Page, error)
	ListAll(ctx context.Context, kind Kind) ([]Page, error)
	UpdatePage(ctx context.Context, id uuid.UUID, req UpdatePageRequest) (*Page, error)
	DeletePage(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{repo: repo, cache: cacheService}
}

func (s *service) CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error) {
	if !req.Kind.IsValid() {
		return nil, ErrInvalidKind
	}

	pageSlug := slug.Make(req.Title)
	existing, err := s.repo.GetBySlug(ctx, pageSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	page := &Page{
		Kind:       req.Kind,
		Title:      req.Title,
		Slug:       pageSlug,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		Published:  req.Published,
	}
	if req.Published {
		now := time.Now().UTC()
		page.PublishedAt = &now
	}

	if err := s.repo.Create(ctx, page); err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	s.invalidate(ctx)
	return page, nil
}

func (s *service) GetPage(ctx context.Context, id uuid.UUID) (*Page, error) {
	page, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	if page == nil {
		return nil, ErrPageNotFound
	}
	return page, nil
}

func (s *service) GetPublishedBySlug(ctx context.Context, pageSlug string, kind Kind) (*Page, error) {
	cacheKey := constants.CACHE_KEY_PAGE_DETAIL + pageSlug

	var page Page
	err := s.cache.GetOrSet(ctx, cacheKey, &page, constants.TTL_STATIC_LONG, func() (interface{}, error) {
		p, err := s.repo.GetBySlug(ctx, pageSlug)
		if err != nil {
			return nil, err
		}
		if p == nil || !p.Published || p.Kind != kind {
			return nil, ErrPageNotFound
		}
		return p, nil
	})
	if err != nil {
		if errors.Is(err, ErrPageNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	return &page, nil
}

func (s *service) ListPublished(ctx context.Context, kind Kind) ([]Page, error) {
	if kind != KindPost {
		return s.repo.List(ctx, kind, true)
	}

	var posts []Page
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_POSTS_LIST, &posts, constants.TTL_STATIC_SHORT, func() (interface{}, error) {
		return s.repo.List(ctx, KindPost, true)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (s *service) ListAll(ctx context.Context, kind Kind) ([]Page, error) {
	return s.repo.List(ctx, kind, false)
}

func (s *service) UpdatePage(ctx context.Context, id uuid.UUID, req UpdatePageRequest) (*Page, error) {
	page, err := s.GetPage(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		page.Title = *req.Title
		page.Slug = slug.Make(*req.Title)
	}
	if req.Excerpt != nil {
		page.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		page.Content = *req.Content
	}
	if req.CoverImage != nil {
		page.CoverImage = *req.CoverImage
	}
	if req.Published != nil {
		if *req.Published && !page.Published {
			now := time.Now().UTC()
			page.PublishedAt = &now
		}
		page.Published = *req.Published
	}

	if err := s.repo.Update(ctx, page); err != nil {
		return nil, fmt.Errorf("failed to update page: %w", err)
	}

	s.invalidate(ctx)
	return page, nil
}

func (s *service) DeletePage(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete page: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.cache.DeletePattern(bgCtx, constants.PATTERN_INVALIDATE_PAGES_ALL)
	}()
}
