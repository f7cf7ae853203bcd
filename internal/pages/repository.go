package pages

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, page *Page) error
	GetByID(ctx context.Context, id uuid.UUID) (*Page, error)
	GetBySlug(ctx context.Context, slug string) (*Page, error)
	List(ctx context.Context, kind Kind, publishedOnly bool) ([]Page, error)
	Update(ctx context.Context, page *Page) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, page *Page) error {
	return r.db.WithContext(ctx).Create(page).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Page, error) {
	var page Page
	err := r.db.WithContext(ctx).First(&page, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Page, error) {
	var page Page
	err := r.db.WithContext(ctx).First(&page, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *repository) List(ctx context.Context, kind Kind, publishedOnly bool) ([]Page, error) {
	var results []Page
	query := r.db.WithContext(ctx).Where("kind = ?", kind)
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	err := query.Order("COALESCE(published_at, created_at) DESC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *repository) Update(ctx context.Context, page *Page) error {
	return r.db.WithContext(ctx).Save(page).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Page{}, "id = ?", id).Error
}
