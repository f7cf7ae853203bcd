package tours

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, tour *Tour) error
	GetByID(ctx context.Context, id uuid.UUID) (*Tour, error)
	GetBySlug(ctx context.Context, slug string) (*Tour, error)
	GetByTitle(ctx context.Context, title string) (*Tour, error)
	List(ctx context.Context, activeOnly bool) ([]Tour, error)
	ListFeatured(ctx context.Context) ([]Tour, error)
	Update(ctx context.Context, tour *Tour) error
	Delete(ctx context.Context, id uuid.UUID) error

	GetGlobalPrice(ctx context.Context) (*GlobalPrice, error)
	SaveGlobalPrice(ctx context.Context, gp *GlobalPrice) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, tour *Tour) error {
	return r.db.WithContext(ctx).Create(tour).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Tour, error) {
	var tour Tour
	err := r.db.WithContext(ctx).First(&tour, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tour, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Tour, error) {
	var tour Tour
	err := r.db.WithContext(ctx).First(&tour, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tour, nil
}

func (r *repository) GetByTitle(ctx context.Context, title string) (*Tour, error) {
	var tour Tour
	err := r.db.WithContext(ctx).First(&tour, "title = ?", title).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tour, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]Tour, error) {
	var tours []Tour
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if err := query.Find(&tours).Error; err != nil {
		return nil, err
	}
	return tours, nil
}

func (r *repository) ListFeatured(ctx context.Context) ([]Tour, error) {
	var tours []Tour
	err := r.db.WithContext(ctx).
		Where("active = ? AND featured = ?", true, true).
		Order("created_at DESC").
		Find(&tours).Error
	if err != nil {
		return nil, err
	}
	return tours, nil
}

func (r *repository) Update(ctx context.Context, tour *Tour) error {
	return r.db.WithContext(ctx).Save(tour).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Tour{}, "id = ?", id).Error
}

func (r *repository) GetGlobalPrice(ctx context.Context) (*GlobalPrice, error) {
	var gp GlobalPrice
	err := r.db.WithContext(ctx).Order("updated_at DESC").First(&gp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &gp, nil
}

func (r *repository) SaveGlobalPrice(ctx context.Context, gp *GlobalPrice) error {
	return r.db.WithContext(ctx).Save(gp).Error
}
