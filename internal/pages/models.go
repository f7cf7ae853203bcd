package pages

import (
	"time"

	"github.com/google/uuid"
)

// Kind separates static site pages from blog posts. Both share the same
// storage and editing surface.
type Kind string

const (
	KindPage Kind = "PAGE"
	KindPost Kind = "POST"
)

func (k Kind) IsValid() bool {
	return k == KindPage || k == KindPost
}

type Page struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Kind       Kind       `gorm:"type:varchar(10);check:kind IN ('PAGE', 'POST');not null" json:"kind"`
	Title      string     `gorm:"size:255;not null" json:"title"`
	Slug       string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Excerpt    string     `gorm:"size:500" json:"excerpt"`
	Content    string     `gorm:"type:text" json:"content"`
	CoverImage string     `gorm:"size:500" json:"cover_image"`
	Published  bool       `gorm:"default:false" json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Page) TableName() string {
	return "pages"
}

type CreatePageRequest struct {
	Kind       Kind   `json:"kind" binding:"required"`
	Title      string `json:"title" binding:"required,min=3,max=255"`
	Excerpt    string `json:"excerpt" binding:"max=500"`
	Content    string `json:"content"`
	CoverImage string `json:"cover_image" binding:"omitempty,url"`
	Published  bool   `json:"published"`
}

type UpdatePageRequest struct {
	Title      *string `json:"title" binding:"omitempty,min=3,max=255"`
	Excerpt    *string `json:"excerpt" binding:"omitempty,max=500"`
	Content    *string `json:"content"`
	CoverImage *string `json:"cover_image" binding:"omitempty,url"`
	Published  *bool   `json:"published"`
}
