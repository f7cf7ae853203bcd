package tours

import (
	"time"

	"tripveda/internal/pricing"

	"github.com/google/uuid"
)

// Tour is a sellable package. Rate override columns are nullable; a nil
// rate falls back to the GlobalPrice table at quote time.
type Tour struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title       string    `gorm:"size:255;uniqueIndex;not null" json:"title"`
	Slug        string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `gorm:"size:255" json:"location"`
	Nights      int       `gorm:"not null;check:nights >= 0" json:"nights"`
	BasePrice   int64     `gorm:"not null;check:base_price >= 0" json:"base_price"` // per pax
	ImageURL    string    `gorm:"size:500" json:"image_url"`
	Featured    bool      `gorm:"default:false" json:"featured"`
	Active      bool      `gorm:"default:true" json:"active"`

	Rates pricing.RateOverrides `gorm:"embedded;embeddedPrefix:rate_" json:"rates"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Tour) TableName() string {
	return "tours"
}

// GlobalPrice is the single fallback rate table. Exactly one row exists;
// the most recently updated row wins if seeding ever produced more.
type GlobalPrice struct {
	ID        uint                  `gorm:"primaryKey" json:"id"`
	Rates     pricing.RateOverrides `gorm:"embedded;embeddedPrefix:rate_" json:"rates"`
	UpdatedAt time.Time             `json:"updated_at"`
}

func (GlobalPrice) TableName() string {
	return "global_prices"
}

// QuoteResult is what the pricing flow hands back to callers: the
// breakdown plus discount bookkeeping for the booking record.
type QuoteResult struct {
	TourTitle     string            `json:"tour_title"`
	Nights        int               `json:"nights"`
	Breakdown     pricing.Breakdown `json:"breakdown"`
	OriginalTotal int64             `json:"original_total"`
	Discount      int64             `json:"discount"`
	TotalPrice    int64             `json:"total_price"`
	CouponCode    string            `json:"coupon_code,omitempty"`
}
