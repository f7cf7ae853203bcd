package tours

import "tripveda/internal/pricing"

type CreateTourRequest struct {
	Title       string                `json:"title" binding:"required,min=3,max=255"`
	Description string                `json:"description"`
	Location    string                `json:"location" binding:"max=255"`
	Nights      int                   `json:"nights" binding:"required,min=1,max=60"`
	BasePrice   int64                 `json:"base_price" binding:"required,min=0"`
	ImageURL    string                `json:"image_url" binding:"omitempty,url"`
	Featured    bool                  `json:"featured"`
	Rates       pricing.RateOverrides `json:"rates"`
}

type UpdateTourRequest struct {
	Title       *string                `json:"title" binding:"omitempty,min=3,max=255"`
	Description *string                `json:"description"`
	Location    *string                `json:"location" binding:"omitempty,max=255"`
	Nights      *int                   `json:"nights" binding:"omitempty,min=1,max=60"`
	BasePrice   *int64                 `json:"base_price" binding:"omitempty,min=0"`
	ImageURL    *string                `json:"image_url" binding:"omitempty,url"`
	Featured    *bool                  `json:"featured"`
	Active      *bool                  `json:"active"`
	Rates       *pricing.RateOverrides `json:"rates"`
}

type UpdateGlobalPriceRequest struct {
	Rates pricing.RateOverrides `json:"rates" binding:"required"`
}

// QuoteRequest prices a party against a tour without creating anything.
type QuoteRequest struct {
	Adults     int            `json:"adults" binding:"required,min=1,max=50"`
	Children   int            `json:"children" binding:"min=0,max=50"`
	Rooms      int            `json:"rooms" binding:"min=0,max=25"`
	RoomType   string         `json:"room_type" binding:"omitempty,max=50"`
	Transport  string         `json:"transport" binding:"omitempty,oneof=personal shared"`
	Addons     pricing.Addons `json:"addons"`
	CouponCode string         `json:"coupon_code" binding:"omitempty,max=50"`
}
