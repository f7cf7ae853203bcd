package bookings

import (
	"time"

	"tripveda/internal/pricing"
)

// CreateBookingRequest is the customer-facing booking submission.
type CreateBookingRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=255"`
	Phone string `json:"phone" binding:"required,min=7,max=20"`
	Email string `json:"email" binding:"omitempty,email"`

	TourSlug   string    `json:"tour_slug" binding:"required"`
	TravelDate time.Time `json:"travel_date" binding:"required"`

	Adults     int            `json:"adults" binding:"required,min=1,max=50"`
	Children   int            `json:"children" binding:"min=0,max=50"`
	Rooms      int            `json:"rooms" binding:"min=0,max=25"`
	RoomType   string         `json:"room_type" binding:"omitempty,max=50"`
	Transport  string         `json:"transport" binding:"omitempty,oneof=personal shared"`
	Addons     pricing.Addons `json:"addons"`
	CouponCode string         `json:"coupon_code" binding:"omitempty,max=50"`
}

// UpdateBookingStatusRequest is the admin patch applied alongside a
// status transition. Nil fields are left untouched.
type UpdateBookingStatusRequest struct {
	Status      Status        `json:"status" binding:"required"`
	PaymentType *PaymentType  `json:"payment_type"`
	PaidAmount  *int64        `json:"paid_amount" binding:"omitempty,min=0"`
	AdminNotes  *string       `json:"admin_notes"`
	Hotel       *HotelDetails `json:"hotel_details"`
}

// BookingListQuery filters the admin booking list.
type BookingListQuery struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	Status    string `form:"status"`
	TourTitle string `form:"tour_title"`
	Phone     string `form:"phone"`
	DateFrom  string `form:"date_from"`
	DateTo    string `form:"date_to"`
}

// TrackBookingQuery is the customer self-service lookup.
type TrackBookingQuery struct {
	Phone string `form:"phone" binding:"required,min=4"`
	Ref   string `form:"ref" binding:"required,len=6"`
}
