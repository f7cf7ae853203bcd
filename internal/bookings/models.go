package bookings

import (
	"strings"
	"time"

	"tripveda/internal/pricing"

	"github.com/google/uuid"
)

// HotelDetails is assignment metadata an admin fills in after confirmation.
type HotelDetails struct {
	Name    string `gorm:"size:255" json:"name"`
	Address string `gorm:"size:500" json:"address"`
	Phone   string `gorm:"size:20" json:"phone"`
	Notes   string `gorm:"type:text" json:"notes"`
}

// Booking is the persisted record of a customer's tour booking.
//
// The tour is referenced by title, not by foreign key. Tours get renamed
// and deleted by admins and historical bookings must keep displaying the
// title they were sold under.
type Booking struct {
	ID    uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name  string    `gorm:"size:255;not null" json:"name"`
	Phone string    `gorm:"size:20;index;not null" json:"phone"`
	Email string    `gorm:"size:255;index" json:"email"`

	TourTitle  string    `gorm:"size:255;not null" json:"tour_title"`
	TravelDate time.Time `json:"travel_date"`

	Adults    int            `gorm:"not null" json:"adults"`
	Children  int            `gorm:"default:0" json:"children"`
	Rooms     int            `gorm:"default:0" json:"rooms"`
	RoomType  string         `gorm:"size:50" json:"room_type"`
	Transport string         `gorm:"size:20" json:"transport"`
	Addons    pricing.Addons `gorm:"embedded;embeddedPrefix:addon_" json:"addons"`

	TotalPrice    int64  `gorm:"not null" json:"total_price"`
	OriginalPrice *int64 `json:"original_price,omitempty"`
	CouponCode    string `gorm:"size:50" json:"coupon_code,omitempty"`

	PaymentType PaymentType `gorm:"type:varchar(20);check:payment_type IN ('UNPAID', 'FULL', 'PARTIAL');default:'UNPAID'" json:"payment_type"`
	PaidAmount  int64       `gorm:"default:0" json:"paid_amount"`

	AdminNotes   string       `gorm:"type:text" json:"admin_notes,omitempty"`
	HotelDetails HotelDetails `gorm:"embedded;embeddedPrefix:hotel_" json:"hotel_details"`

	AgentID          *uuid.UUID `gorm:"type:uuid" json:"agent_id,omitempty"`
	CommissionAmount *int64     `json:"commission_amount,omitempty"`

	Status Status `gorm:"type:varchar(20);check:status IN ('PENDING', 'CONFIRMED', 'CANCELLED');default:'PENDING'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// ShortRef is the customer-facing booking reference: the last six
// characters of the identifier, uppercased.
func (b *Booking) ShortRef() string {
	id := b.ID.String()
	if len(id) < 6 {
		return strings.ToUpper(id)
	}
	return strings.ToUpper(id[len(id)-6:])
}

// MatchesRef reports whether ref matches this booking's identifier
// suffix, ignoring case.
func (b *Booking) MatchesRef(ref string) bool {
	id := strings.ToLower(b.ID.String())
	return ref != "" && strings.HasSuffix(id, strings.ToLower(ref))
}

// TotalPax is the headcount used for per-person charges.
func (b *Booking) TotalPax() int {
	return b.Adults + b.Children
}
