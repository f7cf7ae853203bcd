package pricing

// All monetary amounts are whole rupees.

// Rates is a fully resolved unit-rate table. Every field has a defined
// value; resolution against the global fallback happens in ResolveRates.
type Rates struct {
	MealPerPersonPerDay int64 `json:"meal_per_person_per_day"`
	TeaPerPersonPerDay  int64 `json:"tea_per_person_per_day"`
	BonfireFlat         int64 `json:"bonfire_flat"`
	TourGuideFlat       int64 `json:"tour_guide_flat"`
	ComfortSeatFlat     int64 `json:"comfort_seat_flat"`
	RoomStandard        int64 `json:"room_standard_per_night"`
	RoomPanoramic       int64 `json:"room_panoramic_per_night"`
	PersonalCabFlat     int64 `json:"personal_cab_flat"`
	TourManagerFlat     int64 `json:"tour_manager_flat"`
}

// RateOverrides is a partial rate table. Nil fields fall back to the
// global table during resolution.
type RateOverrides struct {
	MealPerPersonPerDay *int64 `json:"meal_per_person_per_day,omitempty"`
	TeaPerPersonPerDay  *int64 `json:"tea_per_person_per_day,omitempty"`
	BonfireFlat         *int64 `json:"bonfire_flat,omitempty"`
	TourGuideFlat       *int64 `json:"tour_guide_flat,omitempty"`
	ComfortSeatFlat     *int64 `json:"comfort_seat_flat,omitempty"`
	RoomStandard        *int64 `json:"room_standard_per_night,omitempty"`
	RoomPanoramic       *int64 `json:"room_panoramic_per_night,omitempty"`
	PersonalCabFlat     *int64 `json:"personal_cab_flat,omitempty"`
	TourManagerFlat     *int64 `json:"tour_manager_flat,omitempty"`
}

// Addons are the optional extras a customer can attach to a booking.
type Addons struct {
	Bonfire     bool `json:"bonfire"`
	Meal        bool `json:"meal"`
	Tea         bool `json:"tea"`
	TourGuide   bool `json:"tour_guide"`
	ComfortSeat bool `json:"comfort_seat"`
}

// Transport modes
const (
	TransportPersonal = "personal"
	TransportShared   = "shared"
)

// Room types
const (
	RoomTypeStandard  = "standard"
	RoomTypePanoramic = "panoramic"
)

// Selection is the customer's priced choices for one booking.
type Selection struct {
	BasePrice int64  `json:"base_price"` // per pax, from the tour
	Nights    int    `json:"nights"`     // tour's configured stay length
	Adults    int    `json:"adults"`
	Children  int    `json:"children"`
	Rooms     int    `json:"rooms"`
	RoomType  string `json:"room_type"`
	Transport string `json:"transport"` // "personal" or "shared"
	Addons    Addons `json:"addons"`
}

// TotalPax returns the paying traveller count.
func (s Selection) TotalPax() int {
	return s.Adults + s.Children
}

// Days returns the per-day add-on multiplier (nights + 1).
func (s Selection) Days() int {
	return s.Nights + 1
}

// LineItem is one row of a price breakdown.
type LineItem struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Note      string `json:"note,omitempty"`
	Amount    int64  `json:"amount"`
	Highlight bool   `json:"highlight,omitempty"`
}

// Breakdown is the ordered cost breakdown plus grand total.
type Breakdown struct {
	Items []LineItem `json:"items"`
	Total int64      `json:"total"`
}

// UnitRate is one applicable per-unit rate for display, quantities not
// multiplied in.
type UnitRate struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Unit  string `json:"unit"`
	Rate  int64  `json:"rate"`
}

// DiscountKind distinguishes coupon discount styles.
type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFlat       DiscountKind = "flat"
)
