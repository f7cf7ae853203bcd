package pricing

import (
	"fmt"
	"math"
	"strings"
)

// ResolveRates merges a tour's partial rate table over the global
// fallback. Every rate must be defined on at least one of the two;
// a gap returns a *ConfigurationError instead of a silent zero.
func ResolveRates(tour, global *RateOverrides) (*Rates, error) {
	if tour == nil {
		tour = &RateOverrides{}
	}
	if global == nil {
		global = &RateOverrides{}
	}

	resolved := &Rates{}
	fields := []struct {
		name   string
		tour   *int64
		global *int64
		dest   *int64
	}{
		{"meal_per_person_per_day", tour.MealPerPersonPerDay, global.MealPerPersonPerDay, &resolved.MealPerPersonPerDay},
		{"tea_per_person_per_day", tour.TeaPerPersonPerDay, global.TeaPerPersonPerDay, &resolved.TeaPerPersonPerDay},
		{"bonfire_flat", tour.BonfireFlat, global.BonfireFlat, &resolved.BonfireFlat},
		{"tour_guide_flat", tour.TourGuideFlat, global.TourGuideFlat, &resolved.TourGuideFlat},
		{"comfort_seat_flat", tour.ComfortSeatFlat, global.ComfortSeatFlat, &resolved.ComfortSeatFlat},
		{"room_standard_per_night", tour.RoomStandard, global.RoomStandard, &resolved.RoomStandard},
		{"room_panoramic_per_night", tour.RoomPanoramic, global.RoomPanoramic, &resolved.RoomPanoramic},
		{"personal_cab_flat", tour.PersonalCabFlat, global.PersonalCabFlat, &resolved.PersonalCabFlat},
		{"tour_manager_flat", tour.TourManagerFlat, global.TourManagerFlat, &resolved.TourManagerFlat},
	}

	for _, f := range fields {
		switch {
		case f.tour != nil:
			*f.dest = *f.tour
		case f.global != nil:
			*f.dest = *f.global
		default:
			return nil, &ConfigurationError{Rate: f.name}
		}
	}

	return resolved, nil
}

// RoomRate selects the per-night room rate for a room type.
// "panoramic" matches case-insensitively; anything else is standard.
func (r *Rates) RoomRate(roomType string) int64 {
	if strings.EqualFold(roomType, RoomTypePanoramic) {
		return r.RoomPanoramic
	}
	return r.RoomStandard
}

// ComputeBreakdown produces the ordered line-item breakdown and grand
// total for a booking selection against a resolved rate table.
func ComputeBreakdown(sel Selection, rates *Rates) Breakdown {
	pax := sel.TotalPax()
	days := sel.Days()

	items := make([]LineItem, 0, 8)

	// 1. Base tour cost, always present and highlighted.
	items = append(items, LineItem{
		Key:       "base",
		Label:     fmt.Sprintf("Tour Package (%d Adults, %d Children)", sel.Adults, sel.Children),
		Amount:    sel.BasePrice * int64(pax),
		Highlight: true,
	})

	// 2. Room cost. Nights only count when rooms are actually booked.
	nights := 0
	if sel.Rooms > 0 {
		nights = sel.Nights
	}
	roomType := RoomTypeStandard
	if strings.EqualFold(sel.RoomType, RoomTypePanoramic) {
		roomType = RoomTypePanoramic
	}
	items = append(items, LineItem{
		Key:    "room",
		Label:  fmt.Sprintf("%s Room × %d × %d Nights", titleCase(roomType), sel.Rooms, nights),
		Amount: rates.RoomRate(sel.RoomType) * int64(sel.Rooms) * int64(nights),
	})

	// 3. Transport: personal cab is a flat fee, shared is included.
	if sel.Transport == TransportPersonal {
		items = append(items, LineItem{
			Key:    "transport",
			Label:  "Private Cab",
			Amount: rates.PersonalCabFlat,
		})
	} else {
		items = append(items, LineItem{
			Key:    "transport",
			Label:  "Shared Transport",
			Note:   "Included",
			Amount: 0,
		})
	}

	// 4. Meals: per person per day, days = nights + 1.
	if sel.Addons.Meal {
		items = append(items, LineItem{
			Key:    "meal",
			Label:  fmt.Sprintf("Meals (%d Pax × %d Days)", pax, days),
			Amount: rates.MealPerPersonPerDay * int64(pax) * int64(days),
		})
	}

	// 5. Tea & snacks: free when bundled with meals, omitted when off.
	if sel.Addons.Tea {
		if sel.Addons.Meal {
			items = append(items, LineItem{
				Key:    "tea",
				Label:  "Tea & Snacks",
				Note:   "FREE (bundled with meal)",
				Amount: 0,
			})
		} else {
			items = append(items, LineItem{
				Key:    "tea",
				Label:  fmt.Sprintf("Tea & Snacks (%d Pax × %d Days)", pax, days),
				Amount: rates.TeaPerPersonPerDay * int64(pax) * int64(days),
			})
		}
	}

	// 6-8. Flat-fee add-ons, not scaled by pax or nights.
	if sel.Addons.Bonfire {
		items = append(items, LineItem{Key: "bonfire", Label: "Bonfire", Amount: rates.BonfireFlat})
	}
	if sel.Addons.TourGuide {
		items = append(items, LineItem{Key: "tour_guide", Label: "Tour Guide", Amount: rates.TourGuideFlat})
	}
	if sel.Addons.ComfortSeat {
		items = append(items, LineItem{Key: "comfort_seat", Label: "Comfort Seat", Note: "(Flat)", Amount: rates.ComfortSeatFlat})
	}

	var total int64
	for _, item := range items {
		total += item.Amount
	}

	return Breakdown{Items: items, Total: total}
}

// ApplyDiscount applies an already validated coupon discount to a grand
// total. Percentage discounts round to the nearest rupee; flat discounts
// never push the total below zero.
func ApplyDiscount(total int64, kind DiscountKind, value int64) (final, discount int64) {
	switch kind {
	case DiscountPercentage:
		discount = int64(math.Round(float64(total) * float64(value) / 100.0))
	case DiscountFlat:
		discount = value
		if discount > total {
			discount = total
		}
	}
	return total - discount, discount
}

// UnitRates lists the per-unit rates applicable to a selection, without
// multiplying in quantities. A display convenience, never used for totals.
func UnitRates(sel Selection, rates *Rates) []UnitRate {
	roomType := RoomTypeStandard
	if strings.EqualFold(sel.RoomType, RoomTypePanoramic) {
		roomType = RoomTypePanoramic
	}

	unitRates := []UnitRate{
		{Key: "room", Label: titleCase(roomType) + " Room", Unit: "per night", Rate: rates.RoomRate(sel.RoomType)},
	}

	if sel.Transport == TransportPersonal {
		unitRates = append(unitRates, UnitRate{Key: "transport", Label: "Private Cab", Unit: "flat", Rate: rates.PersonalCabFlat})
	}
	if sel.Addons.Meal {
		unitRates = append(unitRates, UnitRate{Key: "meal", Label: "Meals", Unit: "per person per day", Rate: rates.MealPerPersonPerDay})
	}
	if sel.Addons.Tea {
		unitRates = append(unitRates, UnitRate{Key: "tea", Label: "Tea & Snacks", Unit: "per person per day", Rate: rates.TeaPerPersonPerDay})
	}
	if sel.Addons.Bonfire {
		unitRates = append(unitRates, UnitRate{Key: "bonfire", Label: "Bonfire", Unit: "flat", Rate: rates.BonfireFlat})
	}
	if sel.Addons.TourGuide {
		unitRates = append(unitRates, UnitRate{Key: "tour_guide", Label: "Tour Guide", Unit: "flat", Rate: rates.TourGuideFlat})
	}
	if sel.Addons.ComfortSeat {
		unitRates = append(unitRates, UnitRate{Key: "comfort_seat", Label: "Comfort Seat", Unit: "flat", Rate: rates.ComfortSeatFlat})
	}

	return unitRates
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
