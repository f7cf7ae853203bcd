package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func fullGlobalRates() *RateOverrides {
	return &RateOverrides{
		MealPerPersonPerDay: int64Ptr(450),
		TeaPerPersonPerDay:  int64Ptr(100),
		BonfireFlat:         int64Ptr(1500),
		TourGuideFlat:       int64Ptr(2500),
		ComfortSeatFlat:     int64Ptr(800),
		RoomStandard:        int64Ptr(1800),
		RoomPanoramic:       int64Ptr(3200),
		PersonalCabFlat:     int64Ptr(6000),
		TourManagerFlat:     int64Ptr(3000),
	}
}

func TestResolveRates_TourOverridesWinOverGlobal(t *testing.T) {
	tour := &RateOverrides{RoomStandard: int64Ptr(2100)}

	rates, err := ResolveRates(tour, fullGlobalRates())

	require.NoError(t, err)
	assert.Equal(t, int64(2100), rates.RoomStandard, "tour-specific rate should win")
	assert.Equal(t, int64(3200), rates.RoomPanoramic, "unset rates fall back to global")
	assert.Equal(t, int64(450), rates.MealPerPersonPerDay)
}

func TestResolveRates_MissingRateFailsLoudly(t *testing.T) {
	global := fullGlobalRates()
	global.PersonalCabFlat = nil

	rates, err := ResolveRates(nil, global)

	require.Error(t, err)
	assert.Nil(t, rates)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "personal_cab_flat", cfgErr.Rate)
}

func TestResolveRates_NilTablesAreConfigurationErrors(t *testing.T) {
	_, err := ResolveRates(nil, nil)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func baseSelection() Selection {
	return Selection{
		BasePrice: 12499,
		Nights:    3,
		Adults:    2,
		Children:  0,
		Rooms:     1,
		RoomType:  "standard",
		Transport: TransportShared,
	}
}

func resolvedRates(t *testing.T) *Rates {
	t.Helper()
	rates, err := ResolveRates(nil, fullGlobalRates())
	require.NoError(t, err)
	return rates
}

func TestComputeBreakdown_WorkedExample(t *testing.T) {
	// 2 adults, 3 nights, 1 standard room, shared transport, meals on:
	// base 24,998 + room 5,400 + transport 0 + meals 450×2×4 = 33,998.
	sel := baseSelection()
	sel.Addons.Meal = true

	breakdown := ComputeBreakdown(sel, resolvedRates(t))

	require.Len(t, breakdown.Items, 4)

	assert.Equal(t, "base", breakdown.Items[0].Key)
	assert.True(t, breakdown.Items[0].Highlight)
	assert.Equal(t, int64(24998), breakdown.Items[0].Amount)

	assert.Equal(t, "room", breakdown.Items[1].Key)
	assert.Equal(t, int64(5400), breakdown.Items[1].Amount)

	assert.Equal(t, "transport", breakdown.Items[2].Key)
	assert.Equal(t, int64(0), breakdown.Items[2].Amount)
	assert.Equal(t, "Included", breakdown.Items[2].Note)

	assert.Equal(t, "meal", breakdown.Items[3].Key)
	assert.Equal(t, int64(3600), breakdown.Items[3].Amount)

	assert.Equal(t, int64(33998), breakdown.Total)
}

func TestComputeBreakdown_NoAddonsSharedTransport(t *testing.T) {
	// total = basePrice×pax + roomRate×rooms×nights
	sel := baseSelection()

	breakdown := ComputeBreakdown(sel, resolvedRates(t))

	assert.Equal(t, int64(12499*2+1800*1*3), breakdown.Total)
}

func TestComputeBreakdown_MealAddsExactly(t *testing.T) {
	rates := resolvedRates(t)
	sel := baseSelection()

	without := ComputeBreakdown(sel, rates)

	sel.Addons.Meal = true
	with := ComputeBreakdown(sel, rates)

	// mealRate × pax × (nights+1)
	assert.Equal(t, int64(450*2*4), with.Total-without.Total)
}

func TestComputeBreakdown_TeaFreeWithMeal(t *testing.T) {
	rates := resolvedRates(t)

	mealOnly := baseSelection()
	mealOnly.Addons.Meal = true

	mealAndTea := baseSelection()
	mealAndTea.Addons.Meal = true
	mealAndTea.Addons.Tea = true

	assert.Equal(t, ComputeBreakdown(mealOnly, rates).Total, ComputeBreakdown(mealAndTea, rates).Total,
		"tea must be free when bundled with meals")

	teaItem := ComputeBreakdown(mealAndTea, rates).Items[4]
	assert.Equal(t, "tea", teaItem.Key)
	assert.Equal(t, int64(0), teaItem.Amount)
	assert.Equal(t, "FREE (bundled with meal)", teaItem.Note)
}

func TestComputeBreakdown_TeaWithoutMealIsCharged(t *testing.T) {
	sel := baseSelection()
	sel.Addons.Tea = true

	breakdown := ComputeBreakdown(sel, resolvedRates(t))

	teaItem := breakdown.Items[3]
	assert.Equal(t, "tea", teaItem.Key)
	assert.Equal(t, int64(100*2*4), teaItem.Amount)
}

func TestComputeBreakdown_TeaOffIsOmitted(t *testing.T) {
	sel := baseSelection()

	breakdown := ComputeBreakdown(sel, resolvedRates(t))

	for _, item := range breakdown.Items {
		assert.NotEqual(t, "tea", item.Key)
	}
}

func TestComputeBreakdown_RoomTypeCaseInsensitive(t *testing.T) {
	rates := resolvedRates(t)

	for _, roomType := range []string{"Panoramic", "panoramic", "PANORAMIC"} {
		sel := baseSelection()
		sel.RoomType = roomType

		breakdown := ComputeBreakdown(sel, rates)

		assert.Equal(t, int64(3200*1*3), breakdown.Items[1].Amount, "room type %q", roomType)
	}
}

func TestComputeBreakdown_NoRoomsMeansNoNights(t *testing.T) {
	sel := baseSelection()
	sel.Rooms = 0

	breakdown := ComputeBreakdown(sel, resolvedRates(t))

	assert.Equal(t, int64(0), breakdown.Items[1].Amount)
}

func TestComputeBreakdown_PersonalCabIsFlat(t *testing.T) {
	sel := baseSelection()
	sel.Transport = TransportPersonal
	sel.Adults = 5

	breakdown := ComputeBreakdown(sel, resolvedRates(t))

	transport := breakdown.Items[2]
	assert.Equal(t, "Private Cab", transport.Label)
	assert.Equal(t, int64(6000), transport.Amount, "cab fee must not scale with pax")
}

func TestComputeBreakdown_FlatAddons(t *testing.T) {
	sel := baseSelection()
	sel.Adults = 4
	sel.Addons.Bonfire = true
	sel.Addons.TourGuide = true
	sel.Addons.ComfortSeat = true

	breakdown := ComputeBreakdown(sel, resolvedRates(t))

	byKey := map[string]LineItem{}
	for _, item := range breakdown.Items {
		byKey[item.Key] = item
	}

	assert.Equal(t, int64(1500), byKey["bonfire"].Amount)
	assert.Equal(t, int64(2500), byKey["tour_guide"].Amount)
	assert.Equal(t, int64(800), byKey["comfort_seat"].Amount)
	assert.Equal(t, "(Flat)", byKey["comfort_seat"].Note)
}

func TestApplyDiscount_Percentage(t *testing.T) {
	final, discount := ApplyDiscount(33998, DiscountPercentage, 10)

	assert.Equal(t, int64(3400), discount, "10%% of 33,998 rounds to 3,400")
	assert.Equal(t, int64(30598), final)
	assert.Equal(t, int64(33998), final+discount, "original minus final equals the displayed discount")
}

func TestApplyDiscount_FlatCapsAtTotal(t *testing.T) {
	tests := []struct {
		name         string
		total        int64
		value        int64
		wantFinal    int64
		wantDiscount int64
	}{
		{"normal flat", 10000, 1500, 8500, 1500},
		{"flat larger than total", 1000, 1500, 0, 1000},
		{"zero value", 1000, 0, 1000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			final, discount := ApplyDiscount(tt.total, DiscountFlat, tt.value)
			assert.Equal(t, tt.wantFinal, final)
			assert.Equal(t, tt.wantDiscount, discount)
		})
	}
}

func TestUnitRates_QuantitiesNotMultiplied(t *testing.T) {
	sel := baseSelection()
	sel.Transport = TransportPersonal
	sel.Addons.Meal = true
	sel.Addons.Tea = true

	unitRates := UnitRates(sel, resolvedRates(t))

	byKey := map[string]UnitRate{}
	for _, ur := range unitRates {
		byKey[ur.Key] = ur
	}

	assert.Equal(t, int64(1800), byKey["room"].Rate)
	assert.Equal(t, "per night", byKey["room"].Unit)
	assert.Equal(t, int64(6000), byKey["transport"].Rate)
	assert.Equal(t, int64(450), byKey["meal"].Rate)
	assert.Equal(t, int64(100), byKey["tea"].Rate, "unit view shows the tea rate even when bundled free")
}
