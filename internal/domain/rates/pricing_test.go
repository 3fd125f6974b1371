package rates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datetime(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func date(year int, month time.Month, day int) time.Time {
	return datetime(year, month, day, 0, 0)
}

func TestPriceRejectsInvertedPeriod(t *testing.T) {
	_, err := Price(date(2024, 1, 2), date(2024, 1, 1), 100, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = Price(date(2024, 1, 1), date(2024, 1, 1), 100, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestPriceSingleFullDay(t *testing.T) {
	q, err := Price(date(2024, 1, 1), date(2024, 1, 2), 100, nil, nil)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, q.Total, 1e-9)
	assert.Equal(t, 1, q.Days)
	assert.Equal(t, 0, q.Hours)
	assert.Equal(t, 0, q.Minutes)
	assert.InDelta(t, 100.0, q.AvgPerDay, 1e-9)
	assert.Zero(t, q.DiscountApplied)
}

func TestPriceProratesTrailingPartialDay(t *testing.T) {
	q, err := Price(date(2024, 1, 1), datetime(2024, 1, 2, 12, 0), 100, nil, nil)
	require.NoError(t, err)

	// One full day plus half of the second day.
	assert.InDelta(t, 150.0, q.Total, 1e-9)
	assert.Equal(t, 1, q.Days)
	assert.Equal(t, 12, q.Hours)
	assert.Equal(t, 0, q.Minutes)
}

func TestPriceSeasonalScoping(t *testing.T) {
	seasons := []SeasonalRate{{
		StartDate:         date(2024, 6, 1),
		EndDate:           date(2024, 6, 10),
		AdjustmentPercent: 25,
	}}
	q, err := Price(date(2024, 6, 9), date(2024, 6, 11), 100, nil, seasons)
	require.NoError(t, err)

	// Day one falls inside the season (125), day two outside it (100).
	assert.InDelta(t, 225.0, q.Total, 1e-9)
}

func TestPriceSeasonalAdjustmentIsDateScoped(t *testing.T) {
	seasons := []SeasonalRate{{
		StartDate:         date(2024, 7, 10),
		EndDate:           date(2024, 7, 20),
		AdjustmentPercent: 50,
	}}
	// Two days before the season, two inside it.
	q, err := Price(date(2024, 7, 8), date(2024, 7, 12), 100, nil, seasons)
	require.NoError(t, err)

	assert.InDelta(t, 2*100+2*150, q.Total, 1e-9)
}

func TestPriceTierTieBreakPicksLargestQualifying(t *testing.T) {
	tiers := []DiscountTier{
		{MinDays: 3, DiscountPercent: 10},
		{MinDays: 7, DiscountPercent: 20},
	}
	q, err := Price(date(2024, 1, 1), date(2024, 1, 11), 100, tiers, nil)
	require.NoError(t, err)

	assert.InDelta(t, 20.0, q.DiscountApplied, 1e-9)
	assert.InDelta(t, 800.0, q.Total, 1e-9)
	assert.InDelta(t, 80.0, q.PricePerDay, 1e-9)
}

func TestPriceTierOrderDoesNotMatter(t *testing.T) {
	forward := []DiscountTier{{MinDays: 3, DiscountPercent: 10}, {MinDays: 7, DiscountPercent: 20}}
	reversed := []DiscountTier{{MinDays: 7, DiscountPercent: 20}, {MinDays: 3, DiscountPercent: 10}}

	a, err := Price(date(2024, 1, 1), date(2024, 1, 11), 100, forward, nil)
	require.NoError(t, err)
	b, err := Price(date(2024, 1, 1), date(2024, 1, 11), 100, reversed, nil)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestPriceStartedDayCountsForTiers(t *testing.T) {
	tiers := []DiscountTier{{MinDays: 3, DiscountPercent: 10}}

	// Two days plus one hour spills into a third billable day.
	q, err := Price(date(2024, 1, 1), datetime(2024, 1, 3, 1, 0), 100, tiers, nil)
	require.NoError(t, err)

	assert.InDelta(t, 10.0, q.DiscountApplied, 1e-9)
}

func TestPriceTotalNonDecreasingInLength(t *testing.T) {
	tiers := []DiscountTier{
		{MinDays: 3, DiscountPercent: 10},
		{MinDays: 7, DiscountPercent: 20},
	}
	prev := 0.0
	for days := 1; days <= 14; days++ {
		q, err := Price(date(2024, 3, 1), date(2024, 3, 1+days), 100, tiers, nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, q.Total, prev, "total shrank at %d days", days)
		prev = q.Total
	}
}

func TestPriceDiscountReducesAvgPerDay(t *testing.T) {
	tiers := []DiscountTier{{MinDays: 5, DiscountPercent: 15}}

	plain, err := Price(date(2024, 3, 1), date(2024, 3, 7), 100, nil, nil)
	require.NoError(t, err)
	discounted, err := Price(date(2024, 3, 1), date(2024, 3, 7), 100, tiers, nil)
	require.NoError(t, err)

	assert.Less(t, discounted.AvgPerDay, plain.AvgPerDay)
}

func TestPriceBreakdownRoundTrip(t *testing.T) {
	start := datetime(2024, 5, 3, 9, 30)
	end := datetime(2024, 5, 5, 15, 7)
	q, err := Price(start, end, 80, nil, nil)
	require.NoError(t, err)

	elapsed := int(end.Sub(start).Minutes())
	assert.Equal(t, elapsed, q.Days*24*60+q.Hours*60+q.Minutes)
}

func TestPriceCombinesSeasonDiscountAndProration(t *testing.T) {
	tiers := []DiscountTier{{MinDays: 2, DiscountPercent: 10}}
	seasons := []SeasonalRate{{
		StartDate:         date(2024, 8, 1),
		EndDate:           date(2024, 8, 3),
		AdjustmentPercent: 20,
	}}
	// Day one in season, day two out of season and only half billed.
	q, err := Price(date(2024, 8, 2), datetime(2024, 8, 3, 12, 0), 100, tiers, seasons)
	require.NoError(t, err)

	// day1: 100*1.2*0.9 = 108; day2: 100*0.9*0.5 = 45
	assert.InDelta(t, 153.0, q.Total, 1e-9)
	assert.InDelta(t, 76.5, q.AvgPerDay, 1e-9)
}

func TestPriceRoundsAtOutputBoundaryOnly(t *testing.T) {
	tiers := []DiscountTier{{MinDays: 1, DiscountPercent: 33.33}}
	q, err := Price(date(2024, 1, 1), date(2024, 1, 4), 99.99, tiers, nil)
	require.NoError(t, err)

	// 3 * 99.99 * 0.6667 = 199.98999..., rounded once at the end to 199.99.
	assert.InDelta(t, 199.99, q.Total, 0.005)
	assert.InDelta(t, q.Total/3, q.AvgPerDay, 0.01)
}
