package rates

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidPeriod = errors.New("rates: rental end must be after start")

const minutesPerDay = 24 * 60

// Quote is the priced outcome of a rental period. Days/Hours/Minutes is the
// exact elapsed breakdown for display; Total and AvgPerDay are rounded to two
// decimals, all intermediate math stays in full precision.
type Quote struct {
	Total           float64
	Days            int
	Hours           int
	Minutes         int
	PricePerDay     float64
	AvgPerDay       float64
	DiscountApplied float64
}

// Price computes the billable total for a rental from startAt to endAt.
//
// Every started day counts toward discount-tier eligibility, the largest
// qualifying tier wins, seasonal adjustments apply per rental day, and a
// trailing partial day is billed pro rata on its adjusted rate.
func Price(startAt, endAt time.Time, baseDailyRate float64, tiers []DiscountTier, seasons []SeasonalRate) (Quote, error) {
	startAt, endAt = startAt.UTC(), endAt.UTC()
	if !endAt.After(startAt) {
		return Quote{}, ErrInvalidPeriod
	}

	totalMinutes := int(endAt.Sub(startAt).Minutes())
	billableDays := (totalMinutes + minutesPerDay - 1) / minutesPerDay
	if billableDays < 1 {
		billableDays = 1
	}

	discount := winningTier(tiers, billableDays)

	var total float64
	for day := 0; day < billableDays; day++ {
		anchor := startAt.Add(time.Duration(day) * 24 * time.Hour)
		rate := baseDailyRate
		if adjust, ok := seasonAdjustment(seasons, anchor); ok {
			rate *= 1 + adjust/100
		}
		rate *= 1 - discount/100
		if remaining := totalMinutes - day*minutesPerDay; remaining < minutesPerDay {
			rate *= float64(remaining) / minutesPerDay
		}
		total += rate
	}

	return Quote{
		Total:           round2(total),
		Days:            totalMinutes / minutesPerDay,
		Hours:           (totalMinutes % minutesPerDay) / 60,
		Minutes:         totalMinutes % 60,
		PricePerDay:     round2(baseDailyRate * (1 - discount/100)),
		AvgPerDay:       round2(total / float64(billableDays)),
		DiscountApplied: discount,
	}, nil
}

// winningTier picks the largest MinDays among qualifying tiers; a 10-day
// rental with 3-day and 7-day tiers gets the 7-day discount.
func winningTier(tiers []DiscountTier, billableDays int) float64 {
	best := -1
	var discount float64
	for _, tier := range tiers {
		if tier.MinDays <= billableDays && tier.MinDays > best {
			best = tier.MinDays
			discount = tier.DiscountPercent
		}
	}
	return discount
}

// seasonAdjustment finds the season a rental day belongs to. The rental day
// anchored at t is in season when its calendar date is on or after the season
// start and before the season end; a table passing ValidateSeasons has at
// most one match.
func seasonAdjustment(seasons []SeasonalRate, t time.Time) (float64, bool) {
	day := dateOf(t)
	for _, s := range seasons {
		if !day.Before(dateOf(s.StartDate)) && day.Before(dateOf(s.EndDate)) {
			return s.AdjustmentPercent, true
		}
	}
	return 0, false
}

func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// round2 rounds a monetary value to two decimals at the output boundary only.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
