package rates

import (
	"context"
	"errors"
	"sort"
	"time"

	"rentfleet/internal/domain/vehicles"
)

var (
	ErrTierMinDays   = errors.New("rates: tier min days must be at least 1")
	ErrDuplicateTier = errors.New("rates: duplicate tier min days")
	ErrSeasonRange   = errors.New("rates: season end date must not precede start date")
	ErrSeasonOverlap = errors.New("rates: overlapping seasonal rates")
)

// DiscountTier grants a percentage off the daily rate once a rental reaches
// MinDays billable days.
type DiscountTier struct {
	MinDays         int
	DiscountPercent float64
}

// SeasonalRate adjusts the daily rate for every rental day falling inside
// [StartDate, EndDate]. Dates are midnight-UTC calendar dates.
type SeasonalRate struct {
	StartDate         time.Time
	EndDate           time.Time
	AdjustmentPercent float64
}

// Table is the full rate configuration of one vehicle: what the rate source
// hands to the pricing engine.
type Table struct {
	VehicleID vehicles.VehicleID
	Tiers     []DiscountTier
	Seasons   []SeasonalRate
	Version   int64
	UpdatedAt time.Time
}

type Repository interface {
	ByVehicle(ctx context.Context, id vehicles.VehicleID) (Table, error)
	Save(ctx context.Context, table Table) error
}

// Validate enforces the table integrity invariants at the data-entry
// boundary. The pricing engine assumes a valid table and does not arbitrate
// conflicting rate data.
func (t Table) Validate() error {
	if err := ValidateTiers(t.Tiers); err != nil {
		return err
	}
	return ValidateSeasons(t.Seasons)
}

// ValidateTiers rejects tiers below one day and duplicate MinDays keys.
func ValidateTiers(tiers []DiscountTier) error {
	seen := make(map[int]struct{}, len(tiers))
	for _, tier := range tiers {
		if tier.MinDays < 1 {
			return ErrTierMinDays
		}
		if _, dup := seen[tier.MinDays]; dup {
			return ErrDuplicateTier
		}
		seen[tier.MinDays] = struct{}{}
	}
	return nil
}

// ValidateSeasons rejects inverted seasons and any pair with overlapping
// inclusive date ranges.
func ValidateSeasons(seasons []SeasonalRate) error {
	sorted := make([]SeasonalRate, len(seasons))
	copy(sorted, seasons)
	for _, s := range sorted {
		if s.EndDate.Before(s.StartDate) {
			return ErrSeasonRange
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})
	for i := 1; i < len(sorted); i++ {
		if !sorted[i].StartDate.After(sorted[i-1].EndDate) {
			return ErrSeasonOverlap
		}
	}
	return nil
}
