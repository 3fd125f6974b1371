package vehicles

import (
	"context"
	"fmt"
	"time"

	"rentfleet/internal/app/commands"
	"rentfleet/internal/app/dto"
	domainrates "rentfleet/internal/domain/rates"
	domainvehicles "rentfleet/internal/domain/vehicles"
)

const setRatesKey = "vehicles.set_rates"

const dateLayout = "2006-01-02"

// SetRatesCommand replaces a vehicle's discount tiers and seasonal rates.
// This is the data-entry boundary: the table invariants (unique tier keys, no
// overlapping seasons) are enforced here, before any table reaches pricing.
type SetRatesCommand struct {
	VehicleID string
	Tiers     []dto.DiscountTier
	Seasons   []dto.SeasonalRate
}

func (c SetRatesCommand) Key() string { return setRatesKey }

type SetRatesHandler struct {
	Vehicles domainvehicles.Repository
	Rates    domainrates.Repository
	Now      func() time.Time
}

func (h *SetRatesHandler) Handle(ctx context.Context, cmd SetRatesCommand) (dto.RateTable, error) {
	vehicle, err := h.Vehicles.ByID(ctx, domainvehicles.VehicleID(cmd.VehicleID))
	if err != nil {
		return dto.RateTable{}, err
	}

	table := domainrates.Table{VehicleID: vehicle.ID, UpdatedAt: handlerNow(h.Now)}
	for _, tier := range cmd.Tiers {
		table.Tiers = append(table.Tiers, domainrates.DiscountTier{
			MinDays:         tier.MinDays,
			DiscountPercent: tier.DiscountPercent,
		})
	}
	for _, season := range cmd.Seasons {
		start, err := time.ParseInLocation(dateLayout, season.StartDate, time.UTC)
		if err != nil {
			return dto.RateTable{}, fmt.Errorf("invalid season start date %q: %w", season.StartDate, err)
		}
		end, err := time.ParseInLocation(dateLayout, season.EndDate, time.UTC)
		if err != nil {
			return dto.RateTable{}, fmt.Errorf("invalid season end date %q: %w", season.EndDate, err)
		}
		table.Seasons = append(table.Seasons, domainrates.SeasonalRate{
			StartDate:         start,
			EndDate:           end,
			AdjustmentPercent: season.AdjustmentPercent,
		})
	}

	if err := table.Validate(); err != nil {
		return dto.RateTable{}, err
	}
	if err := h.Rates.Save(ctx, table); err != nil {
		return dto.RateTable{}, err
	}
	return dto.MapRateTable(table), nil
}

var _ commands.Handler[SetRatesCommand, dto.RateTable] = (*SetRatesHandler)(nil)
