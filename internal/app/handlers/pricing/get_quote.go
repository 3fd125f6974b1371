package pricing

import (
	"context"
	"time"

	"rentfleet/internal/app/dto"
	"rentfleet/internal/app/queries"
	"rentfleet/internal/domain/rates"
	"rentfleet/internal/domain/vehicles"
)

const getQuoteKey = "pricing.quote"

type GetQuoteQuery struct {
	VehicleID string
	StartAt   time.Time
	EndAt     time.Time
}

func (q GetQuoteQuery) Key() string { return getQuoteKey }

// GetQuoteHandler prices a concrete rental period against the vehicle's base
// rate and its stored tier/season tables.
type GetQuoteHandler struct {
	Vehicles vehicles.Repository
	Rates    rates.Repository
}

func (h *GetQuoteHandler) Handle(ctx context.Context, q GetQuoteQuery) (dto.Quote, error) {
	vehicle, err := h.Vehicles.ByID(ctx, vehicles.VehicleID(q.VehicleID))
	if err != nil {
		return dto.Quote{}, err
	}
	table, err := h.Rates.ByVehicle(ctx, vehicle.ID)
	if err != nil {
		return dto.Quote{}, err
	}
	quote, err := rates.Price(q.StartAt, q.EndAt, vehicle.DailyRate, table.Tiers, table.Seasons)
	if err != nil {
		return dto.Quote{}, err
	}
	return dto.MapQuote(q.VehicleID, q.StartAt.UTC(), q.EndAt.UTC(), quote), nil
}

var _ queries.Handler[GetQuoteQuery, dto.Quote] = (*GetQuoteHandler)(nil)
