package availability

import (
	"context"

	"rentfleet/internal/app/dto"
	"rentfleet/internal/app/queries"
	"rentfleet/internal/domain/schedule"
	"rentfleet/internal/domain/vehicles"
)

const getCalendarKey = "availability.calendar"

type GetCalendarQuery struct {
	VehicleID string
}

func (q GetCalendarQuery) Key() string { return getCalendarKey }

// GetCalendarHandler answers with the merged unavailability cover for a
// vehicle, recomputed from the current interval set on every call.
type GetCalendarHandler struct {
	Vehicles  vehicles.Repository
	Intervals schedule.Repository
}

func (h *GetCalendarHandler) Handle(ctx context.Context, q GetCalendarQuery) (dto.Calendar, error) {
	vehicle, err := h.Vehicles.ByID(ctx, vehicles.VehicleID(q.VehicleID))
	if err != nil {
		return dto.Calendar{}, err
	}
	intervals, err := h.Intervals.ActiveByVehicle(ctx, vehicle.ID)
	if err != nil {
		return dto.Calendar{}, err
	}
	cover := schedule.Merge(intervals, vehicle.BufferMinutes)
	return dto.MapCalendar(q.VehicleID, vehicle.BufferMinutes, cover), nil
}

var _ queries.Handler[GetCalendarQuery, dto.Calendar] = (*GetCalendarHandler)(nil)
