package availability

import (
	"context"
	"time"

	"rentfleet/internal/app/dto"
	"rentfleet/internal/app/queries"
	"rentfleet/internal/domain/schedule"
	"rentfleet/internal/domain/vehicles"
)

const checkRangeKey = "availability.check_range"

// CheckRangeQuery runs the storefront's two-click selection server-side for a
// candidate day pair. EditIntervalID, when set, relaxes the endpoint days of
// that interval so a host can reshape an existing block.
type CheckRangeQuery struct {
	VehicleID      string
	StartDay       time.Time
	EndDay         time.Time
	EditIntervalID string
}

func (q CheckRangeQuery) Key() string { return checkRangeKey }

type CheckRangeHandler struct {
	Vehicles  vehicles.Repository
	Intervals schedule.Repository
	Now       func() time.Time
}

func (h *CheckRangeHandler) Handle(ctx context.Context, q CheckRangeQuery) (dto.RangeCheck, error) {
	vehicle, err := h.Vehicles.ByID(ctx, vehicles.VehicleID(q.VehicleID))
	if err != nil {
		return dto.RangeCheck{}, err
	}
	intervals, err := h.Intervals.ActiveByVehicle(ctx, vehicle.ID)
	if err != nil {
		return dto.RangeCheck{}, err
	}

	picker := schedule.NewPicker(intervals, schedule.Merge(intervals, vehicle.BufferMinutes))
	if q.EditIntervalID != "" {
		for i := range intervals {
			if intervals[i].ID == schedule.IntervalID(q.EditIntervalID) {
				picker.Edit(&intervals[i])
				break
			}
		}
	}

	first := picker.Pick(q.StartDay)
	if first.Outcome != schedule.OutcomeStarted {
		return dto.RangeCheck{VehicleID: q.VehicleID, Outcome: string(first.Outcome)}, nil
	}
	res := picker.Pick(q.EndDay)
	out := dto.RangeCheck{
		VehicleID: q.VehicleID,
		Outcome:   string(res.Outcome),
		Allowed:   res.Outcome == schedule.OutcomeConfirmed,
	}
	if !out.Allowed {
		return out, nil
	}

	now := h.now()
	out.Start = res.Start
	out.End = res.End
	out.PickupTimes = schedule.StartTimeOptions(res.Start, now)
	if len(out.PickupTimes) > 0 {
		out.DropoffTimes = schedule.EndTimeOptions(res.Start, res.End, out.PickupTimes[0], now)
	}
	return out, nil
}

func (h *CheckRangeHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

var _ queries.Handler[CheckRangeQuery, dto.RangeCheck] = (*CheckRangeHandler)(nil)
