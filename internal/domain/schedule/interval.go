package schedule

import (
	"context"
	"errors"
	"time"

	"rentfleet/internal/domain/shared/timerange"
	"rentfleet/internal/domain/vehicles"
)

var (
	ErrInvalidInterval = errors.New("schedule: interval end must be after start")
)

type IntervalID string

// Kind distinguishes guest reservations from administrative host blocks.
// Merging treats both identically; only presentation cares.
type Kind string

const (
	KindReservation Kind = "RESERVATION"
	KindBlock       Kind = "BLOCK"
)

// Interval is a half-open span of unavailable time on a vehicle's calendar.
type Interval struct {
	ID        IntervalID
	VehicleID vehicles.VehicleID
	Kind      Kind
	Span      timerange.Range
	Active    bool
}

type NewIntervalParams struct {
	ID        IntervalID
	VehicleID vehicles.VehicleID
	Kind      Kind
	StartAt   time.Time
	EndAt     time.Time
}

func NewInterval(params NewIntervalParams) (Interval, error) {
	span, err := timerange.New(params.StartAt, params.EndAt)
	if err != nil {
		return Interval{}, ErrInvalidInterval
	}
	kind := params.Kind
	if kind == "" {
		kind = KindBlock
	}
	return Interval{
		ID:        params.ID,
		VehicleID: params.VehicleID,
		Kind:      kind,
		Span:      span,
		Active:    true,
	}, nil
}

// Repository is the reservation source: it provides the current interval set
// for a vehicle and persists new blocks. The engines never call it directly.
type Repository interface {
	ActiveByVehicle(ctx context.Context, id vehicles.VehicleID) ([]Interval, error)
	Save(ctx context.Context, interval Interval) error
	Deactivate(ctx context.Context, id IntervalID) error
}
