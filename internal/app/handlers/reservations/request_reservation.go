package reservations

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"rentfleet/internal/app/commands"
	"rentfleet/internal/app/dto"
	"rentfleet/internal/app/outbox"
	"rentfleet/internal/domain/booking"
	"rentfleet/internal/domain/rates"
	"rentfleet/internal/domain/schedule"
	"rentfleet/internal/domain/shared/timerange"
	"rentfleet/internal/domain/vehicles"
)

const requestReservationKey = "reservations.request"

var (
	ErrVehicleNotRentable = errors.New("reservations: vehicle is not active")
	ErrRangeUnavailable   = errors.New("reservations: requested range crosses unavailable time")
)

type RequestReservationCommand struct {
	VehicleID string
	GuestID   string
	StartAt   time.Time
	EndAt     time.Time
}

func (c RequestReservationCommand) Key() string { return requestReservationKey }

// RequestReservationHandler commits a confirmed selection: it re-validates
// the range against the current calendar, prices it, and persists the
// reservation together with its blocking interval. Validation happens against
// the data read at call time; the repository's versioned save arbitrates
// concurrent writers.
type RequestReservationHandler struct {
	Vehicles     vehicles.Repository
	Intervals    schedule.Repository
	Rates        rates.Repository
	Reservations booking.Repository
	Outbox       outbox.Outbox
	Encoder      outbox.EventEncoder
	Now          func() time.Time
}

func (h *RequestReservationHandler) Handle(ctx context.Context, cmd RequestReservationCommand) (dto.Reservation, error) {
	vehicle, err := h.Vehicles.ByID(ctx, vehicles.VehicleID(cmd.VehicleID))
	if err != nil {
		return dto.Reservation{}, err
	}
	if vehicle.State != vehicles.VehicleActive {
		return dto.Reservation{}, ErrVehicleNotRentable
	}

	span, err := timerange.New(cmd.StartAt, cmd.EndAt)
	if err != nil {
		return dto.Reservation{}, err
	}

	intervals, err := h.Intervals.ActiveByVehicle(ctx, vehicle.ID)
	if err != nil {
		return dto.Reservation{}, err
	}
	cover := schedule.Merge(intervals, vehicle.BufferMinutes)

	// Day-level rule first (partial boundary days may carry a handover),
	// then the instant-level overlap against the buffered cover.
	picker := schedule.NewPicker(intervals, cover)
	picker.Pick(span.Start)
	if res := picker.Pick(span.End); res.Outcome != schedule.OutcomeConfirmed {
		return dto.Reservation{}, ErrRangeUnavailable
	}
	for _, blocked := range cover {
		if blocked.Overlaps(span) {
			return dto.Reservation{}, ErrRangeUnavailable
		}
	}

	table, err := h.Rates.ByVehicle(ctx, vehicle.ID)
	if err != nil {
		return dto.Reservation{}, err
	}
	quote, err := rates.Price(span.Start, span.End, vehicle.DailyRate, table.Tiers, table.Seasons)
	if err != nil {
		return dto.Reservation{}, err
	}

	now := handlerNow(h.Now)
	interval, err := schedule.NewInterval(schedule.NewIntervalParams{
		ID:        schedule.IntervalID(uuid.NewString()),
		VehicleID: vehicle.ID,
		Kind:      schedule.KindReservation,
		StartAt:   span.Start,
		EndAt:     span.End,
	})
	if err != nil {
		return dto.Reservation{}, err
	}

	reservation, err := booking.NewReservation(booking.CreateParams{
		ID:         booking.ReservationID(uuid.NewString()),
		VehicleID:  vehicle.ID,
		GuestID:    cmd.GuestID,
		Span:       span,
		IntervalID: interval.ID,
		Quote:      quote,
		Now:        now,
	})
	if err != nil {
		return dto.Reservation{}, err
	}

	if err := h.Intervals.Save(ctx, interval); err != nil {
		return dto.Reservation{}, err
	}
	if err := h.Reservations.Save(ctx, reservation); err != nil {
		return dto.Reservation{}, err
	}
	if err := outbox.Drain(ctx, h.Outbox, h.Encoder, reservation.PendingEvents()); err != nil {
		return dto.Reservation{}, err
	}
	reservation.ClearEvents()
	return dto.MapReservation(reservation), nil
}

func handlerNow(now func() time.Time) time.Time {
	if now != nil {
		return now()
	}
	return time.Now().UTC()
}

var _ commands.Handler[RequestReservationCommand, dto.Reservation] = (*RequestReservationHandler)(nil)
