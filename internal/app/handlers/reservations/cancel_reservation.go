package reservations

import (
	"context"
	"time"

	"rentfleet/internal/app/commands"
	"rentfleet/internal/app/dto"
	"rentfleet/internal/app/outbox"
	"rentfleet/internal/domain/booking"
	"rentfleet/internal/domain/schedule"
)

const cancelReservationKey = "reservations.cancel"

type CancelReservationCommand struct {
	ReservationID string
	Reason        string
}

func (c CancelReservationCommand) Key() string { return cancelReservationKey }

// CancelReservationHandler cancels a reservation and releases its calendar
// interval so the vehicle becomes available again.
type CancelReservationHandler struct {
	Reservations booking.Repository
	Intervals    schedule.Repository
	Outbox       outbox.Outbox
	Encoder      outbox.EventEncoder
	Now          func() time.Time
}

func (h *CancelReservationHandler) Handle(ctx context.Context, cmd CancelReservationCommand) (dto.Reservation, error) {
	reservation, err := h.Reservations.ByID(ctx, booking.ReservationID(cmd.ReservationID))
	if err != nil {
		return dto.Reservation{}, err
	}
	if err := reservation.Cancel(cmd.Reason, handlerNow(h.Now)); err != nil {
		return dto.Reservation{}, err
	}
	if err := h.Intervals.Deactivate(ctx, reservation.IntervalID); err != nil {
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

var _ commands.Handler[CancelReservationCommand, dto.Reservation] = (*CancelReservationHandler)(nil)
