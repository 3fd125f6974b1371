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

const (
	confirmReservationKey = "reservations.confirm"
	declineReservationKey = "reservations.decline"
)

type ConfirmReservationCommand struct {
	ReservationID string
}

func (c ConfirmReservationCommand) Key() string { return confirmReservationKey }

type DeclineReservationCommand struct {
	ReservationID string
	Reason        string
}

func (c DeclineReservationCommand) Key() string { return declineReservationKey }

// HostActionsHandler covers the host side of the request lifecycle: accepting
// a pending reservation or declining it and freeing its interval.
type HostActionsHandler struct {
	Reservations booking.Repository
	Intervals    schedule.Repository
	Outbox       outbox.Outbox
	Encoder      outbox.EventEncoder
	Now          func() time.Time
}

func (h *HostActionsHandler) HandleConfirm(ctx context.Context, cmd ConfirmReservationCommand) (dto.Reservation, error) {
	reservation, err := h.Reservations.ByID(ctx, booking.ReservationID(cmd.ReservationID))
	if err != nil {
		return dto.Reservation{}, err
	}
	if err := reservation.Confirm(handlerNow(h.Now)); err != nil {
		return dto.Reservation{}, err
	}
	return h.finish(ctx, reservation)
}

func (h *HostActionsHandler) HandleDecline(ctx context.Context, cmd DeclineReservationCommand) (dto.Reservation, error) {
	reservation, err := h.Reservations.ByID(ctx, booking.ReservationID(cmd.ReservationID))
	if err != nil {
		return dto.Reservation{}, err
	}
	if err := reservation.Decline(cmd.Reason, handlerNow(h.Now)); err != nil {
		return dto.Reservation{}, err
	}
	if err := h.Intervals.Deactivate(ctx, reservation.IntervalID); err != nil {
		return dto.Reservation{}, err
	}
	return h.finish(ctx, reservation)
}

func (h *HostActionsHandler) finish(ctx context.Context, reservation *booking.Reservation) (dto.Reservation, error) {
	if err := h.Reservations.Save(ctx, reservation); err != nil {
		return dto.Reservation{}, err
	}
	if err := outbox.Drain(ctx, h.Outbox, h.Encoder, reservation.PendingEvents()); err != nil {
		return dto.Reservation{}, err
	}
	reservation.ClearEvents()
	return dto.MapReservation(reservation), nil
}

type confirmAdapter struct{ inner *HostActionsHandler }

func (a confirmAdapter) Handle(ctx context.Context, cmd ConfirmReservationCommand) (dto.Reservation, error) {
	return a.inner.HandleConfirm(ctx, cmd)
}

type declineAdapter struct{ inner *HostActionsHandler }

func (a declineAdapter) Handle(ctx context.Context, cmd DeclineReservationCommand) (dto.Reservation, error) {
	return a.inner.HandleDecline(ctx, cmd)
}

// ConfirmHandler exposes HandleConfirm as a typed command handler.
func (h *HostActionsHandler) ConfirmHandler() commands.Handler[ConfirmReservationCommand, dto.Reservation] {
	return confirmAdapter{inner: h}
}

// DeclineHandler exposes HandleDecline as a typed command handler.
func (h *HostActionsHandler) DeclineHandler() commands.Handler[DeclineReservationCommand, dto.Reservation] {
	return declineAdapter{inner: h}
}
