package booking

import (
	"context"
	"errors"
	"time"

	"rentfleet/internal/domain/rates"
	"rentfleet/internal/domain/schedule"
	"rentfleet/internal/domain/shared/events"
	"rentfleet/internal/domain/shared/timerange"
	"rentfleet/internal/domain/vehicles"
)

var (
	ErrGuestRequired = errors.New("booking: guest id required")
	ErrInvalidState  = errors.New("booking: invalid state transition")
	ErrNotFound      = errors.New("booking: reservation not found")
)

type ReservationID string

type ReservationState string

const (
	StatePending   ReservationState = "PENDING"
	StateConfirmed ReservationState = "CONFIRMED"
	StateDeclined  ReservationState = "DECLINED"
	StateCancelled ReservationState = "CANCELLED"
	StateCompleted ReservationState = "COMPLETED"
)

// Reservation commits a confirmed selection: the rental span, the quote it
// was priced at, and the calendar interval blocking the vehicle.
type Reservation struct {
	ID         ReservationID
	VehicleID  vehicles.VehicleID
	GuestID    string
	Span       timerange.Range
	IntervalID schedule.IntervalID
	Quote      rates.Quote
	State      ReservationState
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Version    int64
	events.Recorder
}

type Repository interface {
	ByID(ctx context.Context, id ReservationID) (*Reservation, error)
	Save(ctx context.Context, reservation *Reservation) error
	ListByGuest(ctx context.Context, guestID string) ([]*Reservation, error)
}

type CreateParams struct {
	ID         ReservationID
	VehicleID  vehicles.VehicleID
	GuestID    string
	Span       timerange.Range
	IntervalID schedule.IntervalID
	Quote      rates.Quote
	Now        time.Time
}

func NewReservation(params CreateParams) (*Reservation, error) {
	if params.GuestID == "" {
		return nil, ErrGuestRequired
	}
	if err := params.Span.Validate(); err != nil {
		return nil, err
	}
	now := params.Now.UTC()
	r := &Reservation{
		ID:         params.ID,
		VehicleID:  params.VehicleID,
		GuestID:    params.GuestID,
		Span:       params.Span,
		IntervalID: params.IntervalID,
		Quote:      params.Quote,
		State:      StatePending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.Record(ReservationRequested{
		ReservationID: r.ID,
		VehicleID:     r.VehicleID,
		GuestID:       r.GuestID,
		Span:          r.Span,
		Total:         r.Quote.Total,
		At:            now,
	})
	return r, nil
}

func (r *Reservation) Confirm(now time.Time) error {
	if r.State != StatePending {
		return ErrInvalidState
	}
	r.State = StateConfirmed
	r.UpdatedAt = now.UTC()
	r.Record(ReservationConfirmed{ReservationID: r.ID, VehicleID: r.VehicleID, Span: r.Span, At: r.UpdatedAt})
	return nil
}

func (r *Reservation) Decline(reason string, now time.Time) error {
	if r.State != StatePending {
		return ErrInvalidState
	}
	r.State = StateDeclined
	r.UpdatedAt = now.UTC()
	r.Record(ReservationDeclined{ReservationID: r.ID, Reason: reason, At: r.UpdatedAt})
	return nil
}

func (r *Reservation) Cancel(reason string, now time.Time) error {
	if r.State != StatePending && r.State != StateConfirmed {
		return ErrInvalidState
	}
	r.State = StateCancelled
	r.UpdatedAt = now.UTC()
	r.Record(ReservationCancelled{ReservationID: r.ID, VehicleID: r.VehicleID, Reason: reason, At: r.UpdatedAt})
	return nil
}

func (r *Reservation) Complete(now time.Time) error {
	if r.State != StateConfirmed {
		return ErrInvalidState
	}
	r.State = StateCompleted
	r.UpdatedAt = now.UTC()
	r.Record(ReservationCompleted{ReservationID: r.ID, At: r.UpdatedAt})
	return nil
}
