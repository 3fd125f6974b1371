package booking

import (
	"time"

	"rentfleet/internal/domain/shared/timerange"
	"rentfleet/internal/domain/vehicles"
)

type ReservationRequested struct {
	ReservationID ReservationID
	VehicleID     vehicles.VehicleID
	GuestID       string
	Span          timerange.Range
	Total         float64
	At            time.Time
}

func (e ReservationRequested) EventName() string     { return "reservation.requested" }
func (e ReservationRequested) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationRequested) OccurredAt() time.Time { return e.At }

type ReservationConfirmed struct {
	ReservationID ReservationID
	VehicleID     vehicles.VehicleID
	Span          timerange.Range
	At            time.Time
}

func (e ReservationConfirmed) EventName() string     { return "reservation.confirmed" }
func (e ReservationConfirmed) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationConfirmed) OccurredAt() time.Time { return e.At }

type ReservationDeclined struct {
	ReservationID ReservationID
	Reason        string
	At            time.Time
}

func (e ReservationDeclined) EventName() string     { return "reservation.declined" }
func (e ReservationDeclined) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationDeclined) OccurredAt() time.Time { return e.At }

type ReservationCancelled struct {
	ReservationID ReservationID
	VehicleID     vehicles.VehicleID
	Reason        string
	At            time.Time
}

func (e ReservationCancelled) EventName() string     { return "reservation.cancelled" }
func (e ReservationCancelled) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationCancelled) OccurredAt() time.Time { return e.At }

type ReservationCompleted struct {
	ReservationID ReservationID
	At            time.Time
}

func (e ReservationCompleted) EventName() string     { return "reservation.completed" }
func (e ReservationCompleted) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationCompleted) OccurredAt() time.Time { return e.At }
