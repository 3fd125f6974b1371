package dto

import (
	"time"

	"rentfleet/internal/domain/booking"
)

type Reservation struct {
	ID        string    `json:"id"`
	VehicleID string    `json:"vehicle_id"`
	GuestID   string    `json:"guest_id"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	State     string    `json:"state"`
	Total     float64   `json:"total"`
	Days      int       `json:"days"`
	CreatedAt time.Time `json:"created_at"`
}

func MapReservation(r *booking.Reservation) Reservation {
	if r == nil {
		return Reservation{}
	}
	return Reservation{
		ID:        string(r.ID),
		VehicleID: string(r.VehicleID),
		GuestID:   r.GuestID,
		StartAt:   r.Span.Start,
		EndAt:     r.Span.End,
		State:     string(r.State),
		Total:     r.Quote.Total,
		Days:      r.Quote.Days,
		CreatedAt: r.CreatedAt,
	}
}
