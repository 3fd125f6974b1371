package dto

import (
	"time"

	"rentfleet/internal/domain/schedule"
)

type UnavailableRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Calendar is the merged unavailability picture the storefront renders.
type Calendar struct {
	VehicleID     string             `json:"vehicle_id"`
	BufferMinutes int                `json:"buffer_minutes"`
	Unavailable   []UnavailableRange `json:"unavailable"`
}

func MapCalendar(vehicleID string, bufferMinutes int, cover schedule.Cover) Calendar {
	ranges := make([]UnavailableRange, 0, len(cover))
	for _, r := range cover {
		ranges = append(ranges, UnavailableRange{From: r.Start, To: r.End})
	}
	return Calendar{VehicleID: vehicleID, BufferMinutes: bufferMinutes, Unavailable: ranges}
}

// RangeCheck reports whether a candidate day range can be selected, and when
// it can, the permissible pickup times for its first day.
type RangeCheck struct {
	VehicleID    string    `json:"vehicle_id"`
	Outcome      string    `json:"outcome"`
	Allowed      bool      `json:"allowed"`
	Start        time.Time `json:"start,omitempty"`
	End          time.Time `json:"end,omitempty"`
	PickupTimes  []int     `json:"pickup_times,omitempty"`
	DropoffTimes []int     `json:"dropoff_times,omitempty"`
}
