package vehicles

import "time"

type VehicleRegisteredEvent struct {
	VehicleID VehicleID
	Host      HostID
	At        time.Time
}

func (e VehicleRegisteredEvent) EventName() string     { return "vehicle.registered" }
func (e VehicleRegisteredEvent) AggregateID() string   { return string(e.VehicleID) }
func (e VehicleRegisteredEvent) OccurredAt() time.Time { return e.At }

type VehicleActivatedEvent struct {
	VehicleID VehicleID
	At        time.Time
}

func (e VehicleActivatedEvent) EventName() string     { return "vehicle.activated" }
func (e VehicleActivatedEvent) AggregateID() string   { return string(e.VehicleID) }
func (e VehicleActivatedEvent) OccurredAt() time.Time { return e.At }

type VehicleSuspendedEvent struct {
	VehicleID VehicleID
	Reason    string
	At        time.Time
}

func (e VehicleSuspendedEvent) EventName() string     { return "vehicle.suspended" }
func (e VehicleSuspendedEvent) AggregateID() string   { return string(e.VehicleID) }
func (e VehicleSuspendedEvent) OccurredAt() time.Time { return e.At }

type VehicleRateChangedEvent struct {
	VehicleID VehicleID
	DailyRate float64
	At        time.Time
}

func (e VehicleRateChangedEvent) EventName() string     { return "vehicle.rate_changed" }
func (e VehicleRateChangedEvent) AggregateID() string   { return string(e.VehicleID) }
func (e VehicleRateChangedEvent) OccurredAt() time.Time { return e.At }
