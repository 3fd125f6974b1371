package vehicles

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rentfleet/internal/app/commands"
	"rentfleet/internal/app/dto"
	"rentfleet/internal/app/outbox"
	domainvehicles "rentfleet/internal/domain/vehicles"
)

const registerVehicleKey = "vehicles.register"

type RegisterVehicleCommand struct {
	HostID        string
	Title         string
	Make          string
	Model         string
	Year          int
	Seats         int
	Transmission  string
	DailyRate     float64
	BufferMinutes int
}

func (c RegisterVehicleCommand) Key() string { return registerVehicleKey }

type RegisterVehicleHandler struct {
	Vehicles domainvehicles.Repository
	Outbox   outbox.Outbox
	Encoder  outbox.EventEncoder
	Now      func() time.Time

	// DefaultBufferMinutes applies when the host does not choose a buffer.
	DefaultBufferMinutes int
}

func (h *RegisterVehicleHandler) Handle(ctx context.Context, cmd RegisterVehicleCommand) (dto.Vehicle, error) {
	now := handlerNow(h.Now)
	buffer := cmd.BufferMinutes
	if buffer == 0 {
		buffer = h.DefaultBufferMinutes
	}
	vehicle, err := domainvehicles.NewVehicle(domainvehicles.CreateVehicleParams{
		ID:            domainvehicles.VehicleID(uuid.NewString()),
		Host:          domainvehicles.HostID(cmd.HostID),
		Title:         cmd.Title,
		Make:          cmd.Make,
		Model:         cmd.Model,
		Year:          cmd.Year,
		Seats:         cmd.Seats,
		Transmission:  cmd.Transmission,
		DailyRate:     cmd.DailyRate,
		BufferMinutes: buffer,
		Now:           now,
	})
	if err != nil {
		return dto.Vehicle{}, err
	}
	if err := vehicle.Activate(now); err != nil {
		return dto.Vehicle{}, err
	}
	if err := h.Vehicles.Save(ctx, vehicle); err != nil {
		return dto.Vehicle{}, err
	}
	if err := outbox.Drain(ctx, h.Outbox, h.Encoder, vehicle.PendingEvents()); err != nil {
		return dto.Vehicle{}, err
	}
	vehicle.ClearEvents()
	return dto.MapVehicle(vehicle), nil
}

func handlerNow(now func() time.Time) time.Time {
	if now != nil {
		return now()
	}
	return time.Now().UTC()
}

var _ commands.Handler[RegisterVehicleCommand, dto.Vehicle] = (*RegisterVehicleHandler)(nil)
