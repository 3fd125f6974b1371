package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentfleet/internal/app/outbox"
	"rentfleet/internal/domain/booking"
	"rentfleet/internal/domain/schedule"
	"rentfleet/internal/domain/vehicles"
	"rentfleet/internal/infra/storage/memory"
)

func datetime(day, hour, min int) time.Time {
	return time.Date(2024, time.June, day, hour, min, 0, 0, time.UTC)
}

type fixture struct {
	vehicles     *memory.VehicleRepository
	intervals    *memory.IntervalRepository
	rates        *memory.RateRepository
	reservations *memory.ReservationRepository
	outbox       *memory.Outbox
	handler      *RequestReservationHandler
	vehicleID    string
}

func newFixture(t *testing.T, bufferMinutes int) *fixture {
	t.Helper()
	f := &fixture{
		vehicles:     memory.NewVehicleRepository(),
		intervals:    memory.NewIntervalRepository(),
		rates:        memory.NewRateRepository(),
		reservations: memory.NewReservationRepository(),
		outbox:       memory.NewOutbox(),
	}
	vehicle, err := vehicles.NewVehicle(vehicles.CreateVehicleParams{
		ID:            "veh-1",
		Host:          "host-1",
		Title:         "Compact hatchback",
		DailyRate:     100,
		BufferMinutes: bufferMinutes,
		Now:           datetime(1, 0, 0),
	})
	require.NoError(t, err)
	require.NoError(t, vehicle.Activate(datetime(1, 0, 0)))
	vehicle.ClearEvents()
	require.NoError(t, f.vehicles.Save(context.Background(), vehicle))
	f.vehicleID = string(vehicle.ID)
	f.handler = &RequestReservationHandler{
		Vehicles:     f.vehicles,
		Intervals:    f.intervals,
		Rates:        f.rates,
		Reservations: f.reservations,
		Outbox:       f.outbox,
		Encoder:      outbox.JSONEventEncoder{},
		Now:          func() time.Time { return datetime(1, 12, 0) },
	}
	return f
}

func (f *fixture) block(t *testing.T, id string, start, end time.Time) {
	t.Helper()
	iv, err := schedule.NewInterval(schedule.NewIntervalParams{
		ID:        schedule.IntervalID(id),
		VehicleID: vehicles.VehicleID(f.vehicleID),
		Kind:      schedule.KindReservation,
		StartAt:   start,
		EndAt:     end,
	})
	require.NoError(t, err)
	require.NoError(t, f.intervals.Save(context.Background(), iv))
}

func TestRequestReservationHappyPath(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	res, err := f.handler.Handle(ctx, RequestReservationCommand{
		VehicleID: f.vehicleID,
		GuestID:   "guest-1",
		StartAt:   datetime(10, 10, 0),
		EndAt:     datetime(13, 10, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, string(booking.StatePending), res.State)
	assert.Equal(t, "guest-1", res.GuestID)
	assert.InDelta(t, 300.0, res.Total, 0.001)
	assert.Equal(t, 3, res.Days)

	stored, err := f.reservations.ByID(ctx, booking.ReservationID(res.ID))
	require.NoError(t, err)
	assert.Empty(t, stored.PendingEvents())

	intervals, err := f.intervals.ActiveByVehicle(ctx, vehicles.VehicleID(f.vehicleID))
	require.NoError(t, err)
	require.Len(t, intervals, 1)
	assert.Equal(t, stored.IntervalID, intervals[0].ID)

	assert.Equal(t, 1, f.outbox.Pending())
}

func TestRequestReservationRejectsInactiveVehicle(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	vehicle, err := f.vehicles.ByID(ctx, vehicles.VehicleID(f.vehicleID))
	require.NoError(t, err)
	require.NoError(t, vehicle.Suspend("damage report", datetime(2, 0, 0)))

	_, err = f.handler.Handle(ctx, RequestReservationCommand{
		VehicleID: f.vehicleID,
		GuestID:   "guest-1",
		StartAt:   datetime(10, 10, 0),
		EndAt:     datetime(12, 10, 0),
	})
	assert.ErrorIs(t, err, ErrVehicleNotRentable)
}

func TestRequestReservationRejectsBlockedInteriorDay(t *testing.T) {
	f := newFixture(t, 0)
	f.block(t, "iv-1", datetime(12, 10, 0), datetime(14, 10, 0))

	_, err := f.handler.Handle(context.Background(), RequestReservationCommand{
		VehicleID: f.vehicleID,
		GuestID:   "guest-1",
		StartAt:   datetime(12, 9, 0),
		EndAt:     datetime(16, 9, 0),
	})
	assert.ErrorIs(t, err, ErrRangeUnavailable)
}

// An interval ending mid-day leaves its last day selectable, but the buffer
// still guards the hours right after the handover.
func TestRequestReservationBufferGuardsHandover(t *testing.T) {
	noBuffer := newFixture(t, 0)
	noBuffer.block(t, "iv-1", datetime(12, 10, 0), datetime(14, 10, 0))
	_, err := noBuffer.handler.Handle(context.Background(), RequestReservationCommand{
		VehicleID: noBuffer.vehicleID,
		GuestID:   "guest-1",
		StartAt:   datetime(14, 12, 0),
		EndAt:     datetime(16, 12, 0),
	})
	require.NoError(t, err)

	buffered := newFixture(t, 240)
	buffered.block(t, "iv-1", datetime(12, 10, 0), datetime(14, 10, 0))
	_, err = buffered.handler.Handle(context.Background(), RequestReservationCommand{
		VehicleID: buffered.vehicleID,
		GuestID:   "guest-1",
		StartAt:   datetime(14, 12, 0),
		EndAt:     datetime(16, 12, 0),
	})
	assert.ErrorIs(t, err, ErrRangeUnavailable)
}

func TestRequestReservationRejectsInvertedSpan(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.handler.Handle(context.Background(), RequestReservationCommand{
		VehicleID: f.vehicleID,
		GuestID:   "guest-1",
		StartAt:   datetime(12, 10, 0),
		EndAt:     datetime(10, 10, 0),
	})
	assert.Error(t, err)
}

func TestCancelReleasesInterval(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	res, err := f.handler.Handle(ctx, RequestReservationCommand{
		VehicleID: f.vehicleID,
		GuestID:   "guest-1",
		StartAt:   datetime(10, 10, 0),
		EndAt:     datetime(12, 10, 0),
	})
	require.NoError(t, err)

	cancel := &CancelReservationHandler{
		Reservations: f.reservations,
		Intervals:    f.intervals,
		Outbox:       f.outbox,
		Encoder:      outbox.JSONEventEncoder{},
		Now:          func() time.Time { return datetime(2, 0, 0) },
	}
	out, err := cancel.Handle(ctx, CancelReservationCommand{ReservationID: res.ID, Reason: "change of plans"})
	require.NoError(t, err)
	assert.Equal(t, string(booking.StateCancelled), out.State)

	intervals, err := f.intervals.ActiveByVehicle(ctx, vehicles.VehicleID(f.vehicleID))
	require.NoError(t, err)
	assert.Empty(t, intervals)
}

func TestHostConfirmAndDecline(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	host := &HostActionsHandler{
		Reservations: f.reservations,
		Intervals:    f.intervals,
		Outbox:       f.outbox,
		Encoder:      outbox.JSONEventEncoder{},
		Now:          func() time.Time { return datetime(2, 0, 0) },
	}

	first, err := f.handler.Handle(ctx, RequestReservationCommand{
		VehicleID: f.vehicleID,
		GuestID:   "guest-1",
		StartAt:   datetime(10, 10, 0),
		EndAt:     datetime(12, 10, 0),
	})
	require.NoError(t, err)
	confirmed, err := host.HandleConfirm(ctx, ConfirmReservationCommand{ReservationID: first.ID})
	require.NoError(t, err)
	assert.Equal(t, string(booking.StateConfirmed), confirmed.State)

	second, err := f.handler.Handle(ctx, RequestReservationCommand{
		VehicleID: f.vehicleID,
		GuestID:   "guest-2",
		StartAt:   datetime(20, 10, 0),
		EndAt:     datetime(22, 10, 0),
	})
	require.NoError(t, err)
	declined, err := host.HandleDecline(ctx, DeclineReservationCommand{ReservationID: second.ID, Reason: "maintenance"})
	require.NoError(t, err)
	assert.Equal(t, string(booking.StateDeclined), declined.State)

	// Declining releases the interval; the confirmed one stays blocked.
	intervals, err := f.intervals.ActiveByVehicle(ctx, vehicles.VehicleID(f.vehicleID))
	require.NoError(t, err)
	require.Len(t, intervals, 1)
	assert.Equal(t, datetime(10, 10, 0), intervals[0].Span.Start)
}
