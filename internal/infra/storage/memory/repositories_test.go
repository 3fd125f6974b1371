package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentfleet/internal/domain/booking"
	"rentfleet/internal/domain/rates"
	"rentfleet/internal/domain/schedule"
	"rentfleet/internal/domain/shared/timerange"
	"rentfleet/internal/domain/vehicles"
)

func datetime(day, hour int) time.Time {
	return time.Date(2024, time.June, day, hour, 0, 0, 0, time.UTC)
}

func TestVehicleRepositoryRoundTrip(t *testing.T) {
	repo := NewVehicleRepository()
	ctx := context.Background()

	_, err := repo.ByID(ctx, "missing")
	assert.ErrorIs(t, err, vehicles.ErrNotFound)

	vehicle, err := vehicles.NewVehicle(vehicles.CreateVehicleParams{
		ID:        "veh-1",
		Host:      "host-1",
		Title:     "Cargo van",
		DailyRate: 90,
		Now:       datetime(1, 0),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, vehicle))
	assert.EqualValues(t, 1, vehicle.Version)

	got, err := repo.ByID(ctx, "veh-1")
	require.NoError(t, err)
	assert.Equal(t, "Cargo van", got.Title)
}

func TestIntervalRepositoryFiltersInactive(t *testing.T) {
	repo := NewIntervalRepository()
	ctx := context.Background()

	for _, id := range []string{"iv-1", "iv-2"} {
		iv, err := schedule.NewInterval(schedule.NewIntervalParams{
			ID:        schedule.IntervalID(id),
			VehicleID: "veh-1",
			Kind:      schedule.KindBlock,
			StartAt:   datetime(10, 0),
			EndAt:     datetime(12, 0),
		})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, iv))
	}

	require.NoError(t, repo.Deactivate(ctx, "iv-1"))
	require.NoError(t, repo.Deactivate(ctx, "iv-9")) // unknown ids are a no-op

	active, err := repo.ActiveByVehicle(ctx, "veh-1")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.EqualValues(t, "iv-2", active[0].ID)
}

func TestRateRepositoryDefaultsToEmptyTable(t *testing.T) {
	repo := NewRateRepository()
	ctx := context.Background()

	table, err := repo.ByVehicle(ctx, "veh-1")
	require.NoError(t, err)
	assert.Empty(t, table.Tiers)
	assert.Empty(t, table.Seasons)

	table.Tiers = []rates.DiscountTier{{MinDays: 7, DiscountPercent: 10}}
	require.NoError(t, repo.Save(ctx, table))

	got, err := repo.ByVehicle(ctx, "veh-1")
	require.NoError(t, err)
	require.Len(t, got.Tiers, 1)
	assert.EqualValues(t, 1, got.Version)
}

func TestReservationRepositoryListByGuest(t *testing.T) {
	repo := NewReservationRepository()
	ctx := context.Background()

	span := timerange.Must(datetime(10, 10), datetime(12, 10))
	for i, guest := range []string{"guest-1", "guest-1", "guest-2"} {
		res, err := booking.NewReservation(booking.CreateParams{
			ID:         booking.ReservationID([]string{"r-1", "r-2", "r-3"}[i]),
			VehicleID:  "veh-1",
			GuestID:    guest,
			Span:       span,
			IntervalID: "iv-1",
			Now:        datetime(1, 0),
		})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, res))
	}

	mine, err := repo.ListByGuest(ctx, "guest-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	none, err := repo.ListByGuest(ctx, "guest-9")
	require.NoError(t, err)
	assert.Empty(t, none)
}
