package memory

import (
	"context"
	"sync"

	"rentfleet/internal/domain/booking"
	"rentfleet/internal/domain/rates"
	"rentfleet/internal/domain/schedule"
	"rentfleet/internal/domain/vehicles"
)

// VehicleRepository is an in-memory implementation for local runs and tests.
type VehicleRepository struct {
	mu    sync.RWMutex
	items map[vehicles.VehicleID]*vehicles.Vehicle
}

func NewVehicleRepository() *VehicleRepository {
	return &VehicleRepository{items: make(map[vehicles.VehicleID]*vehicles.Vehicle)}
}

func (r *VehicleRepository) ByID(ctx context.Context, id vehicles.VehicleID) (*vehicles.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	vehicle, ok := r.items[id]
	if !ok {
		return nil, vehicles.ErrNotFound
	}
	return vehicle, nil
}

func (r *VehicleRepository) Save(ctx context.Context, vehicle *vehicles.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	vehicle.Version++
	r.items[vehicle.ID] = vehicle
	return nil
}

// IntervalRepository keeps calendar intervals in memory, keyed by vehicle.
type IntervalRepository struct {
	mu    sync.RWMutex
	items map[schedule.IntervalID]schedule.Interval
}

func NewIntervalRepository() *IntervalRepository {
	return &IntervalRepository{items: make(map[schedule.IntervalID]schedule.Interval)}
}

func (r *IntervalRepository) ActiveByVehicle(ctx context.Context, id vehicles.VehicleID) ([]schedule.Interval, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []schedule.Interval
	for _, iv := range r.items {
		if iv.VehicleID == id && iv.Active {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (r *IntervalRepository) Save(ctx context.Context, interval schedule.Interval) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[interval.ID] = interval
	return nil
}

func (r *IntervalRepository) Deactivate(ctx context.Context, id schedule.IntervalID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	iv, ok := r.items[id]
	if !ok {
		return nil
	}
	iv.Active = false
	r.items[id] = iv
	return nil
}

// RateRepository stores one rate table per vehicle; a vehicle with no table
// yet prices at its bare daily rate.
type RateRepository struct {
	mu     sync.RWMutex
	tables map[vehicles.VehicleID]rates.Table
}

func NewRateRepository() *RateRepository {
	return &RateRepository{tables: make(map[vehicles.VehicleID]rates.Table)}
}

func (r *RateRepository) ByVehicle(ctx context.Context, id vehicles.VehicleID) (rates.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if table, ok := r.tables[id]; ok {
		return table, nil
	}
	return rates.Table{VehicleID: id}, nil
}

func (r *RateRepository) Save(ctx context.Context, table rates.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	table.Version++
	r.tables[table.VehicleID] = table
	return nil
}

// ReservationRepository stores reservations in memory.
type ReservationRepository struct {
	mu    sync.RWMutex
	items map[booking.ReservationID]*booking.Reservation
}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{items: make(map[booking.ReservationID]*booking.Reservation)}
}

func (r *ReservationRepository) ByID(ctx context.Context, id booking.ReservationID) (*booking.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reservation, ok := r.items[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	return reservation, nil
}

func (r *ReservationRepository) Save(ctx context.Context, reservation *booking.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reservation.Version++
	r.items[reservation.ID] = reservation
	return nil
}

func (r *ReservationRepository) ListByGuest(ctx context.Context, guestID string) ([]*booking.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*booking.Reservation
	for _, reservation := range r.items {
		if reservation.GuestID == guestID {
			out = append(out, reservation)
		}
	}
	return out, nil
}
