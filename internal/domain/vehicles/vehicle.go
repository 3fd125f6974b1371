package vehicles

import (
	"context"
	"errors"
	"strings"
	"time"

	"rentfleet/internal/domain/shared/events"
)

var (
	ErrTitleRequired  = errors.New("vehicles: title is required")
	ErrDailyRate      = errors.New("vehicles: daily rate must be positive")
	ErrBufferNegative = errors.New("vehicles: buffer minutes must be non-negative")
	ErrInvalidState   = errors.New("vehicles: invalid state transition")
	ErrNotFound       = errors.New("vehicles: not found")
)

type VehicleID string
type HostID string

type VehicleState string

const (
	VehicleDraft     VehicleState = "DRAFT"
	VehicleActive    VehicleState = "ACTIVE"
	VehicleSuspended VehicleState = "SUSPENDED"
)

// Vehicle is the host-managed rental unit. BufferMinutes is the handover
// padding applied around every reservation when merging the calendar.
type Vehicle struct {
	ID            VehicleID
	Host          HostID
	Title         string
	Make          string
	Model         string
	Year          int
	Seats         int
	Transmission  string
	DailyRate     float64
	BufferMinutes int
	State         VehicleState
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	events.Recorder
}

type Repository interface {
	ByID(ctx context.Context, id VehicleID) (*Vehicle, error)
	Save(ctx context.Context, vehicle *Vehicle) error
}

type CreateVehicleParams struct {
	ID            VehicleID
	Host          HostID
	Title         string
	Make          string
	Model         string
	Year          int
	Seats         int
	Transmission  string
	DailyRate     float64
	BufferMinutes int
	Now           time.Time
}

func NewVehicle(params CreateVehicleParams) (*Vehicle, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrTitleRequired
	}
	if params.DailyRate <= 0 {
		return nil, ErrDailyRate
	}
	if params.BufferMinutes < 0 {
		return nil, ErrBufferNegative
	}
	now := params.Now.UTC()
	v := &Vehicle{
		ID:            params.ID,
		Host:          params.Host,
		Title:         strings.TrimSpace(params.Title),
		Make:          params.Make,
		Model:         params.Model,
		Year:          params.Year,
		Seats:         params.Seats,
		Transmission:  params.Transmission,
		DailyRate:     params.DailyRate,
		BufferMinutes: params.BufferMinutes,
		State:         VehicleDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	v.Record(VehicleRegisteredEvent{VehicleID: v.ID, Host: v.Host, At: now})
	return v, nil
}

func (v *Vehicle) Activate(now time.Time) error {
	if v.State != VehicleDraft && v.State != VehicleSuspended {
		return ErrInvalidState
	}
	v.State = VehicleActive
	v.UpdatedAt = now.UTC()
	v.Record(VehicleActivatedEvent{VehicleID: v.ID, At: v.UpdatedAt})
	return nil
}

func (v *Vehicle) Suspend(reason string, now time.Time) error {
	if v.State != VehicleActive {
		return ErrInvalidState
	}
	v.State = VehicleSuspended
	v.UpdatedAt = now.UTC()
	v.Record(VehicleSuspendedEvent{VehicleID: v.ID, Reason: reason, At: v.UpdatedAt})
	return nil
}

// SetDailyRate changes the base rate applied to future quotes; quotes already
// issued keep their snapshot.
func (v *Vehicle) SetDailyRate(rate float64, now time.Time) error {
	if rate <= 0 {
		return ErrDailyRate
	}
	v.DailyRate = rate
	v.UpdatedAt = now.UTC()
	v.Record(VehicleRateChangedEvent{VehicleID: v.ID, DailyRate: rate, At: v.UpdatedAt})
	return nil
}

func (v *Vehicle) SetBufferMinutes(minutes int, now time.Time) error {
	if minutes < 0 {
		return ErrBufferNegative
	}
	v.BufferMinutes = minutes
	v.UpdatedAt = now.UTC()
	return nil
}
