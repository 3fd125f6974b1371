package dto

import (
	"time"

	"rentfleet/internal/domain/rates"
	"rentfleet/internal/domain/vehicles"
)

type Vehicle struct {
	ID            string    `json:"id"`
	HostID        string    `json:"host_id"`
	Title         string    `json:"title"`
	Make          string    `json:"make"`
	Model         string    `json:"model"`
	Year          int       `json:"year"`
	Seats         int       `json:"seats"`
	Transmission  string    `json:"transmission"`
	DailyRate     float64   `json:"daily_rate"`
	BufferMinutes int       `json:"buffer_minutes"`
	State         string    `json:"state"`
	CreatedAt     time.Time `json:"created_at"`
}

func MapVehicle(v *vehicles.Vehicle) Vehicle {
	if v == nil {
		return Vehicle{}
	}
	return Vehicle{
		ID:            string(v.ID),
		HostID:        string(v.Host),
		Title:         v.Title,
		Make:          v.Make,
		Model:         v.Model,
		Year:          v.Year,
		Seats:         v.Seats,
		Transmission:  v.Transmission,
		DailyRate:     v.DailyRate,
		BufferMinutes: v.BufferMinutes,
		State:         string(v.State),
		CreatedAt:     v.CreatedAt,
	}
}

type DiscountTier struct {
	MinDays         int     `json:"min_days"`
	DiscountPercent float64 `json:"discount_percent"`
}

type SeasonalRate struct {
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	AdjustmentPercent float64 `json:"adjustment_percent"`
}

type RateTable struct {
	VehicleID string         `json:"vehicle_id"`
	Tiers     []DiscountTier `json:"tiers"`
	Seasons   []SeasonalRate `json:"seasons"`
}

func MapRateTable(t rates.Table) RateTable {
	out := RateTable{VehicleID: string(t.VehicleID)}
	for _, tier := range t.Tiers {
		out.Tiers = append(out.Tiers, DiscountTier{MinDays: tier.MinDays, DiscountPercent: tier.DiscountPercent})
	}
	for _, season := range t.Seasons {
		out.Seasons = append(out.Seasons, SeasonalRate{
			StartDate:         season.StartDate.Format("2006-01-02"),
			EndDate:           season.EndDate.Format("2006-01-02"),
			AdjustmentPercent: season.AdjustmentPercent,
		})
	}
	return out
}
