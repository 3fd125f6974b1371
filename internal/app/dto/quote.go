package dto

import (
	"time"

	"rentfleet/internal/domain/rates"
)

type Quote struct {
	VehicleID       string    `json:"vehicle_id"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	Total           float64   `json:"total"`
	Days            int       `json:"days"`
	Hours           int       `json:"hours"`
	Minutes         int       `json:"minutes"`
	PricePerDay     float64   `json:"price_per_day"`
	AvgPerDay       float64   `json:"avg_per_day"`
	DiscountApplied float64   `json:"discount_applied"`
}

func MapQuote(vehicleID string, startAt, endAt time.Time, q rates.Quote) Quote {
	return Quote{
		VehicleID:       vehicleID,
		StartAt:         startAt,
		EndAt:           endAt,
		Total:           q.Total,
		Days:            q.Days,
		Hours:           q.Hours,
		Minutes:         q.Minutes,
		PricePerDay:     q.PricePerDay,
		AvgPerDay:       q.AvgPerDay,
		DiscountApplied: q.DiscountApplied,
	}
}
