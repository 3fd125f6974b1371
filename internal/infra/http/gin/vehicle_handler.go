package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"rentfleet/internal/app/commands"
	"rentfleet/internal/app/dto"
	vehicleapp "rentfleet/internal/app/handlers/vehicles"
	"rentfleet/internal/domain/vehicles"
)

type VehicleHandler struct {
	Commands commands.Bus
}

type registerVehicleRequest struct {
	HostID        string  `json:"host_id" binding:"required"`
	Title         string  `json:"title" binding:"required"`
	Make          string  `json:"make"`
	Model         string  `json:"model"`
	Year          int     `json:"year"`
	Seats         int     `json:"seats"`
	Transmission  string  `json:"transmission"`
	DailyRate     float64 `json:"daily_rate"`
	BufferMinutes int     `json:"buffer_minutes"`
}

func (h VehicleHandler) Register(c *gin.Context) {
	var req registerVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := vehicleapp.RegisterVehicleCommand{
		HostID:        req.HostID,
		Title:         req.Title,
		Make:          req.Make,
		Model:         req.Model,
		Year:          req.Year,
		Seats:         req.Seats,
		Transmission:  req.Transmission,
		DailyRate:     req.DailyRate,
		BufferMinutes: req.BufferMinutes,
	}
	result, err := commands.Dispatch[vehicleapp.RegisterVehicleCommand, dto.Vehicle](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		if isVehicleValidation(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type setRatesRequest struct {
	Tiers   []dto.DiscountTier `json:"tiers"`
	Seasons []dto.SeasonalRate `json:"seasons"`
}

func (h VehicleHandler) SetRates(c *gin.Context) {
	var req setRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := vehicleapp.SetRatesCommand{
		VehicleID: c.Param("id"),
		Tiers:     req.Tiers,
		Seasons:   req.Seasons,
	}
	result, err := commands.Dispatch[vehicleapp.SetRatesCommand, dto.RateTable](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func isVehicleValidation(err error) bool {
	for _, target := range []error{
		vehicles.ErrTitleRequired,
		vehicles.ErrDailyRate,
		vehicles.ErrBufferNegative,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

var _ VehicleHTTP = VehicleHandler{}
