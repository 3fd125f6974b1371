package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"rentfleet/internal/app/commands"
	"rentfleet/internal/app/dto"
	reservationapp "rentfleet/internal/app/handlers/reservations"
)

type ReservationHandler struct {
	Commands commands.Bus
}

type requestReservationRequest struct {
	VehicleID string    `json:"vehicle_id" binding:"required"`
	GuestID   string    `json:"guest_id" binding:"required"`
	StartAt   time.Time `json:"start_at" binding:"required"`
	EndAt     time.Time `json:"end_at" binding:"required"`
}

func (h ReservationHandler) Request(c *gin.Context) {
	var req requestReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := reservationapp.RequestReservationCommand{
		VehicleID: req.VehicleID,
		GuestID:   req.GuestID,
		StartAt:   req.StartAt,
		EndAt:     req.EndAt,
	}
	result, err := commands.Dispatch[reservationapp.RequestReservationCommand, dto.Reservation](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, result)
}

type cancelReservationRequest struct {
	Reason string `json:"reason"`
}

func (h ReservationHandler) Cancel(c *gin.Context) {
	var req cancelReservationRequest
	_ = c.ShouldBindJSON(&req)
	cmd := reservationapp.CancelReservationCommand{
		ReservationID: c.Param("id"),
		Reason:        req.Reason,
	}
	result, err := commands.Dispatch[reservationapp.CancelReservationCommand, dto.Reservation](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ReservationHandler) Confirm(c *gin.Context) {
	cmd := reservationapp.ConfirmReservationCommand{ReservationID: c.Param("id")}
	result, err := commands.Dispatch[reservationapp.ConfirmReservationCommand, dto.Reservation](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ReservationHandler) Decline(c *gin.Context) {
	var req cancelReservationRequest
	_ = c.ShouldBindJSON(&req)
	cmd := reservationapp.DeclineReservationCommand{
		ReservationID: c.Param("id"),
		Reason:        req.Reason,
	}
	result, err := commands.Dispatch[reservationapp.DeclineReservationCommand, dto.Reservation](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ ReservationHTTP = ReservationHandler{}
