package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	reservationapp "rentfleet/internal/app/handlers/reservations"
	"rentfleet/internal/domain/booking"
	"rentfleet/internal/domain/rates"
	"rentfleet/internal/domain/shared/timerange"
	"rentfleet/internal/domain/vehicles"
)

// respondError translates application errors into HTTP statuses. Anything not
// recognized as a caller mistake is reported as a 500 without leaking detail.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, vehicles.ErrNotFound), errors.Is(err, booking.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, reservationapp.ErrRangeUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, reservationapp.ErrVehicleNotRentable),
		errors.Is(err, booking.ErrInvalidState),
		errors.Is(err, vehicles.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, timerange.ErrInvalidRange),
		errors.Is(err, rates.ErrInvalidPeriod),
		errors.Is(err, rates.ErrTierMinDays),
		errors.Is(err, rates.ErrDuplicateTier),
		errors.Is(err, rates.ErrSeasonRange),
		errors.Is(err, rates.ErrSeasonOverlap):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
