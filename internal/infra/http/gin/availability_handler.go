package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"rentfleet/internal/app/dto"
	availabilityapp "rentfleet/internal/app/handlers/availability"
	"rentfleet/internal/app/queries"
)

const dayLayout = "2006-01-02"

type AvailabilityHandler struct {
	Queries queries.Bus
}

func (h AvailabilityHandler) Calendar(c *gin.Context) {
	query := availabilityapp.GetCalendarQuery{VehicleID: c.Param("id")}
	result, err := queries.Ask[availabilityapp.GetCalendarQuery, dto.Calendar](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AvailabilityHandler) CheckRange(c *gin.Context) {
	startDay, err := time.Parse(dayLayout, c.Query("start_day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_day must be YYYY-MM-DD"})
		return
	}
	endDay, err := time.Parse(dayLayout, c.Query("end_day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_day must be YYYY-MM-DD"})
		return
	}
	query := availabilityapp.CheckRangeQuery{
		VehicleID:      c.Param("id"),
		StartDay:       startDay,
		EndDay:         endDay,
		EditIntervalID: c.Query("edit_interval_id"),
	}
	result, err := queries.Ask[availabilityapp.CheckRangeQuery, dto.RangeCheck](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ AvailabilityHTTP = AvailabilityHandler{}
