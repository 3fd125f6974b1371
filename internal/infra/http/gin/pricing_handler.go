package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"rentfleet/internal/app/dto"
	pricingapp "rentfleet/internal/app/handlers/pricing"
	"rentfleet/internal/app/queries"
)

type PricingHandler struct {
	Queries queries.Bus
}

func (h PricingHandler) Quote(c *gin.Context) {
	startAt, err := time.Parse(time.RFC3339, c.Query("start_at"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_at must be RFC3339"})
		return
	}
	endAt, err := time.Parse(time.RFC3339, c.Query("end_at"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_at must be RFC3339"})
		return
	}
	query := pricingapp.GetQuoteQuery{VehicleID: c.Param("id"), StartAt: startAt, EndAt: endAt}
	result, err := queries.Ask[pricingapp.GetQuoteQuery, dto.Quote](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ PricingHTTP = PricingHandler{}
