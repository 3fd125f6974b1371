package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"rentfleet/internal/infra/config"
	"rentfleet/internal/infra/obs"
)

type AvailabilityHTTP interface {
	Calendar(c *gin.Context)
	CheckRange(c *gin.Context)
}

type PricingHTTP interface {
	Quote(c *gin.Context)
}

type VehicleHTTP interface {
	Register(c *gin.Context)
	SetRates(c *gin.Context)
}

type ReservationHTTP interface {
	Request(c *gin.Context)
	Cancel(c *gin.Context)
	Confirm(c *gin.Context)
	Decline(c *gin.Context)
}

type Handlers struct {
	Availability AvailabilityHTTP
	Pricing      PricingHTTP
	Vehicle      VehicleHTTP
	Reservation  ReservationHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Vehicle != nil {
		api.POST("/vehicles", h.Vehicle.Register)
		api.PUT("/vehicles/:id/rates", h.Vehicle.SetRates)
	}
	if h.Availability != nil {
		api.GET("/vehicles/:id/calendar", h.Availability.Calendar)
		api.GET("/vehicles/:id/availability/check", h.Availability.CheckRange)
	}
	if h.Pricing != nil {
		api.GET("/vehicles/:id/quote", h.Pricing.Quote)
	}
	if h.Reservation != nil {
		api.POST("/reservations", h.Reservation.Request)
		api.POST("/reservations/:id/cancel", h.Reservation.Cancel)
		api.POST("/reservations/:id/confirm", h.Reservation.Confirm)
		api.POST("/reservations/:id/decline", h.Reservation.Decline)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug", "dev":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
