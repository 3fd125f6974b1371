package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentfleet/internal/app/commands"
	availabilityapp "rentfleet/internal/app/handlers/availability"
	pricingapp "rentfleet/internal/app/handlers/pricing"
	reservationapp "rentfleet/internal/app/handlers/reservations"
	vehicleapp "rentfleet/internal/app/handlers/vehicles"
	appoutbox "rentfleet/internal/app/outbox"
	"rentfleet/internal/app/queries"
	"rentfleet/internal/domain/booking"
	"rentfleet/internal/domain/rates"
	"rentfleet/internal/domain/schedule"
	"rentfleet/internal/domain/vehicles"
	"rentfleet/internal/infra/broker/kafka"
	"rentfleet/internal/infra/config"
	mongodb "rentfleet/internal/infra/db/mongo"
	ginserver "rentfleet/internal/infra/http/gin"
	"rentfleet/internal/infra/obs"
	infraoutbox "rentfleet/internal/infra/outbox"
	"rentfleet/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fallback := obs.NewLogger("dev")
		fallback.Warn("using fallback configuration", "error", err)
		cfg = config.Config{Env: "dev", HTTPAddr: ":8080", StorageMode: "memory"}
	}
	logger := obs.NewLogger(cfg.Env)

	stores, ready, err := buildStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("storage init failed", "error", err)
		os.Exit(1)
	}

	handlers := buildHandlers(cfg, stores)
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: ready}, handlers)

	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			logger.Error("kafka producer init failed", "error", err)
			os.Exit(1)
		}
		defer producer.Close()
		worker := &infraoutbox.Worker{
			Store:       stores.outboxStore,
			Producer:    producer,
			Log:         logger,
			Interval:    cfg.OutboxPollInterval,
			Retry:       cfg.OutboxRetryBackoff,
			TopicPrefix: cfg.KafkaTopicPrefix,
		}
		go func() {
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
		logger.Info("outbox worker started", "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka not configured, events stay in the outbox")
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type outboxStore interface {
	appoutbox.Outbox
	infraoutbox.Store
}

type stores struct {
	vehicles     vehicles.Repository
	intervals    schedule.Repository
	rates        rates.Repository
	reservations booking.Repository
	outboxStore  outboxStore
}

func buildStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (stores, func() error, error) {
	switch cfg.StorageMode {
	case "mongo":
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return stores{}, nil, err
		}
		if err := client.Ping(ctx); err != nil {
			return stores{}, nil, err
		}
		logger.Info("mongo connected", "database", cfg.MongoDB)
		return stores{
			vehicles:     mongodb.NewVehicleRepository(client.DB),
			intervals:    mongodb.NewIntervalRepository(client.DB),
			rates:        mongodb.NewRateRepository(client.DB),
			reservations: mongodb.NewReservationRepository(client.DB),
			outboxStore:  mongodb.NewOutboxStore(client.DB),
		}, func() error { return client.Ping(context.Background()) }, nil
	default:
		return stores{
			vehicles:     memory.NewVehicleRepository(),
			intervals:    memory.NewIntervalRepository(),
			rates:        memory.NewRateRepository(),
			reservations: memory.NewReservationRepository(),
			outboxStore:  memory.NewOutbox(),
		}, func() error { return nil }, nil
	}
}

func buildHandlers(cfg config.Config, s stores) ginserver.Handlers {
	encoder := appoutbox.JSONEventEncoder{}

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, availabilityapp.GetCalendarQuery{}.Key(), &availabilityapp.GetCalendarHandler{
		Vehicles:  s.vehicles,
		Intervals: s.intervals,
	})
	queries.RegisterHandler(queryBus, availabilityapp.CheckRangeQuery{}.Key(), &availabilityapp.CheckRangeHandler{
		Vehicles:  s.vehicles,
		Intervals: s.intervals,
	})
	queries.RegisterHandler(queryBus, pricingapp.GetQuoteQuery{}.Key(), &pricingapp.GetQuoteHandler{
		Vehicles: s.vehicles,
		Rates:    s.rates,
	})

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, vehicleapp.RegisterVehicleCommand{}.Key(), &vehicleapp.RegisterVehicleHandler{
		Vehicles:             s.vehicles,
		Outbox:               s.outboxStore,
		Encoder:              encoder,
		DefaultBufferMinutes: cfg.DefaultBufferMinutes,
	})
	commands.RegisterHandler(commandBus, vehicleapp.SetRatesCommand{}.Key(), &vehicleapp.SetRatesHandler{
		Vehicles: s.vehicles,
		Rates:    s.rates,
	})
	commands.RegisterHandler(commandBus, reservationapp.RequestReservationCommand{}.Key(), &reservationapp.RequestReservationHandler{
		Vehicles:     s.vehicles,
		Intervals:    s.intervals,
		Rates:        s.rates,
		Reservations: s.reservations,
		Outbox:       s.outboxStore,
		Encoder:      encoder,
	})
	commands.RegisterHandler(commandBus, reservationapp.CancelReservationCommand{}.Key(), &reservationapp.CancelReservationHandler{
		Reservations: s.reservations,
		Intervals:    s.intervals,
		Outbox:       s.outboxStore,
		Encoder:      encoder,
	})
	hostActions := &reservationapp.HostActionsHandler{
		Reservations: s.reservations,
		Intervals:    s.intervals,
		Outbox:       s.outboxStore,
		Encoder:      encoder,
	}
	commands.RegisterHandler(commandBus, reservationapp.ConfirmReservationCommand{}.Key(), hostActions.ConfirmHandler())
	commands.RegisterHandler(commandBus, reservationapp.DeclineReservationCommand{}.Key(), hostActions.DeclineHandler())

	return ginserver.Handlers{
		Availability: ginserver.AvailabilityHandler{Queries: queryBus},
		Pricing:      ginserver.PricingHandler{Queries: queryBus},
		Vehicle:      ginserver.VehicleHandler{Commands: commandBus},
		Reservation:  ginserver.ReservationHandler{Commands: commandBus},
	}
}
