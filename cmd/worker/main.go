package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/roomrates/pkg/app"
	"github.com/ghuser/roomrates/pkg/cache"
	"github.com/ghuser/roomrates/pkg/config"
	"github.com/ghuser/roomrates/pkg/database"
	"github.com/ghuser/roomrates/pkg/events"
	"github.com/ghuser/roomrates/pkg/logger"
	"github.com/ghuser/roomrates/pkg/telemetry"
	"github.com/ghuser/roomrates/services/pricing/application/projection"
	pricingevents "github.com/ghuser/roomrates/services/pricing/domain/events"
	"github.com/ghuser/roomrates/services/pricing/domain/strategy"
	"github.com/ghuser/roomrates/services/pricing/infrastructure/persistence/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer db.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, db.DB(), log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Db:       db,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	builder := projection.NewBuilder(
		postgres.NewPriceViewRepository(a.Db),
		strategy.NewDefaultRegistry(),
		cache.NewPriceCache(a.Redis),
		a.Logger,
	)

	if err := subscribe(ctx, a, pricingevents.TopicPriceChanged, builder.Handler()); err != nil {
		return err
	}
	if err := subscribe(ctx, a, pricingevents.TopicRateCreated, handleRateCreated(a)); err != nil {
		return err
	}

	a.Logger.Info("event subscribers registered",
		"topics", []string{pricingevents.TopicPriceChanged, pricingevents.TopicRateCreated})
	return nil
}

// subscribe registers handler on topic and drains subscriber errors in the
// background so the error channel never blocks.
func subscribe(ctx context.Context, a *app.Application, topic string, handler func(context.Context, *message.Message) error) error {
	errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
	if err != nil {
		return err
	}
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
		}
	}()
	return nil
}

// handleRateCreated records rate creations. Rates start with no prices, so
// there is nothing to project yet; the read model picks the rate up when its
// first price change arrives.
func handleRateCreated(a *app.Application) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt pricingevents.RateCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}
		a.Logger.InfoContext(ctx, "rate created",
			"rate_id", evt.RateID,
			"room_type_id", evt.RoomTypeID,
			"hotel_id", evt.HotelID,
			"active", evt.Active,
		)
		return nil
	}
}
