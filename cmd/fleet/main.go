package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/piresc/shuttlefleet/internal/pkg/amqp"
	"github.com/piresc/shuttlefleet/internal/pkg/config"
	"github.com/piresc/shuttlefleet/internal/pkg/constants"
	"github.com/piresc/shuttlefleet/internal/pkg/database"
	"github.com/piresc/shuttlefleet/internal/pkg/health"
	httpclient "github.com/piresc/shuttlefleet/internal/pkg/http"
	"github.com/piresc/shuttlefleet/internal/pkg/logger"
	"github.com/piresc/shuttlefleet/internal/pkg/middleware"
	"github.com/piresc/shuttlefleet/internal/pkg/models"
	"github.com/piresc/shuttlefleet/internal/pkg/nats"
	nrpkg "github.com/piresc/shuttlefleet/internal/pkg/newrelic"
	"github.com/piresc/shuttlefleet/internal/pkg/nsq"
	"github.com/piresc/shuttlefleet/internal/pkg/retry"
	"github.com/piresc/shuttlefleet/internal/pkg/scheduler"
	"github.com/piresc/shuttlefleet/internal/pkg/server"
	wspkg "github.com/piresc/shuttlefleet/internal/pkg/websocket"
	"github.com/piresc/shuttlefleet/services/fleet"
	"github.com/piresc/shuttlefleet/services/fleet/gateway"
	"github.com/piresc/shuttlefleet/services/fleet/handler"
	"github.com/piresc/shuttlefleet/services/fleet/repository"
	"github.com/piresc/shuttlefleet/services/fleet/simulation"
	"github.com/piresc/shuttlefleet/services/fleet/syncer"
	"github.com/piresc/shuttlefleet/services/fleet/usecase"
)

func main() {
	appName := "fleet-service"
	configPath := "config/fleet.env"
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
		logger.String("store", configs.Store.Backend),
		logger.String("broker", configs.Events.Broker),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var closers []closer
	checkers := map[string]health.Checker{}

	// Entity store
	store, storeClosers, err := openStore(ctx, configs, checkers)
	if err != nil {
		zapLogger.Fatal("Failed to open entity store", logger.Err(err))
	}
	closers = append(closers, storeClosers...)

	seed := configs.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	if configs.Store.SeedDemoData {
		if err := simulation.SeedDemoFleet(ctx, store, rng); err != nil {
			zapLogger.Fatal("Failed to seed demo fleet", logger.Err(err))
		}
	}

	// Live location tracker (optional)
	var (
		locations   fleet.LocationRepo
		redisClient *redis.Client
	)
	if configs.Redis.Enabled {
		rc, err := database.NewRedisClient(configs.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
		}
		locations = repository.NewLocationRepo(rc)
		redisClient = rc.Client
		checkers["redis"] = rc
		closers = append(closers, closer{"redis", func(context.Context) error { return rc.Close() }})
	}

	// Event broker
	broker, err := connectBroker(ctx, configs, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to event broker", logger.Err(err))
	}
	if broker != nil {
		closers = append(closers, closer{"broker", func(context.Context) error { return broker.Close() }})
	}
	eventGW := gateway.NewEventGateway(broker, configs.Events.Tenant)

	// Execution context shared by every timer and mutating request
	loop := scheduler.NewLoop()
	go loop.Run(ctx)
	closers = append(closers, closer{"scheduler", func(context.Context) error {
		loop.Close()
		return nil
	}})

	lifecycle := usecase.NewLifecycle(configs, store, eventGW, loop.Now, rng)

	syncRetrier := retry.New(retry.Config{
		MaxRetries: configs.Simulation.SyncMaxRetries,
		BaseDelay:  configs.Simulation.SyncBaseDelay,
		MaxDelay:   30 * time.Second,
		Multiplier: 2.0,
	}, zapLogger)
	engine := syncer.NewEngine(configs, store, loop, syncRetrier)

	orchestrator := simulation.NewOrchestrator(simulation.Deps{
		Config:    configs,
		Scheduler: loop,
		Store:     store,
		Lifecycle: lifecycle,
		Engine:    engine,
		Locations: locations,
		Selector:  usecase.NewVehicleSelector(configs.Simulation.AssignmentPolicy, rng),
		Ratings:   usecase.NewRandomRatingGenerator(rng),
		Rides:     simulation.NewRideGenerator(rng),
		Rand:      rng,
	})
	if err := orchestrator.Open(ctx); err != nil {
		zapLogger.Fatal("Failed to open orchestrator", logger.Err(err))
	}
	closers = append(closers, closer{"orchestrator", func(ctx context.Context) error {
		orchestrator.Close(ctx)
		return nil
	}})
	checkers["snapshot"] = health.CheckerFunc(func(context.Context) error {
		if state := orchestrator.State(); state.NetworkError {
			return errors.New(state.LastError)
		}
		return nil
	})

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	if nrApp != nil {
		e.Use(nrecho.Middleware(nrApp))
	}
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, appName, checkers)

	wsManager := wspkg.NewManager()
	fleetHandler := handler.NewHandler(orchestrator, wsManager, configs)
	fleetHandler.RegisterRoutes(e, redisClient)

	streamCtx, stopStream := context.WithCancel(ctx)
	go fleetHandler.Stream().Run(streamCtx)
	closers = append(closers, closer{"stream", func(context.Context) error {
		stopStream()
		return nil
	}})

	srv := server.NewGracefulServer(e, configs.Server.Port)
	if nrApp != nil {
		// registered first so it runs last
		srv.OnShutdown("newrelic", func(context.Context) error {
			nrApp.Shutdown(10 * time.Second)
			return nil
		})
	}
	for _, c := range closers {
		srv.OnShutdown(c.name, c.fn)
	}

	if err := srv.Run(ctx); err != nil {
		zapLogger.Error("Server stopped with error", logger.Err(err))
	}

	zapLogger.Info("Server exiting gracefully")
	_ = zapLogger.Sync()
}

type closer struct {
	name string
	fn   server.ShutdownFunc
}

// openStore connects the configured entity store backend
func openStore(ctx context.Context, configs *models.Config, checkers map[string]health.Checker) (*fleet.Store, []closer, error) {
	switch configs.Store.Backend {
	case constants.StoreMemory, "":
		return repository.NewMemoryStore(), nil, nil

	case constants.StorePostgres:
		pg, err := database.NewPostgresClient(configs.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := repository.Migrate(ctx, pg.GetDB()); err != nil {
			pg.Close()
			return nil, nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
		checkers["postgres"] = pg
		return repository.NewPostgresStore(pg.GetDB()), []closer{{"postgres", func(context.Context) error { return pg.Close() }}}, nil

	case constants.StoreRemote:
		if configs.Store.RemoteURL == "" {
			return nil, nil, errors.New("STORE_REMOTE_URL is required for the remote store")
		}
		client := httpclient.NewAPIKeyClient(httpclient.Config{
			ServiceName: "entity-store",
			BaseURL:     configs.Store.RemoteURL,
			APIKey:      configs.Store.RemoteAPIKey,
			Timeout:     configs.Store.RemoteTimeout,
		})
		return repository.NewRemoteStore(client), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", configs.Store.Backend)
	}
}

// connectBroker dials the configured event broker with retries. "none" returns a nil broker.
func connectBroker(ctx context.Context, configs *models.Config, zl *logger.ZapLogger) (fleet.Broker, error) {
	var dial func() (fleet.Broker, error)
	switch configs.Events.Broker {
	case constants.BrokerNone, "":
		logger.Info("Event delivery disabled")
		return nil, nil
	case constants.BrokerNATS:
		dial = func() (fleet.Broker, error) { return nats.NewClient(configs.NATS.URL) }
	case constants.BrokerNSQ:
		dial = func() (fleet.Broker, error) { return nsq.NewProducer(configs.NSQ.Address) }
	case constants.BrokerAMQP:
		dial = func() (fleet.Broker, error) { return amqp.NewPublisher(configs.AMQP.URL, configs.AMQP.Exchange) }
	default:
		return nil, fmt.Errorf("unknown event broker %q", configs.Events.Broker)
	}

	var broker fleet.Broker
	err := retry.NewWithDefaults(zl).Execute(ctx, func(context.Context) error {
		b, err := dial()
		if err != nil {
			return err
		}
		broker = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Event broker connected", logger.String("broker", configs.Events.Broker))
	return broker, nil
}
