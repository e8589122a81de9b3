package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/records-service/internal/api/http"
	"github.com/spec-kit/records-service/internal/api/http/handlers"
	"github.com/spec-kit/records-service/internal/cache"
	"github.com/spec-kit/records-service/internal/config"
	"github.com/spec-kit/records-service/internal/events"
	"github.com/spec-kit/records-service/internal/observability"
	"github.com/spec-kit/records-service/internal/persistence"
	"github.com/spec-kit/records-service/internal/repository"
	"github.com/spec-kit/records-service/internal/service"
	"github.com/spec-kit/records-service/internal/web"
	"github.com/spec-kit/records-service/internal/worker"
	"github.com/spec-kit/records-service/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(cfg.Postgres.DSN, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	var (
		employeeRepo repository.EmployeeRepository
		listingRepo  repository.ListingRepository
	)
	if pool := pg.PoolHandle(); pool != nil {
		employeeRepo = repository.NewEmployeeRepository(pool)
		listingRepo = repository.NewListingRepository(pool)
	} else {
		employeeRepo = repository.NewMemoryEmployeeRepository()
		listingRepo = repository.NewMemoryListingRepository()
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger, metrics))

	if cfg.AMQP.URL != "" {
		broker, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.AMQP.URL, Queue: cfg.AMQP.Queue})
		if err != nil {
			logger.Error("event relay disabled; rabbitmq unavailable", zap.Error(err))
		} else {
			defer broker.Close() //nolint:errcheck
			worker.StartEventRelay(dispatcher, broker)
			logger.Info("relaying record events", zap.String("queue", cfg.AMQP.Queue))
		}
	}

	pagination := service.Pagination{
		DefaultLimit: cfg.Pagination.DefaultLimit,
		MaxLimit:     cfg.Pagination.MaxLimit,
	}
	employeeService := service.NewEmployeeService(service.EmployeeDependencies{
		EmployeeRepo: employeeRepo,
		Dispatcher:   dispatcher,
		Pagination:   pagination,
		Logger:       logger,
	})
	listingService := service.NewListingService(service.ListingDependencies{
		ListingRepo: listingRepo,
		Cache:       cache.NewRedisListingCache(redis.ClientHandle(), cfg.Redis.CacheTTL(), logger),
		Dispatcher:  dispatcher,
		Pagination:  pagination,
		Logger:      logger,
	})

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		Views:   web.NewEngine(),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Metrics:       handlers.NewMetricsHandler(metrics),
		Employees:     handlers.NewEmployeesHandler(employeeService),
		Listings:      handlers.NewListingsHandler(listingService),
		EmployeePages: handlers.NewEmployeePagesHandler(employeeService),
		ListingPages:  handlers.NewListingPagesHandler(listingService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
