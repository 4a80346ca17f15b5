package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"

	"github.com/bookloft/catalog-api/internal/auth"
	"github.com/bookloft/catalog-api/internal/config"
	"github.com/bookloft/catalog-api/internal/httpx"
	"github.com/bookloft/catalog-api/internal/logging"
	"github.com/bookloft/catalog-api/internal/metrics"
	"github.com/bookloft/catalog-api/internal/middleware"
	"github.com/bookloft/catalog-api/internal/reviews"
	"github.com/bookloft/catalog-api/internal/routes"
	"github.com/bookloft/catalog-api/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := logging.New(cfg)

	if cfg.JWT.Secret == "change-me-in-production" && cfg.Server.Environment != "development" {
		logger.Warn("Running with the default JWT secret outside development")
	}

	// Initialize metrics
	if err := metrics.Init(); err != nil {
		logger.WithError(err).Fatal("Failed to initialize metrics")
	}

	// Initialize tracing
	tracingShutdown, err := middleware.InitTracing(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to setup tracing")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracingShutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("Failed to shutdown tracing")
		}
	}()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Catalog API",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			logger.WithError(err).WithFields(logrus.Fields{
				"method": c.Method(),
				"path":   c.Path(),
			}).Error("Request error")

			// Generic envelope; internal detail stays in the log
			return httpx.ErrorMessage(c, fiber.StatusInternalServerError, "Something went wrong!")
		},
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Requested-With",
		MaxAge:       86400,
	}))
	if cfg.Observability.TracingEnabled {
		app.Use(otelfiber.Middleware())
	}

	// Initialize stores
	deps, err := initStores(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize stores")
	}

	// Initialize services
	hasher := auth.NewBcryptHasher(0)
	credentials := auth.NewCredentialManager(deps.CredStore, hasher, logger)
	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer)
	deps.Credentials = credentials
	deps.Tokens = tokens
	deps.Reviews = reviews.NewService(deps.Catalog, logger)

	// Initialize middleware manager
	mw := middleware.NewManager(cfg, tokens, logger)

	// Setup routes
	routes.Setup(app, cfg, logger, mw, deps)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Gracefully shutting down...")
		if err := app.Shutdown(); err != nil {
			logger.WithError(err).Error("Server shutdown failed")
		}
	}()

	// Start server
	logger.WithFields(logrus.Fields{
		"port":    cfg.Server.Port,
		"backend": cfg.Store.Backend,
	}).Info("Starting Catalog API server")
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}

// initStores builds the credential and catalog stores for the
// configured backend and seeds the catalog when empty.
func initStores(cfg *config.Config, logger *logrus.Logger) (routes.Deps, error) {
	var deps routes.Deps

	switch cfg.Store.Backend {
	case config.BackendMemory:
		deps.CredStore = store.NewMemoryCredentialStore()
		deps.Catalog = store.NewMemoryCatalogStore(store.SeedBooks())

	case config.BackendRedis:
		redisClient, err := store.NewRedisClient(&cfg.Redis, &cfg.AWS, logger)
		if err != nil {
			return deps, fmt.Errorf("redis client: %w", err)
		}

		catalog := store.NewRedisCatalogStore(redisClient, logger)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := catalog.Seed(ctx, store.SeedBooks()); err != nil {
			return deps, fmt.Errorf("catalog seed: %w", err)
		}

		deps.CredStore = store.NewRedisCredentialStore(redisClient, logger)
		deps.Catalog = catalog
		deps.ReadyCheck = store.RedisHealthCheck(redisClient, logger)

	case config.BackendDynamoDB:
		dynamoClient, err := store.NewDynamoDBClient(cfg, logger)
		if err != nil {
			return deps, fmt.Errorf("dynamodb client: %w", err)
		}

		// Credentials live in DynamoDB; the catalog stays in memory,
		// its review maps have no table yet.
		deps.CredStore = store.NewDynamoCredentialStore(dynamoClient, cfg.DynamoDB.UsersTableName, logger)
		deps.Catalog = store.NewMemoryCatalogStore(store.SeedBooks())

	default:
		return deps, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}

	logger.WithField("backend", cfg.Store.Backend).Info("Stores initialized")
	return deps, nil
}
