package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/bookloft/catalog-api/internal/auth"
	"github.com/bookloft/catalog-api/internal/config"
	"github.com/bookloft/catalog-api/internal/httpx"
	"github.com/bookloft/catalog-api/internal/logging"
	"github.com/bookloft/catalog-api/internal/metrics"
	"github.com/bookloft/catalog-api/internal/middleware"
	"github.com/bookloft/catalog-api/internal/reviews"
	"github.com/bookloft/catalog-api/internal/store"
)

// Deps bundles the collaborators the route handlers need.
type Deps struct {
	Credentials *auth.CredentialManager
	Tokens      *auth.TokenService
	CredStore   store.CredentialStore
	Catalog     store.CatalogStore
	Reviews     *reviews.Service
	// ReadyCheck probes the backing store; nil means always ready.
	ReadyCheck func() error
}

// Setup configures all API routes
func Setup(app *fiber.App, cfg *config.Config, logger *logrus.Logger, mw *middleware.Manager, deps Deps) {
	authHandler := NewAuthHandler(deps.Credentials, deps.Tokens, logger)
	booksHandler := NewBooksHandler(deps.Catalog, deps.Reviews, logger)
	adminHandler := NewAdminHandler(deps.CredStore, deps.Catalog, logger)

	// Operational endpoints (no auth, no envelope)
	app.Get("/healthz", healthCheck)
	app.Get("/readyz", readinessCheck(deps.ReadyCheck))
	app.Get("/version", versionHandler)
	app.Get(cfg.Observability.MetricsPath, metrics.PrometheusHandler())

	// Business endpoints share metrics and error logging
	app.Use(metrics.HTTPMetricsMiddleware())
	app.Use(mw.ErrorLogger.Handle())

	// Public auth endpoints
	app.Post("/register", authHandler.Register)
	app.Post("/login", authHandler.Login)

	// Public catalog reads
	app.Get("/books", booksHandler.GetBooks)
	app.Get("/isbn/:isbn", booksHandler.GetByISBN)
	app.Get("/author/:author", booksHandler.GetByAuthor)
	app.Get("/title/:title", booksHandler.GetByTitle)
	app.Get("/review/:isbn", booksHandler.GetReviews)

	// Protected routes: the session guard resolves the acting identity
	protected := app.Group("/auth", mw.Auth.Handle())
	protected.Put("/review/:isbn", booksHandler.UpsertReview)
	protected.Delete("/review/:isbn", booksHandler.DeleteReview)

	admin := app.Group("/admin", mw.Auth.Handle())
	admin.Get("/stats", adminHandler.GetStats)

	// 404 handler
	app.Use(notFoundHandler)
}

// healthCheck returns the health status of the service
func healthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "catalog-api",
	})
}

// readinessCheck checks if the service is ready to accept traffic
func readinessCheck(probe func() error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if probe != nil {
			if err := probe(); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status":    "not ready",
					"error":     err.Error(),
					"timestamp": time.Now().UTC(),
				})
			}
		}

		return c.JSON(fiber.Map{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   "catalog-api",
		})
	}
}

// versionHandler returns version information
func versionHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "catalog-api",
		"version": logging.Version(),
	})
}

// notFoundHandler handles unmatched routes
func notFoundHandler(c *fiber.Ctx) error {
	return httpx.ErrorMessage(c, fiber.StatusNotFound, "Endpoint not found")
}
