package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/bookloft/catalog-api/internal/httpx"
	"github.com/bookloft/catalog-api/internal/store"
	apperrors "github.com/bookloft/catalog-api/pkg/errors"
)

// AdminHandler serves operational endpoints
type AdminHandler struct {
	credentials store.CredentialStore
	catalog     store.CatalogStore
	logger      *logrus.Logger
}

func NewAdminHandler(credentials store.CredentialStore, catalog store.CatalogStore, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		credentials: credentials,
		catalog:     catalog,
		logger:      logger,
	}
}

// GetStats returns user, book and review counts from the stores
func (a *AdminHandler) GetStats(c *fiber.Ctx) error {
	users, err := a.credentials.CountUsers(c.Context())
	if err != nil {
		a.logger.WithError(err).Error("Failed to count users")
		return httpx.Error(c, apperrors.NewAppError(apperrors.CodeInternalError, "Error retrieving stats", err))
	}

	books, err := a.catalog.ListBooks(c.Context())
	if err != nil {
		a.logger.WithError(err).Error("Failed to list books")
		return httpx.Error(c, apperrors.NewAppError(apperrors.CodeInternalError, "Error retrieving stats", err))
	}

	totalReviews := 0
	for _, book := range books {
		totalReviews += len(book.Reviews)
	}

	return httpx.OK(c, "Stats retrieved successfully", fiber.Map{
		"users":   users,
		"books":   len(books),
		"reviews": totalReviews,
	})
}
