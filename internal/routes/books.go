package routes

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/bookloft/catalog-api/internal/httpx"
	"github.com/bookloft/catalog-api/internal/middleware"
	"github.com/bookloft/catalog-api/internal/models"
	"github.com/bookloft/catalog-api/internal/reviews"
	"github.com/bookloft/catalog-api/internal/store"
	apperrors "github.com/bookloft/catalog-api/pkg/errors"
)

// BooksHandler serves catalog reads and the authenticated review mutations
type BooksHandler struct {
	catalog store.CatalogStore
	reviews *reviews.Service
	logger  *logrus.Logger
}

// NewBooksHandler creates a new books handler
func NewBooksHandler(catalog store.CatalogStore, reviewSvc *reviews.Service, logger *logrus.Logger) *BooksHandler {
	return &BooksHandler{
		catalog: catalog,
		reviews: reviewSvc,
		logger:  logger,
	}
}

// sanitizeSearchText normalizes a search term for matching
func sanitizeSearchText(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// GetBooks returns the whole catalog
func (h *BooksHandler) GetBooks(c *fiber.Ctx) error {
	books, err := h.catalog.ListBooks(c.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list books")
		return httpx.Error(c, apperrors.NewAppError(apperrors.CodeInternalError, "Error retrieving books", err))
	}
	return httpx.OK(c, "Books retrieved successfully", books)
}

// GetByISBN returns a single book by identifier
func (h *BooksHandler) GetByISBN(c *fiber.Ctx) error {
	isbn := c.Params("isbn")

	if !reviews.ValidISBN(isbn) {
		return httpx.Error(c, apperrors.NewAppError(apperrors.CodeInvalidID, "Invalid ISBN format", nil))
	}

	book, err := h.catalog.GetBook(c.Context(), isbn)
	if err != nil {
		if err == store.ErrBookNotFound {
			return httpx.Error(c, apperrors.NewAppError(apperrors.CodeBookNotFound, "Book not found", err))
		}
		h.logger.WithError(err).WithField("isbn", isbn).Error("Failed to get book")
		return httpx.Error(c, apperrors.NewAppError(apperrors.CodeInternalError, "Error retrieving book", err))
	}

	return httpx.OK(c, "Book found", book)
}

// GetByAuthor returns all books whose author contains the search term
func (h *BooksHandler) GetByAuthor(c *fiber.Ctx) error {
	raw := c.Params("author")
	author := sanitizeSearchText(raw)

	if author == "" {
		return httpx.Error(c, apperrors.NewAppError(apperrors.CodeBadRequest, "Author name is required", nil))
	}

	books, err := h.catalog.ListBooks(c.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list books")
		return httpx.Error(c, apperrors.NewAppError(apperrors.CodeInternalError, "Error retrieving books", err))
	}

	matches := make(map[string]*models.Book)
	for id, book := range books {
		if strings.Contains(strings.ToLower(book.Author), author) {
			matches[id] = book
		}
	}

	if len(matches) == 0 {
		return httpx.Error(c, apperrors.NewAppError(apperrors.CodeNotFound, "No books found by this author", nil))
	}

	return httpx.OK(c, "Books by author containing \""+raw+"\" found", matches)
}

// GetByTitle returns all books whose title contains the search term
func (h *BooksHandler) GetByTitle(c *fiber.Ctx) error {
	raw := c.Params("title")
	title := sanitizeSearchText(raw)

	if title == "" {
		return httpx.Error(c, apperrors.NewAppError(apperrors.CodeBadRequest, "Title is required", nil))
	}

	books, err := h.catalog.ListBooks(c.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list books")
		return httpx.Error(c, apperrors.NewAppError(apperrors.CodeInternalError, "Error retrieving books", err))
	}

	matches := make(map[string]*models.Book)
	for id, book := range books {
		if strings.Contains(strings.ToLower(book.Title), title) {
			matches[id] = book
		}
	}

	if len(matches) == 0 {
		return httpx.Error(c, apperrors.NewAppError(apperrors.CodeNotFound, "No books found with this title", nil))
	}

	return httpx.OK(c, "Books with title containing \""+raw+"\" found", matches)
}

// GetReviews returns the reviews map of one book
func (h *BooksHandler) GetReviews(c *fiber.Ctx) error {
	isbn := c.Params("isbn")

	if !reviews.ValidISBN(isbn) {
		return httpx.Error(c, apperrors.NewAppError(apperrors.CodeInvalidID, "Invalid ISBN format", nil))
	}

	book, err := h.catalog.GetBook(c.Context(), isbn)
	if err != nil {
		if err == store.ErrBookNotFound {
			return httpx.Error(c, apperrors.NewAppError(apperrors.CodeBookNotFound, "Book not found", err))
		}
		h.logger.WithError(err).WithField("isbn", isbn).Error("Failed to get book")
		return httpx.Error(c, apperrors.NewAppError(apperrors.CodeInternalError, "Error retrieving reviews", err))
	}

	return httpx.OK(c, "Reviews retrieved successfully", book.Reviews)
}

// UpsertReview adds or replaces the caller's review on a book. The
// review key is the identity the session guard attached, never any
// client-supplied username.
func (h *BooksHandler) UpsertReview(c *fiber.Ctx) error {
	isbn := c.Params("isbn")
	username := middleware.Username(c)

	var req models.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.Error(c, apperrors.NewAppError(apperrors.CodeInvalidReview, "Valid review content is required", err))
	}

	if err := h.reviews.Upsert(c.Context(), isbn, username, req.Review); err != nil {
		return httpx.Error(c, err)
	}

	return httpx.OK(c, "Review added/modified successfully", nil)
}

// DeleteReview removes the caller's review from a book
func (h *BooksHandler) DeleteReview(c *fiber.Ctx) error {
	isbn := c.Params("isbn")
	username := middleware.Username(c)

	if err := h.reviews.Delete(c.Context(), isbn, username); err != nil {
		return httpx.Error(c, err)
	}

	return httpx.OK(c, "Review deleted successfully", nil)
}
