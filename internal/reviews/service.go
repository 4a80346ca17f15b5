package reviews

import (
	"context"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bookloft/catalog-api/internal/metrics"
	"github.com/bookloft/catalog-api/internal/store"
	apperrors "github.com/bookloft/catalog-api/pkg/errors"
)

// Book identifiers are non-empty digit strings.
var isbnPattern = regexp.MustCompile(`^[0-9]+$`)

// ValidISBN reports whether id matches the catalog's identifier format.
func ValidISBN(id string) bool {
	return isbnPattern.MatchString(id)
}

// Service applies review mutations scoped to a caller identity. The
// username must come from the session guard, never from request bodies,
// so a caller can only ever touch its own review entry.
type Service struct {
	catalog store.CatalogStore
	logger  *logrus.Logger
}

func NewService(catalog store.CatalogStore, logger *logrus.Logger) *Service {
	return &Service{
		catalog: catalog,
		logger:  logger,
	}
}

// Upsert writes the trimmed review text under the username's key,
// replacing any prior entry. Validation failures never touch the store.
func (s *Service) Upsert(ctx context.Context, bookID, username, text string) error {
	if !ValidISBN(bookID) {
		metrics.RecordReviewMutation("upsert", "failure")
		return apperrors.NewAppError(apperrors.CodeInvalidID, "Invalid ISBN format", nil)
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		metrics.RecordReviewMutation("upsert", "failure")
		return apperrors.NewAppError(apperrors.CodeInvalidReview, "Valid review content is required", nil)
	}

	if err := s.catalog.UpsertReview(ctx, bookID, username, trimmed); err != nil {
		metrics.RecordReviewMutation("upsert", "failure")
		if err == store.ErrBookNotFound {
			return apperrors.NewAppError(apperrors.CodeBookNotFound, "Book not found", err)
		}
		return apperrors.NewAppError(apperrors.CodeInternalError, "Error saving review", err)
	}

	metrics.RecordReviewMutation("upsert", "success")
	s.logger.WithFields(logrus.Fields{
		"book_id":  bookID,
		"username": username,
	}).Info("Review added/modified")

	return nil
}

// Delete removes the username's review from the book. Deleting an
// absent review reports ReviewNotFound, so repeating a delete is
// safe and yields the same outcome.
func (s *Service) Delete(ctx context.Context, bookID, username string) error {
	if !ValidISBN(bookID) {
		metrics.RecordReviewMutation("delete", "failure")
		return apperrors.NewAppError(apperrors.CodeInvalidID, "Invalid ISBN format", nil)
	}

	if err := s.catalog.DeleteReview(ctx, bookID, username); err != nil {
		metrics.RecordReviewMutation("delete", "failure")
		switch err {
		case store.ErrBookNotFound:
			return apperrors.NewAppError(apperrors.CodeBookNotFound, "Book not found", err)
		case store.ErrReviewNotFound:
			return apperrors.NewAppError(apperrors.CodeReviewNotFound, "Review not found", err)
		default:
			return apperrors.NewAppError(apperrors.CodeInternalError, "Error deleting review", err)
		}
	}

	metrics.RecordReviewMutation("delete", "success")
	s.logger.WithFields(logrus.Fields{
		"book_id":  bookID,
		"username": username,
	}).Info("Review deleted")

	return nil
}
