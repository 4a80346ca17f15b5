package store

import (
	"context"
	"errors"

	"github.com/bookloft/catalog-api/internal/models"
)

// Sentinel errors returned by store implementations. Services map
// these onto the HTTP-facing error taxonomy.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserExists     = errors.New("user already exists")
	ErrBookNotFound   = errors.New("book not found")
	ErrReviewNotFound = errors.New("review not found")
)

// CredentialStore persists user credentials keyed by username.
type CredentialStore interface {
	// GetUser returns the user record or ErrUserNotFound.
	GetUser(ctx context.Context, username string) (*models.User, error)
	// PutUser stores a new user, failing with ErrUserExists if the
	// username is already taken.
	PutUser(ctx context.Context, user *models.User) error
	// CountUsers returns the number of registered users.
	CountUsers(ctx context.Context) (int, error)
}

// CatalogStore holds books and their per-user reviews. Review writes
// are single-key assignments: concurrent writers to the same
// (book, username) pair race with last-write-wins semantics, and no
// stronger isolation is promised.
type CatalogStore interface {
	// ListBooks returns a snapshot of the whole catalog keyed by book id.
	ListBooks(ctx context.Context) (map[string]*models.Book, error)
	// GetBook returns a snapshot of one book or ErrBookNotFound.
	GetBook(ctx context.Context, id string) (*models.Book, error)
	// UpsertReview sets reviews[username] = text on the given book,
	// replacing any prior value. Fails with ErrBookNotFound for an
	// unknown id.
	UpsertReview(ctx context.Context, id, username, text string) error
	// DeleteReview removes the username's review from the given book.
	// Fails with ErrBookNotFound or ErrReviewNotFound.
	DeleteReview(ctx context.Context, id, username string) error
}
