package reviews

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookloft/catalog-api/internal/models"
	"github.com/bookloft/catalog-api/internal/store"
	apperrors "github.com/bookloft/catalog-api/pkg/errors"
)

func newTestService() (*Service, *store.MemoryCatalogStore) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	catalog := store.NewMemoryCatalogStore(map[string]*models.Book{
		"1": {Title: "Things Fall Apart", Author: "Chinua Achebe", Reviews: map[string]string{}},
	})
	return NewService(catalog, logger), catalog
}

func TestValidISBN(t *testing.T) {
	assert.True(t, ValidISBN("1"))
	assert.True(t, ValidISBN("1234567890"))
	assert.False(t, ValidISBN(""))
	assert.False(t, ValidISBN("abc"))
	assert.False(t, ValidISBN("12a"))
	assert.False(t, ValidISBN("-1"))
}

func TestUpsert_TrimsAndOverwrites(t *testing.T) {
	svc, catalog := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Upsert(ctx, "1", "alice", "  Great read  "))

	book, err := catalog.GetBook(ctx, "1")
	require.NoError(t, err)
	require.Len(t, book.Reviews, 1)
	assert.Equal(t, "Great read", book.Reviews["alice"])

	// A second submission replaces, never appends
	require.NoError(t, svc.Upsert(ctx, "1", "alice", "Changed my mind"))

	book, err = catalog.GetBook(ctx, "1")
	require.NoError(t, err)
	require.Len(t, book.Reviews, 1)
	assert.Equal(t, "Changed my mind", book.Reviews["alice"])
}

func TestUpsert_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	err := svc.Upsert(ctx, "abc", "alice", "text")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidID))

	err = svc.Upsert(ctx, "1", "alice", "   ")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidReview))

	err = svc.Upsert(ctx, "999", "alice", "text")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeBookNotFound))
}

func TestUpsert_InvalidIDNeverTouchesStore(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	recorder := &recordingStore{}
	svc := NewService(recorder, logger)

	err := svc.Upsert(context.Background(), "not-a-number", "alice", "text")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidID))

	err = svc.Delete(context.Background(), "not-a-number", "alice")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidID))

	assert.Zero(t, recorder.calls, "store must not be touched on validation failure")
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// Nothing to delete yet
	err := svc.Delete(ctx, "1", "alice")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeReviewNotFound))

	require.NoError(t, svc.Upsert(ctx, "1", "alice", "Great read"))
	require.NoError(t, svc.Delete(ctx, "1", "alice"))

	// Deleting twice yields the same outcome both times
	err = svc.Delete(ctx, "1", "alice")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeReviewNotFound))
	err = svc.Delete(ctx, "1", "alice")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeReviewNotFound))
}

func TestDelete_OnlyOwnEntry(t *testing.T) {
	svc, catalog := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Upsert(ctx, "1", "alice", "Great read"))
	require.NoError(t, svc.Upsert(ctx, "1", "bob", "Not for me"))

	require.NoError(t, svc.Delete(ctx, "1", "bob"))

	book, err := catalog.GetBook(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"alice": "Great read"}, book.Reviews)
}

// recordingStore counts calls so tests can assert the store stayed untouched.
type recordingStore struct {
	calls int
}

func (r *recordingStore) ListBooks(context.Context) (map[string]*models.Book, error) {
	r.calls++
	return nil, nil
}

func (r *recordingStore) GetBook(context.Context, string) (*models.Book, error) {
	r.calls++
	return nil, store.ErrBookNotFound
}

func (r *recordingStore) UpsertReview(context.Context, string, string, string) error {
	r.calls++
	return nil
}

func (r *recordingStore) DeleteReview(context.Context, string, string) error {
	r.calls++
	return nil
}
