package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookloft/catalog-api/internal/models"
)

func TestMemoryCredentialStore(t *testing.T) {
	s := NewMemoryCredentialStore()
	ctx := context.Background()

	_, err := s.GetUser(ctx, "alice")
	assert.ErrorIs(t, err, ErrUserNotFound)

	user := &models.User{
		UserID:       "id-1",
		Username:     "alice",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, s.PutUser(ctx, user))

	got, err := s.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "id-1", got.UserID)
	assert.Equal(t, "$2a$10$hash", got.PasswordHash)

	// Duplicate usernames are rejected
	err = s.PutUser(ctx, &models.User{UserID: "id-2", Username: "alice"})
	assert.ErrorIs(t, err, ErrUserExists)

	count, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMemoryCatalogStore(t *testing.T) {
	s := NewMemoryCatalogStore(SeedBooks())
	ctx := context.Background()

	books, err := s.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 10)
	assert.Equal(t, "Chinua Achebe", books["1"].Author)

	_, err = s.GetBook(ctx, "999")
	assert.ErrorIs(t, err, ErrBookNotFound)

	err = s.UpsertReview(ctx, "999", "alice", "text")
	assert.ErrorIs(t, err, ErrBookNotFound)

	require.NoError(t, s.UpsertReview(ctx, "1", "alice", "Great read"))

	book, err := s.GetBook(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Great read", book.Reviews["alice"])

	err = s.DeleteReview(ctx, "1", "bob")
	assert.ErrorIs(t, err, ErrReviewNotFound)

	require.NoError(t, s.DeleteReview(ctx, "1", "alice"))
	err = s.DeleteReview(ctx, "1", "alice")
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestMemoryCatalogStore_SnapshotsAreCopies(t *testing.T) {
	s := NewMemoryCatalogStore(SeedBooks())
	ctx := context.Background()

	book, err := s.GetBook(ctx, "1")
	require.NoError(t, err)

	// Mutating the snapshot must not reach the store
	book.Reviews["mallory"] = "injected"

	fresh, err := s.GetBook(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, fresh.Reviews)
}

func TestMemoryCatalogStore_ConcurrentWriters(t *testing.T) {
	s := NewMemoryCatalogStore(SeedBooks())
	ctx := context.Background()

	// Different keys never conflict; same key is last-write-wins.
	const goroutines = 50
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			user := "user-a"
			if idx%2 == 0 {
				user = "user-b"
			}
			_ = s.UpsertReview(ctx, "1", user, "review")
		}(i)
	}
	wg.Wait()

	book, err := s.GetBook(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, book.Reviews, 2)
}
