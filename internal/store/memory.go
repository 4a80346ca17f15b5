package store

import (
	"context"
	"sync"

	"github.com/bookloft/catalog-api/internal/models"
)

// MemoryCredentialStore is the in-memory CredentialStore. It guards
// its map with an RWMutex since handlers run on concurrent goroutines.
type MemoryCredentialStore struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

// NewMemoryCredentialStore creates an empty in-memory credential store.
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{
		users: make(map[string]*models.User),
	}
}

func (s *MemoryCredentialStore) GetUser(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *MemoryCredentialStore) PutUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Username]; ok {
		return ErrUserExists
	}
	copied := *user
	s.users[user.Username] = &copied
	return nil
}

func (s *MemoryCredentialStore) CountUsers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

// MemoryCatalogStore is the in-memory CatalogStore. Reads return deep
// copies so serialization never races with review writes. Same-key
// review writes are last-write-wins under the lock.
type MemoryCatalogStore struct {
	mu    sync.RWMutex
	books map[string]*models.Book
}

// NewMemoryCatalogStore creates a catalog store holding the given books.
// The map is used as-is; pass SeedBooks() for the default catalog.
func NewMemoryCatalogStore(books map[string]*models.Book) *MemoryCatalogStore {
	if books == nil {
		books = make(map[string]*models.Book)
	}
	return &MemoryCatalogStore{books: books}
}

func (s *MemoryCatalogStore) ListBooks(_ context.Context) (map[string]*models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[string]*models.Book, len(s.books))
	for id, book := range s.books {
		snapshot[id] = book.Clone()
	}
	return snapshot, nil
}

func (s *MemoryCatalogStore) GetBook(_ context.Context, id string) (*models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[id]
	if !ok {
		return nil, ErrBookNotFound
	}
	return book.Clone(), nil
}

func (s *MemoryCatalogStore) UpsertReview(_ context.Context, id, username, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[id]
	if !ok {
		return ErrBookNotFound
	}
	if book.Reviews == nil {
		book.Reviews = make(map[string]string)
	}
	book.Reviews[username] = text
	return nil
}

func (s *MemoryCatalogStore) DeleteReview(_ context.Context, id, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[id]
	if !ok {
		return ErrBookNotFound
	}
	if _, ok := book.Reviews[username]; !ok {
		return ErrReviewNotFound
	}
	delete(book.Reviews, username)
	return nil
}
