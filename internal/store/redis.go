package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/bookloft/catalog-api/internal/metrics"
	"github.com/bookloft/catalog-api/internal/models"
)

// Key layout:
//
//	users                   SET of usernames
//	user:<username>         HASH user_id / username / password_hash / created_at
//	books                   SET of book ids
//	book:<id>               HASH title / author
//	book:<id>:reviews       HASH username -> review text
const (
	usersSetKey = "users"
	booksSetKey = "books"
)

func userKey(username string) string  { return "user:" + username }
func bookKey(id string) string        { return "book:" + id }
func bookReviewsKey(id string) string { return "book:" + id + ":reviews" }

// RedisCredentialStore keeps user records in Redis hashes.
type RedisCredentialStore struct {
	client redis.UniversalClient
	logger *logrus.Logger
}

func NewRedisCredentialStore(client redis.UniversalClient, logger *logrus.Logger) *RedisCredentialStore {
	return &RedisCredentialStore{client: client, logger: logger}
}

func (s *RedisCredentialStore) GetUser(ctx context.Context, username string) (*models.User, error) {
	defer metrics.ObserveStoreOperation("redis", "get_user")()

	fields, err := s.client.HGetAll(ctx, userKey(username)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis HGETALL failed: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrUserNotFound
	}

	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return nil, fmt.Errorf("corrupt created_at for user %s: %w", username, err)
	}

	return &models.User{
		UserID:       fields["user_id"],
		Username:     fields["username"],
		PasswordHash: fields["password_hash"],
		CreatedAt:    createdAt,
	}, nil
}

func (s *RedisCredentialStore) PutUser(ctx context.Context, user *models.User) error {
	defer metrics.ObserveStoreOperation("redis", "put_user")()

	// HSETNX on the username field claims the key; a lost race means
	// the name is taken.
	claimed, err := s.client.HSetNX(ctx, userKey(user.Username), "username", user.Username).Result()
	if err != nil {
		return fmt.Errorf("redis HSETNX failed: %w", err)
	}
	if !claimed {
		return ErrUserExists
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, userKey(user.Username),
		"user_id", user.UserID,
		"password_hash", user.PasswordHash,
		"created_at", user.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.SAdd(ctx, usersSetKey, user.Username)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis pipeline failed: %w", err)
	}

	return nil
}

func (s *RedisCredentialStore) CountUsers(ctx context.Context) (int, error) {
	count, err := s.client.SCard(ctx, usersSetKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis SCARD failed: %w", err)
	}
	return int(count), nil
}

// RedisCatalogStore keeps books and reviews in Redis hashes. Review
// writes are single HSET/HDEL commands, so same-key races keep the
// documented last-write-wins semantics.
type RedisCatalogStore struct {
	client redis.UniversalClient
	logger *logrus.Logger
}

func NewRedisCatalogStore(client redis.UniversalClient, logger *logrus.Logger) *RedisCatalogStore {
	return &RedisCatalogStore{client: client, logger: logger}
}

// Seed loads the given books when the catalog is empty. Idempotent
// across restarts and safe to call on every boot.
func (s *RedisCatalogStore) Seed(ctx context.Context, books map[string]*models.Book) error {
	count, err := s.client.SCard(ctx, booksSetKey).Result()
	if err != nil {
		return fmt.Errorf("redis SCARD failed: %w", err)
	}
	if count > 0 {
		return nil
	}

	pipe := s.client.TxPipeline()
	for id, book := range books {
		pipe.HSet(ctx, bookKey(id), "title", book.Title, "author", book.Author)
		pipe.SAdd(ctx, booksSetKey, id)
		for user, text := range book.Reviews {
			pipe.HSet(ctx, bookReviewsKey(id), user, text)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis seed pipeline failed: %w", err)
	}

	s.logger.WithField("books", len(books)).Info("Seeded catalog into Redis")
	return nil
}

func (s *RedisCatalogStore) ListBooks(ctx context.Context) (map[string]*models.Book, error) {
	ids, err := s.client.SMembers(ctx, booksSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis SMEMBERS failed: %w", err)
	}

	books := make(map[string]*models.Book, len(ids))
	for _, id := range ids {
		book, err := s.GetBook(ctx, id)
		if err == ErrBookNotFound {
			// Raced with a concurrent removal; skip.
			continue
		}
		if err != nil {
			return nil, err
		}
		books[id] = book
	}
	return books, nil
}

func (s *RedisCatalogStore) GetBook(ctx context.Context, id string) (*models.Book, error) {
	defer metrics.ObserveStoreOperation("redis", "get_book")()

	fields, err := s.client.HGetAll(ctx, bookKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis HGETALL failed: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrBookNotFound
	}

	reviews, err := s.client.HGetAll(ctx, bookReviewsKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis HGETALL reviews failed: %w", err)
	}
	if reviews == nil {
		reviews = make(map[string]string)
	}

	return &models.Book{
		Title:   fields["title"],
		Author:  fields["author"],
		Reviews: reviews,
	}, nil
}

func (s *RedisCatalogStore) UpsertReview(ctx context.Context, id, username, text string) error {
	defer metrics.ObserveStoreOperation("redis", "upsert_review")()

	exists, err := s.client.Exists(ctx, bookKey(id)).Result()
	if err != nil {
		return fmt.Errorf("redis EXISTS failed: %w", err)
	}
	if exists == 0 {
		return ErrBookNotFound
	}

	if err := s.client.HSet(ctx, bookReviewsKey(id), username, text).Err(); err != nil {
		return fmt.Errorf("redis HSET failed: %w", err)
	}
	return nil
}

func (s *RedisCatalogStore) DeleteReview(ctx context.Context, id, username string) error {
	defer metrics.ObserveStoreOperation("redis", "delete_review")()

	exists, err := s.client.Exists(ctx, bookKey(id)).Result()
	if err != nil {
		return fmt.Errorf("redis EXISTS failed: %w", err)
	}
	if exists == 0 {
		return ErrBookNotFound
	}

	removed, err := s.client.HDel(ctx, bookReviewsKey(id), username).Result()
	if err != nil {
		return fmt.Errorf("redis HDEL failed: %w", err)
	}
	if removed == 0 {
		return ErrReviewNotFound
	}
	return nil
}
