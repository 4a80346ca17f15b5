package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bookloft/catalog-api/internal/models"
	"github.com/bookloft/catalog-api/internal/store"
	apperrors "github.com/bookloft/catalog-api/pkg/errors"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

// CredentialManager registers and verifies user credentials against
// the credential store.
type CredentialManager struct {
	store  store.CredentialStore
	hasher Hasher
	logger *logrus.Logger
}

func NewCredentialManager(credStore store.CredentialStore, hasher Hasher, logger *logrus.Logger) *CredentialManager {
	return &CredentialManager{
		store:  credStore,
		hasher: hasher,
		logger: logger,
	}
}

// Register validates the credentials and stores a hashed user record.
func (m *CredentialManager) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return apperrors.NewAppError(apperrors.CodeMissingField, "Username and password are required", nil)
	}
	if len(username) < minUsernameLength {
		return apperrors.NewAppError(apperrors.CodeUsernameTooShort, "Username must be at least 3 characters long", nil)
	}
	if len(password) < minPasswordLength {
		return apperrors.NewAppError(apperrors.CodePasswordTooShort, "Password must be at least 6 characters long", nil)
	}

	hash, err := m.hasher.Hash(password)
	if err != nil {
		return apperrors.NewAppError(apperrors.CodeInternalError, "Error registering user", err)
	}

	user := &models.User{
		UserID:       uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := m.store.PutUser(ctx, user); err != nil {
		if err == store.ErrUserExists {
			return apperrors.NewAppError(apperrors.CodeUserExists, "User already exists", err)
		}
		return apperrors.NewAppError(apperrors.CodeInternalError, "Error registering user", err)
	}

	m.logger.WithFields(logrus.Fields{
		"user_id":  user.UserID,
		"username": user.Username,
	}).Info("User registered successfully")

	return nil
}

// Verify checks a username/password pair against the stored hash.
// Unknown username and wrong password are both reported as (false, nil)
// so callers cannot tell which factor failed.
func (m *CredentialManager) Verify(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, apperrors.NewAppError(apperrors.CodeMissingField, "Username and password are required", nil)
	}

	user, err := m.store.GetUser(ctx, username)
	if err != nil {
		if err == store.ErrUserNotFound {
			return false, nil
		}
		return false, apperrors.NewAppError(apperrors.CodeInternalError, "Error during login", err)
	}

	if err := m.hasher.Compare(user.PasswordHash, password); err != nil {
		return false, nil
	}

	return true, nil
}
