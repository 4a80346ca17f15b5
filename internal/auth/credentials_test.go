package auth

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookloft/catalog-api/internal/store"
	apperrors "github.com/bookloft/catalog-api/pkg/errors"
)

func newTestManager() *CredentialManager {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	// MinCost keeps the hashing fast in tests
	return NewCredentialManager(store.NewMemoryCredentialStore(), NewBcryptHasher(bcrypt.MinCost), logger)
}

func TestRegister_Validation(t *testing.T) {
	manager := newTestManager()
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		code     apperrors.ErrorCode
	}{
		{"missing username", "", "secret1", apperrors.CodeMissingField},
		{"missing password", "alice", "", apperrors.CodeMissingField},
		{"short username", "al", "secret1", apperrors.CodeUsernameTooShort},
		{"short password", "alice", "12345", apperrors.CodePasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := manager.Register(ctx, tt.username, tt.password)
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, tt.code), "expected code %s, got %v", tt.code, err)
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	manager := newTestManager()
	ctx := context.Background()

	require.NoError(t, manager.Register(ctx, "alice", "secret1"))

	err := manager.Register(ctx, "alice", "secret1")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUserExists))
}

func TestRegister_StoresHashNotPassword(t *testing.T) {
	credStore := store.NewMemoryCredentialStore()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	manager := NewCredentialManager(credStore, NewBcryptHasher(bcrypt.MinCost), logger)
	ctx := context.Background()

	require.NoError(t, manager.Register(ctx, "alice", "secret1"))

	user, err := credStore.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, user.UserID)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))
}

func TestVerify(t *testing.T) {
	manager := newTestManager()
	ctx := context.Background()

	require.NoError(t, manager.Register(ctx, "alice", "secret1"))

	ok, err := manager.Verify(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_NoEnumerationLeak(t *testing.T) {
	manager := newTestManager()
	ctx := context.Background()

	require.NoError(t, manager.Register(ctx, "alice", "secret1"))

	// Wrong password and unknown username must be indistinguishable
	wrongPassword, err1 := manager.Verify(ctx, "alice", "wrongpassword")
	unknownUser, err2 := manager.Verify(ctx, "nobody", "secret1")

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.False(t, wrongPassword)
	assert.False(t, unknownUser)
}
