package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/bookloft/catalog-api/pkg/errors"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, "catalog-api")

	token, expiresIn, err := svc.Issue("alice")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 3600, expiresIn)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestTokenService_Expired(t *testing.T) {
	// Negative TTL issues an already-expired token
	svc := NewTokenService("test-secret", -time.Minute, "catalog-api")

	token, _, err := svc.Issue("alice")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeTokenExpired), "expected expired, got %v", err)
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour, "catalog-api")
	verifier := NewTokenService("secret-b", time.Hour, "catalog-api")

	token, _, err := issuer.Issue("alice")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeTokenSignature), "expected signature failure, got %v", err)
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, "catalog-api")

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(token)
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeTokenMalformed), "token %q: got %v", token, err)
	}
}
