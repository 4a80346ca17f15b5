package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookloft/catalog-api/internal/auth"
)

func newGuardedApp(t *testing.T, tokens TokenVerifier) *fiber.App {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := fiber.New()
	app.Use(NewAuthMiddleware(tokens, logger).Handle())
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(Username(c))
	})
	return app
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour, "catalog-api")
	app := newGuardedApp(t, tokens)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"empty bearer", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Contains(t, string(body), "Access token required")
		})
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour, "catalog-api")
	app := newGuardedApp(t, tokens)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Invalid or expired token")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	expired := auth.NewTokenService("test-secret", -time.Minute, "catalog-api")
	app := newGuardedApp(t, auth.NewTokenService("test-secret", time.Hour, "catalog-api"))

	token, _, err := expired.Issue("alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_AttachesIdentity(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour, "catalog-api")
	app := newGuardedApp(t, tokens)

	token, _, err := tokens.Issue("alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "alice", string(body))
}
