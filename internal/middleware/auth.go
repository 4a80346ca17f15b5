package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/bookloft/catalog-api/internal/httpx"
	"github.com/bookloft/catalog-api/internal/metrics"
	apperrors "github.com/bookloft/catalog-api/pkg/errors"
)

const usernameLocalsKey = "username"

// TokenVerifier resolves a bearer token to its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthMiddleware is the session guard: it extracts the bearer token,
// verifies it and attaches the resolved username to the request.
// It holds no per-request state, so unrelated requests never interfere.
type AuthMiddleware struct {
	tokens TokenVerifier
	logger *logrus.Logger
}

func NewAuthMiddleware(tokens TokenVerifier, logger *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		logger: logger,
	}
}

// Handle gates the request on a valid bearer token
func (a *AuthMiddleware) Handle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Extract token from Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			metrics.RecordAuthAttempt("guard", "failure")
			return httpx.Error(c, apperrors.NewAppError(apperrors.CodeTokenRequired, "Access token required", nil))
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			metrics.RecordAuthAttempt("guard", "failure")
			return httpx.Error(c, apperrors.NewAppError(apperrors.CodeTokenRequired, "Access token required", nil))
		}

		tokenString := authHeader[len(bearerPrefix):]
		if tokenString == "" {
			metrics.RecordAuthAttempt("guard", "failure")
			return httpx.Error(c, apperrors.NewAppError(apperrors.CodeTokenRequired, "Access token required", nil))
		}

		subject, err := a.tokens.Verify(tokenString)
		if err != nil {
			a.logger.WithError(err).WithField("path", c.Path()).Debug("Token validation failed")
			metrics.RecordAuthAttempt("guard", "failure")
			return httpx.Error(c, err)
		}

		metrics.RecordAuthAttempt("guard", "success")
		c.Locals(usernameLocalsKey, subject)

		return c.Next()
	}
}

// Username extracts the identity attached by the session guard
func Username(c *fiber.Ctx) string {
	if username, ok := c.Locals(usernameLocalsKey).(string); ok {
		return username
	}
	return ""
}
