package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/bookloft/catalog-api/internal/auth"
	"github.com/bookloft/catalog-api/internal/httpx"
	"github.com/bookloft/catalog-api/internal/metrics"
	"github.com/bookloft/catalog-api/internal/models"
	apperrors "github.com/bookloft/catalog-api/pkg/errors"
)

// AuthHandler handles registration and login endpoints
type AuthHandler struct {
	credentials *auth.CredentialManager
	tokens      *auth.TokenService
	logger      *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(credentials *auth.CredentialManager, tokens *auth.TokenService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		credentials: credentials,
		tokens:      tokens,
		logger:      logger,
	}
}

// Register handles new user registration
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.Error(c, apperrors.NewAppError(apperrors.CodeBadRequest, "Invalid request body", err))
	}

	if err := h.credentials.Register(c.Context(), req.Username, req.Password); err != nil {
		metrics.RecordAuthAttempt("register", "failure")
		return httpx.Error(c, err)
	}

	metrics.RecordAuthAttempt("register", "success")
	return httpx.Success(c, fiber.StatusCreated, "User registered successfully", nil)
}

// Login verifies credentials and issues a token
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.Error(c, apperrors.NewAppError(apperrors.CodeBadRequest, "Invalid request body", err))
	}

	ok, err := h.credentials.Verify(c.Context(), req.Username, req.Password)
	if err != nil {
		metrics.RecordAuthAttempt("login", "failure")
		return httpx.Error(c, err)
	}
	if !ok {
		// Unknown user and wrong password are indistinguishable here
		h.logger.WithField("username", req.Username).Warn("Invalid credentials")
		metrics.RecordAuthAttempt("login", "failure")
		return httpx.Error(c, apperrors.NewAppError(apperrors.CodeInvalidCredential, "Invalid credentials", nil))
	}

	token, expiresIn, err := h.tokens.Issue(req.Username)
	if err != nil {
		h.logger.WithError(err).Error("Failed to issue token")
		metrics.RecordAuthAttempt("login", "failure")
		return httpx.Error(c, apperrors.NewAppError(apperrors.CodeInternalError, "Error during login", err))
	}

	metrics.RecordAuthAttempt("login", "success")
	h.logger.WithField("username", req.Username).Info("User logged in successfully")

	return httpx.OK(c, "Login successful", models.LoginData{
		Token:     token,
		User:      req.Username,
		ExpiresIn: expiresIn,
	})
}
