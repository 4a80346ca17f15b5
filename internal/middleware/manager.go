package middleware

import (
	"github.com/sirupsen/logrus"

	"github.com/bookloft/catalog-api/internal/config"
)

// Manager holds all middleware instances
type Manager struct {
	Auth        *AuthMiddleware
	ErrorLogger *ErrorLoggerMiddleware
	Config      *config.Config
	Logger      *logrus.Logger
}

// NewManager creates a new middleware manager with all middleware initialized
func NewManager(cfg *config.Config, tokens TokenVerifier, logger *logrus.Logger) *Manager {
	return &Manager{
		Auth:        NewAuthMiddleware(tokens, logger),
		ErrorLogger: NewErrorLoggerMiddleware(logger),
		Config:      cfg,
		Logger:      logger,
	}
}
