package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/bookloft/catalog-api/pkg/errors"
)

// TokenService issues and verifies self-signed HS256 tokens. It holds
// no state beyond its configuration, so both operations are safe to
// call concurrently.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewTokenService(secret string, ttl time.Duration, issuer string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
	}
}

// Issue signs a token for the subject. Returns the token and its
// validity window in seconds.
func (s *TokenService) Issue(subject string) (string, int, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
		"iss": s.issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("token signing failed: %w", err)
	}

	return tokenString, int(s.ttl.Seconds()), nil
}

// Verify validates signature and expiry, returning the subject.
// Every failure maps to an AppError that surfaces as 401.
func (s *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", apperrors.NewAppError(apperrors.CodeTokenExpired, "Invalid or expired token", err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", apperrors.NewAppError(apperrors.CodeTokenSignature, "Invalid or expired token", err)
		default:
			return "", apperrors.NewAppError(apperrors.CodeTokenMalformed, "Invalid or expired token", err)
		}
	}

	if !token.Valid {
		return "", apperrors.NewAppError(apperrors.CodeTokenMalformed, "Invalid or expired token", nil)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperrors.NewAppError(apperrors.CodeTokenMalformed, "Invalid or expired token", nil)
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", apperrors.NewAppError(apperrors.CodeTokenMalformed, "Invalid or expired token", err)
	}

	return subject, nil
}
