package token_adapter

import (
	"context"
	"discovery-service/internal/contextkeys"
	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "auth-service"

// TokenService проверяет HS256-токены сервиса аутентификации.
// GenerateToken нужен для локальной разработки и тестов.
type TokenService struct {
	signingKey []byte
}

func NewTokenService(signingKey string) (*TokenService, error) {
	if signingKey == "" {
		return nil, fmt.Errorf("JWT signing key cannot be empty")
	}
	return &TokenService{signingKey: []byte(signingKey)}, nil
}

type jwtCustomClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

func (s *TokenService) GenerateToken(ctx context.Context, claims domain.Claims, ttl time.Duration) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "TokenService",
		"method":    "GenerateToken",
		"user_id":   claims.UserID.String(),
	})

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwtCustomClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		logger.Error("Failed to sign token", err, nil)
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken возвращает domain.ErrTokenInvalid для любого непригодного токена
func (s *TokenService) ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "TokenService",
		"method":    "ValidateToken",
	})

	token, err := jwt.ParseWithClaims(tokenString, &jwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Warn("Token has expired", nil)
		} else {
			logger.Warn("Invalid token format or signature", port.Fields{"error": err.Error()})
		}
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid || claims.UserID == uuid.Nil {
		logger.Warn("Token has no usable claims", nil)
		return nil, domain.ErrTokenInvalid
	}

	return &domain.Claims{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}
