package port

import (
	"context"
	"discovery-service/internal/core/domain"
)

// TokenVerifierPort проверяет bearer-токен пользователя
type TokenVerifierPort interface {
	ValidateToken(ctx context.Context, token string) (*domain.Claims, error)
}
