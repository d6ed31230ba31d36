package usecases_port

import (
	"context"
	"discovery-service/internal/core/domain"

	"github.com/google/uuid"
)

type CheckFavoriteUseCasePort interface {
	Execute(ctx context.Context, userID, vendorID uuid.UUID, vendorType domain.VendorType) (bool, error)
}

type AddToFavoritesUseCasePort interface {
	Execute(ctx context.Context, userID, vendorID uuid.UUID, vendorType domain.VendorType) error
}

type RemoveFromFavoritesUseCasePort interface {
	Execute(ctx context.Context, userID, vendorID uuid.UUID, vendorType domain.VendorType) error
}

type ToggleFavoriteUseCasePort interface {
	// Возвращает новое состояние: true, если исполнитель теперь в избранном
	Execute(ctx context.Context, userID, vendorID uuid.UUID, vendorType domain.VendorType) (bool, error)
}

type GetUserFavoritesUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID, vendorType domain.VendorType, limit, offset int) (*domain.PaginatedFavoriteCards, error)
}
