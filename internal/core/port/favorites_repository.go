package port

import (
	"context"
	"discovery-service/internal/core/domain"

	"github.com/google/uuid"
)

// FavoritesRepositoryPort - контракт для адаптера, работающего с БД избранного.
type FavoritesRepositoryPort interface {
	Exists(ctx context.Context, userID, vendorID uuid.UUID, vendorType domain.VendorType) (bool, error)
	Add(ctx context.Context, userID, vendorID uuid.UUID, vendorType domain.VendorType) error
	// Remove возвращает false, если записи не было
	Remove(ctx context.Context, userID, vendorID uuid.UUID, vendorType domain.VendorType) (bool, error)
	// FindPaginatedByUser - пустой vendorType означает все типы
	FindPaginatedByUser(ctx context.Context, userID uuid.UUID, vendorType domain.VendorType, limit, offset int) (*domain.PaginatedFavorites, error)
}
