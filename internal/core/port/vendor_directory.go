package port

import (
	"context"
	"discovery-service/internal/core/domain"

	"github.com/google/uuid"
)

// VendorDirectoryPort - каталог исполнителей с двумя режимами выборки
type VendorDirectoryPort interface {
	// Search - полнотекстовый поиск, структурные фильтры не применяются
	Search(ctx context.Context, vendorType domain.VendorType, text string, paging domain.Paging) (*domain.VendorPage, error)
	// List - выборка по структурным фильтрам
	List(ctx context.Context, vendorType domain.VendorType, filters domain.StructuredFilters, paging domain.Paging) (*domain.VendorPage, error)
	FindByIDs(ctx context.Context, vendorType domain.VendorType, ids []uuid.UUID) ([]domain.VendorRecord, error)
}
