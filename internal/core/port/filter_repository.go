package port

import (
	"context"
	"discovery-service/internal/core/domain"
)

type FilterOptionsRepositoryPort interface {
	GetPriceRange(ctx context.Context, vendorType domain.VendorType, filters domain.StructuredFilters) (*domain.RangeResult, error)
	GetTotalCount(ctx context.Context, vendorType domain.VendorType, filters domain.StructuredFilters) (int, error)
	GetCapacityRange(ctx context.Context) (*domain.RangeResult, error)

	GetGenres(ctx context.Context) ([]domain.DictionaryItem, error)
	GetCities(ctx context.Context) ([]domain.DictionaryItem, error)
	GetVenueTypes(ctx context.Context) ([]domain.DictionaryItem, error)
	GetAmenities(ctx context.Context) ([]domain.DictionaryItem, error)
}
