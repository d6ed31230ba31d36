package usecase

import (
	"context"
	"discovery-service/internal/contextkeys"
	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port"
	"strings"
)

type GetFilterOptionsUseCase struct {
	storage port.FilterOptionsRepositoryPort
}

func NewGetFilterOptionsUseCase(storage port.FilterOptionsRepositoryPort) *GetFilterOptionsUseCase {
	return &GetFilterOptionsUseCase{storage: storage}
}

// Execute собирает опции фильтров для типа исполнителя.
// Сбой одной опции не ломает ответ, опция просто пропускается.
func (uc *GetFilterOptionsUseCase) Execute(ctx context.Context, vendorType domain.VendorType, criteria domain.FilterCriteria) (*domain.FilterOptionsResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "GetFilterOptions",
		"vendor_type": vendorType,
	})

	ucLogger.Info("Use case started", nil)

	filters := criteria.StructuredFilters()
	options := make(map[string]domain.FilterOption)

	priceRange, err := uc.storage.GetPriceRange(ctx, vendorType, filters)
	if err != nil {
		ucLogger.Warn("Failed to get price range", port.Fields{"error": err.Error()})
	} else {
		options["price"] = domain.FilterOption{Min: priceRange.Min, Max: priceRange.Max}
	}

	count, err := uc.storage.GetTotalCount(ctx, vendorType, filters)
	if err != nil {
		ucLogger.Warn("Failed to get total count", port.Fields{"error": err.Error()})
	}

	if cities, err := uc.storage.GetCities(ctx); err == nil && len(cities) > 0 {
		options["cities"] = domain.FilterOption{Options: toInterfaceSlice(cities)}
	}

	switch vendorType {
	case domain.VendorTypeArtist:
		if genres, err := uc.storage.GetGenres(ctx); err == nil && len(genres) > 0 {
			options["categories"] = domain.FilterOption{Options: toInterfaceSlice(genres)}
		}
	case domain.VendorTypeVenue:
		if venueTypes, err := uc.storage.GetVenueTypes(ctx); err == nil && len(venueTypes) > 0 {
			options["venue_types"] = domain.FilterOption{Options: toInterfaceSlice(venueTypes)}
		}
		if amenities, err := uc.storage.GetAmenities(ctx); err == nil && len(amenities) > 0 {
			options["amenities"] = domain.FilterOption{Options: toInterfaceSlice(amenities)}
		}
		if capacity, err := uc.storage.GetCapacityRange(ctx); err == nil {
			options["capacity"] = domain.FilterOption{Min: capacity.Min, Max: capacity.Max}
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"options": len(options), "count": count})
	return &domain.FilterOptionsResult{Options: options, Count: count}, nil
}

func toInterfaceSlice[T any](slice []T) []interface{} {
	result := make([]interface{}, len(slice))
	for i, v := range slice {
		result[i] = v
	}
	return result
}

// Имена справочников в запросе
const (
	DictionaryGenres     = "genres"
	DictionaryCities     = "cities"
	DictionaryVenueTypes = "venue_types"
	DictionaryAmenities  = "amenities"
)

type GetDictionariesUseCase struct {
	repo port.FilterOptionsRepositoryPort
}

func NewGetDictionariesUseCase(repo port.FilterOptionsRepositoryPort) *GetDictionariesUseCase {
	return &GetDictionariesUseCase{repo: repo}
}

// Execute возвращает запрошенные справочники, пустой список имен означает все
func (uc *GetDictionariesUseCase) Execute(ctx context.Context, names []string) (map[string][]domain.DictionaryItem, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetDictionaries"})

	ucLogger.Info("Use case started", nil)

	requested := make(map[string]bool)
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			requested[name] = true
		}
	}
	all := len(requested) == 0

	loaders := []struct {
		name string
		load func(context.Context) ([]domain.DictionaryItem, error)
	}{
		{DictionaryGenres, uc.repo.GetGenres},
		{DictionaryCities, uc.repo.GetCities},
		{DictionaryVenueTypes, uc.repo.GetVenueTypes},
		{DictionaryAmenities, uc.repo.GetAmenities},
	}

	result := make(map[string][]domain.DictionaryItem)
	for _, l := range loaders {
		if !all && !requested[l.name] {
			continue
		}
		items, err := l.load(ctx)
		if err != nil {
			ucLogger.Error("Storage returned an error while loading dictionary", err, port.Fields{"dictionary": l.name})
			continue
		}
		result[l.name] = items
	}

	return result, nil
}
