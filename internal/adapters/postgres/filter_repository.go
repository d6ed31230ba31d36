package postgres_adapter

import (
	"context"
	"discovery-service/internal/core/domain"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FilterRepository struct {
	pool *pgxpool.Pool
}

func NewFilterRepository(pool *pgxpool.Pool) (*FilterRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &FilterRepository{pool: pool}, nil
}

func (a *FilterRepository) buildFilterQuery(ctx context.Context, vendorType domain.VendorType, filters domain.StructuredFilters) (*queryBuilder, error) {
	area, err := lookupArea(ctx, a.pool, filters.CityID, filters.RadiusKm)
	if err != nil {
		return nil, err
	}
	return applyStructuredFilters(vendorType, filters, area), nil
}

// GetPriceRange - границы цен при остальных фильтрах.
// Собственный ценовой фильтр не учитывается, иначе слайдер схлопнется до выбранного диапазона.
func (a *FilterRepository) GetPriceRange(ctx context.Context, vendorType domain.VendorType, filters domain.StructuredFilters) (*domain.RangeResult, error) {
	filters.PriceRange = nil
	qb, err := a.buildFilterQuery(ctx, vendorType, filters)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT COALESCE(MIN(v.price_min), 0), COALESCE(MAX(v.price_max), 0)
		FROM vendors v
		%s`, qb.where())

	var res domain.RangeResult
	if err := a.pool.QueryRow(ctx, query, qb.args...).Scan(&res.Min, &res.Max); err != nil {
		return nil, fmt.Errorf("failed to get price range: %w", err)
	}
	return &res, nil
}

// GetTotalCount - сколько исполнителей подходит под фильтры
func (a *FilterRepository) GetTotalCount(ctx context.Context, vendorType domain.VendorType, filters domain.StructuredFilters) (int, error) {
	qb, err := a.buildFilterQuery(ctx, vendorType, filters)
	if err != nil {
		return 0, err
	}

	var count int
	query := "SELECT COUNT(*) FROM vendors v " + qb.where()
	if err := a.pool.QueryRow(ctx, query, qb.args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count vendors: %w", err)
	}
	return count, nil
}

func (a *FilterRepository) GetCapacityRange(ctx context.Context) (*domain.RangeResult, error) {
	query := `
		SELECT COALESCE(MIN(capacity_min), 0), COALESCE(MAX(capacity_max), 0)
		FROM vendors
		WHERE vendor_type = 'venue' AND is_public = true`

	var res domain.RangeResult
	if err := a.pool.QueryRow(ctx, query).Scan(&res.Min, &res.Max); err != nil {
		return nil, fmt.Errorf("failed to get capacity range: %w", err)
	}
	return &res, nil
}

func (a *FilterRepository) GetGenres(ctx context.Context) ([]domain.DictionaryItem, error) {
	return a.queryDictionary(ctx, "genres", `SELECT slug, name FROM genres ORDER BY name`)
}

func (a *FilterRepository) GetCities(ctx context.Context) ([]domain.DictionaryItem, error) {
	return a.queryDictionary(ctx, "cities", `SELECT slug, name FROM cities ORDER BY name`)
}

func (a *FilterRepository) GetAmenities(ctx context.Context) ([]domain.DictionaryItem, error) {
	return a.queryDictionary(ctx, "amenities", `SELECT slug, name FROM amenities ORDER BY name`)
}

// GetVenueTypes - типы площадок, которые реально встречаются в каталоге
func (a *FilterRepository) GetVenueTypes(ctx context.Context) ([]domain.DictionaryItem, error) {
	query := `
		SELECT DISTINCT venue_type
		FROM vendors
		WHERE vendor_type = 'venue' AND is_public = true AND venue_type IS NOT NULL AND venue_type != ''
		ORDER BY venue_type`

	rows, err := a.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query venue types: %w", err)
	}
	systemNames, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to read venue types: %w", err)
	}

	items := make([]domain.DictionaryItem, 0, len(systemNames))
	for _, name := range systemNames {
		items = append(items, domain.DictionaryItem{SystemName: name, DisplayName: displayName(name)})
	}
	return items, nil
}

func (a *FilterRepository) queryDictionary(ctx context.Context, dictionary, query string) ([]domain.DictionaryItem, error) {
	rows, err := a.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", dictionary, err)
	}
	defer rows.Close()

	items := []domain.DictionaryItem{}
	for rows.Next() {
		var item domain.DictionaryItem
		if err := rows.Scan(&item.SystemName, &item.DisplayName); err != nil {
			return nil, fmt.Errorf("failed to scan %s item: %w", dictionary, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
