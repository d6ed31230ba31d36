package postgres_adapter

import (
	"discovery-service/internal/core/domain"
	"fmt"
	"strings"
)

const vendorColumns = `
	v.id, v.vendor_type, v.name, v.description, COALESCE(v.city_id, ''), COALESCE(c.name, ''),
	v.category_ids, COALESCE(v.venue_type, ''), v.amenity_ids, v.price_min, v.price_max, v.rating,
	v.image_url, v.geohash, v.created_at`

const vendorFrom = `FROM vendors v LEFT JOIN cities c ON c.slug = v.city_id`

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder(vendorType domain.VendorType) *queryBuilder {
	qb := &queryBuilder{
		argId:      1,
		conditions: []string{"v.is_public = true"},
		args:       make([]interface{}, 0),
	}
	qb.addCondition("%s = $%d", "v.vendor_type", string(vendorType))
	return qb
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

// nextArg резервирует плейсхолдер для условий, которые собираются вручную
func (qb *queryBuilder) nextArg(arg interface{}) string {
	placeholder := fmt.Sprintf("$%d", qb.argId)
	qb.args = append(qb.args, arg)
	qb.argId++
	return placeholder
}

func (qb *queryBuilder) where() string {
	return "WHERE " + strings.Join(qb.conditions, " AND ")
}

// limitOffset дописывает окно выборки последними аргументами
func (qb *queryBuilder) limitOffset(paging domain.Paging) (string, []interface{}) {
	args := append(append([]interface{}{}, qb.args...), paging.Limit, paging.Offset)
	return fmt.Sprintf("LIMIT $%d OFFSET $%d", qb.argId, qb.argId+1), args
}

// applyStructuredFilters переводит структурные фильтры в условия WHERE.
// area - покрытие радиуса вокруг города, nil если город неизвестен.
func applyStructuredFilters(vendorType domain.VendorType, filters domain.StructuredFilters, area *geoArea) *queryBuilder {
	qb := newQueryBuilder(vendorType)

	if len(filters.Categories) > 0 {
		// пересечение: достаточно одной совпавшей категории
		qb.addCondition("%s && $%d", "v.category_ids", filters.Categories)
	}

	applyPriceFilter(qb, filters.PriceRange)
	applyLocationFilter(qb, filters.CityID, area)

	if vendorType == domain.VendorTypeVenue {
		if len(filters.VenueTypes) > 0 {
			qb.addCondition("%s = ANY($%d)", "v.venue_type", filters.VenueTypes)
		}
		if len(filters.AmenityIDs) > 0 {
			// удобства должны быть все
			qb.addCondition("%s @> $%d", "v.amenity_ids", filters.AmenityIDs)
		}
	}
	return qb
}

// applyPriceFilter: диапазон исполнителя должен пересекаться с запрошенным
func applyPriceFilter(qb *queryBuilder, pr *domain.PriceRange) {
	if pr == nil {
		return
	}
	qb.addCondition("COALESCE(%s, v.price_min) >= $%d", "v.price_max", pr.Min)
	qb.addCondition("COALESCE(%s, v.price_max) <= $%d", "v.price_min", pr.Max)
}

func applyLocationFilter(qb *queryBuilder, cityID string, area *geoArea) {
	if cityID == "" {
		return
	}
	if area == nil {
		qb.addCondition("%s = $%d", "v.city_id", cityID)
		return
	}
	city := qb.nextArg(cityID)
	cells := qb.nextArg(area.Cells)
	qb.conditions = append(qb.conditions, fmt.Sprintf(
		"(v.city_id = %s OR LEFT(v.geohash, %d) = ANY(%s))", city, area.Precision, cells,
	))
}

// orderClause всегда добавляет id последним ключом, чтобы страницы не пересекались
func orderClause(sort domain.SortOption) string {
	switch sort {
	case domain.SortPriceLow:
		return "ORDER BY v.price_min ASC NULLS LAST, v.id ASC"
	case domain.SortPriceHigh:
		return "ORDER BY v.price_max DESC NULLS LAST, v.id ASC"
	case domain.SortRating:
		return "ORDER BY v.rating DESC NULLS LAST, v.created_at DESC, v.id ASC"
	case domain.SortNewest:
		return "ORDER BY v.created_at DESC, v.id ASC"
	default:
		return "ORDER BY v.rating DESC NULLS LAST, v.created_at DESC, v.id ASC"
	}
}

// applyTextSearch строит условие полнотекстового поиска и ранжирование.
// Совпадение по подстроке имени ловит имена, которые словарь german не разбирает.
func applyTextSearch(vendorType domain.VendorType, text string) (*queryBuilder, string) {
	qb := newQueryBuilder(vendorType)
	normalized := normalizeSearchText(text)

	query := qb.nextArg(normalized)
	pattern := qb.nextArg(likePattern(normalized))
	qb.conditions = append(qb.conditions, fmt.Sprintf(
		"(v.search_vector @@ plainto_tsquery('german', %s) OR lower(v.name) LIKE %s)", query, pattern,
	))

	order := fmt.Sprintf(
		"ORDER BY ts_rank(v.search_vector, plainto_tsquery('german', %s)) DESC, v.name ASC, v.id ASC", query,
	)
	return qb, order
}
